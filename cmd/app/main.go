// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"flower-shop-bot/internal/application"
	"flower-shop-bot/internal/config"
	"flower-shop-bot/internal/infra/adapters/shopapi"
	tele "flower-shop-bot/internal/infra/adapters/telegram"
	"flower-shop-bot/internal/infra/api"
	"flower-shop-bot/internal/infra/i18n"
	"flower-shop-bot/internal/infra/logging"
	"flower-shop-bot/internal/infra/metrics"
	red "flower-shop-bot/internal/infra/redis"
)

// set via -ldflags
var (
	version = ""
	commit  = ""
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, unredacted secrets)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] enabled")
	}
	logger.Info().
		Str("products_url", cfg.API.ProductsURL).
		Str("orders_url", cfg.API.OrdersURL).
		Str("bot_token", logging.Redact(cfg.Bot.Token, cfg.Runtime.Dev)).
		Msg("config loaded")

	// ---- Metrics ----
	metrics.MustRegister(nil)
	metrics.SetBuildInfo(version, commit)

	// ---- Locale ----
	translator, err := i18n.NewTranslator(i18n.LocalesFS, i18n.DefaultLang)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}
	if err := translator.Require(application.RequiredLocaleKeys...); err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}

	// ---- Shop API ----
	shop, err := shopapi.NewClient(cfg.API, &http.Client{}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("shop api")
	}

	// ---- Telegram ----
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, translator, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	if strings.ToLower(cfg.Bot.Mode) != "polling" {
		logger.Warn().Str("mode", cfg.Bot.Mode).Msg("bot.mode not implemented; falling back to polling")
	}

	// ---- Redis (optional rate limit) ----
	if strings.TrimSpace(cfg.Redis.URL) != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		botAdapter.WithRateLimiter(red.NewRateLimiter(redisClient), cfg.RateLimit.PerMinute)
		logger.Info().Int("per_minute", cfg.RateLimit.PerMinute).Msg("rate limiting enabled")
	}

	dispatcher := application.NewDispatcher(shop, botAdapter, translator, logger)
	if err := botAdapter.RegisterMenu(ctx, dispatcher.Commands()); err != nil {
		logger.Warn().Err(err).Msg("set my commands failed")
	}

	pollingDone := make(chan struct{})
	go func() {
		defer close(pollingDone)
		if err := botAdapter.StartPolling(ctx, dispatcher); err != nil {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- Admin server ----
	var admin *api.Server
	if cfg.Admin.Port > 0 {
		admin = api.NewServer(shop, nil, logger)
		go func() {
			if err := admin.Start(cfg.Admin.Port); err != nil {
				logger.Error().Err(err).Msg("admin server error")
			}
		}()
	}

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	botAdapter.StopPolling()
	cancel()

	// let in-flight handlers finish their sends
	select {
	case <-pollingDone:
	case <-time.After(10 * time.Second):
		logger.Warn().Msg("polling did not stop in time")
	}

	if admin != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := admin.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("admin server shutdown")
		}
	}
}
