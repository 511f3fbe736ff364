// Command demo runs a single bot command against the configured shop API and
// prints what the bot would have sent.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"flower-shop-bot/internal/application"
	"flower-shop-bot/internal/config"
	"flower-shop-bot/internal/infra/adapters/shopapi"
	tele "flower-shop-bot/internal/infra/adapters/telegram"
	"flower-shop-bot/internal/infra/i18n"
	"flower-shop-bot/internal/infra/logging"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	command := flag.String("cmd", "catalog", "command to run, e.g. catalog, order, order_history, test_api")
	userID := flag.Int64("user", 42424242, "telegram user id used as the caller")
	timeout := flag.Duration("timeout", 15*time.Second, "overall deadline")
	flag.Parse()

	// 1. Load config
	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log, true)

	// 2. Wire the dispatcher against a gateway that only logs
	translator, err := i18n.NewTranslator(i18n.LocalesFS, i18n.DefaultLang)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}
	shop, err := shopapi.NewClient(cfg.API, &http.Client{}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("shop api")
	}
	gw := tele.NewNoopBotAdapter(logger)
	d := application.NewDispatcher(shop, gw, translator, logger)

	// 3. Run the command
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx = logging.WithTgID(logging.WithCommand(ctx, *command), *userID)

	if !d.Dispatch(ctx, application.Command{Name: *command, ChatID: *userID, UserID: *userID}) {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", *command)
		os.Exit(2)
	}
	for i, line := range gw.Transcript() {
		fmt.Printf("--- message %d ---\n%s\n", i+1, line)
	}
}
