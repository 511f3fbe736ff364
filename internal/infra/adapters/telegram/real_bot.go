package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"flower-shop-bot/internal/application"
	"flower-shop-bot/internal/config"
	"flower-shop-bot/internal/domain/ports/adapter"
	"flower-shop-bot/internal/infra/i18n"
	"flower-shop-bot/internal/infra/logging"
	"flower-shop-bot/internal/infra/metrics"
	red "flower-shop-bot/internal/infra/redis"
)

var _ adapter.BotGateway = (*RealTelegramBotAdapter)(nil)

// botAPI is the part of *tgbotapi.BotAPI the adapter uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// CommandDispatcher handles one command and reports whether it was recognized.
type CommandDispatcher interface {
	Knows(name string) bool
	Dispatch(ctx context.Context, cmd application.Command) bool
}

type rateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RealTelegramBotAdapter polls Telegram, hands commands to the dispatcher and
// delivers the replies.
type RealTelegramBotAdapter struct {
	bot        botAPI
	username   string // bot's own username, for /cmd@username in groups
	translator *i18n.Translator
	log        *zerolog.Logger

	rateLimiter  rateLimiter
	limitPerUser int

	// updateWorkers is how many goroutines concurrently process updates.
	updateWorkers int
	cancelPolling context.CancelFunc
}

// NewRealTelegramBotAdapter connects to the Bot API with cfg.Token.
func NewRealTelegramBotAdapter(cfg *config.BotConfig, translator *i18n.Translator, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	r := newAdapter(bot, translator, logger, cfg.Workers)
	r.username = bot.Self.UserName
	r.log.Info().Str("username", bot.Self.UserName).Msg("authorized on telegram")
	return r, nil
}

func newAdapter(bot botAPI, translator *i18n.Translator, logger *zerolog.Logger, updateWorkers int) *RealTelegramBotAdapter {
	if updateWorkers <= 0 {
		updateWorkers = 5
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &RealTelegramBotAdapter{
		bot:           bot,
		translator:    translator,
		log:           logger,
		updateWorkers: updateWorkers,
	}
}

// WithRateLimiter enables per-user, per-command limits (perMinute calls).
func (r *RealTelegramBotAdapter) WithRateLimiter(rl rateLimiter, perMinute int) *RealTelegramBotAdapter {
	r.rateLimiter = rl
	r.limitPerUser = perMinute
	return r
}

// RegisterMenu publishes the command list shown in the Telegram menu.
func (r *RealTelegramBotAdapter) RegisterMenu(ctx context.Context, cmds []application.CommandInfo) error {
	botCmds := make([]tgbotapi.BotCommand, 0, len(cmds))
	for _, c := range cmds {
		botCmds = append(botCmds, tgbotapi.BotCommand{Command: c.Name, Description: c.Description})
	}
	_, err := r.bot.Request(tgbotapi.NewSetMyCommands(botCmds...))
	return err
}

// StartPolling begins polling Telegram for updates concurrently.
// It runs until ctx is canceled.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context, d CommandDispatcher) error {
	if d == nil {
		return errors.New("dispatcher is nil")
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case update, ok := <-updateChan:
					if !ok {
						return
					}
					// an update already taken runs to completion after shutdown
					r.handleUpdate(context.WithoutCancel(ctx), d, update)
				case <-ctx.Done():
					return
				}
			}
		}(i + 1)
	}

	// feed updates into updateChan
	go func() {
		defer close(updateChan)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case updateChan <- update:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()
	r.bot.StopReceivingUpdates()
	wg.Wait()
	return nil
}

// StopPolling stops the polling loop gracefully.
func (r *RealTelegramBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// handleUpdate turns a command message into an application.Command.
// Anything that is not a command from a user is ignored.
func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, d CommandDispatcher, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}
	command := msg.Command()
	if !r.addressedToUs(msg) {
		return
	}
	if !d.Knows(command) {
		metrics.IncTelegramCommand("unknown")
		return
	}

	ctx = logging.WithTraceID(ctx, uuid.NewString())
	ctx = logging.WithTgID(ctx, msg.From.ID)
	ctx = logging.WithCommand(ctx, command)
	l := logging.With(ctx, r.log)
	defer logging.TraceDuration(l, "telegram.handleUpdate")()

	if !r.allow(ctx, msg.From.ID, command) {
		metrics.IncRateLimitTriggered()
		if err := r.SendText(ctx, msg.Chat.ID, r.translator.T("rate_limited"), adapter.SendOptions{}); err != nil {
			l.Warn().Err(err).Msg("rate limit notice not delivered")
		}
		return
	}

	d.Dispatch(ctx, application.Command{
		Name:   command,
		ChatID: msg.Chat.ID,
		UserID: msg.From.ID,
	})
	metrics.IncTelegramCommand("/" + command)
}

// addressedToUs rejects /cmd@other_bot. A bare /cmd is for everyone.
func (r *RealTelegramBotAdapter) addressedToUs(msg *tgbotapi.Message) bool {
	at := msg.CommandWithAt()
	i := strings.IndexByte(at, '@')
	if i < 0 {
		return true
	}
	return r.username != "" && strings.EqualFold(at[i+1:], r.username)
}

// allow fails open when the limiter errors.
func (r *RealTelegramBotAdapter) allow(ctx context.Context, userID int64, command string) bool {
	if r.rateLimiter == nil || r.limitPerUser <= 0 {
		return true
	}
	ok, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(userID, command), r.limitPerUser, time.Minute)
	if err != nil {
		logging.With(ctx, r.log).Warn().Err(err).Msg("rate limit check failed")
		return true
	}
	return ok
}

// SendText sends a text message, with the reply keyboard when opts has one.
func (r *RealTelegramBotAdapter) SendText(ctx context.Context, chatID int64, text string, opts adapter.SendOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = opts.ParseMode
	if len(opts.Keyboard) > 0 {
		msg.ReplyMarkup = replyKeyboard(opts.Keyboard)
	}
	_, err := r.bot.Send(msg)
	metrics.IncTelegramReply("text", err)
	return err
}

// SendPhoto sends a photo by URL; Telegram downloads it itself.
func (r *RealTelegramBotAdapter) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, opts adapter.SendOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	photo.ParseMode = opts.ParseMode
	if len(opts.Keyboard) > 0 {
		photo.ReplyMarkup = replyKeyboard(opts.Keyboard)
	}
	_, err := r.bot.Send(photo)
	metrics.IncTelegramReply("photo", err)
	return err
}
