package telegram

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"flower-shop-bot/internal/domain/ports/adapter"
)

var _ adapter.BotGateway = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements adapter.BotGateway for local runs.
// It logs messages instead of sending them and keeps a transcript.
type NoopBotAdapter struct {
	log *zerolog.Logger

	mu         sync.Mutex
	transcript []string
}

func NewNoopBotAdapter(logger *zerolog.Logger) *NoopBotAdapter {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &NoopBotAdapter{log: logger}
}

func (b *NoopBotAdapter) SendText(ctx context.Context, chatID int64, text string, opts adapter.SendOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.log.Info().Int64("chat_id", chatID).Bool("keyboard", len(opts.Keyboard) > 0).Msg(text)
	b.record(text)
	return nil
}

func (b *NoopBotAdapter) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, opts adapter.SendOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.log.Info().Int64("chat_id", chatID).Str("photo", photoURL).Msg(caption)
	b.record("[photo " + photoURL + "] " + caption)
	return nil
}

func (b *NoopBotAdapter) record(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transcript = append(b.transcript, strings.TrimRight(s, "\n"))
}

// Transcript returns everything "sent" so far, in order.
func (b *NoopBotAdapter) Transcript() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.transcript...)
}
