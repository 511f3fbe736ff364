package application_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"flower-shop-bot/internal/domain/model"
	"flower-shop-bot/internal/domain/ports/adapter"
	"flower-shop-bot/internal/infra/i18n"

	"github.com/rs/zerolog"
)

// sent is one message captured by recordingGateway.
type sent struct {
	ChatID   int64
	Text     string
	PhotoURL string
	Opts     adapter.SendOptions
}

type recordingGateway struct {
	mu   sync.Mutex
	msgs []sent

	// failPhoto makes SendPhoto return this error
	failPhoto error
}

func (g *recordingGateway) SendText(ctx context.Context, chatID int64, text string, opts adapter.SendOptions) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.msgs = append(g.msgs, sent{ChatID: chatID, Text: text, Opts: opts})
	return nil
}

func (g *recordingGateway) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, opts adapter.SendOptions) error {
	if g.failPhoto != nil {
		return g.failPhoto
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.msgs = append(g.msgs, sent{ChatID: chatID, Text: caption, PhotoURL: photoURL, Opts: opts})
	return nil
}

func (g *recordingGateway) messages() []sent {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]sent(nil), g.msgs...)
}

// stubShop returns canned results and records the orders calls.
type stubShop struct {
	products    []model.Product
	productsErr error
	checkErr    error
	orders      []model.Order
	ordersErr   error

	orderCalls []orderCall
}

type orderCall struct {
	UserID int64
	Status string
}

func (s *stubShop) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.products, s.productsErr
}

func (s *stubShop) CheckProducts(ctx context.Context) error { return s.checkErr }

func (s *stubShop) ListOrders(ctx context.Context, userID int64, status string) ([]model.Order, error) {
	s.orderCalls = append(s.orderCalls, orderCall{UserID: userID, Status: status})
	return s.orders, s.ordersErr
}

func newTestTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(i18n.LocalesFS, i18n.DefaultLang)
	if err != nil {
		t.Fatalf("load locale: %v", err)
	}
	return tr
}

// newBufferLogger returns a JSON logger and the buffer it writes to.
func newBufferLogger() (*zerolog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf)
	return &logger, buf
}

func countErrorLines(buf *bytes.Buffer) int {
	n := 0
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, `"level":"error"`) {
			n++
		}
	}
	return n
}
