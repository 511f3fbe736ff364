package application

import (
	"context"
	"strings"

	"flower-shop-bot/internal/domain"
	"flower-shop-bot/internal/domain/model"
	"flower-shop-bot/internal/domain/ports/adapter"
	"flower-shop-bot/internal/infra/i18n"
	"flower-shop-bot/internal/infra/logging"

	"github.com/rs/zerolog"
)

// MainKeyboard is attached to the welcome message and every order/error reply.
var MainKeyboard = adapter.ReplyKeyboard{
	{"/start", "/catalog"},
	{"/order", "/order_history"},
}

// RequiredLocaleKeys are the templates the handlers and formatter look up.
var RequiredLocaleKeys = []string{
	"welcome_message", "help_message",
	"product_line", "catalog_empty", "error_catalog",
	"order_card", "address_missing",
	"orders_empty", "orders_not_found", "error_orders",
	"history_empty", "history_not_found", "error_history",
	"api_ok", "api_status_error", "api_unexpected_error", "rate_limited",
	"menu_start", "menu_catalog", "menu_order", "menu_order_history", "menu_test_api", "menu_help",
}

// Command is one recognized-or-not chat command. Name has no leading slash.
type Command struct {
	Name   string
	ChatID int64
	UserID int64
}

// CommandInfo describes a command for the Telegram menu.
type CommandInfo struct {
	Name        string
	Description string
}

type commandHandler func(ctx context.Context, cmd Command)

// Dispatcher routes commands to handlers. Handlers keep no state between
// calls and always finish: failures are reported to the chat and logged.
type Dispatcher struct {
	shop   adapter.ShopAPI
	gw     adapter.BotGateway
	tr     *i18n.Translator
	format *Formatter
	log    *zerolog.Logger

	routes map[string]commandHandler
}

func NewDispatcher(shop adapter.ShopAPI, gw adapter.BotGateway, tr *i18n.Translator, logger *zerolog.Logger) *Dispatcher {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	d := &Dispatcher{
		shop:   shop,
		gw:     gw,
		tr:     tr,
		format: NewFormatter(tr),
		log:    logger,
	}
	d.routes = map[string]commandHandler{
		"start":         d.handleStart,
		"catalog":       d.handleCatalog,
		"order":         d.handleOrders,
		"order_history": d.handleOrderHistory,
		"test_api":      d.handleTestAPI,
		"help":          d.handleHelp,
	}
	return d
}

// Dispatch runs the handler bound to cmd.Name and reports whether one existed.
// Names match exactly; unknown commands produce no reply.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) bool {
	h, ok := d.routes[strings.TrimPrefix(cmd.Name, "/")]
	if !ok {
		return false
	}
	h(ctx, cmd)
	return true
}

// Knows reports whether name (with or without the leading slash) has a handler.
func (d *Dispatcher) Knows(name string) bool {
	_, ok := d.routes[strings.TrimPrefix(name, "/")]
	return ok
}

// Commands lists the commands for the bot menu, in menu order.
func (d *Dispatcher) Commands() []CommandInfo {
	names := []string{"start", "catalog", "order", "order_history", "test_api", "help"}
	out := make([]CommandInfo, 0, len(names))
	for _, n := range names {
		out = append(out, CommandInfo{Name: n, Description: d.tr.T("menu_" + n)})
	}
	return out
}

func (d *Dispatcher) handleStart(ctx context.Context, cmd Command) {
	d.sendText(ctx, cmd, d.tr.T("welcome_message"), true)
}

func (d *Dispatcher) handleHelp(ctx context.Context, cmd Command) {
	d.sendText(ctx, cmd, d.tr.T("help_message"), true)
}

func (d *Dispatcher) handleCatalog(ctx context.Context, cmd Command) {
	products, err := d.shop.ListProducts(ctx)
	if err != nil {
		d.fail(ctx, cmd, "error_catalog", err, "catalog request failed")
		return
	}
	if len(products) == 0 {
		d.sendText(ctx, cmd, d.tr.T("catalog_empty"), true)
		return
	}
	for _, p := range products {
		r := d.format.Product(p)
		var sendErr error
		if r.IsPhoto() {
			sendErr = d.gw.SendPhoto(ctx, cmd.ChatID, r.PhotoURL, r.Text, adapter.SendOptions{})
		} else {
			sendErr = d.gw.SendText(ctx, cmd.ChatID, r.Text, adapter.SendOptions{})
		}
		if sendErr != nil {
			d.fail(ctx, cmd, "error_catalog", sendErr, "catalog send failed")
			return
		}
	}
}

// orderView holds the locale keys that differ between /order and /order_history.
type orderView struct {
	status   string
	empty    string
	notFound string
	failure  string
	logMsg   string
}

var (
	allOrdersView = orderView{
		empty:    "orders_empty",
		notFound: "orders_not_found",
		failure:  "error_orders",
		logMsg:   "orders request failed",
	}
	completedOrdersView = orderView{
		status:   model.OrderStatusCompleted,
		empty:    "history_empty",
		notFound: "history_not_found",
		failure:  "error_history",
		logMsg:   "order history request failed",
	}
)

func (d *Dispatcher) handleOrders(ctx context.Context, cmd Command) {
	d.listOrders(ctx, cmd, allOrdersView)
}

func (d *Dispatcher) handleOrderHistory(ctx context.Context, cmd Command) {
	d.listOrders(ctx, cmd, completedOrdersView)
}

func (d *Dispatcher) listOrders(ctx context.Context, cmd Command, v orderView) {
	orders, err := d.shop.ListOrders(ctx, cmd.UserID, v.status)
	if err != nil {
		if fe := domain.AsFetchError(err); fe.Kind == domain.KindNotFound {
			d.sendText(ctx, cmd, d.tr.T(v.notFound), true)
			return
		}
		d.fail(ctx, cmd, v.failure, err, v.logMsg)
		return
	}
	if len(orders) == 0 {
		d.sendText(ctx, cmd, d.tr.T(v.empty), true)
		return
	}
	for _, o := range orders {
		if err := d.gw.SendText(ctx, cmd.ChatID, d.format.Order(o), adapter.SendOptions{Keyboard: MainKeyboard}); err != nil {
			d.fail(ctx, cmd, v.failure, err, "orders send failed")
			return
		}
	}
}

// handleTestAPI only checks that the products endpoint answers 200.
func (d *Dispatcher) handleTestAPI(ctx context.Context, cmd Command) {
	err := d.shop.CheckProducts(ctx)
	if err == nil {
		d.sendText(ctx, cmd, d.tr.T("api_ok"), true)
		return
	}
	fe := domain.AsFetchError(err)
	d.logFailure(ctx, fe, "api check failed")
	if fe.Kind == domain.KindStatus {
		d.sendText(ctx, cmd, d.tr.T("api_status_error", fe.StatusCode), true)
		return
	}
	d.sendText(ctx, cmd, d.tr.T("api_unexpected_error", fe.Error()), true)
}

// fail reports err to the chat with the keyboard attached and logs it once.
// Status failures show the code, everything else the error text.
func (d *Dispatcher) fail(ctx context.Context, cmd Command, key string, err error, msg string) {
	fe := domain.AsFetchError(err)
	d.logFailure(ctx, fe, msg)
	var detail interface{} = fe.Error()
	if fe.Kind == domain.KindStatus {
		detail = fe.StatusCode
	}
	d.sendText(ctx, cmd, d.tr.T(key, detail), true)
}

func (d *Dispatcher) logFailure(ctx context.Context, fe *domain.FetchError, msg string) {
	ev := logging.With(ctx, d.log).Error().Str("kind", fe.Kind.String())
	if fe.StatusCode != 0 {
		ev = ev.Int("status", fe.StatusCode)
	}
	if fe.Err != nil {
		ev = ev.Err(fe.Err)
	}
	ev.Msg(msg)
}

// sendText delivers text; a transport failure is logged and swallowed.
func (d *Dispatcher) sendText(ctx context.Context, cmd Command, text string, withKeyboard bool) {
	opts := adapter.SendOptions{}
	if withKeyboard {
		opts.Keyboard = MainKeyboard
	}
	if err := d.gw.SendText(ctx, cmd.ChatID, text, opts); err != nil {
		logging.With(ctx, d.log).Warn().Err(err).Int64("chat_id", cmd.ChatID).Msg("reply not delivered")
	}
}
