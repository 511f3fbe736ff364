package application

import (
	"strings"

	"flower-shop-bot/internal/domain/model"
	"flower-shop-bot/internal/infra/i18n"
)

// Reply is one outbound chat message. A non-empty PhotoURL means a photo
// with Text as its caption.
type Reply struct {
	Text     string
	PhotoURL string
}

func (r Reply) IsPhoto() bool { return r.PhotoURL != "" }

// Formatter renders shop records as chat text using the locale templates.
type Formatter struct {
	tr *i18n.Translator
}

func NewFormatter(tr *i18n.Translator) *Formatter {
	return &Formatter{tr: tr}
}

// Product renders "<name>: <price> руб." and picks photo or text.
func (f *Formatter) Product(p model.Product) Reply {
	r := Reply{Text: f.tr.T("product_line", p.Name, p.Price.String())}
	if p.HasImage() {
		r.PhotoURL = strings.TrimSpace(p.ImageURL)
	}
	return r
}

// Order renders the order card; a missing address becomes the placeholder.
func (f *Formatter) Order(o model.Order) string {
	addr := o.Address()
	if addr == "" {
		addr = f.tr.T("address_missing")
	}
	return f.tr.T("order_card", o.ID, o.TotalPrice.String(), o.Status, addr)
}
