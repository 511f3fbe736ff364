//go:build !integration

package application_test

import (
	"testing"

	"flower-shop-bot/internal/application"
	"flower-shop-bot/internal/domain/model"
)

func TestFormatterProduct(t *testing.T) {
	f := application.NewFormatter(newTestTranslator(t))

	t.Run("text only without image", func(t *testing.T) {
		r := f.Product(model.Product{Name: "Rose", Price: "100"})
		if r.IsPhoto() {
			t.Fatalf("expected text reply, got photo %q", r.PhotoURL)
		}
		if r.Text != "Rose: 100 руб.\n" {
			t.Errorf("unexpected text %q", r.Text)
		}
	})

	t.Run("photo with caption", func(t *testing.T) {
		r := f.Product(model.Product{Name: "Tulip", Price: "50", ImageURL: " http://x/img.png "})
		if !r.IsPhoto() || r.PhotoURL != "http://x/img.png" {
			t.Fatalf("expected photo reply, got %+v", r)
		}
		if r.Text != "Tulip: 50 руб.\n" {
			t.Errorf("unexpected caption %q", r.Text)
		}
	})
}

func TestFormatterOrder(t *testing.T) {
	f := application.NewFormatter(newTestTranslator(t))

	got := f.Order(model.Order{ID: 12, TotalPrice: "1500.00", Status: "completed", DeliveryAddress: "ул. Ленина, 1"})
	want := "Заказ №12 на сумму 1500.00 руб.\nСтатус: completed\nАдрес доставки: ул. Ленина, 1"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}

	got = f.Order(model.Order{ID: 13, TotalPrice: "10", Status: "new", DeliveryAddress: "  "})
	want = "Заказ №13 на сумму 10 руб.\nСтатус: new\nАдрес доставки: не указан"
	if got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}
