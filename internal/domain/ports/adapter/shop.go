package adapter

import (
	"context"

	"flower-shop-bot/internal/domain/model"
)

// ShopAPI is the port for the remote shop backend.
// Failures are returned as *domain.FetchError.
type ShopAPI interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	// CheckProducts requests the products endpoint and only checks the status.
	CheckProducts(ctx context.Context) error
	// ListOrders returns the orders of userID, filtered by status when non-empty.
	ListOrders(ctx context.Context, userID int64, status string) ([]model.Order, error)
}
