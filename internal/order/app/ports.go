package app

import (
	"context"

	"github.com/dwikikusuma/shopfront/internal/order/domain"
)

type Gateway interface {
	List(ctx context.Context, userID, authToken string) ([]domain.Order, error)
	// Place submits the order and returns the backend-issued order id.
	Place(ctx context.Context, userID string, o domain.Order, authToken string) (string, error)
}
