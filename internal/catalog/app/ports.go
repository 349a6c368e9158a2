package app

import (
	"context"

	"github.com/dwikikusuma/shopfront/internal/catalog/domain"
)

type Gateway interface {
	List(ctx context.Context) ([]domain.Product, error)
	// Create returns the backend-issued product id.
	Create(ctx context.Context, p domain.Product, authToken string) (string, error)
	Update(ctx context.Context, p domain.Product, authToken string) error
	Delete(ctx context.Context, id, authToken string) error
}
