package app

import (
	"github.com/dwikikusuma/shopfront/internal/cart/domain"
	"github.com/dwikikusuma/shopfront/internal/store"
	"github.com/dwikikusuma/shopfront/pkg/fault"
)

// Service holds the synchronous cart action creators. The cart never
// talks to the backend; it only snapshots catalog data.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// AddToCart snapshots the product's current title and price into the
// cart, bumping the quantity if the line already exists.
func (s *Service) AddToCart(productID string) error {
	p, ok := s.store.State().Catalog.Find(productID)
	if !ok {
		return fault.Newf(fault.KindConflict, "product %s is no longer available", productID)
	}
	return s.store.Dispatch(domain.ItemAdded{Product: p})
}

// RemoveFromCart drops one unit; the line disappears when the last unit
// goes. Removing an absent product is a no-op.
func (s *Service) RemoveFromCart(productID string) error {
	return s.store.Dispatch(domain.ItemRemoved{ProductID: productID})
}
