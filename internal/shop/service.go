package shop

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	authapp "github.com/dwikikusuma/shopfront/internal/auth/app"
	cartapp "github.com/dwikikusuma/shopfront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/shopfront/internal/catalog/app"
	orderapp "github.com/dwikikusuma/shopfront/internal/order/app"
	"github.com/dwikikusuma/shopfront/internal/store"
)

// Service is the storefront facade: one explicitly constructed
// container holding the store and every action creator, created at
// process start and passed by reference. Nothing here is a singleton;
// tests build as many as they like.
type Service struct {
	Store   *store.Store
	Auth    *authapp.Service
	Catalog *catalogapp.Service
	Cart    *cartapp.Service
	Orders  *orderapp.Service
}

type Deps struct {
	AuthGateway    authapp.Gateway
	CatalogGateway catalogapp.Gateway
	OrderGateway   orderapp.Gateway
	Log            *slog.Logger
	StoreOptions   []store.Option
}

func New(d Deps) *Service {
	st := store.New(append([]store.Option{store.WithLogger(d.Log)}, d.StoreOptions...)...)
	return &Service{
		Store:   st,
		Auth:    authapp.NewService(st, d.AuthGateway, d.Log),
		Catalog: catalogapp.NewService(st, d.CatalogGateway, d.Log),
		Cart:    cartapp.NewService(st),
		Orders:  orderapp.NewService(st, d.OrderGateway, d.Log),
	}
}

// Refresh loads the catalog and, for a signed-in user, the order
// history concurrently.
func (s *Service) Refresh(ctx context.Context) error {
	signedIn := s.Store.State().Auth.SignedIn()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Catalog.FetchProducts(ctx) })
	if signedIn {
		g.Go(func() error { return s.Orders.FetchOrders(ctx) })
	}
	return g.Wait()
}
