package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/internal/store"
	"github.com/dwikikusuma/shopfront/pkg/fault"
)

type Service struct {
	store *store.Store
	gw    Gateway
	log   *slog.Logger

	// seq orders concurrent fetches so a slow early response can never
	// overwrite the result of a later one.
	seq atomic.Uint64
}

func NewService(st *store.Store, gw Gateway, log *slog.Logger) *Service {
	return &Service{store: st, gw: gw, log: log}
}

type ProductInput struct {
	Title       string
	ImageURL    string
	Description string
	Price       decimal.Decimal
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fault.New(fault.KindValidation, "title must not be empty")
	}
	if in.Price.Sign() <= 0 {
		return fault.New(fault.KindValidation, "price must be greater than zero")
	}
	return nil
}

// FetchProducts replaces the catalog wholesale with the backend result.
func (s *Service) FetchProducts(ctx context.Context) error {
	st := s.store.State()
	epoch := st.Auth.Epoch
	owner := st.Auth.UserID()
	seq := s.seq.Add(1)

	products, err := s.gw.List(ctx)
	if err != nil {
		return fmt.Errorf("fetch products: %w", err)
	}
	return s.store.Dispatch(domain.Replaced{Seq: seq, Epoch: epoch, Owner: owner, Products: products})
}

// CreateProduct adopts the backend-issued id; nothing tentative is
// placed in the catalog, so a failed call leaves no entry to roll back.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}

	st := s.store.State()
	if !st.Auth.SignedIn() {
		return domain.Product{}, fault.New(fault.KindAuthentication, "sign in to manage products")
	}

	p := domain.Product{
		OwnerID:     st.Auth.UserID(),
		Title:       strings.TrimSpace(in.Title),
		ImageURL:    in.ImageURL,
		Description: in.Description,
		Price:       in.Price,
	}

	id, err := s.gw.Create(ctx, p, st.Auth.Session.Token)
	if err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	p.ID = id

	if err := s.store.Dispatch(domain.Created{Epoch: st.Auth.Epoch, Product: p}); err != nil {
		return domain.Product{}, err
	}
	s.log.Info("product created", slog.String("id", id))
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	st := s.store.State()
	if !st.Auth.SignedIn() {
		return fault.New(fault.KindAuthentication, "sign in to manage products")
	}
	existing, ok := st.Catalog.Find(id)
	if !ok {
		return fault.Newf(fault.KindConflict, "product %s no longer exists", id)
	}
	if existing.OwnerID != st.Auth.UserID() {
		return fault.New(fault.KindAuthorization, "you can only edit your own products")
	}

	updated := existing
	updated.Title = strings.TrimSpace(in.Title)
	updated.ImageURL = in.ImageURL
	updated.Description = in.Description
	updated.Price = in.Price

	if err := s.gw.Update(ctx, updated, st.Auth.Session.Token); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return s.store.Dispatch(domain.Updated{Epoch: st.Auth.Epoch, Product: updated})
}

// DeleteProduct removes the catalog entry after the backend confirms.
// Cart lines keep their snapshots; past orders are untouched.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	st := s.store.State()
	if !st.Auth.SignedIn() {
		return fault.New(fault.KindAuthentication, "sign in to manage products")
	}
	existing, ok := st.Catalog.Find(id)
	if !ok {
		return fault.Newf(fault.KindConflict, "product %s no longer exists", id)
	}
	if existing.OwnerID != st.Auth.UserID() {
		return fault.New(fault.KindAuthorization, "you can only delete your own products")
	}

	if err := s.gw.Delete(ctx, id, st.Auth.Session.Token); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return s.store.Dispatch(domain.Deleted{Epoch: st.Auth.Epoch, ID: id})
}
