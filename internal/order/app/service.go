package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	cartdomain "github.com/dwikikusuma/shopfront/internal/cart/domain"
	"github.com/dwikikusuma/shopfront/internal/order/domain"
	"github.com/dwikikusuma/shopfront/internal/store"
	"github.com/dwikikusuma/shopfront/pkg/fault"
)

type Service struct {
	store *store.Store
	gw    Gateway
	log   *slog.Logger
	now   func() time.Time

	seq atomic.Uint64
}

func NewService(st *store.Store, gw Gateway, log *slog.Logger) *Service {
	return &Service{store: st, gw: gw, log: log, now: time.Now}
}

// WithClock overrides the order timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// FetchOrders replaces the order history wholesale with the backend
// result, subject to the same staleness sequencing as catalog fetches.
func (s *Service) FetchOrders(ctx context.Context) error {
	st := s.store.State()
	if !st.Auth.SignedIn() {
		return fault.New(fault.KindAuthentication, "sign in to see your orders")
	}
	epoch := st.Auth.Epoch
	seq := s.seq.Add(1)

	orders, err := s.gw.List(ctx, st.Auth.UserID(), st.Auth.Session.Token)
	if err != nil {
		return fmt.Errorf("fetch orders: %w", err)
	}
	return s.store.Dispatch(domain.HistoryReplaced{Seq: seq, Epoch: epoch, Orders: orders})
}

// PlaceOrder submits a snapshot of the current cart. The cart is
// cleared only by the committed ORDER_ADD transition, which happens
// after the backend confirms; any failure leaves the cart untouched.
func (s *Service) PlaceOrder(ctx context.Context) (domain.Order, error) {
	st := s.store.State()
	if !st.Auth.SignedIn() {
		return domain.Order{}, fault.New(fault.KindAuthentication, "sign in to place an order")
	}
	if st.Cart.Empty() {
		return domain.Order{}, fault.New(fault.KindValidation, "cart is empty")
	}

	o := domain.Order{
		Lines: linesFromCart(st.Cart),
		Total: st.Cart.Total(),
		Date:  s.now(),
	}

	id, err := s.gw.Place(ctx, st.Auth.UserID(), o, st.Auth.Session.Token)
	if err != nil {
		return domain.Order{}, fmt.Errorf("place order: %w", err)
	}
	o.ID = id

	if err := s.store.Dispatch(domain.Placed{Epoch: st.Auth.Epoch, Order: o}); err != nil {
		return domain.Order{}, err
	}
	s.log.Info("order placed", slog.String("id", id), slog.String("total", o.Total.String()))
	return o, nil
}

func linesFromCart(cart cartdomain.State) []domain.Line {
	items := cart.Lines()
	lines := make([]domain.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.Line{
			ProductID: it.ProductID,
			Title:     it.Title,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
		})
	}
	return lines
}
