package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	authdomain "github.com/dwikikusuma/shopfront/internal/auth/domain"
	cartdomain "github.com/dwikikusuma/shopfront/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/shopfront/internal/catalog/domain"
	orderdomain "github.com/dwikikusuma/shopfront/internal/order/domain"
	"github.com/dwikikusuma/shopfront/pkg/metrics"
)

// State is the whole application state. Reducers never mutate slices or
// maps in place, so a State value handed out by the store is a stable
// snapshot: readers can keep it across later dispatches.
type State struct {
	Auth    authdomain.State
	Catalog catalogdomain.State
	Cart    cartdomain.State
	Orders  orderdomain.State
}

// Action is a transition request. Every action is routed to every
// reducer; a reducer returns its state unchanged for actions it does
// not recognize, so an unknown action commits an identical snapshot.
type Action interface {
	Kind() string
}

// epochScoped marks results of asynchronous work with the auth epoch
// they were issued under. A mismatch at dispatch time means the session
// changed mid-flight (sign-out, expiry) and the result is discarded.
type epochScoped interface {
	AuthEpoch() uint64
}

// ErrStaleAction reports a discarded result of asynchronous work whose
// auth context changed while it was in flight.
var ErrStaleAction = errors.New("stale action: auth context changed")

type Listener func(State)

type subscription struct {
	id uint64
	fn Listener
}

// Store is the dispatch coordinator. Dispatches are atomic: a reducer
// pass runs to completion before any other dispatch is applied, and
// listeners observe committed snapshots in commit order.
//
// Listeners run synchronously on the dispatching goroutine and must not
// call Dispatch; they receive the snapshot they need as an argument.
type Store struct {
	mu       sync.Mutex // guards state and subs
	notifyMu sync.Mutex // serializes listener fan-out in commit order

	state   State
	subs    []subscription
	nextSub uint64

	now func() time.Time
	log *slog.Logger
	met *metrics.StoreMetrics
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

func WithMetrics(m *metrics.StoreMetrics) Option {
	return func(s *Store) { s.met = m }
}

func New(opts ...Option) *Store {
	s := &Store{
		now: time.Now,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener and returns its unsubscribe func.
// Listeners are invoked in subscription order.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool { return sub.id == id })
	}
}

// Dispatch applies the action through every reducer and notifies
// listeners with the committed snapshot. An expired session is logged
// out first, as its own transition. Epoch-scoped actions from a stale
// auth context are discarded and reported via ErrStaleAction.
func (s *Store) Dispatch(a Action) error {
	if a == nil {
		return errors.New("dispatch of nil action")
	}
	start := time.Now()

	s.mu.Lock()

	var snaps []State
	if s.state.Auth.Expired(s.now()) {
		expiry := authdomain.LoggedOut{Expired: true}
		s.state = reduce(s.state, expiry)
		snaps = append(snaps, s.state)
		s.met.Record(expiry.Kind(), "applied", 0)
		s.log.Info("session expired, logged out")
	}

	if sc, ok := a.(epochScoped); ok && sc.AuthEpoch() != s.state.Auth.Epoch {
		s.deliverLocked(snaps)
		s.met.Record(a.Kind(), "dropped", time.Since(start))
		s.log.Debug("discarded stale action", slog.String("kind", a.Kind()))
		return fmt.Errorf("%s: %w", a.Kind(), ErrStaleAction)
	}

	s.state = reduce(s.state, a)
	snaps = append(snaps, s.state)
	s.deliverLocked(snaps)
	s.met.Record(a.Kind(), "applied", time.Since(start))
	return nil
}

// deliverLocked hands the state lock off to the notify lock, so a later
// dispatch can commit while this one is still notifying yet its
// listeners wait for ours to finish. Must be called with mu held;
// releases it.
func (s *Store) deliverLocked(snaps []State) {
	subs := slices.Clone(s.subs)
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, snap := range snaps {
		for _, sub := range subs {
			sub.fn(snap)
		}
	}
}

func reduce(st State, a Action) State {
	st.Auth = authdomain.Reduce(st.Auth, a)
	st.Catalog = catalogdomain.Reduce(st.Catalog, a)
	st.Cart = cartdomain.Reduce(st.Cart, a)
	st.Orders = orderdomain.Reduce(st.Orders, a)
	return st
}
