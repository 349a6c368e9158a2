package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/shopfront/internal/auth/domain"
	cartdomain "github.com/dwikikusuma/shopfront/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/internal/store"
	"github.com/dwikikusuma/shopfront/pkg/fault"
)

type fakeGateway struct {
	mu      sync.Mutex
	session domain.Session
	err     error

	// entered/release turn SignIn into a controllable suspension point
	entered chan struct{}
	release chan struct{}

	calls int
}

func (f *fakeGateway) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	return f.session, f.err
}

func (f *fakeGateway) SignUp(ctx context.Context, email, password string) (domain.Session, error) {
	return f.SignIn(ctx, email, password)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(gw Gateway) (*Service, *store.Store) {
	st := store.New(store.WithLogger(testLogger()))
	return NewService(st, gw, testLogger()), st
}

func TestLogin(t *testing.T) {
	sess := domain.Session{Token: "tok", UserID: "u1"}

	t.Run("success transitions to logged in", func(t *testing.T) {
		svc, st := newService(&fakeGateway{session: sess})
		if err := svc.Login(context.Background(), "a@b.c", "pw"); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		got := st.State().Auth
		if !got.SignedIn() || got.UserID() != "u1" {
			t.Fatalf("unexpected auth state: %+v", got)
		}
	})

	t.Run("backend failure returns to logged out", func(t *testing.T) {
		gwErr := fault.New(fault.KindAuthentication, "email or password is incorrect")
		svc, st := newService(&fakeGateway{err: gwErr})

		err := svc.Login(context.Background(), "a@b.c", "pw")
		if fault.KindOf(err) != fault.KindAuthentication {
			t.Fatalf("expected authentication fault, got %v", err)
		}
		if got := st.State().Auth; got.Status != domain.StatusLoggedOut {
			t.Fatalf("expected logged out, got %+v", got)
		}
	})

	t.Run("empty credentials are a validation fault", func(t *testing.T) {
		svc, _ := newService(&fakeGateway{session: sess})
		err := svc.Login(context.Background(), "  ", "pw")
		if fault.KindOf(err) != fault.KindValidation {
			t.Fatalf("expected validation fault, got %v", err)
		}
	})

	t.Run("second login while one is in flight is rejected", func(t *testing.T) {
		gw := &fakeGateway{
			session: sess,
			entered: make(chan struct{}, 1),
			release: make(chan struct{}),
		}
		svc, st := newService(gw)

		done := make(chan error, 1)
		go func() { done <- svc.Login(context.Background(), "a@b.c", "pw") }()
		<-gw.entered

		if err := svc.Login(context.Background(), "x@y.z", "pw"); !errors.Is(err, ErrLoginInFlight) {
			t.Fatalf("expected ErrLoginInFlight, got %v", err)
		}

		close(gw.release)
		if err := <-done; err != nil {
			t.Fatalf("first login failed: %v", err)
		}
		if got := st.State().Auth; !got.SignedIn() || got.UserID() != "u1" {
			t.Fatalf("first login did not win: %+v", got)
		}
	})

	t.Run("login while signed in is rejected", func(t *testing.T) {
		svc, _ := newService(&fakeGateway{session: sess})
		if err := svc.Login(context.Background(), "a@b.c", "pw"); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if err := svc.Login(context.Background(), "a@b.c", "pw"); !errors.Is(err, ErrAlreadySignedIn) {
			t.Fatalf("expected ErrAlreadySignedIn, got %v", err)
		}
	})

	t.Run("logout mid-flight discards the success", func(t *testing.T) {
		gw := &fakeGateway{
			session: sess,
			entered: make(chan struct{}, 1),
			release: make(chan struct{}),
		}
		svc, st := newService(gw)

		done := make(chan error, 1)
		go func() { done <- svc.Login(context.Background(), "a@b.c", "pw") }()
		<-gw.entered

		if err := svc.Logout(); err != nil {
			t.Fatalf("logout: %v", err)
		}
		close(gw.release)

		if err := <-done; !errors.Is(err, store.ErrStaleAction) {
			t.Fatalf("expected stale-action error, got %v", err)
		}
		if st.State().Auth.SignedIn() {
			t.Fatal("cancelled login signed in anyway")
		}
	})
}

func TestLogoutClearsUserScopedState(t *testing.T) {
	sess := domain.Session{Token: "tok", UserID: "u1"}
	svc, st := newService(&fakeGateway{session: sess})
	if err := svc.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	p := catalogdomain.Product{ID: "p1", OwnerID: "u1", Title: "Chair", Price: decimal.NewFromInt(10)}
	epoch := st.State().Auth.Epoch
	st.Dispatch(catalogdomain.Replaced{Seq: 1, Epoch: epoch, Owner: "u1", Products: []catalogdomain.Product{p}})
	st.Dispatch(cartdomain.ItemAdded{Product: p})

	transitions := 0
	st.Subscribe(func(store.State) { transitions++ })

	if err := svc.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}

	got := st.State()
	if got.Auth.SignedIn() || !got.Cart.Empty() || len(got.Catalog.Owned()) != 0 {
		t.Fatalf("logout left user-scoped state: %+v", got)
	}
	if transitions != 1 {
		t.Fatalf("expected one coordinated transition, got %d", transitions)
	}
}
