package app

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/internal/store"
	"github.com/dwikikusuma/shopfront/pkg/fault"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T, products ...catalogdomain.Product) (*Service, *store.Store) {
	t.Helper()
	st := store.New(store.WithLogger(testLogger()))
	if len(products) > 0 {
		if err := st.Dispatch(catalogdomain.Replaced{Seq: 1, Products: products}); err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}
	return NewService(st), st
}

func TestAddToCart(t *testing.T) {
	chair := catalogdomain.Product{ID: "p1", OwnerID: "u1", Title: "Chair", Price: decimal.NewFromInt(10)}

	t.Run("unknown product -> conflict fault, cart untouched", func(t *testing.T) {
		svc, st := newService(t, chair)

		err := svc.AddToCart("gone")
		if fault.KindOf(err) != fault.KindConflict {
			t.Fatalf("expected conflict fault, got %v", err)
		}
		if !st.State().Cart.Empty() {
			t.Fatalf("cart changed on failed add: %+v", st.State().Cart.Items)
		}
	})

	t.Run("snapshots title and price at add time", func(t *testing.T) {
		svc, st := newService(t, chair)

		if err := svc.AddToCart("p1"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		repriced := chair
		repriced.Price = decimal.NewFromInt(99)
		if err := st.Dispatch(catalogdomain.Updated{Product: repriced}); err != nil {
			t.Fatalf("reprice: %v", err)
		}
		if err := svc.AddToCart("p1"); err != nil {
			t.Fatalf("second add failed: %v", err)
		}

		it := st.State().Cart.Items["p1"]
		if it.Quantity != 2 {
			t.Fatalf("expected quantity 2, got %d", it.Quantity)
		}
		if !it.Price.Equal(chair.Price) {
			t.Fatalf("cart line took the repriced value: %s", it.Price)
		}
		if !st.State().Cart.Total().Equal(decimal.NewFromInt(20)) {
			t.Fatalf("total %s drifted from the add-time snapshot", st.State().Cart.Total())
		}
	})
}

func TestRemoveFromCart(t *testing.T) {
	chair := catalogdomain.Product{ID: "p1", OwnerID: "u1", Title: "Chair", Price: decimal.NewFromInt(10)}

	t.Run("drops one unit and deletes the last", func(t *testing.T) {
		svc, st := newService(t, chair)
		svc.AddToCart("p1")
		svc.AddToCart("p1")

		if err := svc.RemoveFromCart("p1"); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if got := st.State().Cart.Items["p1"].Quantity; got != 1 {
			t.Fatalf("expected quantity 1, got %d", got)
		}

		if err := svc.RemoveFromCart("p1"); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if !st.State().Cart.Empty() {
			t.Fatalf("line survived removing the last unit: %+v", st.State().Cart.Items)
		}
	})

	t.Run("absent product is a no-op", func(t *testing.T) {
		svc, st := newService(t, chair)
		svc.AddToCart("p1")
		before := st.State().Cart

		if err := svc.RemoveFromCart("gone"); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if !st.State().Cart.Total().Equal(before.Total()) {
			t.Fatalf("cart changed removing an absent product: %+v", st.State().Cart.Items)
		}
	})
}
