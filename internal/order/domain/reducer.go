package domain

import (
	"slices"

	authdomain "github.com/dwikikusuma/shopfront/internal/auth/domain"
)

type Action interface {
	Kind() string
}

type HistoryReplaced struct {
	Seq    uint64
	Epoch  uint64
	Orders []Order
}

func (HistoryReplaced) Kind() string { return "ORDERS_SET" }

func (a HistoryReplaced) AuthEpoch() uint64 { return a.Epoch }

// Placed records a backend-confirmed order. The cart reducer reacts to
// the same action by emptying, so confirmation and cart clear land in
// one committed transition.
type Placed struct {
	Epoch uint64
	Order Order
}

func (Placed) Kind() string { return "ORDER_ADD" }

func (a Placed) AuthEpoch() uint64 { return a.Epoch }

func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case HistoryReplaced:
		if act.Seq <= s.Seq {
			return s
		}
		s.Orders = slices.Clone(act.Orders)
		s.Seq = act.Seq
	case Placed:
		s.Orders = append(slices.Clone(s.Orders), act.Order)
	case authdomain.LoggedOut:
		// order history belongs to the signed-out user
		s.Orders = nil
	}
	return s
}
