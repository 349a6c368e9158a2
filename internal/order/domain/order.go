package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Line is a cart item frozen at purchase time. It keeps its own title
// and price so later catalog edits never alter a past order.
type Line struct {
	ProductID string
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is immutable once created.
type Order struct {
	ID    string
	Lines []Line
	Total decimal.Decimal
	Date  time.Time
}

type State struct {
	Orders []Order
	Seq    uint64
}

// History returns the orders newest first, as screens display them.
func (s State) History() []Order {
	out := make([]Order, len(s.Orders))
	copy(out, s.Orders)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}
