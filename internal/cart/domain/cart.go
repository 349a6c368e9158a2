package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Item is one aggregated cart line. Title and Price are snapshots taken
// when the product was first added; Quantity is always at least 1, and
// removing the last unit deletes the line instead.
type Item struct {
	ProductID string
	Title     string
	Price     decimal.Decimal
	Quantity  int
}

// Sum is derived, never stored, so it cannot drift from Price×Quantity.
func (i Item) Sum() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type State struct {
	Items map[string]Item
}

func (s State) Empty() bool {
	return len(s.Items) == 0
}

func (s State) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Sum())
	}
	return total
}

// Lines returns the items in a stable display order.
func (s State) Lines() []Item {
	lines := make([]Item, 0, len(s.Items))
	for _, it := range s.Items {
		lines = append(lines, it)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Title != lines[j].Title {
			return lines[i].Title < lines[j].Title
		}
		return lines[i].ProductID < lines[j].ProductID
	})
	return lines
}
