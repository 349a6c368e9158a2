package domain

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Carts and orders keep their own copies of
// Title and Price, so editing or deleting a product never rewrites
// history.
type Product struct {
	ID          string
	OwnerID     string
	Title       string
	ImageURL    string
	Description string
	Price       decimal.Decimal
}

// State holds the full browsable catalog plus the user the owner-scoped
// view is bound to. Seq is the highest applied fetch sequence; replaces
// carrying an older sequence are stale and ignored.
type State struct {
	Products []Product
	Owner    string
	Seq      uint64
}

func (s State) Find(id string) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Owned is the management view: products belonging to the bound user.
// Always a subset of Products; empty when nobody is signed in.
func (s State) Owned() []Product {
	if s.Owner == "" {
		return nil
	}
	var owned []Product
	for _, p := range s.Products {
		if p.OwnerID == s.Owner {
			owned = append(owned, p)
		}
	}
	return owned
}
