package domain

import (
	"slices"

	authdomain "github.com/dwikikusuma/shopfront/internal/auth/domain"
)

type Action interface {
	Kind() string
}

// Replaced swaps the whole catalog for a fetch result. Seq orders
// concurrent fetches: a result with Seq at or below the applied one
// lost the race and is dropped.
type Replaced struct {
	Seq      uint64
	Epoch    uint64
	Owner    string
	Products []Product
}

func (Replaced) Kind() string { return "PRODUCTS_SET" }

func (a Replaced) AuthEpoch() uint64 { return a.Epoch }

type Created struct {
	Epoch   uint64
	Product Product
}

func (Created) Kind() string { return "PRODUCT_CREATE" }

func (a Created) AuthEpoch() uint64 { return a.Epoch }

type Updated struct {
	Epoch   uint64
	Product Product
}

func (Updated) Kind() string { return "PRODUCT_UPDATE" }

func (a Updated) AuthEpoch() uint64 { return a.Epoch }

type Deleted struct {
	Epoch uint64
	ID    string
}

func (Deleted) Kind() string { return "PRODUCT_DELETE" }

func (a Deleted) AuthEpoch() uint64 { return a.Epoch }

func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case Replaced:
		if act.Seq <= s.Seq {
			return s
		}
		s.Products = slices.Clone(act.Products)
		s.Owner = act.Owner
		s.Seq = act.Seq
	case Created:
		s.Products = append(slices.Clone(s.Products), act.Product)
	case Updated:
		i := slices.IndexFunc(s.Products, func(p Product) bool { return p.ID == act.Product.ID })
		if i < 0 {
			return s
		}
		products := slices.Clone(s.Products)
		products[i] = act.Product
		s.Products = products
	case Deleted:
		i := slices.IndexFunc(s.Products, func(p Product) bool { return p.ID == act.ID })
		if i < 0 {
			return s
		}
		s.Products = slices.Delete(slices.Clone(s.Products), i, i+1)
	case authdomain.LoggedOut:
		// the catalog stays browsable; only the management view unbinds
		s.Owner = ""
	}
	return s
}
