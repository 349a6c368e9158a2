package domain

import (
	authdomain "github.com/dwikikusuma/shopfront/internal/auth/domain"
	catalogdomain "github.com/dwikikusuma/shopfront/internal/catalog/domain"
	orderdomain "github.com/dwikikusuma/shopfront/internal/order/domain"
)

type Action interface {
	Kind() string
}

type ItemAdded struct {
	Product catalogdomain.Product
}

func (ItemAdded) Kind() string { return "CART_ADD" }

type ItemRemoved struct {
	ProductID string
}

func (ItemRemoved) Kind() string { return "CART_REMOVE" }

// Cleared empties the cart on its own. Order placement and logout
// already clear it through their own actions; Cleared is for callers
// that expose an explicit empty-cart control.
type Cleared struct{}

func (Cleared) Kind() string { return "CART_CLEAR" }

func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case ItemAdded:
		items := cloneItems(s.Items)
		p := act.Product
		if it, ok := items[p.ID]; ok {
			it.Quantity++
			items[p.ID] = it
		} else {
			items[p.ID] = Item{
				ProductID: p.ID,
				Title:     p.Title,
				Price:     p.Price,
				Quantity:  1,
			}
		}
		s.Items = items
	case ItemRemoved:
		it, ok := s.Items[act.ProductID]
		if !ok {
			return s
		}
		items := cloneItems(s.Items)
		if it.Quantity <= 1 {
			delete(items, act.ProductID)
		} else {
			it.Quantity--
			items[act.ProductID] = it
		}
		s.Items = items
	case Cleared:
		s.Items = nil
	case orderdomain.Placed:
		// successful submission empties the cart in the same commit
		s.Items = nil
	case authdomain.LoggedOut:
		s.Items = nil
	}
	return s
}

func cloneItems(items map[string]Item) map[string]Item {
	out := make(map[string]Item, len(items)+1)
	for k, v := range items {
		out[k] = v
	}
	return out
}
