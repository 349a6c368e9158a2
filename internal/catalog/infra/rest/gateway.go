package rest

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/pkg/fault"
	"github.com/dwikikusuma/shopfront/pkg/rest"
)

// Gateway speaks the backend's document API: the catalog is one JSON
// document keyed by backend-issued product ids.
type Gateway struct {
	c *rest.Client
}

func NewGateway(c *rest.Client) *Gateway {
	return &Gateway{c: c}
}

type productDTO struct {
	Title       string          `json:"title"`
	ImageURL    string          `json:"imageUrl"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	OwnerID     string          `json:"ownerId"`
}

func (g *Gateway) List(ctx context.Context) ([]domain.Product, error) {
	var doc map[string]productDTO
	if err := g.c.Do(ctx, http.MethodGet, "/products.json", nil, &doc, ""); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(doc))
	for id, d := range doc {
		products = append(products, domain.Product{
			ID:          id,
			OwnerID:     d.OwnerID,
			Title:       d.Title,
			ImageURL:    d.ImageURL,
			Description: d.Description,
			Price:       d.Price,
		})
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (g *Gateway) Create(ctx context.Context, p domain.Product, authToken string) (string, error) {
	var out struct {
		Name string `json:"name"`
	}
	if err := g.c.Do(ctx, http.MethodPost, "/products.json", dtoFrom(p), &out, authToken); err != nil {
		return "", err
	}
	if out.Name == "" {
		return "", fault.New(fault.KindNetwork, "backend returned no product id")
	}
	return out.Name, nil
}

func (g *Gateway) Update(ctx context.Context, p domain.Product, authToken string) error {
	path := fmt.Sprintf("/products/%s.json", p.ID)
	return g.c.Do(ctx, http.MethodPatch, path, dtoFrom(p), nil, authToken)
}

func (g *Gateway) Delete(ctx context.Context, id, authToken string) error {
	path := fmt.Sprintf("/products/%s.json", id)
	return g.c.Do(ctx, http.MethodDelete, path, nil, nil, authToken)
}

func dtoFrom(p domain.Product) productDTO {
	return productDTO{
		Title:       p.Title,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Price:       p.Price,
		OwnerID:     p.OwnerID,
	}
}
