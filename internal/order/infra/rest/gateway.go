package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/shopfront/internal/order/domain"
	"github.com/dwikikusuma/shopfront/pkg/fault"
	"github.com/dwikikusuma/shopfront/pkg/rest"
)

type Gateway struct {
	c *rest.Client
}

func NewGateway(c *rest.Client) *Gateway {
	return &Gateway{c: c}
}

type lineDTO struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"productTitle"`
	Price     decimal.Decimal `json:"productPrice"`
	Quantity  int             `json:"quantity"`
	Sum       decimal.Decimal `json:"sum"`
}

type orderDTO struct {
	CartItems   []lineDTO       `json:"cartItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Date        time.Time       `json:"date"`
}

func (g *Gateway) List(ctx context.Context, userID, authToken string) ([]domain.Order, error) {
	var doc map[string]orderDTO
	path := fmt.Sprintf("/orders/%s.json", userID)
	if err := g.c.Do(ctx, http.MethodGet, path, nil, &doc, authToken); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(doc))
	for id, d := range doc {
		lines := make([]domain.Line, 0, len(d.CartItems))
		for _, l := range d.CartItems {
			lines = append(lines, domain.Line{
				ProductID: l.ProductID,
				Title:     l.Title,
				UnitPrice: l.Price,
				Quantity:  l.Quantity,
			})
		}
		orders = append(orders, domain.Order{
			ID:    id,
			Lines: lines,
			Total: d.TotalAmount,
			Date:  d.Date,
		})
	}
	return orders, nil
}

func (g *Gateway) Place(ctx context.Context, userID string, o domain.Order, authToken string) (string, error) {
	lines := make([]lineDTO, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, lineDTO{
			ProductID: l.ProductID,
			Title:     l.Title,
			Price:     l.UnitPrice,
			Quantity:  l.Quantity,
			Sum:       l.Total(),
		})
	}

	var out struct {
		Name string `json:"name"`
	}
	path := fmt.Sprintf("/orders/%s.json", userID)
	body := orderDTO{CartItems: lines, TotalAmount: o.Total, Date: o.Date}
	if err := g.c.Do(ctx, http.MethodPost, path, body, &out, authToken); err != nil {
		return "", err
	}
	if out.Name == "" {
		return "", fault.New(fault.KindNetwork, "backend returned no order id")
	}
	return out.Name, nil
}
