package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductCreateRequest struct {
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

// ProductUpdateRequest replaces the product's fields. An empty Category
// keeps the current one.
type ProductUpdateRequest struct {
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type OrderLineRequest struct {
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	ProductPrice decimal.Decimal `json:"product_price"`
}

type CreateOrderRequest struct {
	UserID   uuid.UUID          `json:"user_id"`
	Customer Customer           `json:"customer"`
	Lines    []OrderLineRequest `json:"lines"`
}

func (r CreateOrderRequest) ToOrder() *Order {
	lines := make([]OrderLine, len(r.Lines))
	for i, line := range r.Lines {
		lines[i] = OrderLine{
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			ProductPrice: line.ProductPrice,
		}
	}
	return NewOrder(r.UserID, r.Customer, lines)
}
