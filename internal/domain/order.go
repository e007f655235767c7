package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

type Customer struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Address  Address `json:"address"`
}

// OrderLine snapshots the product price at order time. Total is derived
// and recomputed on every reservation.
type OrderLine struct {
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Total        decimal.Decimal `json:"total"`
}

type Order struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Customer   Customer        `json:"customer"`
	Lines      []OrderLine     `json:"lines"`
	TotalItems int             `json:"total_items"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func NewOrder(userID uuid.UUID, customer Customer, lines []OrderLine) *Order {
	now := time.Now()
	o := &Order{
		ID:        uuid.New(),
		UserID:    userID,
		Customer:  customer,
		Lines:     lines,
		CreatedAt: now,
		UpdatedAt: now,
	}
	o.RecomputeTotals()
	return o
}

// RecomputeTotals derives line totals, the order total and the item count
// from the lines. Total and TotalItems are never settable on their own.
func (o *Order) RecomputeTotals() {
	total := decimal.Zero
	items := 0
	for i := range o.Lines {
		line := &o.Lines[i]
		line.Total = line.ProductPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(line.Total)
		items += line.Quantity
	}
	o.Total = total
	o.TotalItems = items
}

func (o *Order) Touch() {
	o.UpdatedAt = time.Now()
}
