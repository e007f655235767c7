package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImageDefault is used when a product is created without an image reference.
const ImageDefault = "https://via.placeholder.com/150"

type Product struct {
	ID          int64           `json:"id"`
	UUID        uuid.UUID       `json:"uuid"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	CategoryID  uuid.UUID       `json:"category_id"`
	IsDeleted   bool            `json:"is_deleted"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewProduct(brand, model, description string, price decimal.Decimal, stock int, image string, categoryID uuid.UUID) *Product {
	if image == "" {
		image = ImageDefault
	}
	now := time.Now()
	return &Product{
		UUID:        uuid.New(),
		Brand:       brand,
		Model:       model,
		Description: description,
		Price:       price,
		Stock:       stock,
		Image:       image,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCategory(name string) *Category {
	now := time.Now()
	return &Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ProductFilter holds the optional search criteria for the catalog query.
// Absent criteria contribute an always-true predicate; present criteria
// are combined with logical AND.
type ProductFilter struct {
	Brand     *string
	Category  *string
	Model     *string
	IsDeleted *bool
	MaxPrice  *decimal.Decimal
	MinStock  *int
}

// Matches reports whether the product satisfies every provided criterion.
// The category name must be resolved by the caller since the product only
// carries the category id.
func (f ProductFilter) Matches(p Product, categoryName string) bool {
	if f.Brand != nil && !strings.Contains(strings.ToLower(p.Brand), strings.ToLower(*f.Brand)) {
		return false
	}
	if f.Category != nil && !strings.Contains(strings.ToLower(categoryName), strings.ToLower(*f.Category)) {
		return false
	}
	if f.Model != nil && !strings.Contains(strings.ToLower(p.Model), strings.ToLower(*f.Model)) {
		return false
	}
	if f.IsDeleted != nil && p.IsDeleted != *f.IsDeleted {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.MinStock != nil && p.Stock < *f.MinStock {
		return false
	}
	return true
}
