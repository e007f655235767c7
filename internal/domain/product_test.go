package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string          { return &s }
func boolPtr(b bool) *bool             { return &b }
func intPtr(i int) *int                { return &i }
func decPtr(s string) *decimal.Decimal { d := decimal.RequireFromString(s); return &d }

func TestProductFilterMatches(t *testing.T) {
	product := Product{
		Brand: "Lenovo",
		Model: "ThinkPad X1 Carbon",
		Price: decimal.RequireFromString("1499.99"),
		Stock: 4,
	}

	tests := []struct {
		name     string
		filter   ProductFilter
		category string
		want     bool
	}{
		{"empty filter matches everything", ProductFilter{}, "Portátiles", true},
		{"brand substring, case-insensitive", ProductFilter{Brand: strPtr("lenOVO")}, "", true},
		{"brand mismatch", ProductFilter{Brand: strPtr("Asus")}, "", false},
		{"model substring", ProductFilter{Model: strPtr("x1")}, "", true},
		{"category substring against resolved name", ProductFilter{Category: strPtr("portá")}, "Portátiles", true},
		{"category mismatch", ProductFilter{Category: strPtr("monitores")}, "Portátiles", false},
		{"max price inclusive", ProductFilter{MaxPrice: decPtr("1499.99")}, "", true},
		{"max price exceeded", ProductFilter{MaxPrice: decPtr("1000")}, "", false},
		{"min stock inclusive", ProductFilter{MinStock: intPtr(4)}, "", true},
		{"min stock not reached", ProductFilter{MinStock: intPtr(5)}, "", false},
		{"deleted flag mismatch", ProductFilter{IsDeleted: boolPtr(true)}, "", false},
		{
			"all criteria combine with and",
			ProductFilter{
				Brand:    strPtr("Lenovo"),
				Model:    strPtr("ThinkPad"),
				MaxPrice: decPtr("2000"),
				MinStock: intPtr(1),
			},
			"",
			true,
		},
		{
			"one failing criterion rejects",
			ProductFilter{
				Brand:    strPtr("Lenovo"),
				MinStock: intPtr(10),
			},
			"",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(product, tt.category))
		})
	}
}

func TestNewProduct(t *testing.T) {
	t.Run("defaults the image when absent", func(t *testing.T) {
		p := NewProduct("Lenovo", "X1", "", decimal.Zero, 0, "", uuid.Nil)
		assert.Equal(t, ImageDefault, p.Image)
	})

	t.Run("keeps a provided image", func(t *testing.T) {
		p := NewProduct("Lenovo", "X1", "", decimal.Zero, 0, "https://img.example.com/x1.png", uuid.Nil)
		assert.Equal(t, "https://img.example.com/x1.png", p.Image)
	})
}
