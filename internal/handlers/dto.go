package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tienda-store/fulfillment/internal/domain"
)

// parsePageable reads page/size query params with sane bounds.
func parsePageable(c *fiber.Ctx) domain.Pageable {
	page := 0
	size := 10

	if raw := c.Query("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p >= 0 {
			page = p
		}
	}
	if raw := c.Query("size"); raw != "" {
		if s, err := strconv.Atoi(raw); err == nil && s > 0 && s <= 100 {
			size = s
		}
	}

	return domain.Pageable{Page: page, Size: size}
}

// parseProductFilter reads the optional catalog search criteria.
func parseProductFilter(c *fiber.Ctx) domain.ProductFilter {
	filter := domain.ProductFilter{}

	if raw := c.Query("brand"); raw != "" {
		filter.Brand = &raw
	}
	if raw := c.Query("category"); raw != "" {
		filter.Category = &raw
	}
	if raw := c.Query("model"); raw != "" {
		filter.Model = &raw
	}
	if raw := c.Query("is_deleted"); raw != "" {
		if deleted, err := strconv.ParseBool(raw); err == nil {
			filter.IsDeleted = &deleted
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil {
			filter.MaxPrice = &price
		}
	}
	if raw := c.Query("min_stock"); raw != "" {
		if stock, err := strconv.Atoi(raw); err == nil {
			filter.MinStock = &stock
		}
	}

	return filter
}
