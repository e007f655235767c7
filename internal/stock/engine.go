// Package stock implements the reservation engine: validation, reservation
// and release of product stock for an order's lines.
package stock

import (
	"errors"
	"fmt"

	"github.com/tienda-store/fulfillment/internal/domain"
	"go.uber.org/zap"
)

type Engine struct {
	log *zap.Logger
}

func NewEngine(log *zap.Logger) *Engine {
	return &Engine{log: log}
}

// Validate checks every line of the order against the catalog: the product
// must exist, must not be soft-deleted, must have enough stock, and the
// line's snapshotted price must equal the current price. The first violated
// line aborts the whole validation with no partial effect.
func (e *Engine) Validate(tx domain.ProductTx, o *domain.Order) error {
	if len(o.Lines) == 0 {
		return &domain.BadRequestError{Reason: "order has no lines"}
	}

	for _, line := range o.Lines {
		if line.Quantity <= 0 {
			return &domain.BadRequestError{Reason: fmt.Sprintf("invalid quantity %d for product %d", line.Quantity, line.ProductID)}
		}

		product, err := tx.GetByID(line.ProductID)
		if err != nil {
			return err
		}

		if product.IsDeleted {
			return &domain.BadRequestError{Reason: fmt.Sprintf("product %d is deleted", line.ProductID)}
		}

		if product.Stock < line.Quantity {
			return &domain.InsufficientStockError{ProductID: line.ProductID}
		}

		if !product.Price.Equal(line.ProductPrice) {
			return &domain.PriceMismatchError{ProductID: line.ProductID}
		}
	}

	return nil
}

// Reserve decrements each referenced product's stock by its line quantity
// and recomputes the order totals. The decrement is conditional on enough
// stock remaining, so two concurrent reservations cannot jointly over-deplete
// a product: the loser fails here and the enclosing transaction rolls back
// every decrement already made.
func (e *Engine) Reserve(tx domain.ProductTx, o *domain.Order) error {
	for _, line := range o.Lines {
		if err := tx.DecrementStock(line.ProductID, line.Quantity); err != nil {
			return err
		}
	}

	o.RecomputeTotals()

	e.log.Info("stock reserved",
		zap.String("order_id", o.ID.String()),
		zap.Int("total_items", o.TotalItems))
	return nil
}

// Release is the inverse of Reserve: it returns each line's quantity to the
// referenced product. Lines whose product no longer exists are skipped, since
// the product may have been hard-deleted independently of the order.
func (e *Engine) Release(tx domain.ProductTx, o *domain.Order) error {
	for _, line := range o.Lines {
		err := tx.IncrementStock(line.ProductID, line.Quantity)
		if err != nil {
			var notFound *domain.NotFoundError
			if errors.As(err, &notFound) {
				e.log.Warn("skipping release for missing product",
					zap.Int64("product_id", line.ProductID),
					zap.String("order_id", o.ID.String()))
				continue
			}
			return err
		}
	}

	e.log.Info("stock released", zap.String("order_id", o.ID.String()))
	return nil
}
