package domain

import "fmt"

// NotFoundError signals that an entity does not exist in its owning store.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// InsufficientStockError signals that a line asked for more units than the
// referenced product has available.
type InsufficientStockError struct {
	ProductID int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

// PriceMismatchError signals that a line's snapshotted price differs from
// the product's current price.
type PriceMismatchError struct {
	ProductID int64
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("price mismatch for product %d", e.ProductID)
}

type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("bad request: %s", e.Reason)
}

// BadUUIDError signals a malformed externally-supplied identifier.
type BadUUIDError struct {
	Raw string
}

func (e *BadUUIDError) Error() string {
	return fmt.Sprintf("malformed uuid: %s", e.Raw)
}

// ConflictError signals an operation rejected by a referential policy,
// such as deleting a category that products still reference.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Reason)
}
