package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductTx is the transaction-scoped view of the catalog store. All stock
// mutation goes through it so that a reservation and the order persistence
// share one atomic unit.
type ProductTx interface {
	GetByID(id int64) (*Product, error)

	// DecrementStock atomically subtracts quantity where enough stock
	// remains. Returns InsufficientStockError when it does not.
	DecrementStock(id int64, quantity int) error

	// IncrementStock returns stock to the product. Returns NotFoundError
	// when the product no longer exists.
	IncrementStock(id int64, quantity int) error
}

type ProductStore interface {
	Find(filter ProductFilter, pageable Pageable) (Page[Product], error)
	FindByID(id int64) (*Product, error)
	FindByUUID(id uuid.UUID) (*Product, error)
	FindByCreatedAtBetween(from, to time.Time) ([]Product, error)
	ExistsByCategoryID(categoryID uuid.UUID) (bool, error)
	Save(p *Product) error
	Update(p *Product) error
	Delete(id int64) error
	SoftDelete(id int64) error

	// InTx runs fn inside a catalog transaction. A non-nil error from fn
	// rolls back every mutation made through the ProductTx.
	InTx(fn func(tx ProductTx) error) error
}

type CategoryStore interface {
	Find(name *string, pageable Pageable) (Page[Category], error)
	FindByID(id uuid.UUID) (*Category, error)
	FindByNameIgnoreCase(name string) (*Category, error)
	Save(c *Category) error
	Update(c *Category) error
	Delete(id uuid.UUID) error
}

type OrderStore interface {
	FindByID(id uuid.UUID) (*Order, error)
	FindByUserID(userID uuid.UUID, pageable Pageable) (Page[Order], error)
	Save(o *Order) error
	Delete(id uuid.UUID) error
	ExistsByProductID(productID int64) (bool, error)
}
