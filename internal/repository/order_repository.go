package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/tienda-store/fulfillment/internal/domain"
)

// OrderRepository owns the orders table in the order database. Customer and
// lines are embedded as JSON documents; there is no separate line table.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) FindByID(id uuid.UUID) (*domain.Order, error) {
	row := r.db.QueryRow(`
		SELECT id, user_id, customer, lines, total, total_items, created_at, updated_at
		FROM orders
		WHERE id = $1`, id)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "order", ID: id.String()}
	}
	return o, err
}

func (r *OrderRepository) FindByUserID(userID uuid.UUID, pageable domain.Pageable) (domain.Page[domain.Order], error) {
	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return domain.Page[domain.Order]{}, fmt.Errorf("order count query error: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT id, user_id, customer, lines, total, total_items, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, pageable.Size, pageable.Offset())
	if err != nil {
		return domain.Page[domain.Order]{}, fmt.Errorf("order query error: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return domain.Page[domain.Order]{}, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.Order]{}, fmt.Errorf("order rows error: %w", err)
	}

	return domain.NewPage(orders, pageable, total), nil
}

// Save inserts the order or replaces it when the id already exists. The id
// is store-generated on first save.
func (r *OrderRepository) Save(o *domain.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}

	customerJSON, err := json.Marshal(o.Customer)
	if err != nil {
		return fmt.Errorf("customer serialization error: %w", err)
	}
	linesJSON, err := json.Marshal(o.Lines)
	if err != nil {
		return fmt.Errorf("lines serialization error: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO orders (id, user_id, customer, lines, total, total_items, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET user_id = EXCLUDED.user_id, customer = EXCLUDED.customer,
			lines = EXCLUDED.lines, total = EXCLUDED.total,
			total_items = EXCLUDED.total_items, updated_at = EXCLUDED.updated_at`,
		o.ID, o.UserID, customerJSON, linesJSON, o.Total, o.TotalItems, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("order save error: %w", err)
	}
	return nil
}

func (r *OrderRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("order delete error: %w", err)
	}
	return requireRow(result, "order", id.String())
}

// ExistsByProductID reports whether any order line references the product.
// Lines are JSONB, so this is a containment query.
func (r *OrderRepository) ExistsByProductID(productID int64) (bool, error) {
	match, err := json.Marshal([]map[string]int64{{"product_id": productID}})
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM orders WHERE lines @> $1)`, match).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("order product reference query error: %w", err)
	}
	return exists, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	o := &domain.Order{}
	var customerJSON, linesJSON []byte

	err := row.Scan(
		&o.ID,
		&o.UserID,
		&customerJSON,
		&linesJSON,
		&o.Total,
		&o.TotalItems,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("order scan error: %w", err)
	}

	if err := json.Unmarshal(customerJSON, &o.Customer); err != nil {
		return nil, fmt.Errorf("customer deserialization error: %w", err)
	}
	if err := json.Unmarshal(linesJSON, &o.Lines); err != nil {
		return nil, fmt.Errorf("lines deserialization error: %w", err)
	}
	return o, nil
}
