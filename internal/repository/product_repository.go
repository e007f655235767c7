package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/tienda-store/fulfillment/internal/domain"
)

const productColumns = `p.id, p.uuid, p.brand, p.model, p.description, p.price, p.stock, p.image, p.category_id, p.is_deleted, p.created_at, p.updated_at`

// ProductRepository owns the products table in the catalog database.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Find(filter domain.ProductFilter, pageable domain.Pageable) (domain.Page[domain.Product], error) {
	where := ""
	var args []interface{}

	appendCond := func(cond string, arg interface{}) {
		args = append(args, arg)
		cond = fmt.Sprintf(cond, len(args))
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	if filter.Brand != nil {
		appendCond("p.brand ILIKE '%%' || $%d || '%%'", *filter.Brand)
	}
	if filter.Category != nil {
		appendCond("c.name ILIKE '%%' || $%d || '%%'", *filter.Category)
	}
	if filter.Model != nil {
		appendCond("p.model ILIKE '%%' || $%d || '%%'", *filter.Model)
	}
	if filter.IsDeleted != nil {
		appendCond("p.is_deleted = $%d", *filter.IsDeleted)
	}
	if filter.MaxPrice != nil {
		appendCond("p.price <= $%d", *filter.MaxPrice)
	}
	if filter.MinStock != nil {
		appendCond("p.stock >= $%d", *filter.MinStock)
	}

	base := ` FROM products p JOIN categories c ON p.category_id = c.id` + where

	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
		return domain.Page[domain.Product]{}, fmt.Errorf("product count query error: %w", err)
	}

	args = append(args, pageable.Size, pageable.Offset())
	query := fmt.Sprintf(`SELECT %s%s ORDER BY p.id LIMIT $%d OFFSET $%d`,
		productColumns, base, len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return domain.Page[domain.Product]{}, fmt.Errorf("product query error: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return domain.Page[domain.Product]{}, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.Product]{}, fmt.Errorf("product rows error: %w", err)
	}

	return domain.NewPage(products, pageable, total), nil
}

func (r *ProductRepository) FindByID(id int64) (*domain.Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "product", ID: fmt.Sprintf("%d", id)}
	}
	return p, err
}

func (r *ProductRepository) FindByUUID(id uuid.UUID) (*domain.Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products p WHERE p.uuid = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "product", ID: id.String()}
	}
	return p, err
}

func (r *ProductRepository) FindByCreatedAtBetween(from, to time.Time) ([]domain.Product, error) {
	rows, err := r.db.Query(
		`SELECT `+productColumns+` FROM products p WHERE p.created_at > $1 AND p.created_at <= $2 ORDER BY p.created_at`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("product time-range query error: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) ExistsByCategoryID(categoryID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM products WHERE category_id = $1 AND is_deleted = false)`,
		categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product category existence query error: %w", err)
	}
	return exists, nil
}

func (r *ProductRepository) Save(p *domain.Product) error {
	err := r.db.QueryRow(`
		INSERT INTO products (uuid, brand, model, description, price, stock, image, category_id, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		p.UUID, p.Brand, p.Model, p.Description, p.Price, p.Stock, p.Image,
		p.CategoryID, p.IsDeleted, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("product insert error: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(p *domain.Product) error {
	result, err := r.db.Exec(`
		UPDATE products
		SET brand = $2, model = $3, description = $4, price = $5, stock = $6,
			image = $7, category_id = $8, is_deleted = $9, updated_at = $10
		WHERE id = $1`,
		p.ID, p.Brand, p.Model, p.Description, p.Price, p.Stock, p.Image,
		p.CategoryID, p.IsDeleted, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("product update error: %w", err)
	}
	return requireRow(result, "product", fmt.Sprintf("%d", p.ID))
}

func (r *ProductRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("product delete error: %w", err)
	}
	return requireRow(result, "product", fmt.Sprintf("%d", id))
}

func (r *ProductRepository) SoftDelete(id int64) error {
	result, err := r.db.Exec(
		`UPDATE products SET is_deleted = true, updated_at = $2 WHERE id = $1`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("product soft delete error: %w", err)
	}
	return requireRow(result, "product", fmt.Sprintf("%d", id))
}

// InTx runs fn inside a catalog transaction; any error rolls back every
// stock mutation made through the transaction.
func (r *ProductRepository) InTx(fn func(tx domain.ProductTx) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("catalog transaction begin error: %w", err)
	}

	if err := fn(&productTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("catalog transaction rollback error: %v (caused by: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalog transaction commit error: %w", err)
	}
	return nil
}

// productTx is the transaction-scoped view handed to the reservation engine.
type productTx struct {
	tx *sql.Tx
}

func (t *productTx) GetByID(id int64) (*domain.Product, error) {
	row := t.tx.QueryRow(`SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "product", ID: fmt.Sprintf("%d", id)}
	}
	return p, err
}

func (t *productTx) DecrementStock(id int64, quantity int) error {
	result, err := t.tx.Exec(`
		UPDATE products
		SET stock = stock - $2, updated_at = $3
		WHERE id = $1 AND stock >= $2`,
		id, quantity, time.Now())
	if err != nil {
		return fmt.Errorf("stock decrement error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := t.tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("stock decrement existence check error: %w", err)
		}
		if !exists {
			return &domain.NotFoundError{Entity: "product", ID: fmt.Sprintf("%d", id)}
		}
		return &domain.InsufficientStockError{ProductID: id}
	}
	return nil
}

func (t *productTx) IncrementStock(id int64, quantity int) error {
	result, err := t.tx.Exec(`
		UPDATE products
		SET stock = stock + $2, updated_at = $3
		WHERE id = $1`,
		id, quantity, time.Now())
	if err != nil {
		return fmt.Errorf("stock increment error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.NotFoundError{Entity: "product", ID: fmt.Sprintf("%d", id)}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	err := row.Scan(
		&p.ID,
		&p.UUID,
		&p.Brand,
		&p.Model,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.Image,
		&p.CategoryID,
		&p.IsDeleted,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("product scan error: %w", err)
	}
	return p, nil
}

func requireRow(result sql.Result, entity, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return nil
}
