package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/tienda-store/fulfillment/internal/domain"
)

const categoryColumns = `id, name, is_deleted, created_at, updated_at`

// CategoryRepository owns the categories table in the catalog database.
type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Find(name *string, pageable domain.Pageable) (domain.Page[domain.Category], error) {
	where := ""
	var args []interface{}
	if name != nil {
		where = ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, *name)
	}

	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM categories`+where, args...).Scan(&total); err != nil {
		return domain.Page[domain.Category]{}, fmt.Errorf("category count query error: %w", err)
	}

	args = append(args, pageable.Size, pageable.Offset())
	query := fmt.Sprintf(`SELECT %s FROM categories%s ORDER BY name LIMIT $%d OFFSET $%d`,
		categoryColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return domain.Page[domain.Category]{}, fmt.Errorf("category query error: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		c := domain.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return domain.Page[domain.Category]{}, fmt.Errorf("category scan error: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.Category]{}, fmt.Errorf("category rows error: %w", err)
	}

	return domain.NewPage(categories, pageable, total), nil
}

func (r *CategoryRepository) FindByID(id uuid.UUID) (*domain.Category, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id), id.String())
}

func (r *CategoryRepository) FindByNameIgnoreCase(name string) (*domain.Category, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT `+categoryColumns+` FROM categories WHERE LOWER(name) = LOWER($1)`, name), name)
}

func (r *CategoryRepository) Save(c *domain.Category) error {
	_, err := r.db.Exec(`
		INSERT INTO categories (id, name, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.IsDeleted, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("category insert error: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Update(c *domain.Category) error {
	result, err := r.db.Exec(`
		UPDATE categories SET name = $2, is_deleted = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.Name, c.IsDeleted, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("category update error: %w", err)
	}
	return requireRow(result, "category", c.ID.String())
}

func (r *CategoryRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("category delete error: %w", err)
	}
	return requireRow(result, "category", id.String())
}

func (r *CategoryRepository) scanOne(row *sql.Row, id string) (*domain.Category, error) {
	c := &domain.Category{}
	err := row.Scan(&c.ID, &c.Name, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Entity: "category", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("category scan error: %w", err)
	}
	return c, nil
}
