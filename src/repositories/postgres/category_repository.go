package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawonbufatim/storefront-server/src/models"
	"github.com/pawonbufatim/storefront-server/src/repositories"
)

// CategoryRepository is the pgx-backed category store
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a category repository on the given pool
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = "id, name, description, image_url, is_active, created_at, updated_at"

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListActive returns active categories, newest first
func (r *CategoryRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE is_active = TRUE ORDER BY created_at DESC`, categoryColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

// GetActiveByID returns the active category with the given id, or nil
func (r *CategoryRepository) GetActiveByID(ctx context.Context, id int) (*models.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1 AND is_active = TRUE`, categoryColumns)
	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// NameExists reports whether any row, active or not, carries the name
func (r *CategoryRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return exists, nil
}

// NameExistsExcluding reports whether a different row carries the name
func (r *CategoryRepository) NameExistsExcluding(ctx context.Context, name string, id int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND id <> $2)`, name, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return exists, nil
}

// Create inserts a category and fills the generated fields
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	query := `
		INSERT INTO categories (name, description, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, c.Name, c.Description, c.ImageURL).Scan(
		&c.ID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update writes name and description; image_url only when updateImage is set
func (r *CategoryRepository) Update(ctx context.Context, c *models.Category, updateImage bool) error {
	query := `UPDATE categories SET name = $1, description = $2, updated_at = NOW() WHERE id = $3`
	args := []interface{}{c.Name, c.Description, c.ID}
	if updateImage {
		query = `UPDATE categories SET name = $1, description = $2, image_url = $3, updated_at = NOW() WHERE id = $4`
		args = []interface{}{c.Name, c.Description, c.ImageURL, c.ID}
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// SoftDelete flips the active flag; the row is retained
func (r *CategoryRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `UPDATE categories SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete category: %w", err)
	}
	return nil
}

// CountActiveProducts counts active products referencing the category
func (r *CategoryRepository) CountActiveProducts(ctx context.Context, categoryID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1 AND is_active = TRUE`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count category products: %w", err)
	}
	return count, nil
}

var _ repositories.CategoryRepository = (*CategoryRepository)(nil)
