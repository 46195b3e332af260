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

// ProductRepository is the pgx-backed product store
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a product repository on the given pool
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price,
		&p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActive returns a page of active products joined with their category
// name, newest first
func (r *ProductRepository) ListActive(ctx context.Context, f repositories.ProductFilter) ([]models.Product, error) {
	query := `
		SELECT p.id, p.category_id, p.name, p.description, p.price,
		       p.image_url, p.is_active, p.created_at, p.updated_at, c.name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.is_active = TRUE
	`
	args := []interface{}{}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		query += fmt.Sprintf(" AND p.category_id = $%d", len(args))
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// CountActive counts active products matching the optional category filter
func (r *ProductRepository) CountActive(ctx context.Context, categoryID *int) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE is_active = TRUE`
	args := []interface{}{}
	if categoryID != nil {
		args = append(args, *categoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// GetActiveByID returns the active product with the given id, or nil
func (r *ProductRepository) GetActiveByID(ctx context.Context, id int) (*models.Product, error) {
	query := `
		SELECT p.id, p.category_id, p.name, p.description, p.price,
		       p.image_url, p.is_active, p.created_at, p.updated_at, c.name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1 AND p.is_active = TRUE
	`
	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// Create inserts a product and fills the generated fields
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (category_id, name, description, price, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL).Scan(
		&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes the mutable columns; image_url only when updateImage is set
func (r *ProductRepository) Update(ctx context.Context, p *models.Product, updateImage bool) error {
	query := `
		UPDATE products SET category_id = $1, name = $2, description = $3, price = $4, updated_at = NOW()
		WHERE id = $5
	`
	args := []interface{}{p.CategoryID, p.Name, p.Description, p.Price, p.ID}
	if updateImage {
		query = `
			UPDATE products SET category_id = $1, name = $2, description = $3, price = $4, image_url = $5, updated_at = NOW()
			WHERE id = $6
		`
		args = []interface{}{p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL, p.ID}
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// SoftDelete flips the active flag; the row is retained
func (r *ProductRepository) SoftDelete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete product: %w", err)
	}
	return nil
}

var _ repositories.ProductRepository = (*ProductRepository)(nil)
