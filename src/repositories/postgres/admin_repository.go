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

// AdminRepository is the pgx-backed admin store
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates an admin repository on the given pool
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// GetActiveByUsername returns the active admin with the given username, or nil
func (r *AdminRepository) GetActiveByUsername(ctx context.Context, username string) (*models.Admin, error) {
	query := `
		SELECT id, username, password, name, email, is_active, created_at, updated_at
		FROM admins
		WHERE username = $1 AND is_active = TRUE
	`
	var a models.Admin
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.Name, &a.Email, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &a, nil
}

// Count counts all admin rows regardless of active state
func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

// Create inserts an admin and fills the generated fields
func (r *AdminRepository) Create(ctx context.Context, a *models.Admin) error {
	query := `
		INSERT INTO admins (username, password, name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, a.Username, a.PasswordHash, a.Name, a.Email).Scan(
		&a.ID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

var _ repositories.AdminRepository = (*AdminRepository)(nil)
