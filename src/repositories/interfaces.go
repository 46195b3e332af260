package repositories

import (
	"context"

	"github.com/pawonbufatim/storefront-server/src/models"
)

// ProductFilter narrows and pages product listings
type ProductFilter struct {
	CategoryID *int
	Limit      int
	Offset     int
}

// CategoryRepository defines the interface for category data access.
// Lookups return (nil, nil) when no active row matches.
type CategoryRepository interface {
	ListActive(ctx context.Context) ([]models.Category, error)
	GetActiveByID(ctx context.Context, id int) (*models.Category, error)

	// NameExists checks rows in any active state; NameExistsExcluding
	// ignores the given id (used by update)
	NameExists(ctx context.Context, name string) (bool, error)
	NameExistsExcluding(ctx context.Context, name string, id int) (bool, error)

	Create(ctx context.Context, c *models.Category) error
	// Update writes name and description; image_url only when updateImage
	// is set
	Update(ctx context.Context, c *models.Category, updateImage bool) error
	SoftDelete(ctx context.Context, id int) error

	CountActiveProducts(ctx context.Context, categoryID int) (int, error)
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	ListActive(ctx context.Context, f ProductFilter) ([]models.Product, error)
	CountActive(ctx context.Context, categoryID *int) (int, error)
	GetActiveByID(ctx context.Context, id int) (*models.Product, error)

	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product, updateImage bool) error
	SoftDelete(ctx context.Context, id int) error
}

// AdminRepository defines the interface for admin data access
type AdminRepository interface {
	GetActiveByUsername(ctx context.Context, username string) (*models.Admin, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, a *models.Admin) error
}
