package mock

import (
	"context"

	"github.com/pawonbufatim/storefront-server/src/models"
	"github.com/pawonbufatim/storefront-server/src/repositories"
)

// CategoryRepository is a mock implementation of repositories.CategoryRepository
type CategoryRepository struct {
	// Function stubs that can be overridden in tests
	ListActiveFunc          func(ctx context.Context) ([]models.Category, error)
	GetActiveByIDFunc       func(ctx context.Context, id int) (*models.Category, error)
	NameExistsFunc          func(ctx context.Context, name string) (bool, error)
	NameExistsExcludingFunc func(ctx context.Context, name string, id int) (bool, error)
	CreateFunc              func(ctx context.Context, c *models.Category) error
	UpdateFunc              func(ctx context.Context, c *models.Category, updateImage bool) error
	SoftDeleteFunc          func(ctx context.Context, id int) error
	CountActiveProductsFunc func(ctx context.Context, categoryID int) (int, error)

	// Call tracking
	Calls map[string][]interface{}
}

// NewCategoryRepository creates a new mock category repository
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{Calls: make(map[string][]interface{})}
}

func (m *CategoryRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	m.Calls["ListActive"] = append(m.Calls["ListActive"], nil)
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return []models.Category{}, nil
}

func (m *CategoryRepository) GetActiveByID(ctx context.Context, id int) (*models.Category, error) {
	m.Calls["GetActiveByID"] = append(m.Calls["GetActiveByID"], id)
	if m.GetActiveByIDFunc != nil {
		return m.GetActiveByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *CategoryRepository) NameExists(ctx context.Context, name string) (bool, error) {
	m.Calls["NameExists"] = append(m.Calls["NameExists"], name)
	if m.NameExistsFunc != nil {
		return m.NameExistsFunc(ctx, name)
	}
	return false, nil
}

func (m *CategoryRepository) NameExistsExcluding(ctx context.Context, name string, id int) (bool, error) {
	m.Calls["NameExistsExcluding"] = append(m.Calls["NameExistsExcluding"], name)
	if m.NameExistsExcludingFunc != nil {
		return m.NameExistsExcludingFunc(ctx, name, id)
	}
	return false, nil
}

func (m *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	m.Calls["Create"] = append(m.Calls["Create"], c)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *CategoryRepository) Update(ctx context.Context, c *models.Category, updateImage bool) error {
	m.Calls["Update"] = append(m.Calls["Update"], c)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c, updateImage)
	}
	return nil
}

func (m *CategoryRepository) SoftDelete(ctx context.Context, id int) error {
	m.Calls["SoftDelete"] = append(m.Calls["SoftDelete"], id)
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	return nil
}

func (m *CategoryRepository) CountActiveProducts(ctx context.Context, categoryID int) (int, error) {
	m.Calls["CountActiveProducts"] = append(m.Calls["CountActiveProducts"], categoryID)
	if m.CountActiveProductsFunc != nil {
		return m.CountActiveProductsFunc(ctx, categoryID)
	}
	return 0, nil
}

// Ensure CategoryRepository implements the interface
var _ repositories.CategoryRepository = (*CategoryRepository)(nil)
