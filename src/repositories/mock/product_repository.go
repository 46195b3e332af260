package mock

import (
	"context"

	"github.com/pawonbufatim/storefront-server/src/models"
	"github.com/pawonbufatim/storefront-server/src/repositories"
)

// ProductRepository is a mock implementation of repositories.ProductRepository
type ProductRepository struct {
	// Function stubs that can be overridden in tests
	ListActiveFunc    func(ctx context.Context, f repositories.ProductFilter) ([]models.Product, error)
	CountActiveFunc   func(ctx context.Context, categoryID *int) (int, error)
	GetActiveByIDFunc func(ctx context.Context, id int) (*models.Product, error)
	CreateFunc        func(ctx context.Context, p *models.Product) error
	UpdateFunc        func(ctx context.Context, p *models.Product, updateImage bool) error
	SoftDeleteFunc    func(ctx context.Context, id int) error

	// Call tracking
	Calls map[string][]interface{}
}

// NewProductRepository creates a new mock product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{Calls: make(map[string][]interface{})}
}

func (m *ProductRepository) ListActive(ctx context.Context, f repositories.ProductFilter) ([]models.Product, error) {
	m.Calls["ListActive"] = append(m.Calls["ListActive"], f)
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, f)
	}
	return []models.Product{}, nil
}

func (m *ProductRepository) CountActive(ctx context.Context, categoryID *int) (int, error) {
	m.Calls["CountActive"] = append(m.Calls["CountActive"], categoryID)
	if m.CountActiveFunc != nil {
		return m.CountActiveFunc(ctx, categoryID)
	}
	return 0, nil
}

func (m *ProductRepository) GetActiveByID(ctx context.Context, id int) (*models.Product, error) {
	m.Calls["GetActiveByID"] = append(m.Calls["GetActiveByID"], id)
	if m.GetActiveByIDFunc != nil {
		return m.GetActiveByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	m.Calls["Create"] = append(m.Calls["Create"], p)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *ProductRepository) Update(ctx context.Context, p *models.Product, updateImage bool) error {
	m.Calls["Update"] = append(m.Calls["Update"], p)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p, updateImage)
	}
	return nil
}

func (m *ProductRepository) SoftDelete(ctx context.Context, id int) error {
	m.Calls["SoftDelete"] = append(m.Calls["SoftDelete"], id)
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	return nil
}

// Ensure ProductRepository implements the interface
var _ repositories.ProductRepository = (*ProductRepository)(nil)
