package mock

import (
	"context"

	"github.com/pawonbufatim/storefront-server/src/models"
	"github.com/pawonbufatim/storefront-server/src/repositories"
)

// AdminRepository is a mock implementation of repositories.AdminRepository
type AdminRepository struct {
	// Function stubs that can be overridden in tests
	GetActiveByUsernameFunc func(ctx context.Context, username string) (*models.Admin, error)
	CountFunc               func(ctx context.Context) (int, error)
	CreateFunc              func(ctx context.Context, a *models.Admin) error

	// Call tracking
	Calls map[string][]interface{}
}

// NewAdminRepository creates a new mock admin repository
func NewAdminRepository() *AdminRepository {
	return &AdminRepository{Calls: make(map[string][]interface{})}
}

func (m *AdminRepository) GetActiveByUsername(ctx context.Context, username string) (*models.Admin, error) {
	m.Calls["GetActiveByUsername"] = append(m.Calls["GetActiveByUsername"], username)
	if m.GetActiveByUsernameFunc != nil {
		return m.GetActiveByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *AdminRepository) Count(ctx context.Context) (int, error) {
	m.Calls["Count"] = append(m.Calls["Count"], nil)
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *AdminRepository) Create(ctx context.Context, a *models.Admin) error {
	m.Calls["Create"] = append(m.Calls["Create"], a)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

// Ensure AdminRepository implements the interface
var _ repositories.AdminRepository = (*AdminRepository)(nil)
