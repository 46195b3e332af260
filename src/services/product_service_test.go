package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawonbufatim/storefront-server/src/models"
	"github.com/pawonbufatim/storefront-server/src/repositories"
	"github.com/pawonbufatim/storefront-server/src/repositories/mock"
)

func intPtr(i int) *int { return &i }

func newProductService(products *mock.ProductRepository, categories *mock.CategoryRepository, remover *removerStub) *ProductService {
	if categories == nil {
		categories = mock.NewCategoryRepository()
	}
	if remover == nil {
		remover = &removerStub{}
	}
	return NewProductService(products, categories, remover)
}

func TestProductService_List_PaginationMath(t *testing.T) {
	tests := []struct {
		name          string
		total         int
		page, limit   int
		wantPage      int
		wantLimit     int
		wantPages     int
		wantOffset    int
	}{
		{"defaults", 25, 0, 0, 1, 10, 3, 0},
		{"exact multiple", 20, 1, 10, 1, 10, 2, 0},
		{"partial last page", 21, 3, 10, 3, 10, 3, 20},
		{"empty", 0, 1, 10, 1, 10, 0, 0},
		{"negative page clamps", 5, -2, 2, 1, 2, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := mock.NewProductRepository()
			products.CountActiveFunc = func(ctx context.Context, categoryID *int) (int, error) {
				return tt.total, nil
			}
			var gotFilter repositories.ProductFilter
			products.ListActiveFunc = func(ctx context.Context, f repositories.ProductFilter) ([]models.Product, error) {
				gotFilter = f
				return []models.Product{}, nil
			}

			svc := newProductService(products, nil, nil)
			_, pagination, err := svc.List(context.Background(), ListProductsInput{Page: tt.page, Limit: tt.limit})
			require.NoError(t, err)

			assert.Equal(t, tt.wantPage, pagination.Page)
			assert.Equal(t, tt.wantLimit, pagination.Limit)
			assert.Equal(t, tt.total, pagination.Total)
			assert.Equal(t, tt.wantPages, pagination.Pages)
			assert.Equal(t, tt.wantOffset, gotFilter.Offset)
			assert.Equal(t, tt.wantLimit, gotFilter.Limit)
		})
	}
}

func TestProductService_List_CategoryFilterPassedThrough(t *testing.T) {
	products := mock.NewProductRepository()
	var countFilter *int
	products.CountActiveFunc = func(ctx context.Context, categoryID *int) (int, error) {
		countFilter = categoryID
		return 0, nil
	}

	svc := newProductService(products, nil, nil)
	_, _, err := svc.List(context.Background(), ListProductsInput{CategoryID: intPtr(4)})
	require.NoError(t, err)
	require.NotNil(t, countFilter)
	assert.Equal(t, 4, *countFilter)
}

func TestProductService_Create_NoCategory(t *testing.T) {
	products := mock.NewProductRepository()
	products.CreateFunc = func(ctx context.Context, p *models.Product) error {
		p.ID = 11
		p.IsActive = true
		return nil
	}

	svc := newProductService(products, nil, nil)
	product, err := svc.Create(context.Background(), ProductInput{Name: "Tekwan", Price: 40000})
	require.NoError(t, err)
	assert.Equal(t, 11, product.ID)
	assert.Nil(t, product.CategoryID)
}

func TestProductService_Create_InvalidCategory(t *testing.T) {
	products := mock.NewProductRepository()
	categories := mock.NewCategoryRepository() // GetActiveByID returns nil

	svc := newProductService(products, categories, nil)
	_, err := svc.Create(context.Background(), ProductInput{Name: "Tekwan", Price: 40000, CategoryID: intPtr(9)})
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Empty(t, products.Calls["Create"])
}

func TestProductService_Create_ActiveCategory(t *testing.T) {
	products := mock.NewProductRepository()
	categories := mock.NewCategoryRepository()
	categories.GetActiveByIDFunc = func(ctx context.Context, id int) (*models.Category, error) {
		return &models.Category{ID: id, Name: "Pempek", IsActive: true}, nil
	}

	svc := newProductService(products, categories, nil)
	product, err := svc.Create(context.Background(), ProductInput{Name: "Pempek Kapal Selam", Price: 15000, CategoryID: intPtr(1)})
	require.NoError(t, err)
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, 1, *product.CategoryID)
}

func TestProductService_Get_NotFound(t *testing.T) {
	svc := newProductService(mock.NewProductRepository(), nil, nil)
	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc := newProductService(mock.NewProductRepository(), nil, nil)
	_, err := svc.Update(context.Background(), 42, ProductInput{Name: "Tekwan", Price: 40000})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductService_Update_ReplacesImage(t *testing.T) {
	products := mock.NewProductRepository()
	products.GetActiveByIDFunc = func(ctx context.Context, id int) (*models.Product, error) {
		return &models.Product{ID: id, Name: "Tekwan", Price: 40000, ImageURL: strPtr("/uploads/old.png"), IsActive: true}, nil
	}
	remover := &removerStub{}

	svc := newProductService(products, nil, remover)
	updated, err := svc.Update(context.Background(), 1, ProductInput{
		Name:     "Tekwan",
		Price:    45000,
		ImageURL: strPtr("/uploads/new.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/old.png"}, remover.removed)
	assert.Equal(t, "/uploads/new.png", *updated.ImageURL)
	assert.Equal(t, 45000.0, updated.Price)
}

func TestProductService_Delete_RemovesImage(t *testing.T) {
	products := mock.NewProductRepository()
	products.GetActiveByIDFunc = func(ctx context.Context, id int) (*models.Product, error) {
		return &models.Product{ID: id, Name: "Tekwan", ImageURL: strPtr("/uploads/tekwan.png"), IsActive: true}, nil
	}
	remover := &removerStub{}

	svc := newProductService(products, nil, remover)
	err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, products.Calls["SoftDelete"], 1)
	assert.Equal(t, []string{"/uploads/tekwan.png"}, remover.removed)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	svc := newProductService(mock.NewProductRepository(), nil, nil)
	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
