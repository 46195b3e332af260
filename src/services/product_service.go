package services

import (
	"context"
	"fmt"

	"github.com/pawonbufatim/storefront-server/src/models"
	"github.com/pawonbufatim/storefront-server/src/repositories"
)

// Pagination defaults for product listings
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ProductInput carries the writable product fields. A nil ImageURL on
// update means keep the current image.
type ProductInput struct {
	CategoryID  *int
	Name        string
	Description *string
	Price       float64
	ImageURL    *string
}

// ListProductsInput narrows and pages product listings. Zero or negative
// page/limit fall back to the defaults.
type ListProductsInput struct {
	CategoryID *int
	Page       int
	Limit      int
}

// ProductService implements product business rules over the repositories
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
	images     ImageRemover
}

// NewProductService creates a new product service
func NewProductService(repo repositories.ProductRepository, categories repositories.CategoryRepository, images ImageRemover) *ProductService {
	return &ProductService{repo: repo, categories: categories, images: images}
}

// List returns a page of active products with pagination metadata.
// pages is ceil(total/limit).
func (s *ProductService) List(ctx context.Context, input ListProductsInput) ([]models.Product, models.Pagination, error) {
	page := input.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	total, err := s.repo.CountActive(ctx, input.CategoryID)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	products, err := s.repo.ListActive(ctx, repositories.ProductFilter{
		CategoryID: input.CategoryID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return products, models.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + limit - 1) / limit,
	}, nil
}

// Get returns one active product joined with its category name, or
// ErrNotFound
func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create inserts a product. A supplied category reference must resolve to
// an active category.
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// Update modifies an active product with the same validation as Create. A
// supplied image replaces the stored one and the previous file is removed.
func (s *ProductService) Update(ctx context.Context, id int, input ProductInput) (*models.Product, error) {
	existing, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	updateImage := input.ImageURL != nil
	if updateImage && existing.ImageURL != nil {
		s.images.Remove(*existing.ImageURL)
	}

	existing.CategoryID = input.CategoryID
	existing.Name = input.Name
	existing.Description = input.Description
	existing.Price = input.Price
	if updateImage {
		existing.ImageURL = input.ImageURL
	}
	if err := s.repo.Update(ctx, existing, updateImage); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return existing, nil
}

// Delete soft-deletes a product and removes its image file. Products have
// no dependents, so no further check is needed.
func (s *ProductService) Delete(ctx context.Context, id int) error {
	existing, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if existing.ImageURL != nil {
		s.images.Remove(*existing.ImageURL)
	}
	return nil
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID *int) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categories.GetActiveByID(ctx, *categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrInvalidCategory
	}
	return nil
}
