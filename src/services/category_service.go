package services

import (
	"context"
	"fmt"

	"github.com/pawonbufatim/storefront-server/src/models"
	"github.com/pawonbufatim/storefront-server/src/repositories"
)

// ImageRemover deletes stored image files best-effort. Satisfied by
// storage.Store; stubbed in tests.
type ImageRemover interface {
	Remove(imageURL string)
}

// CategoryInput carries the writable category fields. A nil ImageURL on
// update means keep the current image.
type CategoryInput struct {
	Name        string
	Description *string
	ImageURL    *string
}

// CategoryService implements category business rules over the repository
type CategoryService struct {
	repo   repositories.CategoryRepository
	images ImageRemover
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repositories.CategoryRepository, images ImageRemover) *CategoryService {
	return &CategoryService{repo: repo, images: images}
}

// List returns active categories, newest first
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListActive(ctx)
}

// Get returns one active category or ErrNotFound
func (s *CategoryService) Get(ctx context.Context, id int) (*models.Category, error) {
	category, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create inserts a category. Names must be unique across all rows, active
// or not. The existence check and the insert are separate statements; the
// unique index backstops the race between concurrent identical creates.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	exists, err := s.repo.NameExists(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// Update modifies an active category. A supplied image replaces the stored
// one and the previous file is removed from disk.
func (s *CategoryService) Update(ctx context.Context, id int, input CategoryInput) (*models.Category, error) {
	existing, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	conflict, err := s.repo.NameExistsExcluding(ctx, input.Name, id)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrDuplicateName
	}

	updateImage := input.ImageURL != nil
	if updateImage && existing.ImageURL != nil {
		s.images.Remove(*existing.ImageURL)
	}

	existing.Name = input.Name
	existing.Description = input.Description
	if updateImage {
		existing.ImageURL = input.ImageURL
	}
	if err := s.repo.Update(ctx, existing, updateImage); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return existing, nil
}

// Delete soft-deletes a category without active products and removes its
// image file. The row persists for referential history.
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	existing, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	dependents, err := s.repo.CountActiveProducts(ctx, id)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return ErrHasDependents
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if existing.ImageURL != nil {
		s.images.Remove(*existing.ImageURL)
	}
	return nil
}
