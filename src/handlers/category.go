package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pawonbufatim/storefront-server/src/services"
	"github.com/pawonbufatim/storefront-server/src/storage"
)

// CategoryHandler handles category CRUD
type CategoryHandler struct {
	service *services.CategoryService
	uploads *storage.Store
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service *services.CategoryService, uploads *storage.Store) *CategoryHandler {
	return &CategoryHandler{service: service, uploads: uploads}
}

// HandleList returns active categories, newest first
func (h *CategoryHandler) HandleList(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	respondData(c, http.StatusOK, categories)
}

// HandleGet returns one active category by id
func (h *CategoryHandler) HandleGet(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Category not found")
		return
	}

	category, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch category")
		return
	}
	respondData(c, http.StatusOK, category)
}

// HandleCreate creates a category from a multipart form with an optional
// image
func (h *CategoryHandler) HandleCreate(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		respondError(c, http.StatusBadRequest, "Category name is required")
		return
	}

	imageURL, handled := saveOptionalImage(c, h.uploads)
	if handled {
		return
	}

	category, err := h.service.Create(c.Request.Context(), services.CategoryInput{
		Name:        name,
		Description: optionalField(c.PostForm("description")),
		ImageURL:    imageURL,
	})
	if err != nil {
		// The file was written before the row; do not orphan it
		if imageURL != nil {
			h.uploads.Remove(*imageURL)
		}
		if errors.Is(err, services.ErrDuplicateName) {
			respondError(c, http.StatusBadRequest, "Category name already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	respondMessage(c, http.StatusCreated, "Category created successfully", category)
}

// HandleUpdate updates an active category. The image is replaced only when
// a new file was supplied.
func (h *CategoryHandler) HandleUpdate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Category not found")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		respondError(c, http.StatusBadRequest, "Category name is required")
		return
	}

	imageURL, handled := saveOptionalImage(c, h.uploads)
	if handled {
		return
	}

	category, err := h.service.Update(c.Request.Context(), id, services.CategoryInput{
		Name:        name,
		Description: optionalField(c.PostForm("description")),
		ImageURL:    imageURL,
	})
	if err != nil {
		if imageURL != nil {
			h.uploads.Remove(*imageURL)
		}
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondError(c, http.StatusNotFound, "Category not found")
		case errors.Is(err, services.ErrDuplicateName):
			respondError(c, http.StatusBadRequest, "Category name already exists")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update category")
		}
		return
	}

	respondMessage(c, http.StatusOK, "Category updated successfully", category)
}

// HandleDelete soft-deletes a category without active products
func (h *CategoryHandler) HandleDelete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Category not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondError(c, http.StatusNotFound, "Category not found")
		case errors.Is(err, services.ErrHasDependents):
			respondError(c, http.StatusBadRequest, "Cannot delete category with active products")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to delete category")
		}
		return
	}

	respondMessage(c, http.StatusOK, "Category deleted successfully", nil)
}
