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

// ProductHandler handles product CRUD
type ProductHandler struct {
	service *services.ProductService
	uploads *storage.Store
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *services.ProductService, uploads *storage.Store) *ProductHandler {
	return &ProductHandler{service: service, uploads: uploads}
}

// HandleList returns a page of active products with pagination metadata.
// Query parameters: category_id, page (default 1), limit (default 10).
func (h *ProductHandler) HandleList(c *gin.Context) {
	input := services.ListProductsInput{}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid category ID")
			return
		}
		input.CategoryID = &id
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		input.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		input.Limit = limit
	}

	products, pagination, err := h.service.List(c.Request.Context(), input)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       products,
		"pagination": pagination,
	})
}

// HandleGet returns one active product joined with its category name
func (h *ProductHandler) HandleGet(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	respondData(c, http.StatusOK, product)
}

// parseProductForm validates the shared multipart fields for create and
// update. Returns false after writing the error response when invalid.
func (h *ProductHandler) parseProductForm(c *gin.Context) (services.ProductInput, bool) {
	var input services.ProductInput

	input.Name = strings.TrimSpace(c.PostForm("name"))
	priceStr := c.PostForm("price")
	if input.Name == "" || priceStr == "" {
		respondError(c, http.StatusBadRequest, "Product name and price are required")
		return input, false
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		respondError(c, http.StatusBadRequest, "Price must be a non-negative number")
		return input, false
	}
	input.Price = price

	if raw := c.PostForm("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid category ID")
			return input, false
		}
		input.CategoryID = &id
	}

	input.Description = optionalField(c.PostForm("description"))
	return input, true
}

// HandleCreate creates a product from a multipart form with an optional
// image
func (h *ProductHandler) HandleCreate(c *gin.Context) {
	input, ok := h.parseProductForm(c)
	if !ok {
		return
	}

	imageURL, handled := saveOptionalImage(c, h.uploads)
	if handled {
		return
	}
	input.ImageURL = imageURL

	product, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		if imageURL != nil {
			h.uploads.Remove(*imageURL)
		}
		if errors.Is(err, services.ErrInvalidCategory) {
			respondError(c, http.StatusBadRequest, "Invalid category ID")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	respondMessage(c, http.StatusCreated, "Product created successfully", product)
}

// HandleUpdate updates an active product with the same validation as
// create. The image is replaced only when a new file was supplied.
func (h *ProductHandler) HandleUpdate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	input, ok := h.parseProductForm(c)
	if !ok {
		return
	}

	imageURL, handled := saveOptionalImage(c, h.uploads)
	if handled {
		return
	}
	input.ImageURL = imageURL

	product, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		if imageURL != nil {
			h.uploads.Remove(*imageURL)
		}
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondError(c, http.StatusNotFound, "Product not found")
		case errors.Is(err, services.ErrInvalidCategory):
			respondError(c, http.StatusBadRequest, "Invalid category ID")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update product")
		}
		return
	}

	respondMessage(c, http.StatusOK, "Product updated successfully", product)
}

// HandleDelete soft-deletes a product
func (h *ProductHandler) HandleDelete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	respondMessage(c, http.StatusOK, "Product deleted successfully", nil)
}
