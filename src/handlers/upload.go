package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawonbufatim/storefront-server/src/storage"
)

// imageField is the multipart field name entity images arrive under
const imageField = "image"

// saveOptionalImage persists the uploaded image when one was supplied.
// Returns the stored relative URL (nil when no file was sent) and whether
// an error response has already been written.
func saveOptionalImage(c *gin.Context, store *storage.Store) (*string, bool) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, false
		}
		respondError(c, http.StatusBadRequest, "Invalid multipart form")
		return nil, true
	}

	url, err := store.Save(imageField, fh)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidFileType):
			respondError(c, http.StatusBadRequest, "Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed.")
		case errors.Is(err, storage.ErrFileTooLarge):
			respondError(c, http.StatusBadRequest, "File size too large. Maximum size is 5MB.")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to store uploaded file")
		}
		return nil, true
	}
	return &url, false
}

// optionalField returns a pointer to a form value, nil when blank
func optionalField(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
