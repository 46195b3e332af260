package models

import "time"

// Product represents a storefront product. CategoryID is nullable; the
// database sets it to NULL if the referenced category row is removed.
type Product struct {
	ID          int       `json:"id"`
	CategoryID  *int      `json:"category_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    *string   `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// CategoryName is joined from the categories table on reads
	CategoryName *string `json:"category_name,omitempty"`
}

// Pagination describes a page of product results
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
