package services

import "errors"

// Sentinel errors for explicit error handling
// These errors allow handlers to map failure modes to HTTP statuses
// using errors.Is() instead of string matching

var (
	// ErrNotFound indicates the target row is missing or soft-deleted
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName indicates another row already carries the name
	ErrDuplicateName = errors.New("name already exists")

	// ErrInvalidCategory indicates a category reference that does not
	// resolve to an active category
	ErrInvalidCategory = errors.New("invalid category")

	// ErrHasDependents indicates a category with active products cannot
	// be deleted
	ErrHasDependents = errors.New("category has active products")

	// ErrInvalidCredentials indicates authentication failed
	ErrInvalidCredentials = errors.New("invalid credentials")
)
