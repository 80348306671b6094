package storage

import "errors"

// Common storage errors
var (
	// ErrItemNotFound indicates that no cached feed item exists for the id
	ErrItemNotFound = errors.New("feed item not found")

	// ErrActionNotFound indicates that no pending action exists for the id
	ErrActionNotFound = errors.New("pending action not found")
)
