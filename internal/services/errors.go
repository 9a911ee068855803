package services

import "errors"

var (
	// ErrNotFound covers absent rows and soft-deleted rows alike; the two
	// are indistinguishable to callers.
	ErrNotFound = errors.New("not found")

	ErrForbidden = errors.New("forbidden")
)
