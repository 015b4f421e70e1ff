package model

import "errors"

var (
	// Validation errors
	ErrInvalidName = errors.New("author name is invalid")

	// Business rule errors
	ErrAuthorNotFound = errors.New("author not found")
	ErrDuplicateSlug  = errors.New("author slug already exists")
	ErrAuthorInUse    = errors.New("cannot delete author linked to a collection")
)

// ToHTTPStatus converts a domain error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrDuplicateSlug), errors.Is(err, ErrAuthorInUse):
		return 409
	case errors.Is(err, ErrInvalidName):
		return 400
	default:
		return 500
	}
}
