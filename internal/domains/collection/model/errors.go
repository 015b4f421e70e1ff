package model

import "errors"

var (
	// Validation errors
	ErrInvalidTitle      = errors.New("collection title is invalid")
	ErrInvalidStatus     = errors.New("collection status is invalid")
	ErrMissingExternalID = errors.New("collection id is required")

	// Business rule errors
	ErrCollectionNotFound = errors.New("collection not found")
	ErrDuplicateSlug      = errors.New("collection slug already exists")
	ErrAuthorNotFound     = errors.New("linked author not found")
)

// ToHTTPStatus converts a domain error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrCollectionNotFound), errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrDuplicateSlug):
		return 409
	case errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrMissingExternalID):
		return 400
	default:
		return 500
	}
}
