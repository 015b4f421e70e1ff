package model

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidTitle       = errors.New("story title is required")
	ErrInvalidURL         = errors.New("story url is required")
	ErrMissingExternalID  = errors.New("story id is required")
	ErrStoryNotFound      = errors.New("story not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrAuthorNotFound     = errors.New("linked author not found")
)

// ToHTTPStatus maps domain errors to HTTP status codes.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrStoryNotFound), errors.Is(err, ErrCollectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidURL), errors.Is(err, ErrMissingExternalID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
