package model

import (
	"errors"
	"net/http"
)

var (
	ErrImageNotFound     = errors.New("image not found")
	ErrInvalidEntityType = errors.New("unknown entity type")
	ErrMissingFile       = errors.New("image file is required")
	ErrFileTooLarge      = errors.New("image file exceeds the size limit")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// ToHTTPStatus maps domain errors to HTTP status codes.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrImageNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidEntityType), errors.Is(err, ErrMissingFile), errors.Is(err, ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
