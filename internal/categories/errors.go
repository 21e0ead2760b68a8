package categories

import (
	"errors"
	"net/http"
)

// Domain errors for category operations.
var (
	ErrNotFound     = errors.New("category not found")
	ErrDuplicate    = errors.New("category already exists")
	ErrEmptyCatalog = errors.New("catalog contains no categories")
	ErrInvalidEntry = errors.New("invalid catalog entry")
)

// MapHTTPStatus maps category domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrEmptyCatalog) || errors.Is(err, ErrInvalidEntry) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
