package analysis

import (
	"errors"
	"net/http"
)

// Fatal analysis errors. Any other failure inside a run is logged and absorbed.
var (
	ErrInvalidInput          = errors.New("invalid analysis input")
	ErrNoContent             = errors.New("no content could be extracted")
	ErrCategoriesUnavailable = errors.New("bias categories unavailable")
	ErrAllModelsFailed       = errors.New("all models failed")
)

// MapHTTPStatus maps analysis errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNoContent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
