package media

import (
	"errors"
	"net/http"
)

// Domain errors for media operations.
var (
	ErrNotFound     = errors.New("media not found")
	ErrDuplicate    = errors.New("media already exists")
	ErrInvalidMedia = errors.New("invalid media")
)

// MapHTTPStatus maps media domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidMedia) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
