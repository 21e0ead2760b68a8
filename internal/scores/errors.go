package scores

import (
	"errors"
	"net/http"
)

// Domain errors for score operations.
var (
	ErrNotFound      = errors.New("score not found")
	ErrDuplicate     = errors.New("score already exists")
	ErrMediaNotFound = errors.New("score references unknown media or category")
	ErrInvalidFilter = errors.New("invalid score filter")
)

// MapHTTPStatus maps score domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrMediaNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidFilter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
