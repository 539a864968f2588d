package corpus

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("command not found")
	ErrInvalidID    = errors.New("invalid command id")
	ErrInvalidEntry = errors.New("invalid corpus entry")
	ErrInvalidSort  = errors.New("invalid sort field")
)

// MapHTTPStatus maps corpus domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrInvalidEntry), errors.Is(err, ErrInvalidSort):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
