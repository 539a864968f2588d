package ledger

import (
	"errors"
	"net/http"
)

var (
	ErrAlreadyClassified = errors.New("command already classified by this validator")
	ErrUnknownValidator  = errors.New("validator not found")
	ErrInvalidType       = errors.New("ledger type must be dynamic or static")
	ErrInvalidFilter     = errors.New("invalid history filter")
)

// MapHTTPStatus maps ledger domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAlreadyClassified):
		return http.StatusConflict
	case errors.Is(err, ErrUnknownValidator):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidFilter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
