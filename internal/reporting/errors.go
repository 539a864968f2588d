package reporting

import (
	"errors"
	"net/http"
)

var ErrInvalidParameter = errors.New("invalid report parameter")

// MapHTTPStatus maps reporting errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidParameter) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
