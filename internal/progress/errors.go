package progress

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/cmdreview/internal/ledger"
)

var (
	ErrInvalidAction     = errors.New("action must be next_command, previous_command, or next_context")
	ErrInvalidState      = errors.New("state indexes must be non-negative")
	ErrInvalidLedgerType = errors.New("type must be dynamic or static")
	ErrSequenceComplete  = errors.New("all commands reviewed")
	ErrUnknownValidator  = errors.New("validator not found")
)

// MapHTTPStatus maps progress and ledger errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAction),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrInvalidLedgerType):
		return http.StatusBadRequest
	case errors.Is(err, ErrSequenceComplete):
		return http.StatusConflict
	case errors.Is(err, ErrUnknownValidator):
		return http.StatusNotFound
	default:
		return ledger.MapHTTPStatus(err)
	}
}
