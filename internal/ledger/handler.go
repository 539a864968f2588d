package ledger

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/handlers"
	"github.com/JaimeStill/cmdreview/pkg/pagination"
	"github.com/JaimeStill/cmdreview/pkg/routes"
)

// Handler provides the history endpoints.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	loc        *time.Location
}

// NewHandler creates a Handler. Calendar-date filters resolve in loc.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	loc *time.Location,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "history"),
		pagination: pagination,
		loc:        loc,
	}
}

// Routes returns the route group definition for history endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/history",
		Routes: []routes.Route{
			{
				Method: "GET", Pattern: "", Handler: h.Mine,
				Middleware: []func(http.Handler) http.Handler{auth.Require(auth.RoleValidator)},
				Summary:    "Caller history across both ledgers",
			},
			{
				Method: "GET", Pattern: "/validators/{id}", Handler: h.Validator,
				Middleware: []func(http.Handler) http.Handler{auth.Require(auth.RoleAdmin)},
				Summary:    "A validator's history",
			},
		},
	}
}

// Mine returns the caller's own history.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	h.respond(w, r, p.ID)
}

// Validator returns the history of the validator named in the path.
func (h *Handler) Validator(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: validator id", ErrInvalidFilter))
		return
	}
	h.respond(w, r, id)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, validatorID int64) {
	filters, err := FiltersFromQuery(r.URL.Query(), h.loc)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), validatorID, filters, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
