package reporting

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/handlers"
	"github.com/JaimeStill/cmdreview/pkg/routes"
)

// Handler provides the reporting endpoints.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "reports"),
	}
}

// Routes returns the route group definition for reporting endpoints.
func (h *Handler) Routes() routes.Group {
	validator := []func(http.Handler) http.Handler{auth.Require(auth.RoleValidator)}

	return routes.Group{
		Prefix: "/reports",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/stats", Handler: h.MyStats, Middleware: validator, Summary: "Caller classification counts"},
		},
		Children: []routes.Group{
			{
				Middleware: []func(http.Handler) http.Handler{auth.Require(auth.RoleAdmin)},
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/stats/{id}", Handler: h.ValidatorStats, Summary: "Validator classification counts"},
					{Method: "GET", Pattern: "/roles", Handler: h.Roles, Summary: "Account counts by role"},
					{Method: "GET", Pattern: "/recent", Handler: h.Recent, Summary: "Recently active validators"},
					{Method: "GET", Pattern: "/leaderboard", Handler: h.Leaderboard, Summary: "Validators ranked by processed count"},
					{Method: "GET", Pattern: "/live", Handler: h.Live, Summary: "Live command processing"},
					{Method: "GET", Pattern: "/overview", Handler: h.Overview, Summary: "All admin panels"},
				},
			},
		},
	}
}

// MyStats returns the caller's own stats.
func (h *Handler) MyStats(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	respond(w, h.logger, func() (any, error) { return h.sys.Stats(r.Context(), p.ID) })
}

// ValidatorStats returns the stats of the validator named in the path.
func (h *Handler) ValidatorStats(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: validator id", ErrInvalidParameter))
		return
	}
	respond(w, h.logger, func() (any, error) { return h.sys.Stats(r.Context(), id) })
}

// Roles returns validator and viewer counts with names.
func (h *Handler) Roles(w http.ResponseWriter, r *http.Request) {
	respond(w, h.logger, func() (any, error) { return h.sys.RoleCounts(r.Context()) })
}

// Recent returns recently active validators. Accepts an optional limit.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := DefaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: limit", ErrInvalidParameter))
			return
		}
		limit = n
	}
	respond(w, h.logger, func() (any, error) { return h.sys.RecentActivity(r.Context(), limit) })
}

// Leaderboard returns validators ranked by processed count.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	respond(w, h.logger, func() (any, error) { return h.sys.Leaderboard(r.Context()) })
}

// Live returns every validator's cursor and remaining count.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	respond(w, h.logger, func() (any, error) { return h.sys.Live(r.Context()) })
}

// Overview returns every admin panel in one response.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	respond(w, h.logger, func() (any, error) { return h.sys.Overview(r.Context()) })
}

func respond(w http.ResponseWriter, logger *slog.Logger, fn func() (any, error)) {
	result, err := fn()
	if err != nil {
		handlers.RespondError(w, logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
