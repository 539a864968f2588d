package corpus

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/handlers"
	"github.com/JaimeStill/cmdreview/pkg/pagination"
	"github.com/JaimeStill/cmdreview/pkg/routes"
)

// Handler provides read-only HTTP endpoints over the corpus.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "corpus"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for corpus endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:     "/corpus",
		Middleware: []func(http.Handler) http.Handler{auth.Require(auth.RoleValidator, auth.RoleAdmin)},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/commands", Handler: h.List, Summary: "List commands"},
			{Method: "GET", Pattern: "/commands/{id}", Handler: h.Find, Summary: "Find a command"},
			{Method: "GET", Pattern: "/commands/{id}/contexts", Handler: h.Contexts, Summary: "Arguments and source context of a command"},
		},
	}
}

// List returns a paginated list of commands with optional search.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single command by id.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cmd)
}

// Contexts returns the arguments and unescaped context lines of a command.
func (h *Handler) Contexts(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	contexts, err := h.sys.ContextsFor(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, contexts)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
