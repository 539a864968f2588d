package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/handlers"
	"github.com/JaimeStill/cmdreview/pkg/pagination"
	"github.com/JaimeStill/cmdreview/pkg/routes"
)

// Handler provides HTTP endpoints for registration, login, and user lookups.
type Handler struct {
	sys        System
	tokens     *auth.Tokens
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler that issues session tokens with tokens.
func NewHandler(
	sys System,
	tokens *auth.Tokens,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		tokens:     tokens,
		logger:     logger.With("handler", "users"),
		pagination: pagination,
	}
}

// Routes returns the public /auth group and the authenticated /users group.
func (h *Handler) Routes() routes.Group {
	admin := []func(http.Handler) http.Handler{auth.Require(auth.RoleAdmin)}

	return routes.Group{
		Children: []routes.Group{
			{
				Prefix: "/auth",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/register", Handler: h.Register, Summary: "Register a validator account", Public: true},
					{Method: "POST", Pattern: "/login", Handler: h.Login, Summary: "Exchange credentials for a bearer token", Public: true},
				},
			},
			{
				Prefix:     "/users",
				Middleware: []func(http.Handler) http.Handler{auth.Require()},
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/me", Handler: h.Me, Summary: "Caller identity"},
					{Method: "GET", Pattern: "", Handler: h.List, Middleware: admin, Summary: "List accounts"},
					{Method: "GET", Pattern: "/validators", Handler: h.Validators, Middleware: admin, Summary: "List validators"},
				},
			},
		},
	}
}

// Register creates a validator account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var cmd RegisterCommand
	if err := handlers.DecodeJSON(w, r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	u, err := h.sys.Register(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, u)
}

// Login verifies credentials and returns a bearer token with the user record.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var cmd LoginCommand
	if err := handlers.DecodeJSON(w, r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	u, err := h.sys.Authenticate(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.logger.Warn("login rejected", "reason", err)
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	token, err := h.tokens.Issue(u.Principal())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Session{Token: token, User: u})
}

// Me returns the caller's own record.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	u, err := h.sys.Find(r.Context(), p.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, u)
}

// List returns a paginated list of users filtered by role and search text.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Validators returns every validator account ordered by name.
func (h *Handler) Validators(w http.ResponseWriter, r *http.Request) {
	users, err := h.sys.ListByRole(r.Context(), auth.RoleValidator)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, users)
}
