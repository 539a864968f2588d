package progress

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/handlers"
	"github.com/JaimeStill/cmdreview/pkg/routes"
)

// Handler provides the validator review endpoints.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NavigateRequest carries the client's state and a browsing action.
type NavigateRequest struct {
	State  State  `json:"state"`
	Action Action `json:"action"`
}

// ClassifyRequest carries the displayed state and the chosen ledger type.
type ClassifyRequest struct {
	State State  `json:"state"`
	Type  string `json:"type"`
}

// NewHandler creates a Handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "progress"),
	}
}

// Routes returns the route group definition for progress endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:     "/progress",
		Middleware: []func(http.Handler) http.Handler{auth.Require(auth.RoleValidator)},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Resume, Summary: "Resume at the persisted cursor"},
			{Method: "GET", Pattern: "/current", Handler: h.Current, Summary: "View at a browsing state"},
			{Method: "POST", Pattern: "/navigate", Handler: h.Navigate, Summary: "Apply a browsing action"},
			{Method: "POST", Pattern: "/classify", Handler: h.Classify, Summary: "Classify the displayed command"},
		},
	}
}

// Resume returns the view at the caller's persisted cursor.
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	v, err := h.sys.Resume(r.Context(), p.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// Current returns the view at the index and sub_index query parameters.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	state, err := stateFromQuery(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	v, err := h.sys.Current(r.Context(), p.ID, state)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// Navigate applies a browsing action to the posted state.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	var req NavigateRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	v, err := h.sys.Navigate(r.Context(), p.ID, req.State, req.Action)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// Classify records the displayed command and returns the next view.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())

	var req ClassifyRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	v, err := h.sys.Classify(r.Context(), p.ID, req.State, req.Type)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

func stateFromQuery(r *http.Request) (State, error) {
	var (
		s   State
		err error
	)
	q := r.URL.Query()

	if v := q.Get("index"); v != "" {
		if s.Index, err = strconv.Atoi(v); err != nil {
			return State{}, ErrInvalidState
		}
	}
	if v := q.Get("sub_index"); v != "" {
		if s.SubIndex, err = strconv.Atoi(v); err != nil {
			return State{}, ErrInvalidState
		}
	}
	if s.Index < 0 || s.SubIndex < 0 {
		return State{}, ErrInvalidState
	}
	return s, nil
}
