package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/handlers"
	"github.com/JaimeStill/cmdreview/pkg/routes"
	"github.com/JaimeStill/cmdreview/pkg/storage"
)

type assetsHandler struct {
	store   storage.System
	logger  *slog.Logger
	logoKey string
}

func newAssetsHandler(store storage.System, logger *slog.Logger, logoKey string) *assetsHandler {
	return &assetsHandler{
		store:   store,
		logger:  logger.With("handler", "assets"),
		logoKey: logoKey,
	}
}

func (h *assetsHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/assets",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/logo", Handler: h.logo, Summary: "Branding logo", Public: true},
			{
				Method:     "GET",
				Pattern:    "/{key...}",
				Handler:    h.download,
				Middleware: []func(http.Handler) http.Handler{auth.Require()},
				Summary:    "Download a stored asset",
			},
		},
	}
}

func (h *assetsHandler) logo(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.logoKey, false)
}

func (h *assetsHandler) download(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, r.PathValue("key"), true)
}

func (h *assetsHandler) serve(w http.ResponseWriter, r *http.Request, key string, attachment bool) {
	obj, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	if attachment {
		w.Header().Set(
			"Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", path.Base(key)),
		)
	} else {
		w.Header().Set("Cache-Control", "public, max-age=3600")
	}

	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj.Body); err != nil {
		h.logger.Warn("asset stream interrupted", "key", key, "error", err)
	}
}
