package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/cmdreview/internal/config"
	"github.com/JaimeStill/cmdreview/pkg/openapi"
	"github.com/JaimeStill/cmdreview/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime, cfg *config.Config) error {
	assets := newAssetsHandler(runtime.Storage, runtime.Logger, runtime.LogoKey)

	groups := []routes.Group{
		domain.Users.Handler(runtime.Tokens).Routes(),
		domain.Corpus.Handler().Routes(),
		domain.Ledger.Handler(runtime.Location).Routes(),
		domain.Progress.Handler().Routes(),
		domain.Reporting.Handler().Routes(),
		assets.routes(),
	}

	docs := routes.Route{Method: "GET", Pattern: "/openapi.json", Summary: "OpenAPI document", Public: true}

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	spec.AddGroups(append(groups, routes.Group{Routes: []routes.Route{docs}})...)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	docs.Handler = openapi.ServeSpec(specBytes)

	routes.Register(mux, append(groups, routes.Group{Routes: []routes.Route{docs}})...)
	return nil
}
