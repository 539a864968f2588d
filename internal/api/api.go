// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/cmdreview/internal/config"
	"github.com/JaimeStill/cmdreview/internal/infrastructure"
	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/middleware"
	"github.com/JaimeStill/cmdreview/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Bearer tokens are resolved for every route; each route group then
// enforces its own role requirements.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, runtime, cfg); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.RequestID())
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(auth.Authenticate(runtime.Tokens))

	return m, nil
}
