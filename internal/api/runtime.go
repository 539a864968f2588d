package api

import (
	"time"

	"github.com/JaimeStill/cmdreview/internal/config"
	"github.com/JaimeStill/cmdreview/internal/infrastructure"
	"github.com/JaimeStill/cmdreview/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Location   *time.Location
	LogoKey    string
	BcryptCost int
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Tokens:    infra.Tokens,
		},
		Pagination: cfg.API.Pagination,
		Location:   cfg.API.Location(),
		LogoKey:    cfg.API.LogoKey,
		BcryptCost: cfg.Auth.BcryptCost,
	}
}
