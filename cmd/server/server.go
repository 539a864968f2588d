package main

import (
	"time"

	"github.com/JaimeStill/cmdreview/internal/config"
	"github.com/JaimeStill/cmdreview/internal/infrastructure"
)

// Service is the running review API: shared infrastructure, the mounted
// API module, and the HTTP listener in front of it.
type Service struct {
	infra    *infrastructure.Infrastructure
	modules  *Modules
	listener *listener
}

func NewService(cfg *config.Config) (*Service, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"review service configured",
		"addr", cfg.Server.Addr(),
		"database", cfg.Database.Driver,
		"storage", cfg.Storage.Provider,
		"version", cfg.Version,
	)

	return &Service{
		infra:    infra,
		modules:  modules,
		listener: newListener(cfg, router, infra.Logger),
	}, nil
}

// Start brings up the database and storage, then begins accepting requests.
// Readiness flips once every startup hook has finished.
func (s *Service) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.listener.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("review service ready")
	}()

	return nil
}

func (s *Service) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("review service stopping", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}
