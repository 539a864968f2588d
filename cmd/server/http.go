package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/cmdreview/internal/config"
	"github.com/JaimeStill/cmdreview/pkg/lifecycle"
)

// listener serves the review API and drains in-flight requests on shutdown.
type listener struct {
	srv    *http.Server
	logger *slog.Logger
	drain  time.Duration
}

// newListener builds the HTTP listener. The drain window is capped by the
// service-wide shutdown timeout.
func newListener(cfg *config.Config, handler http.Handler, logger *slog.Logger) *listener {
	drain := cfg.Server.ShutdownTimeoutDuration()
	if budget := cfg.ShutdownTimeoutDuration(); budget > 0 && (drain <= 0 || drain > budget) {
		drain = budget
	}

	return &listener{
		srv: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
			WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		},
		logger: logger.With("system", "listener"),
		drain:  drain,
	}
}

func (l *listener) Start(lc *lifecycle.Coordinator) error {
	go func() {
		l.logger.Info("accepting review traffic", "addr", l.srv.Addr)
		if err := l.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.logger.Error("listener failed", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		l.logger.Info("draining review traffic", "drain", l.drain)

		ctx, cancel := context.WithTimeout(context.Background(), l.drain)
		defer cancel()

		if err := l.srv.Shutdown(ctx); err != nil {
			l.logger.Error("drain incomplete", "error", err)
			return
		}
		l.logger.Info("listener closed")
	})

	return nil
}
