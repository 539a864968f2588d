package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/cmdreview/internal/config"
	"github.com/JaimeStill/cmdreview/internal/corpus"
	"github.com/JaimeStill/cmdreview/internal/infrastructure"
	"github.com/JaimeStill/cmdreview/internal/ledger"
	"github.com/JaimeStill/cmdreview/internal/reporting"
	"github.com/JaimeStill/cmdreview/internal/users"
	"github.com/JaimeStill/cmdreview/migrations"
)

// app holds the systems a command needs. It is populated by the root
// command's PersistentPreRunE and torn down after the command returns.
type app struct {
	configPath string
	migrate    bool
	verbose    bool

	cfg   *config.Config
	infra *infrastructure.Infrastructure

	users     users.System
	corpus    corpus.System
	reporting reporting.System
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "reviewctl",
		Short:        "Operator tooling for the command review service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.BaseConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVar(&a.migrate, "migrate", false, "apply pending schema migrations first")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log subsystem activity")

	rootCmd.AddCommand(userCmd(a))
	rootCmd.AddCommand(corpusCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(recentCmd(a))
	rootCmd.AddCommand(assetCmd(a))

	return rootCmd
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	infra, err := infrastructure.NewWithLogger(cfg, logger)
	if err != nil {
		return err
	}
	if err := infra.Start(); err != nil {
		return err
	}
	infra.Lifecycle.WaitForStartup()

	a.cfg = cfg
	a.infra = infra

	db := infra.Database.Connection()
	if a.migrate {
		if err := migrations.Up(ctx, db, cfg.Database.Driver); err != nil {
			return err
		}
	}

	corpusSystem := corpus.New(db, logger, cfg.API.Pagination)
	ledgerSystem := ledger.New(db, logger, cfg.API.Pagination, nil)

	a.users = users.New(db, logger, cfg.API.Pagination, cfg.Auth.BcryptCost)
	a.corpus = corpusSystem
	a.reporting = reporting.New(db, corpusSystem, ledgerSystem, logger, cfg.API.Location(), nil)

	return nil
}

func (a *app) close() error {
	if a.infra == nil {
		return nil
	}
	return a.infra.Lifecycle.Shutdown(10 * time.Second)
}
