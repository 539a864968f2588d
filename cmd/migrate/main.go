package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/JaimeStill/cmdreview/internal/config"
	"github.com/JaimeStill/cmdreview/migrations"
)

const (
	envDSN    = "CMDREVIEW_DB_DSN"
	envDriver = "CMDREVIEW_DB_DRIVER"
)

func main() {
	var (
		driver  = flag.String("driver", "", "Database driver: postgres or sqlite")
		dsn     = flag.String("dsn", "", "Database URL (postgres://... or sqlite://path)")
		up      = flag.Bool("up", false, "Run all up migrations")
		down    = flag.Bool("down", false, "Run all down migrations")
		steps   = flag.Int("steps", 0, "Number of migrations (positive=up, negative=down)")
		version = flag.Bool("version", false, "Print current migration version")
		force   = flag.Int("force", -1, "Force set version (use with caution)")
	)
	flag.Parse()

	forceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			forceSet = true
		}
	})

	if *driver == "" {
		*driver = os.Getenv(envDriver)
	}
	if *dsn == "" {
		*dsn = os.Getenv(envDSN)
	}
	if *driver == "" || *dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("no -driver/-dsn given and config load failed: %v", err)
		}
		if *driver == "" {
			*driver = cfg.Database.Driver
		}
		if *dsn == "" {
			*dsn = cfg.Database.MigrationURL()
		}
	}

	m, err := migrations.NewFromURL(*driver, *dsn)
	if err != nil {
		log.Fatalf("failed to create migrator: %v", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("failed to get version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	case forceSet:
		if err := m.Force(*force); err != nil {
			log.Fatalf("failed to force version: %v", err)
		}
		fmt.Printf("forced to version %d\n", *force)
	case *up:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed to run up migrations: %v", err)
		}
		fmt.Println("migrations applied successfully")
	case *down:
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed to run down migrations: %v", err)
		}
		fmt.Println("migrations reverted successfully")
	case *steps != 0:
		if err := m.Steps(*steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed to run migrations: %v", err)
		}
		fmt.Printf("applied %d migration steps\n", *steps)
	default:
		fmt.Println("usage: migrate [-driver postgres|sqlite] [-dsn <url>] [-up|-down|-steps N|-version|-force N]")
		flag.PrintDefaults()
	}
}
