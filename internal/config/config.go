// Package config loads the service configuration from TOML files and
// CMDREVIEW_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/database"
	"github.com/JaimeStill/cmdreview/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvConfigFile      = "CMDREVIEW_CONFIG"
	EnvEnv             = "CMDREVIEW_ENV"
	EnvShutdownTimeout = "CMDREVIEW_SHUTDOWN_TIMEOUT"
	EnvVersion         = "CMDREVIEW_VERSION"
)

var databaseEnv = &database.Env{
	Driver:          "CMDREVIEW_DB_DRIVER",
	Host:            "CMDREVIEW_DB_HOST",
	Port:            "CMDREVIEW_DB_PORT",
	Name:            "CMDREVIEW_DB_NAME",
	User:            "CMDREVIEW_DB_USER",
	Password:        "CMDREVIEW_DB_PASSWORD",
	SSLMode:         "CMDREVIEW_DB_SSL_MODE",
	Path:            "CMDREVIEW_DB_PATH",
	MaxOpenConns:    "CMDREVIEW_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "CMDREVIEW_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "CMDREVIEW_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "CMDREVIEW_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "CMDREVIEW_STORAGE_PROVIDER",
	ContainerName:    "CMDREVIEW_STORAGE_CONTAINER_NAME",
	ConnectionString: "CMDREVIEW_STORAGE_CONNECTION_STRING",
	MaxRetries:       "CMDREVIEW_STORAGE_MAX_RETRIES",
	Root:             "CMDREVIEW_STORAGE_ROOT",
}

var authEnv = &auth.Env{
	Secret:     "CMDREVIEW_AUTH_SECRET",
	Issuer:     "CMDREVIEW_AUTH_ISSUER",
	TokenTTL:   "CMDREVIEW_AUTH_TOKEN_TTL",
	BcryptCost: "CMDREVIEW_AUTH_BCRYPT_COST",
}

// Config is the root configuration for the review service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Auth            auth.Config     `toml:"auth"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the CMDREVIEW_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. CMDREVIEW_CONFIG overrides the base file path.
// Without a base file, defaults and environment variables provide everything.
func Load() (*Config, error) {
	base := BaseConfigFile
	if v := os.Getenv(EnvConfigFile); v != "" {
		base = v
	}
	return LoadFile(base)
}

// LoadFile is Load with an explicit base file path.
func LoadFile(base string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Auth.Merge(&overlay.Auth)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
