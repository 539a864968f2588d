package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/JaimeStill/cmdreview/pkg/middleware"
	"github.com/JaimeStill/cmdreview/pkg/openapi"
	"github.com/JaimeStill/cmdreview/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CMDREVIEW_CORS_ENABLED",
	Origins:          "CMDREVIEW_CORS_ORIGINS",
	AllowedMethods:   "CMDREVIEW_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CMDREVIEW_CORS_ALLOWED_HEADERS",
	AllowCredentials: "CMDREVIEW_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CMDREVIEW_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "CMDREVIEW_OPENAPI_TITLE",
	Description: "CMDREVIEW_OPENAPI_DESCRIPTION",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "CMDREVIEW_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "CMDREVIEW_PAGINATION_MAX_PAGE_SIZE",
}

const (
	EnvAPIBasePath = "CMDREVIEW_API_BASE_PATH"
	EnvAPITimezone = "CMDREVIEW_API_TIMEZONE"
	EnvAPILogoKey  = "CMDREVIEW_API_LOGO_KEY"
)

// APIConfig holds API routing, display timezone, branding, CORS, pagination,
// and OpenAPI document settings.
// Timezone resolves calendar-date history filters and absolute recency labels.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	Timezone   string                `toml:"timezone"`
	LogoKey    string                `toml:"logo_key"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
	OpenAPI    openapi.Config        `toml:"openapi"`

	loc *time.Location
}

// Location returns the loaded Timezone, or UTC before Finalize.
func (c *APIConfig) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	c.loc = loc

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.Timezone != "" {
		c.Timezone = overlay.Timezone
	}
	if overlay.LogoKey != "" {
		c.LogoKey = overlay.LogoKey
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.LogoKey == "" {
		c.LogoKey = "branding/logo.png"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPITimezone); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(EnvAPILogoKey); v != "" {
		c.LogoKey = v
	}
}
