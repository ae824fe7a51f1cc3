// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (drop store, viewer session) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/levuhoang/photoring/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for both Photoring binaries.
//
// The server (cmd/api) reads the Server and Drop sections; the viewer
// (cmd/gallery) reads the Viewer section. Everything has a default so the
// family-gallery use case works out of the box.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Drop (server-side photo storage)

	// UploadDir is the server-managed directory receiving uploaded photos.
	UploadDir string `env:"UPLOAD_DIR" envDefault:"./data/uploads"`

	// PublicBaseURL prefixes the URLs returned for stored photos.
	// Empty means relative URLs ("uploads/<filename>"), matching the
	// single-page deployment the system was built for.
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// MaxUploadBytes is the authoritative payload ceiling.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"5242880"`

	// Viewer (local gallery session)

	// StateDir holds the viewer's durable local collections.
	StateDir string `env:"STATE_DIR" envDefault:"./data/state"`

	// SeedManifest declares the embedded images the page ships with.
	SeedManifest string `env:"SEED_MANIFEST" envDefault:"./data/seed.json"`

	// RemoteURL is the photo drop endpoint the viewer uploads to.
	RemoteURL string `env:"REMOTE_URL" envDefault:"http://localhost:8080/api/v1/photos"`

	// LocalQuotaBytes caps the viewer's local store, mirroring a browser
	// origin quota.
	LocalQuotaBytes int64 `env:"LOCAL_QUOTA_BYTES" envDefault:"10485760"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = constants.MaxUploadBytes
	}

	if cfg.LocalQuotaBytes <= 0 {
		cfg.LocalQuotaBytes = constants.DefaultLocalQuotaBytes
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowsOrigin reports whether a cross-origin request from origin is accepted.
//
// The upload endpoint was designed to be called from a static page served
// from anywhere, so development mode and an empty allow-list are fully open.
func (c *Config) AllowsOrigin(origin string) bool {
	if c.IsDevelopment() || strings.TrimSpace(c.ExtraOrigins) == "" {
		return true
	}

	for _, allowed := range strings.Split(c.ExtraOrigins, ",") {
		if strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}

	return false
}
