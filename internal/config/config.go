// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Shivanand-hulikatti/cosmo-events/internal/database"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config is the server configuration.
type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	StoreBackend  string `env:"STORE_BACKEND" envDefault:"sqlite"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"data/events.db"`
	ReferenceCode string `env:"PAYMENT_REFERENCE_CODE" envDefault:"CC123456"`
	OverrideCode  string `env:"PAYMENT_OVERRIDE_CODE" envDefault:"GRACIAS"`
	WebDir        string `env:"WEB_DIR" envDefault:"./web"`
	Database      database.Config
}

// Load reads envFiles (missing files are skipped) and then parses the
// environment. Variables already set win over file values.
func Load(envFiles ...string) (Config, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return Parse()
}

// Parse loads configuration from environment variables only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.StoreBackend {
	case BackendMemory, BackendSQLite, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}
