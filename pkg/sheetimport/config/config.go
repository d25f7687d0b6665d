// Package config loads settings for the persistence collaborator and the
// HTTP surface. The parser itself takes no configuration from the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Backend selects the store implementation.
type Backend string

const (
	BackendREST     Backend = "rest"
	BackendPostgres Backend = "postgres"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultListenAddr = ":8080"
	DefaultMaxUpload  = 20 << 20
)

// Config holds collaborator settings.
type Config struct {
	Backend     Backend       `yaml:"backend"`
	StoreURL    string        `yaml:"store_url"`
	ServiceKey  string        `yaml:"service_key"`
	DatabaseURL string        `yaml:"database_url"`
	Timeout     time.Duration `yaml:"timeout"`
	ListenAddr  string        `yaml:"listen_addr"`
	MaxUpload   int64         `yaml:"max_upload_bytes"`
}

// ErrIncomplete indicates a required setting for the chosen backend is missing.
var ErrIncomplete = errors.New("incomplete store configuration")

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Backend:    BackendREST,
		Timeout:    DefaultTimeout,
		ListenAddr: DefaultListenAddr,
		MaxUpload:  DefaultMaxUpload,
	}
}

// Load builds a Config from defaults, an optional YAML file, and the
// environment, in increasing priority. The first .env file never overrides
// variables already set; later files (such as .env.local) override both the
// environment and earlier files. Missing files are ignored.
func Load(yamlPath string, envFiles ...string) (Config, error) {
	for i, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		load := godotenv.Load
		if i > 0 {
			load = godotenv.Overload
		}
		if err := load(f); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Default()
	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	cfg.StoreURL = normalizeStoreURL(cfg.StoreURL)
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("SHEETIMPORT_BACKEND"); v != "" {
		c.Backend = Backend(strings.ToLower(v))
	}
	if v := getenv("SUPABASE_URL"); v != "" {
		c.StoreURL = v
	}
	if v := getenv("SUPABASE_SERVICE_ROLE_KEY"); v != "" {
		c.ServiceKey = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv("SHEETIMPORT_LISTEN"); v != "" {
		c.ListenAddr = v
	}
	if v := getenv("SHEETIMPORT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SHEETIMPORT_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks the settings the selected backend needs.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendREST:
		if c.StoreURL == "" {
			return fmt.Errorf("%w: SUPABASE_URL is not set", ErrIncomplete)
		}
		if c.ServiceKey == "" {
			return fmt.Errorf("%w: SUPABASE_SERVICE_ROLE_KEY is not set", ErrIncomplete)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is not set", ErrIncomplete)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrIncomplete, c.Backend)
	}
	return nil
}

// normalizeStoreURL turns a database host URL (https://db.x.supabase.co)
// into the REST host and drops a trailing slash.
func normalizeStoreURL(u string) string {
	u = strings.Replace(u, "://db.", "://", 1)
	return strings.TrimRight(u, "/")
}
