// Package config provides layered configuration loading for the dbsfiles CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the resolved configuration.
type Config struct {
	Environment string `yaml:"environment"`
	DealerID    string `yaml:"dealer_id"`
	ClientID    string `yaml:"client_id"`
	// ClientSecret is accepted from the file for CI use; interactive users
	// should prefer the keyring (dbsfiles secret set).
	ClientSecret string `yaml:"client_secret,omitempty"`
	Scope        string `yaml:"scope"`

	// Endpoint overrides for private deployments and local testing.
	TokenURL   string `yaml:"token_url,omitempty"`
	APIBaseURL string `yaml:"api_base_url,omitempty"`

	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Sources tracks where each value came from (for debugging).
	Sources map[string]string `yaml:"-"`
}

// Source indicates where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// Environment variable names.
const (
	EnvEnvironment  = "DBS_ENV"
	EnvDealerID     = "DBS_DEALER_ID"
	EnvClientID     = "DBS_CLIENT_ID"
	EnvClientSecret = "DBS_CLIENT_SECRET"
	EnvScope        = "DBS_SCOPE"
	EnvTokenURL     = "DBS_TOKEN_URL"
	EnvAPIBaseURL   = "DBS_API_BASE_URL"
	EnvTimeout      = "DBS_TIMEOUT"
)

// FlagOverrides holds command-line flag values. Empty strings mean "not set".
type FlagOverrides struct {
	ConfigPath  string
	Environment string
	DealerID    string
	ClientID    string
	Scope       string
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Environment: "prod",
		Timeout:     30 * time.Second,
		Sources: map[string]string{
			"environment": string(SourceDefault),
			"timeout":     string(SourceDefault),
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/dbsfiles/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "dbsfiles", "config.yaml")
}

// Load loads configuration from all sources with proper precedence.
// Precedence: flags > env > file > defaults
func Load(overrides FlagOverrides) (*Config, error) {
	cfg := Default()

	path := overrides.ConfigPath
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := loadFromFile(cfg, path, explicit); err != nil {
		return nil, err
	}

	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}
	ApplyOverrides(cfg, overrides)

	return cfg, nil
}

func loadFromFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the user or the XDG default
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set := func(key string, dst *string, v string) {
		if v != "" {
			*dst = v
			cfg.Sources[key] = string(SourceFile)
		}
	}
	set("environment", &cfg.Environment, fileCfg.Environment)
	set("dealer_id", &cfg.DealerID, fileCfg.DealerID)
	set("client_id", &cfg.ClientID, fileCfg.ClientID)
	set("client_secret", &cfg.ClientSecret, fileCfg.ClientSecret)
	set("scope", &cfg.Scope, fileCfg.Scope)
	set("token_url", &cfg.TokenURL, fileCfg.TokenURL)
	set("api_base_url", &cfg.APIBaseURL, fileCfg.APIBaseURL)
	if fileCfg.Timeout > 0 {
		cfg.Timeout = fileCfg.Timeout
		cfg.Sources["timeout"] = string(SourceFile)
	}
	return nil
}

// LoadFromEnv applies DBS_* environment variables.
func LoadFromEnv(cfg *Config) error {
	set := func(key, env string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
			cfg.Sources[key] = string(SourceEnv)
		}
	}
	set("environment", EnvEnvironment, &cfg.Environment)
	set("dealer_id", EnvDealerID, &cfg.DealerID)
	set("client_id", EnvClientID, &cfg.ClientID)
	set("client_secret", EnvClientSecret, &cfg.ClientSecret)
	set("scope", EnvScope, &cfg.Scope)
	set("token_url", EnvTokenURL, &cfg.TokenURL)
	set("api_base_url", EnvAPIBaseURL, &cfg.APIBaseURL)

	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
		cfg.Sources["timeout"] = string(SourceEnv)
	}
	return nil
}

// ApplyOverrides applies command-line flag overrides.
func ApplyOverrides(cfg *Config, o FlagOverrides) {
	set := func(key, v string, dst *string) {
		if v != "" {
			*dst = v
			cfg.Sources[key] = string(SourceFlag)
		}
	}
	set("environment", o.Environment, &cfg.Environment)
	set("dealer_id", o.DealerID, &cfg.DealerID)
	set("client_id", o.ClientID, &cfg.ClientID)
	set("scope", o.Scope, &cfg.Scope)
}

// Save writes cfg to path as YAML, never persisting the client secret.
func Save(cfg *Config, path string) error {
	out := *cfg
	out.ClientSecret = ""

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
