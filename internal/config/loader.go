package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/okian/shares/internal/domain/cik"
	"golang.org/x/text/language"
)

// Environment variables understood by Load.
const (
	EnvPrefix  = "SHARES_"
	EnvConfig  = "SHARES_CONFIG"
	EnvDotFile = "SHARES_DOTENV"

	defaultDotFile = ".env"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if SHARES_CONFIG is set
//  3. env (prefix SHARES_), after loading a .env file when one exists
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// SHARES_DEFAULT_CIK -> default_cik; underscores are kept to match koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv reads SHARES_DOTENV (or ./.env) without overriding variables
// already present in the environment. A missing default file is not an error.
func loadDotEnv() error {
	path := os.Getenv(EnvDotFile)
	explicit := path != ""
	if !explicit {
		path = defaultDotFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: dotenv %s: %w", ErrLoadConfig, path, err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !cik.Valid(c.DefaultCIK):
		return fmt.Errorf("%w: default_cik %q must be 10 digits", ErrInvalidConfig, c.DefaultCIK)
	case c.HTTPTimeoutMS < 0:
		return fmt.Errorf("%w: http_timeout_ms must not be negative", ErrInvalidConfig)
	case strings.TrimSpace(c.UserAgent) == "":
		return fmt.Errorf("%w: user_agent must not be empty", ErrInvalidConfig)
	case c.MetricsRefreshMS <= 0:
		return fmt.Errorf("%w: metrics_refresh_ms must be positive", ErrInvalidConfig)
	}
	for name := range c.MetricsLabels {
		if !validLabelName(name) {
			return fmt.Errorf("%w: metrics_labels key %q is not a valid label name", ErrInvalidConfig, name)
		}
	}
	for i := 1; i < len(c.MetricsBuckets); i++ {
		if c.MetricsBuckets[i] <= c.MetricsBuckets[i-1] {
			return fmt.Errorf("%w: metrics_buckets must be strictly increasing", ErrInvalidConfig)
		}
	}
	if err := validateURL("provider_base_url", c.ProviderBaseURL, false); err != nil {
		return err
	}
	if err := validateURL("relay_base_url", c.RelayBaseURL, true); err != nil {
		return err
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("%w: locale %q: %w", ErrInvalidConfig, c.Locale, err)
	}
	return nil
}

// validLabelName matches [a-zA-Z_][a-zA-Z0-9_]* without the reserved "__" prefix.
func validLabelName(name string) bool {
	if name == "" || strings.HasPrefix(name, "__") {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func validateURL(key, raw string, allowEmpty bool) error {
	if raw == "" && allowEmpty {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %s %q must be an absolute http(s) URL", ErrInvalidConfig, key, raw)
	}
	return nil
}
