// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIHost        = "uphere-space1.p.rapidapi.com"
	defaultRatePerSecond  = 1.0
	defaultCacheTTL       = 5 * time.Minute
	defaultRequestTimeout = 30 * time.Second
	defaultHTTPAddr       = ":8080"
)

// Config holds runtime configuration for the ephemeris service.
type Config struct {
	APIKey            string
	APIHost           string
	RequestsPerSecond float64
	CacheTTL          time.Duration
	RequestTimeout    time.Duration
	HTTPAddr          string
	AuthToken         string
}

// Load reads configuration from environment variables (optionally .env).
// EPHEMERIS_API_KEY is the only required setting.
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		APIHost:           defaultAPIHost,
		RequestsPerSecond: defaultRatePerSecond,
		CacheTTL:          defaultCacheTTL,
		RequestTimeout:    defaultRequestTimeout,
		HTTPAddr:          defaultHTTPAddr,
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv("EPHEMERIS_API_KEY"))
	if cfg.APIKey == "" {
		return cfg, errors.New("EPHEMERIS_API_KEY is required")
	}

	if v := strings.TrimSpace(os.Getenv("EPHEMERIS_API_HOST")); v != "" {
		cfg.APIHost = v
	}

	if v := strings.TrimSpace(os.Getenv("EPHEMERIS_RATE_PER_SECOND")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return cfg, fmt.Errorf("invalid EPHEMERIS_RATE_PER_SECOND: %q", v)
		}
		cfg.RequestsPerSecond = f
	}

	if v := strings.TrimSpace(os.Getenv("EPHEMERIS_CACHE_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid EPHEMERIS_CACHE_TTL: %q", v)
		}
		cfg.CacheTTL = d
	}

	if v := strings.TrimSpace(os.Getenv("EPHEMERIS_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid EPHEMERIS_REQUEST_TIMEOUT: %q", v)
		}
		cfg.RequestTimeout = d
	}

	if v := strings.TrimSpace(os.Getenv("EPHEMERIS_HTTP_ADDR")); v != "" {
		cfg.HTTPAddr = v
	}

	cfg.AuthToken = strings.TrimSpace(os.Getenv("EPHEMERIS_AUTH_TOKEN"))

	return cfg, nil
}
