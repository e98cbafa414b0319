package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("EPHEMERIS_API_KEY", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "EPHEMERIS_API_KEY") {
		t.Fatalf("expected missing-key error, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EPHEMERIS_API_KEY", "test-key")
	t.Setenv("EPHEMERIS_API_HOST", "")
	t.Setenv("EPHEMERIS_RATE_PER_SECOND", "")
	t.Setenv("EPHEMERIS_CACHE_TTL", "")
	t.Setenv("EPHEMERIS_REQUEST_TIMEOUT", "")
	t.Setenv("EPHEMERIS_HTTP_ADDR", "")
	t.Setenv("EPHEMERIS_AUTH_TOKEN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.APIKey != "test-key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.APIHost != defaultAPIHost {
		t.Errorf("APIHost = %q, want %q", cfg.APIHost, defaultAPIHost)
	}
	if cfg.RequestsPerSecond != 1.0 {
		t.Errorf("RequestsPerSecond = %v, want 1", cfg.RequestsPerSecond)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.AuthToken != "" {
		t.Errorf("AuthToken = %q, want empty", cfg.AuthToken)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EPHEMERIS_API_KEY", "test-key")
	t.Setenv("EPHEMERIS_API_HOST", "example.test")
	t.Setenv("EPHEMERIS_RATE_PER_SECOND", "2.5")
	t.Setenv("EPHEMERIS_CACHE_TTL", "90s")
	t.Setenv("EPHEMERIS_REQUEST_TIMEOUT", "10s")
	t.Setenv("EPHEMERIS_HTTP_ADDR", ":9999")
	t.Setenv("EPHEMERIS_AUTH_TOKEN", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.APIHost != "example.test" {
		t.Errorf("APIHost = %q", cfg.APIHost)
	}
	if cfg.RequestsPerSecond != 2.5 {
		t.Errorf("RequestsPerSecond = %v", cfg.RequestsPerSecond)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.AuthToken != "secret" {
		t.Errorf("AuthToken = %q", cfg.AuthToken)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		env   string
		value string
	}{
		{"non-numeric rate", "EPHEMERIS_RATE_PER_SECOND", "fast"},
		{"zero rate", "EPHEMERIS_RATE_PER_SECOND", "0"},
		{"negative rate", "EPHEMERIS_RATE_PER_SECOND", "-1"},
		{"bad ttl", "EPHEMERIS_CACHE_TTL", "300"},
		{"negative ttl", "EPHEMERIS_CACHE_TTL", "-5m"},
		{"bad timeout", "EPHEMERIS_REQUEST_TIMEOUT", "soon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("EPHEMERIS_API_KEY", "test-key")
			t.Setenv(tc.env, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.env, tc.value)
			}
		})
	}
}
