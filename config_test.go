package authgate

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.JWT.AccessTTL != 15*time.Minute {
		t.Fatalf("expected 15m access TTL, got %v", cfg.JWT.AccessTTL)
	}
	if cfg.Refresh.TTL != 7*24*time.Hour {
		t.Fatalf("expected 7d refresh TTL, got %v", cfg.Refresh.TTL)
	}
	if cfg.Refresh.KeyPrefix != "refresh:" {
		t.Fatalf("unexpected key prefix %q", cfg.Refresh.KeyPrefix)
	}
	if cfg.JWT.SigningMethod != "hs256" {
		t.Fatalf("unexpected signing method %q", cfg.JWT.SigningMethod)
	}

	// Defaults are incomplete on purpose: a secret must be supplied.
	if err := validateConfig(cfg); err == nil {
		t.Fatal("expected validation failure without a secret")
	}
	cfg.JWT.Secret = []byte("test-secret-at-least-32-bytes-long")
	if err := validateConfig(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateConfigRejections(t *testing.T) {
	base := func() Config {
		cfg := DefaultConfig()
		cfg.JWT.Secret = []byte("test-secret-at-least-32-bytes-long")
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero access TTL", func(c *Config) { c.JWT.AccessTTL = 0 }},
		{"zero refresh TTL", func(c *Config) { c.Refresh.TTL = 0 }},
		{"empty key prefix", func(c *Config) { c.Refresh.KeyPrefix = "" }},
		{"unknown signing method", func(c *Config) { c.JWT.SigningMethod = "rs256" }},
		{"ed25519 without keys", func(c *Config) { c.JWT.SigningMethod = "ed25519" }},
		{"audit without buffer", func(c *Config) {
			c.Audit.Enabled = true
			c.Audit.BufferSize = 0
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			if err := validateConfig(cfg); err == nil {
				t.Fatalf("expected validation failure for %s", tc.name)
			}
		})
	}
}
