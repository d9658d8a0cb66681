package authgate

import (
	"errors"
	"time"
)

// Config defines engine behavior. Construct with [DefaultConfig] and adjust;
// configs are validated once in [Builder.Build] and treated as immutable
// afterward.
type Config struct {
	JWT      JWTConfig
	Refresh  RefreshConfig
	Password PasswordConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

// JWTConfig controls access-token issuance and verification.
type JWTConfig struct {
	AccessTTL     time.Duration
	SigningMethod string // "hs256" (default) or "ed25519"
	Secret        []byte // HS256 signing secret
	PrivateKey    []byte // Ed25519 only
	PublicKey     []byte // Ed25519 only
	Issuer        string
	Audience      string
	Leeway        time.Duration
}

// RefreshConfig controls refresh-token persistence.
type RefreshConfig struct {
	// TTL is the absolute lifetime of a refresh token. Expiry is enforced
	// by Redis, not by the engine.
	TTL time.Duration
	// KeyPrefix is prepended to token ids when building Redis keys.
	KeyPrefix string
}

// PasswordConfig carries Argon2id parameters for the credential hasher.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// AuditConfig controls the background audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking when the buffer is full.
	// Dropped events are counted and reported via [Engine.AuditDropped].
	DropIfFull bool
}

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the baseline configuration: 15 minute access tokens,
// 7 day refresh tokens under the "refresh:" key prefix, and interactive-grade
// Argon2id parameters. A signing secret must still be supplied.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:     15 * time.Minute,
			SigningMethod: "hs256",
			Leeway:        30 * time.Second,
		},
		Refresh: RefreshConfig{
			TTL:       7 * 24 * time.Hour,
			KeyPrefix: "refresh:",
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        2,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func validateConfig(cfg Config) error {
	if cfg.JWT.AccessTTL <= 0 {
		return errors.New("access TTL must be positive")
	}
	if cfg.Refresh.TTL <= 0 {
		return errors.New("refresh TTL must be positive")
	}
	if cfg.Refresh.KeyPrefix == "" {
		return errors.New("refresh key prefix must not be empty")
	}
	switch cfg.JWT.SigningMethod {
	case "hs256":
		if len(cfg.JWT.Secret) == 0 {
			return errors.New("hs256 requires a signing secret")
		}
	case "ed25519":
		if len(cfg.JWT.PrivateKey) == 0 || len(cfg.JWT.PublicKey) == 0 {
			return errors.New("ed25519 requires a key pair")
		}
	default:
		return errors.New("unsupported signing method")
	}
	if cfg.Audit.Enabled && cfg.Audit.BufferSize <= 0 {
		return errors.New("audit buffer size must be positive")
	}
	return nil
}
