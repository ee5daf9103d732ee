// Package config loads runtime settings from an optional .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Proof backends.
const (
	ProofsInline = "inline"
	ProofsMinIO  = "minio"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	JWT       JWTConfig
	Invite    InviteConfig
	RateLimit RateLimitConfig
	Proofs    ProofsConfig
	MinIO     MinIOConfig
	LogLevel  string
}

type ServerConfig struct {
	Addr string
	// PublicBaseURL prefixes invite links.
	PublicBaseURL string
}

type StoreConfig struct {
	Kind   string
	DBPath string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type InviteConfig struct {
	// TTL of zero issues invites that never expire.
	TTL time.Duration
}

type RateLimitConfig struct {
	// RPS of zero disables limiting.
	RPS   float64
	Burst int
}

type ProofsConfig struct {
	Kind string
	// MaxBytes caps an uploaded receipt.
	MaxBytes int64
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL, when set, is used to build proof links instead of
	// presigned URLs.
	PublicURL string
}

// Load reads the given .env files (default ".env") into the environment,
// then builds a Config. Missing files are ignored; variables already set
// in the environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:          getEnv("ACERTO_ADDR", ":8080"),
			PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		},
		Store: StoreConfig{
			Kind:   strings.ToLower(getEnv("ACERTO_STORE", StoreMemory)),
			DBPath: getEnv("DB_PATH", "./data/acerto.db"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-me-in-production"),
			TTL:    getEnvAsDuration("JWT_TTL", 24*time.Hour),
		},
		Invite: InviteConfig{
			TTL: getEnvAsDuration("INVITE_TTL", 7*24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst: getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		Proofs: ProofsConfig{
			Kind:     strings.ToLower(getEnv("PROOF_STORE", ProofsInline)),
			MaxBytes: int64(getEnvAsInt("PROOF_MAX_BYTES", 5<<20)),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "acerto"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "acerto_secret"),
			Bucket:    getEnv("MINIO_BUCKET", "acerto-proofs"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
			PublicURL: strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch c.Store.Kind {
	case StoreMemory:
	case StoreSQLite:
		if c.Store.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unknown ACERTO_STORE %q", c.Store.Kind)
	}

	switch c.Proofs.Kind {
	case ProofsInline:
	case ProofsMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return errors.New("MINIO_ENDPOINT and MINIO_BUCKET are required for the minio proof store")
		}
	default:
		return fmt.Errorf("unknown PROOF_STORE %q", c.Proofs.Kind)
	}

	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.Invite.TTL < 0 {
		return errors.New("INVITE_TTL must not be negative")
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate limit settings must not be negative")
	}
	if c.Proofs.MaxBytes <= 0 {
		return errors.New("PROOF_MAX_BYTES must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
