package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"nexusmatch/services"
	"nexusmatch/storage"
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendR2       = "r2"
	BackendDynamoDB = "dynamodb"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port           string
	AllowedOrigins string
	AppToken       string // empty disables the device-token guard

	KeyPrefix     string
	Backend       string
	SQLitePath    string
	DatabaseURL   string
	R2            storage.R2Config
	DynamoTable   string
	AWSRegion     string
	FlushInterval time.Duration
	StrictWrites  bool

	SeedCatalog      string // YAML file overriding the built-in catalog
	SeedURL          string
	SeedServiceToken string
}

// Load reads the configuration through getenv (os.Getenv in production).
func Load(getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:           env("PORT", "5200"),
		AllowedOrigins: env("ALLOWED_ORIGINS", "http://localhost:8081"),
		AppToken:       env("APP_TOKEN", ""),
		KeyPrefix:      env("KEY_PREFIX", services.DefaultKeyPrefix),
		Backend:        strings.ToLower(env("STORAGE_BACKEND", BackendSQLite)),
		SQLitePath:     env("SQLITE_PATH", ""),
		DatabaseURL:    env("DATABASE_URL", ""),
		R2: storage.R2Config{
			AccountID:       env("CLOUDFLARE_ACCOUNT_ID", ""),
			AccessKeyID:     env("R2_ACCESS_KEY_ID", ""),
			AccessKeySecret: env("R2_ACCESS_KEY_SECRET", ""),
			Bucket:          env("R2_BUCKET_NAME", ""),
			Endpoint:        env("R2_ENDPOINT", ""),
		},
		DynamoTable:      env("DYNAMODB_TABLE", "nexusmatch_blobs"),
		AWSRegion:        env("AWS_REGION", "us-east-1"),
		FlushInterval:    services.DefaultFlushInterval,
		SeedCatalog:      env("SEED_CATALOG", ""),
		SeedURL:          env("SEED_URL", ""),
		SeedServiceToken: env("SEED_SERVICE_TOKEN", ""),
	}

	if raw := env("FLUSH_INTERVAL", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("FLUSH_INTERVAL %q: must be a positive duration", raw)
		}
		cfg.FlushInterval = d
	}
	if raw := env("STRICT_WRITES", ""); raw != "" {
		strict, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("STRICT_WRITES %q: %w", raw, err)
		}
		cfg.StrictWrites = strict
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Printf("[CONFIG] - Storage backend: %s", cfg.Backend)
	log.Printf("[CONFIG] - Key prefix: %s", cfg.KeyPrefix)
	log.Printf("[CONFIG] - Flush interval: %s (strict writes: %t)", cfg.FlushInterval, cfg.StrictWrites)
	if cfg.SeedURL != "" {
		log.Printf("[CONFIG] - Remote seed source: %s", cfg.SeedURL)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendMemory, BackendSQLite:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s backend", c.Backend)
		}
	case BackendR2:
		if c.R2.Bucket == "" || c.R2.AccessKeyID == "" || c.R2.AccessKeySecret == "" {
			return fmt.Errorf("R2_BUCKET_NAME, R2_ACCESS_KEY_ID and R2_ACCESS_KEY_SECRET are required for the %s backend", c.Backend)
		}
		if c.R2.AccountID == "" && c.R2.Endpoint == "" {
			return fmt.Errorf("CLOUDFLARE_ACCOUNT_ID or R2_ENDPOINT is required for the %s backend", c.Backend)
		}
	case BackendDynamoDB:
		if c.DynamoTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required for the %s backend", c.Backend)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Backend)
	}
	if c.KeyPrefix == "" {
		return fmt.Errorf("KEY_PREFIX must not be empty")
	}
	return nil
}

// Origins splits ALLOWED_ORIGINS and trims each entry.
func (c *Config) Origins() string {
	parts := strings.Split(c.AllowedOrigins, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}
