package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	StorageDriver     string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	RunMigrations     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	FrontendBaseURL   string
	RateLimit         string
	PosthogAPIKey     string

	DB       DBPoolConfig
	Redis    RedisConfig
	Sync     SyncConfig
	Upstream UpstreamConfig
}

// DBPoolConfig bounds the PostgreSQL connection pool. Zero values keep the pgx defaults.
type DBPoolConfig struct {
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
}

// RedisConfig configures the client shared by the sync lock and the task queue.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// SyncConfig tunes the synchronization runs and the worker schedules.
type SyncConfig struct {
	LockTTL        time.Duration
	DefaultDueDays int
	SyncCron       string
	OverdueCron    string
}

// UpstreamConfig points at the business modules the sync pulls from.
type UpstreamConfig struct {
	BaseURL      string
	APIToken     string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "asset-mgmt-accounting")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("DB_MAX_CONNS", 0)
	v.SetDefault("DB_MIN_CONNS", 0)
	v.SetDefault("DB_MAX_CONN_LIFETIME", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SYNC_LOCK_TTL", "10m")
	v.SetDefault("SYNC_CRON", "0 2 * * *")
	v.SetDefault("OVERDUE_CRON", "30 0 * * *")
	v.SetDefault("SYNC_DEFAULT_DUE_DAYS", 30)
	v.SetDefault("UPSTREAM_BASE_URL", "")
	v.SetDefault("UPSTREAM_API_TOKEN", "")
	v.SetDefault("UPSTREAM_TOKEN_URL", "")
	v.SetDefault("UPSTREAM_CLIENT_ID", "")
	v.SetDefault("UPSTREAM_CLIENT_SECRET", "")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")

	// Environment variables override the defaults above (and whatever godotenv loaded).
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     v.GetString("PGSQL_URL"),
		StorageDriver:   strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:   v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:  v.GetString("MIGRATIONS_PATH"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		FrontendBaseURL: v.GetString("FRONTEND_BASE_URL"),
		RateLimit:       v.GetString("RATE_LIMIT"),
		PosthogAPIKey:   v.GetString("POSTHOG_API_KEY"),
		DB: DBPoolConfig{
			MaxConns: v.GetInt("DB_MAX_CONNS"),
			MinConns: v.GetInt("DB_MIN_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Sync: SyncConfig{
			DefaultDueDays: v.GetInt("SYNC_DEFAULT_DUE_DAYS"),
			SyncCron:       v.GetString("SYNC_CRON"),
			OverdueCron:    v.GetString("OVERDUE_CRON"),
		},
		Upstream: UpstreamConfig{
			BaseURL:      strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
			APIToken:     v.GetString("UPSTREAM_API_TOKEN"),
			TokenURL:     v.GetString("UPSTREAM_TOKEN_URL"),
			ClientID:     v.GetString("UPSTREAM_CLIENT_ID"),
			ClientSecret: v.GetString("UPSTREAM_CLIENT_SECRET"),
		},
	}

	switch cfg.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		log.Printf("Warning: Invalid value for STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "asset-mgmt-accounting"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.JWTExpiryDuration = durationOr(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.Sync.LockTTL = durationOr(v, "SYNC_LOCK_TTL", 10*time.Minute)
	cfg.Upstream.Timeout = durationOr(v, "UPSTREAM_TIMEOUT", 15*time.Second)
	cfg.DB.MaxConnLifetime = durationOr(v, "DB_MAX_CONN_LIFETIME", 0)

	if cfg.Sync.DefaultDueDays <= 0 {
		log.Printf("Warning: Invalid value for SYNC_DEFAULT_DUE_DAYS (%d). Defaulting to 30.\n", cfg.Sync.DefaultDueDays)
		cfg.Sync.DefaultDueDays = 30
	}
	if cfg.Upstream.BaseURL == "" {
		log.Println("Warning: UPSTREAM_BASE_URL not set. Synchronization will not reach the business modules.")
	}
	if !cfg.Redis.Enabled() {
		log.Println("Warning: REDIS_ADDR not set. Using a process-local sync lock and no background queue.")
	}

	return cfg, nil
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
