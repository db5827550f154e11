// Package config loads application settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StoreMemory = "memory"
	StoreRedis  = "redis"

	MailConsole  = "console"
	MailSendGrid = "sendgrid"
)

// Config holds every runtime setting of the service.
type Config struct {
	AppPort string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	VerificationStore   string
	VerificationCodeTTL time.Duration
	RedisAddr           string
	RedisPassword       string
	RedisDB             int

	MailProvider   string
	SendGridAPIKey string
	MailFrom       string

	CORSAllowOrigins string
	SeedData         bool
	LogLevel         string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "staffsync.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ACCESS_TTL", "1h")
	v.SetDefault("JWT_REFRESH_TTL", "168h")
	v.SetDefault("VERIFICATION_STORE", StoreMemory)
	v.SetDefault("VERIFICATION_CODE_TTL", "10m")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MAIL_PROVIDER", MailConsole)
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("MAIL_FROM", "no-reply@staffsync.local")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173")
	v.SetDefault("SEED_DATA", true)
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:             v.GetString("APP_PORT"),
		DatabaseDriver:      strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:         v.GetString("DATABASE_DSN"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		AccessTokenTTL:      v.GetDuration("JWT_ACCESS_TTL"),
		RefreshTokenTTL:     v.GetDuration("JWT_REFRESH_TTL"),
		VerificationStore:   strings.ToLower(v.GetString("VERIFICATION_STORE")),
		VerificationCodeTTL: v.GetDuration("VERIFICATION_CODE_TTL"),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		RedisDB:             v.GetInt("REDIS_DB"),
		MailProvider:        strings.ToLower(v.GetString("MAIL_PROVIDER")),
		SendGridAPIKey:      v.GetString("SENDGRID_API_KEY"),
		MailFrom:            v.GetString("MAIL_FROM"),
		CORSAllowOrigins:    v.GetString("CORS_ALLOW_ORIGINS"),
		SeedData:            v.GetBool("SEED_DATA"),
		LogLevel:            strings.ToLower(v.GetString("LOG_LEVEL")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL and JWT_REFRESH_TTL must be positive")
	}

	switch c.VerificationStore {
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when VERIFICATION_STORE=redis")
		}
	default:
		return fmt.Errorf("unsupported VERIFICATION_STORE %q", c.VerificationStore)
	}
	if c.VerificationCodeTTL <= 0 {
		return fmt.Errorf("VERIFICATION_CODE_TTL must be positive")
	}

	switch c.MailProvider {
	case MailConsole:
	case MailSendGrid:
		if c.SendGridAPIKey == "" {
			return fmt.Errorf("SENDGRID_API_KEY is required when MAIL_PROVIDER=sendgrid")
		}
	default:
		return fmt.Errorf("unsupported MAIL_PROVIDER %q", c.MailProvider)
	}
	return nil
}
