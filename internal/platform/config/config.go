package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Draft store backends.
const (
	DraftStoreRedis  = "redis"
	DraftStoreMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL      string        `mapstructure:"PGSQL_URL"`
	RedisURL         string        `mapstructure:"REDIS_URL" validate:"required_if=DraftStore redis"`
	IsProduction     bool          `mapstructure:"IS_PRODUCTION"`
	EnableDBCheck    bool          `mapstructure:"ENABLE_DB_CHECK"`
	LogLevel         string        `mapstructure:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	OperationTimeout time.Duration `mapstructure:"OPERATION_TIMEOUT" validate:"gt=0"`
	DraftStore       string        `mapstructure:"DRAFT_STORE" validate:"oneof=redis memory"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OPERATION_TIMEOUT", "15s")
	v.SetDefault("DRAFT_STORE", DraftStoreRedis)

	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:   v.GetString("PGSQL_URL"),
		RedisURL:      v.GetString("REDIS_URL"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		LogLevel:      strings.ToLower(v.GetString("LOG_LEVEL")),
		DraftStore:    strings.ToLower(v.GetString("DRAFT_STORE")),
	}

	timeoutStr := v.GetString("OPERATION_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 15 * time.Second
		log.Printf("Warning: Invalid value for OPERATION_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.OperationTimeout = timeout

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
