package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string        `mapstructure:"PGSQL_URL"`
	Port          string        `mapstructure:"PORT"`
	IsProduction  bool          `mapstructure:"IS_PRODUCTION"`
	MigrationsDir string        `mapstructure:"MIGRATIONS_DIR"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`
	RateLimit     string        `mapstructure:"RATE_LIMIT"`
}

// LoadConfig loads configuration from the environment. A .env file is read
// first when present so local runs need no exported variables.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", 5*time.Minute)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL is not set")
	}
	return &cfg, nil
}
