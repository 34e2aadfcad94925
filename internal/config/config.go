// Package config loads runtime settings from the environment (and an
// optional .env file) using viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is only meant for local development.
const DefaultJWTSecret = "super-secret"

// Config holds every setting the service reads at startup.
type Config struct {
	Port        int
	DatabaseURL string // empty means the local sqlite file
	SQLitePath  string
	JWTSecret   string
	JWTTTL      time.Duration
	AutoMigrate bool
	RabbitMQURL string // empty disables favorite events
	LogLevel    string
	LogFormat   string
}

// Load reads configuration into a fresh viper instance. A missing .env
// file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	return FromViper(v)
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 3000)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", filepath.Join(os.TempDir(), "starwars.db"))
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetInt("PORT"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		SQLitePath:  v.GetString("SQLITE_PATH"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTTTL:      v.GetDuration("JWT_TTL"),
		AutoMigrate: v.GetBool("AUTO_MIGRATE"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		LogFormat:   v.GetString("LOG_FORMAT"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.DatabaseURL == "" && c.SQLitePath == "" {
		return fmt.Errorf("either DATABASE_URL or SQLITE_PATH must be set")
	}
	return nil
}

// ListenAddr is the address the HTTP server binds to (all interfaces).
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
