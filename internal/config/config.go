package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"hotel-management/internal/db"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Host           string
		Port           int
		Name           string
		User           string
		Password       string
		ConnectTimeout int
	}
	Auth struct {
		JWTSecret string
		TokenTTL  time.Duration
	}
}

// Load reads configuration from environment variables and optional config files.
// Environment keys use the HOTEL_ prefix, e.g. HOTEL_DATABASE_PASSWORD.
func Load() (Config, error) {
	_ = godotenv.Load() // optional .env

	v := viper.New()
	v.SetEnvPrefix("HOTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "hotel")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.connecttimeout", 10)
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttl", time.Hour)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate reports fatal configuration mistakes. Called once at startup.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth jwt secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth token ttl must be positive")
	}
	if c.Database.User == "" {
		return errors.New("database user is required")
	}
	if c.Database.Name == "" {
		return errors.New("database name is required")
	}
	return nil
}

// DBConfig converts the database section into connection parameters.
func (c Config) DBConfig() db.ConnConfig {
	return db.ConnConfig{
		Host:           c.Database.Host,
		Port:           c.Database.Port,
		Name:           c.Database.Name,
		User:           c.Database.User,
		Password:       c.Database.Password,
		ConnectTimeout: c.Database.ConnectTimeout,
	}
}
