package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Fatalf("server addr default = %q", cfg.Server.Addr)
	}
	if cfg.Database.Port != 5432 {
		t.Fatalf("database port default = %d", cfg.Database.Port)
	}
	if cfg.Database.ConnectTimeout != 10 {
		t.Fatalf("connect timeout default = %d", cfg.Database.ConnectTimeout)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Fatalf("token ttl default = %v", cfg.Auth.TokenTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOTEL_SERVER_ADDR", ":9999")
	t.Setenv("HOTEL_DATABASE_HOST", "db.internal")
	t.Setenv("HOTEL_DATABASE_PORT", "5433")
	t.Setenv("HOTEL_DATABASE_USER", "hotel_app")
	t.Setenv("HOTEL_AUTH_JWTSECRET", "from-env")
	t.Setenv("HOTEL_AUTH_TOKENTTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Fatalf("database config = %+v", cfg.Database)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("jwt secret = %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTL != 30*time.Minute {
		t.Fatalf("token ttl = %v", cfg.Auth.TokenTTL)
	}
}

func TestValidate(t *testing.T) {
	var cfg Config
	cfg.Auth.JWTSecret = "secret"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Database.User = "hotel_app"
	cfg.Database.Name = "hotel"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	missingSecret := cfg
	missingSecret.Auth.JWTSecret = "  "
	if err := missingSecret.Validate(); err == nil {
		t.Fatal("missing jwt secret must be fatal")
	}

	missingUser := cfg
	missingUser.Database.User = ""
	if err := missingUser.Validate(); err == nil {
		t.Fatal("missing database user must be fatal")
	}
}

func TestDBConfig_DSN(t *testing.T) {
	var cfg Config
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.Name = "hotel"
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.ConnectTimeout = 10

	got := cfg.DBConfig().DSN()
	want := "postgres://app:pw@localhost:5432/hotel?connect_timeout=10"
	if got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
