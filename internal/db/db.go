package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnConfig carries the Postgres connection parameters.
type ConnConfig struct {
	Host           string
	Port           int
	Name           string
	User           string
	Password       string
	ConnectTimeout int // seconds
}

// DSN renders the config as a pgx connection string.
func (c ConnConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?connect_timeout=%d",
		c.User, c.Password, c.Host, c.Port, c.Name, c.ConnectTimeout)
}

// Open creates a connection pool and verifies it with a ping.
func Open(ctx context.Context, cfg ConnConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
