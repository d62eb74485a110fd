// Package database owns the pgx connection pool used by the postgres
// storage driver.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dannesh12/urban-slot-finder/pkg/retry"
)

// PostgresConfig describes how to reach the server holding the kv_entries table
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	// AppName is reported to the server as application_name
	AppName string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration

	MaxRetries    int
	RetryInterval time.Duration
}

// DefaultPostgresConfig suits a local single-user deployment. The password
// is left empty and must come from the environment.
func DefaultPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "postgres",
		Database:        "urban_slot",
		SSLMode:         "disable",
		AppName:         "urban-slot-finder",
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
		ConnectTimeout:  10 * time.Second,
		MaxRetries:      3,
		RetryInterval:   2 * time.Second,
	}
}

// DSN renders the keyword/value connection string. Empty fields are omitted
// so libpq defaults apply.
func (c *PostgresConfig) DSN() string {
	parts := make([]string, 0, 7)
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	add("host", c.Host)
	if c.Port > 0 {
		add("port", fmt.Sprint(c.Port))
	}
	add("user", c.User)
	add("password", c.Password)
	add("dbname", c.Database)
	add("sslmode", c.SSLMode)
	add("application_name", c.AppName)
	return strings.Join(parts, " ")
}

// PostgresDB is a pgx pool that the kvstore driver queries through
type PostgresDB struct {
	pool *pgxpool.Pool
}

// NewPostgres opens the pool and waits until the server answers a ping,
// retrying at a fixed interval while it is still starting.
func NewPostgres(ctx context.Context, cfg *PostgresConfig) (*PostgresDB, error) {
	if cfg == nil {
		cfg = DefaultPostgresConfig()
	}

	pc, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("invalid postgres settings: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.ConnectTimeout > 0 {
		pc.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	var pool *pgxpool.Pool
	err = retry.Do(ctx, retry.Fixed(cfg.MaxRetries, cfg.RetryInterval), func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, pc)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres at %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &PostgresDB{pool: pool}, nil
}

func (db *PostgresDB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *PostgresDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return db.pool.Exec(ctx, sql, args...)
}

func (db *PostgresDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return db.pool.QueryRow(ctx, sql, args...)
}

// Close waits for acquired connections to be released
func (db *PostgresDB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}
