package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS kv_entries (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      BYTEA       NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (namespace, key)
)`

const upsertSQL = `
INSERT INTO kv_entries (namespace, key, value, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (namespace, key)
DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

// PgConn is the subset of a pgx pool the store needs
type PgConn interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Ping(ctx context.Context) error
}

// Postgres stores keys as rows of kv_entries
type Postgres struct {
	db        PgConn
	namespace string
}

// NewPostgres creates the kv_entries table if needed and returns the store
func NewPostgres(ctx context.Context, db PgConn, namespace string) (*Postgres, error) {
	if _, err := db.Exec(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create kv_entries table: %w", err)
	}
	return &Postgres{db: db, namespace: namespace}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRow(ctx,
		`SELECT value FROM kv_entries WHERE namespace = $1 AND key = $2`,
		p.namespace, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	if _, err := p.db.Exec(ctx, upsertSQL, p.namespace, key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.db.Exec(ctx,
		`DELETE FROM kv_entries WHERE namespace = $1 AND key = $2`,
		p.namespace, key,
	)
	return err
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}
