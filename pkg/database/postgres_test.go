package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPostgresConfig(t *testing.T) {
	cfg := DefaultPostgresConfig()

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "urban_slot", cfg.Database)
	assert.Equal(t, int32(10), cfg.MaxConns)
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := &PostgresConfig{
		Host:     "db",
		Port:     5433,
		User:     "u",
		Password: "p",
		Database: "d",
		SSLMode:  "require",
	}

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=require", cfg.DSN())
}

func TestPostgresConfig_DSNOmitsEmpty(t *testing.T) {
	cfg := &PostgresConfig{Host: "db", Database: "d", AppName: "urban-slot-finder"}

	assert.Equal(t, "host=db dbname=d application_name=urban-slot-finder", cfg.DSN())
}

func TestNewPostgres_InvalidSettings(t *testing.T) {
	cfg := DefaultPostgresConfig()
	cfg.SSLMode = "sometimes"
	cfg.MaxRetries = 0

	_, err := NewPostgres(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewPostgres_Integration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run")
	}

	cfg := DefaultPostgresConfig()
	cfg.Password = os.Getenv("TEST_DATABASE_PASSWORD")
	cfg.MaxRetries = 0

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := NewPostgres(ctx, cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping(ctx))
}
