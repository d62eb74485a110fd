// Package kvstore is the durable key-value store that holds one JSON
// document per collection key. Every backend is last-writer-wins.
package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dannesh12/urban-slot-finder/pkg/database"
	"github.com/Dannesh12/urban-slot-finder/pkg/mongodb"
	"github.com/Dannesh12/urban-slot-finder/pkg/redis"
)

// Drivers
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrMissingClient = errors.New("storage driver client not provided")
)

// Store reads and writes whole values by key
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Config selects a backend
type Config struct {
	Driver    string
	Namespace string
}

// Deps carries the connected clients a backend may need
type Deps struct {
	Redis    *redis.Client
	Postgres *database.PostgresDB
	Mongo    *mongodb.Client
}

// New builds the configured backend, wrapped with tracing
func New(ctx context.Context, cfg Config, deps Deps) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Driver {
	case DriverMemory, "":
		store = NewMemory()
	case DriverRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("%s: %w", cfg.Driver, ErrMissingClient)
		}
		store = NewRedis(deps.Redis, cfg.Namespace)
	case DriverPostgres:
		if deps.Postgres == nil {
			return nil, fmt.Errorf("%s: %w", cfg.Driver, ErrMissingClient)
		}
		store, err = NewPostgres(ctx, deps.Postgres, cfg.Namespace)
	case DriverMongo:
		if deps.Mongo == nil {
			return nil, fmt.Errorf("%s: %w", cfg.Driver, ErrMissingClient)
		}
		store = NewMongo(deps.Mongo.Collection(MongoCollection), cfg.Namespace)
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Driver, ErrUnknownDriver)
	}
	if err != nil {
		return nil, err
	}

	driver := cfg.Driver
	if driver == "" {
		driver = DriverMemory
	}
	return WithTracing(store, driver), nil
}
