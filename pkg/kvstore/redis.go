package kvstore

import (
	"context"
	"errors"

	"github.com/Dannesh12/urban-slot-finder/pkg/redis"
)

// Redis stores each key as one string value under "<namespace>:<key>"
type Redis struct {
	client    *redis.Client
	namespace string
}

// NewRedis returns a Redis-backed store
func NewRedis(client *redis.Client, namespace string) *Redis {
	return &Redis{client: client, namespace: namespace}
}

func (r *Redis) key(key string) string {
	if r.namespace == "" {
		return key
	}
	return r.namespace + ":" + key
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.GetBytes(ctx, r.key(key))
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.SetBytes(ctx, r.key(key), value)
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key))
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
