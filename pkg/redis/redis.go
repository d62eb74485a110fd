// Package redis wraps go-redis for the redis storage driver: whole values
// are read and written as bytes with no expiry.
package redis

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Dannesh12/urban-slot-finder/pkg/retry"
)

// ErrNil is returned by GetBytes when the key does not exist
var ErrNil = redis.Nil

// Config describes the Redis endpoint and pool
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int

	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	MaxRetries    int
	RetryInterval time.Duration
}

// DefaultConfig targets a local instance
func DefaultConfig() *Config {
	return &Config{
		Host:          "localhost",
		Port:          6379,
		PoolSize:      10,
		MinIdleConns:  2,
		DialTimeout:   5 * time.Second,
		ReadTimeout:   3 * time.Second,
		WriteTimeout:  3 * time.Second,
		MaxRetries:    3,
		RetryInterval: time.Second,
	}
}

// Addr is host:port
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr(),
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}

// Client is a connected go-redis client
type Client struct {
	rdb *redis.Client
}

// NewClient dials Redis and retries the first PING at a fixed interval
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	rdb := redis.NewClient(cfg.options())
	err := retry.Do(ctx, retry.Fixed(cfg.MaxRetries, cfg.RetryInterval), func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, errors.Join(errors.New("redis unreachable at "+cfg.Addr()), err)
	}
	return &Client{rdb: rdb}, nil
}

// Ping round-trips a PING
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetBytes returns the raw value at key, or ErrNil when absent
func (c *Client) GetBytes(ctx context.Context, key string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNil
	}
	return b, err
}

// SetBytes overwrites key with value
func (c *Client) SetBytes(ctx context.Context, key string, value []byte) error {
	return c.rdb.Set(ctx, key, value, 0).Err()
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}
