// Package retry runs an operation with exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

var ErrMaxRetriesExceeded = errors.New("max retries exceeded")

// Config controls the backoff between attempts
type Config struct {
	// MaxRetries is the number of attempts after the first one
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	// JitterFactor in [0,1] spreads each wait by +/- that fraction
	JitterFactor float64
}

// DefaultConfig waits 1s, 2s, 4s between three retries
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:      3,
		InitialInterval: time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2,
		JitterFactor:    0.1,
	}
}

// Fixed retries n times with a constant wait
func Fixed(n int, interval time.Duration) *Config {
	return &Config{MaxRetries: n, InitialInterval: interval, MaxInterval: interval, Multiplier: 1}
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent stops the retry loop; Do returns err unwrapped
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do calls op until it succeeds, returns a permanent error, the context ends,
// or the retries run out. The returned error wraps both
// ErrMaxRetriesExceeded and the last failure in the last case.
func Do(ctx context.Context, cfg *Config, op func(ctx context.Context) error) error {
	cfg = withDefaults(cfg)

	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return fmt.Errorf("%w (last error: %v)", err, lastErr)
			}
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(lastErr, &perm) {
			return perm.err
		}
		if attempt >= cfg.MaxRetries {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, attempt+1, lastErr)
		}

		t := time.NewTimer(cfg.backoff(attempt))
		select {
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("%w (last error: %v)", ctx.Err(), lastErr)
		case <-t.C:
		}
	}
}

func withDefaults(cfg *Config) *Config {
	if cfg == nil {
		return DefaultConfig()
	}
	c := *cfg
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = time.Second
	}
	if c.MaxInterval < c.InitialInterval {
		c.MaxInterval = c.InitialInterval
	}
	if c.Multiplier < 1 {
		c.Multiplier = 1
	}
	c.JitterFactor = math.Min(math.Max(c.JitterFactor, 0), 1)
	return &c
}

func (c *Config) backoff(attempt int) time.Duration {
	d := float64(c.InitialInterval) * math.Pow(c.Multiplier, float64(attempt))
	if c.JitterFactor > 0 {
		d += (rand.Float64()*2 - 1) * d * c.JitterFactor
	}
	if d > float64(c.MaxInterval) {
		d = float64(c.MaxInterval)
	}
	if d <= 0 {
		d = float64(c.InitialInterval)
	}
	return time.Duration(d)
}
