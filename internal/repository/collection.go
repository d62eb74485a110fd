package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Dannesh12/urban-slot-finder/pkg/kvstore"
	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
)

// ErrNotFound is returned when no record has the requested id
var ErrNotFound = errors.New("record not found")

// Entity is a record with a stable string id
type Entity interface {
	GetID() string
}

// Collection is an ordered list of records stored as one JSON array under
// one key. Every write rewrites the whole array.
type Collection[T Entity] struct {
	store    kvstore.Store
	key      string
	defaults func() []T
	setID    func(*T, string)
	newID    func() string
	log      *logger.Logger

	// serializes read-modify-write inside this process
	mu sync.Mutex
}

// NewCollection returns a collection stored under key. defaults supplies
// the content used when the key is absent or unreadable.
func NewCollection[T Entity](store kvstore.Store, key string, defaults func() []T, setID func(*T, string), log *logger.Logger) *Collection[T] {
	if defaults == nil {
		defaults = func() []T { return []T{} }
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Collection[T]{
		store:    store,
		key:      key,
		defaults: defaults,
		setID:    setID,
		newID:    NewID,
		log:      log.With(zap.String("collection", key)),
	}
}

// WithIDGenerator replaces the id generator
func (c *Collection[T]) WithIDGenerator(fn func() string) *Collection[T] {
	c.newID = fn
	return c
}

// Key returns the storage key
func (c *Collection[T]) Key() string {
	return c.key
}

// All returns every record. Absent, unreadable or malformed content yields
// the defaults; it never fails.
func (c *Collection[T]) All(ctx context.Context) []T {
	raw, err := c.store.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			c.log.Warn("Failed to read collection, using defaults", zap.Error(err))
		}
		return c.defaults()
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warn("Malformed collection content, using defaults", zap.Error(err))
		return c.defaults()
	}
	if items == nil {
		return c.defaults()
	}
	return items
}

// Save replaces the stored list
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, items)
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}

// Add assigns a fresh id, appends the record and saves
func (c *Collection[T]) Add(ctx context.Context, item T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setID(&item, c.newID())
	items := append(c.All(ctx), item)
	if err := c.save(ctx, items); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Find returns the record with id
func (c *Collection[T]) Find(ctx context.Context, id string) (T, bool) {
	for _, item := range c.All(ctx) {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Update applies fn to the record with id and saves. Nothing is written
// when fn fails or the id is unknown.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	items := c.All(ctx)
	for i := range items {
		if items[i].GetID() != id {
			continue
		}
		if err := fn(&items[i]); err != nil {
			return zero, err
		}
		if err := c.save(ctx, items); err != nil {
			return zero, err
		}
		return items[i], nil
	}
	return zero, ErrNotFound
}

// Mutate applies fn to the whole list and saves the result
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := fn(c.All(ctx))
	if err != nil {
		return err
	}
	return c.save(ctx, items)
}

// Delete filters out the record with id and saves. It reports false and
// leaves the stored content untouched when no record matches.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.All(ctx)
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	if err := c.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// NewID returns a timestamp-ordered unique id
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
