package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/pkg/kvstore"
	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
)

type sessionRecord struct {
	User *domain.User `json:"user"`
}

// SessionStore persists the logged-in user as {"user": {...}}
type SessionStore struct {
	store kvstore.Store
	key   string
	log   *logger.Logger
}

// NewSessionStore returns a session store under key
func NewSessionStore(store kvstore.Store, key string, log *logger.Logger) *SessionStore {
	if log == nil {
		log = logger.NewNop()
	}
	return &SessionStore{store: store, key: key, log: log}
}

// Load returns the persisted user, or nil when absent, unreadable or invalid
func (s *SessionStore) Load(ctx context.Context) *domain.User {
	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			s.log.Warn("Failed to read session", zap.String("key", s.key), zap.Error(err))
		}
		return nil
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.log.Warn("Malformed session record", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	if rec.User == nil {
		return nil
	}
	if err := rec.User.Validate(); err != nil {
		s.log.Warn("Invalid session user", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	return rec.User
}

// Save persists user; a nil user clears the session
func (s *SessionStore) Save(ctx context.Context, user *domain.User) error {
	if user == nil {
		return s.Clear(ctx)
	}
	raw, err := json.Marshal(sessionRecord{User: user})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.store.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes the persisted session
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
