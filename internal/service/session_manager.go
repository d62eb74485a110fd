package service

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/internal/notify"
	"github.com/Dannesh12/urban-slot-finder/internal/repository"
	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
	"github.com/Dannesh12/urban-slot-finder/pkg/telemetry"
)

// Session exposes the logged-in user to the other services
type Session interface {
	Current() domain.AuthState
	CurrentUser() (*domain.User, bool)
	UpdateUser(ctx context.Context, fn func(*domain.User) error) (*domain.User, error)
}

// SessionConfig holds configuration for SessionManager
type SessionConfig struct {
	Variant      string
	DemoPassword string
	Latency      time.Duration
	BcryptCost   int
	Clock        func() time.Time
	NewID        func() string
	NewCode      func() string
}

// RegisterParams describes a new account
type RegisterParams struct {
	Email        string
	Password     string
	Name         string
	Role         domain.Role
	ReferralCode string
}

// SessionManager owns the single session of this process: who is logged
// in, loaded from and persisted to the session store. Construct it, call
// Load, then use it. Logout tears the session down.
type SessionManager struct {
	sessions  *repository.SessionStore
	directory *repository.Directory
	referrals *repository.Collection[domain.Referral]
	notifier  notify.Notifier
	log       *logger.Logger

	passwordHash []byte
	variant      string
	latency      time.Duration
	clock        func() time.Time
	newID        func() string
	newCode      func() string

	// op serializes login, logout, register and user updates
	op    sync.Mutex
	mu    sync.RWMutex
	state domain.AuthState
}

// NewSessionManager creates a manager in the loading state. referrals may
// be nil when the variant has no referral program.
func NewSessionManager(
	sessions *repository.SessionStore,
	directory *repository.Directory,
	referrals *repository.Collection[domain.Referral],
	notifier notify.Notifier,
	log *logger.Logger,
	cfg *SessionConfig,
) (*SessionManager, error) {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = repository.NewID
	}
	if cfg.NewCode == nil {
		cfg.NewCode = NewReferralCode
	}
	if log == nil {
		log = logger.NewNop()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	return &SessionManager{
		sessions:     sessions,
		directory:    directory,
		referrals:    referrals,
		notifier:     notifier,
		log:          log.With(zap.String("component", "session")),
		passwordHash: hash,
		variant:      cfg.Variant,
		latency:      cfg.Latency,
		clock:        cfg.Clock,
		newID:        cfg.NewID,
		newCode:      cfg.NewCode,
		state:        domain.NewAuthState(nil, true),
	}, nil
}

// Load restores the persisted session. It never fails: unreadable state
// means logged out.
func (m *SessionManager) Load(ctx context.Context) domain.AuthState {
	m.op.Lock()
	defer m.op.Unlock()

	user := m.sessions.Load(ctx)
	m.setState(user, false)

	if user != nil {
		m.log.Info("Session restored", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	}
	return m.Current()
}

// Current returns a snapshot of the session
func (m *SessionManager) Current() domain.AuthState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.NewAuthState(m.state.User.Clone(), m.state.IsLoading)
}

// CurrentUser returns the logged-in user
func (m *SessionManager) CurrentUser() (*domain.User, bool) {
	s := m.Current()
	if !s.IsAuthenticated {
		return nil, false
	}
	return s.User, true
}

// Login checks the credentials against the demo directory
func (m *SessionManager) Login(ctx context.Context, email, password string) (user *domain.User, err error) {
	ctx, span := telemetry.StartSpan(ctx, "session.login")
	defer func() { telemetry.EndSpan(span, err) }()

	m.op.Lock()
	defer m.op.Unlock()

	prev := m.Current().User
	m.setState(prev, true)

	if err := m.wait(ctx); err != nil {
		m.setState(prev, false)
		return nil, err
	}

	found, ok := m.directory.FindByEmail(email)
	if !ok || bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) != nil {
		if err := m.sessions.Clear(ctx); err != nil {
			m.log.Error("Failed to clear session after rejected login", zap.Error(err))
		}
		m.setState(nil, false)
		m.log.Info("Login rejected", zap.String("email", email))
		m.notify(ctx, "Login failed", "Invalid email or password", notify.VariantDestructive, "")
		return nil, domain.ErrInvalidCredentials
	}

	if err := m.sessions.Save(ctx, found); err != nil {
		m.setState(nil, false)
		m.log.Error("Failed to persist session", zap.String("user_id", found.ID), zap.Error(err))
		m.notify(ctx, "Error", "An error occurred during login", notify.VariantDestructive, found.ID)
		return nil, fmt.Errorf("login: %w", err)
	}

	m.setState(found, false)
	m.log.Info("User logged in", zap.String("user_id", found.ID), zap.String("role", string(found.Role)))
	m.notify(ctx, "Welcome back!", fmt.Sprintf("Logged in as %s", found.Role), notify.VariantDefault, found.ID)

	return found.Clone(), nil
}

// Logout clears the session. Storage failures are logged, not returned.
func (m *SessionManager) Logout(ctx context.Context) {
	ctx, span := telemetry.StartSpan(ctx, "session.logout")
	defer span.End()

	m.op.Lock()
	defer m.op.Unlock()

	var userID string
	if u := m.Current().User; u != nil {
		userID = u.ID
	}

	if err := m.sessions.Clear(ctx); err != nil {
		m.log.Error("Failed to clear session", zap.String("user_id", userID), zap.Error(err))
	}
	m.setState(nil, false)

	m.log.Info("User logged out", zap.String("user_id", userID))
	m.notify(ctx, "Logged out", "You have been successfully logged out", notify.VariantDefault, userID)
}

// Register creates an account and logs it in. Emails are not checked for
// uniqueness.
func (m *SessionManager) Register(ctx context.Context, params RegisterParams) (user *domain.User, err error) {
	ctx, span := telemetry.StartSpan(ctx, "session.register")
	defer func() { telemetry.EndSpan(span, err) }()

	if !params.Role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	m.op.Lock()
	defer m.op.Unlock()

	prev := m.Current().User
	m.setState(prev, true)

	if err := m.wait(ctx); err != nil {
		m.setState(prev, false)
		return nil, err
	}

	now := m.clock()
	newUser := &domain.User{
		ID:           m.newID(),
		Email:        strings.TrimSpace(params.Email),
		Name:         strings.TrimSpace(params.Name),
		Phone:        repository.DefaultPhone,
		Role:         params.Role,
		ReferralCode: m.newCode(),
		CreatedAt:    now,
	}
	if err := newUser.Validate(); err != nil {
		m.setState(prev, false)
		return nil, err
	}

	m.recordReferral(ctx, newUser, params.ReferralCode, now)

	if err := m.sessions.Save(ctx, newUser); err != nil {
		m.setState(nil, false)
		m.log.Error("Failed to persist new account", zap.String("user_id", newUser.ID), zap.Error(err))
		m.notify(ctx, "Registration failed", "An error occurred during registration", notify.VariantDestructive, newUser.ID)
		return nil, fmt.Errorf("register: %w", err)
	}

	m.setState(newUser, false)
	m.log.Info("User registered",
		zap.String("user_id", newUser.ID),
		zap.String("role", string(newUser.Role)),
		zap.String("referred_by", newUser.ReferredBy),
	)
	m.notify(ctx, "Account created!", fmt.Sprintf("Welcome, %s!", newUser.Name), notify.VariantDefault, newUser.ID)

	return newUser.Clone(), nil
}

func (m *SessionManager) recordReferral(ctx context.Context, user *domain.User, code string, now time.Time) {
	if m.referrals == nil {
		return
	}
	referrer, ok := m.directory.FindByReferralCode(code)
	if !ok {
		return
	}

	user.ReferredBy = referrer.ID
	_, err := m.referrals.Add(ctx, domain.Referral{
		ReferrerID:     referrer.ID,
		ReferredUserID: user.ID,
		ReferredEmail:  user.Email,
		CreatedAt:      now,
	})
	if err != nil {
		m.log.Warn("Failed to record referral", zap.String("referrer_id", referrer.ID), zap.Error(err))
	}
}

// UpdateUser applies fn to the logged-in user and persists the result.
// The id and role cannot change.
func (m *SessionManager) UpdateUser(ctx context.Context, fn func(*domain.User) error) (*domain.User, error) {
	m.op.Lock()
	defer m.op.Unlock()

	current, ok := m.CurrentUser()
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}

	updated := current.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	if updated.ID != current.ID || updated.Role != current.Role {
		return nil, fmt.Errorf("%w: id and role are immutable", domain.ErrInvalidUser)
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := m.sessions.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	m.setState(updated, false)

	return updated.Clone(), nil
}

func (m *SessionManager) setState(user *domain.User, loading bool) {
	m.mu.Lock()
	m.state = domain.NewAuthState(user.Clone(), loading)
	m.mu.Unlock()
}

func (m *SessionManager) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *SessionManager) notify(ctx context.Context, title, description, variant, userID string) {
	if m.notifier == nil {
		return
	}
	err := m.notifier.Notify(ctx, notify.Notification{
		Title:       title,
		Description: description,
		Variant:     variant,
		UserID:      userID,
		At:          m.clock(),
	})
	if err != nil {
		m.log.Warn("Failed to deliver notification", zap.String("title", title), zap.Error(err))
	}
}

// NewReferralCode returns six upper-case base-36 characters
func NewReferralCode() string {
	id := uuid.New()
	code := strings.ToUpper(strconv.FormatUint(binary.BigEndian.Uint64(id[:8]), 36))
	for len(code) < 6 {
		code = "0" + code
	}
	return code[:6]
}
