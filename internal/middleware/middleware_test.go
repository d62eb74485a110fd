package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokens struct {
	claims *domain.Claims
	err    error
}

func (s stubTokens) Validate(string) (*domain.Claims, error) {
	return s.claims, s.err
}

type stubSession struct {
	user *domain.User
}

func (s stubSession) CurrentUser() (*domain.User, bool) {
	return s.user, s.user != nil
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates new id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("reuses caller id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "existing-id")
		r.ServeHTTP(w, req)

		assert.Equal(t, "existing-id", w.Body.String())
	})
}

func TestAccessLog_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	r := gin.New()
	r.Use(RequestID(), AccessLog(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "/boom", entries[2].ContextMap()["route"])
	assert.Equal(t, "request failed", entries[2].Message)
}

func TestAuth(t *testing.T) {
	user := &domain.User{ID: "2", Email: "user@urbanslot.com", Role: domain.RoleUser}
	admin := &domain.User{ID: "1", Email: "admin@urbanslot.com", Role: domain.RoleAdmin}

	tests := []struct {
		name       string
		header     string
		tokens     stubTokens
		session    stubSession
		wantStatus int
	}{
		{
			name:       "missing header",
			session:    stubSession{user: user},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not bearer",
			header:     "Basic abc",
			session:    stubSession{user: user},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			header:     "Bearer bad",
			tokens:     stubTokens{err: errors.New("invalid token")},
			session:    stubSession{user: user},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "logged out",
			header:     "Bearer good",
			tokens:     stubTokens{claims: &domain.Claims{UserID: "2"}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token for another user",
			header:     "Bearer good",
			tokens:     stubTokens{claims: &domain.Claims{UserID: "2"}},
			session:    stubSession{user: admin},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid",
			header:     "Bearer good",
			tokens:     stubTokens{claims: &domain.Claims{UserID: "2"}},
			session:    stubSession{user: user},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(Auth(tt.tokens, tt.session))
			r.GET("/me", func(c *gin.Context) {
				u, ok := CurrentUser(c)
				require.True(t, ok)
				c.String(http.StatusOK, u.ID)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "2", w.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		user       *domain.User
		wantStatus int
	}{
		{"admin", &domain.User{ID: "1", Role: domain.RoleAdmin}, http.StatusOK},
		{"user", &domain.User{ID: "2", Role: domain.RoleUser}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(Auth(stubTokens{claims: &domain.Claims{UserID: tt.user.ID}}, stubSession{user: tt.user}), RequireAdmin())
			r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer t")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 2, IdleTTL: time.Minute})
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "limits are per client")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"))

	now = now.Add(2 * time.Minute)
	l.Allow("10.0.0.3")
	l.mu.Lock()
	assert.Len(t, l.visitors, 1, "idle clients are evicted")
	l.mu.Unlock()
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	l := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})

	r := gin.New()
	r.Use(l.Middleware())
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestCORS(t *testing.T) {
	t.Run("any origin", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS(DefaultCORSConfig()))
		r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://example.com")
		r.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("listed origin only", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"http://app.local"}
		r := gin.New()
		r.Use(CORS(cfg))
		r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://evil.local")
		r.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://app.local")
		r.ServeHTTP(w, req)
		assert.Equal(t, "http://app.local", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS(DefaultCORSConfig()))
		r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/test", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
