package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/pkg/response"
)

const (
	UserKey   = "user"
	UserIDKey = "user_id"
)

// TokenValidator checks an access token and returns its claims
type TokenValidator interface {
	Validate(token string) (*domain.Claims, error)
}

// SessionReader reports who is logged in to this process
type SessionReader interface {
	CurrentUser() (*domain.User, bool)
}

// Auth accepts a Bearer token only while its subject is still the session user.
// Logging out or logging in as someone else invalidates older tokens.
func Auth(tokens TokenValidator, session SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Authorization header required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.Unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			return
		}

		user, ok := session.CurrentUser()
		if !ok || user.ID != claims.UserID {
			response.Unauthorized(c, "Session ended")
			return
		}

		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}

// RequireAdmin must run after Auth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin() {
			response.Forbidden(c, "Admin access required")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user Auth attached to the request
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}
