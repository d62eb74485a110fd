package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/internal/dto"
	"github.com/Dannesh12/urban-slot-finder/internal/notify"
	"github.com/Dannesh12/urban-slot-finder/internal/service"
	"github.com/Dannesh12/urban-slot-finder/pkg/response"
)

// SessionService is the part of the session manager the auth endpoints drive
type SessionService interface {
	Current() domain.AuthState
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, params service.RegisterParams) (*domain.User, error)
	Logout(ctx context.Context)
}

// LastNotification returns the most recent toast, if any
type LastNotification interface {
	Last() (notify.Notification, bool)
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	session SessionService
	tokens  service.TokenService
	toasts  LastNotification
}

// NewAuthHandler creates a new AuthHandler. toasts may be nil.
func NewAuthHandler(session SessionService, tokens service.TokenService, toasts LastNotification) *AuthHandler {
	return &AuthHandler{session: session, tokens: tokens, toasts: toasts}
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, err := h.session.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	h.respondWithToken(c, user, false)
}

// Register creates an account and logs it in
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, err := h.session.Register(c.Request.Context(), service.RegisterParams{
		Email:        strings.TrimSpace(req.Email),
		Password:     req.Password,
		Name:         strings.TrimSpace(req.Name),
		Role:         domain.Role(req.Role),
		ReferralCode: strings.TrimSpace(req.ReferralCode),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	h.respondWithToken(c, user, true)
}

// Logout ends the session. It always succeeds.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.session.Logout(c.Request.Context())
	response.Success(c, gin.H{"message": "Logged out successfully"})
}

// Session reports who is logged in and the last notification
// GET /api/v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	resp := dto.SessionResponse{AuthState: h.session.Current()}
	if h.toasts != nil {
		if n, ok := h.toasts.Last(); ok {
			resp.LastNotification = &n
		}
	}
	response.Success(c, resp)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, user *domain.User, created bool) {
	token, expiresIn, err := h.tokens.Issue(user)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        user,
	}
	if created {
		response.Created(c, resp)
		return
	}
	response.Success(c, resp)
}
