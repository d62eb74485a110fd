package dto

import (
	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/internal/notify"
)

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6,max=72"`
	Name         string `json:"name" binding:"required,min=2"`
	Role         string `json:"role" binding:"required"`
	ReferralCode string `json:"referralCode,omitempty"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresIn   int64        `json:"expiresIn"`
	User        *domain.User `json:"user"`
}

// SessionResponse describes the current session
type SessionResponse struct {
	domain.AuthState
	LastNotification *notify.Notification `json:"lastNotification,omitempty"`
}
