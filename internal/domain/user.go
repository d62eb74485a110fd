package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role represents a user's role
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// User is the account held in the session. The earning fields stay zero
// in the parking application.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Role           Role      `json:"role"`
	IsActivated    bool      `json:"isActivated"`
	WalletBalance  float64   `json:"walletBalance"`
	AdsWatched     int       `json:"adsWatched"`
	ReferralCode   string    `json:"referralCode"`
	ReferredBy     string    `json:"referredBy,omitempty"`
	HasSpun        bool      `json:"hasSpun"`
	TotalEarnings  float64   `json:"totalEarnings"`
	TotalReferrals int       `json:"totalReferrals"`
	CreatedAt      time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate checks the user invariants
func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidUser)
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidUser)
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	if u.WalletBalance < 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// Credit adds amount to the wallet
func (u *User) Credit(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	u.WalletBalance += amount
	return nil
}

// Debit removes amount from the wallet, never going below zero
func (u *User) Debit(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > u.WalletBalance {
		return ErrInsufficientBalance
	}
	u.WalletBalance -= amount
	return nil
}

// Clone returns a copy safe to hand out
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// AuthState is the observable session. IsAuthenticated is always
// "user present and not loading".
type AuthState struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
	IsLoading       bool  `json:"isLoading"`
}

// NewAuthState derives IsAuthenticated from user and loading
func NewAuthState(user *User, loading bool) AuthState {
	return AuthState{
		User:            user,
		IsAuthenticated: user != nil && !loading,
		IsLoading:       loading,
	}
}

// Claims is what an access token asserts about its holder
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
