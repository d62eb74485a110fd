package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// TokenConfig holds configuration for TokenService
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
	Clock  func() time.Time
}

// TokenService issues and checks API access tokens
type TokenService interface {
	Issue(user *domain.User) (token string, expiresIn int64, err error)
	Validate(token string) (*domain.Claims, error)
}

type tokenService struct {
	config *TokenConfig
}

// NewTokenService creates a new TokenService
func NewTokenService(config *TokenConfig) TokenService {
	if config.TTL == 0 {
		config.TTL = 24 * time.Hour
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &tokenService{config: config}
}

func (s *tokenService) Issue(user *domain.User) (string, int64, error) {
	now := s.config.Clock()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"iss":     s.config.Issuer,
		"exp":     now.Add(s.config.TTL).Unix(),
		"iat":     now.Unix(),
	})

	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, int64(s.config.TTL.Seconds()), nil
}

func (s *tokenService) Validate(tokenString string) (*domain.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.config.Clock), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &domain.Claims{
		UserID: userID,
		Email:  email,
		Role:   domain.Role(role),
	}, nil
}
