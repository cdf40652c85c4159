// Package auth handles admin authentication: a single credential pair from
// the environment, exchanged for a short-lived JWT.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devfolio/service/internal/config"
)

const tokenTTL = 24 * time.Hour

// ErrInvalidCredentials is returned when the email or password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service contains the business logic for admin login.
type Service struct {
	cfg *config.Config
}

// NewService creates a new auth Service.
func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// Login checks the credential pair against the environment-configured admin
// account and issues a session token.
func (s *Service) Login(email, password string) (string, error) {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return "", ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.cfg.AdminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	if !emailOK || !passOK {
		return "", ErrInvalidCredentials
	}

	return s.issueToken()
}

// issueToken signs a JWT identifying the admin session.
func (s *Service) issueToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "admin",
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
