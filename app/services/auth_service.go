package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("the username or password is incorrect")

// SessionStore issues and revokes session tokens.
type SessionStore interface {
	Create(username string) (string, error)
	Delete(token string) error
}

// AuthService checks the administrator's credentials and manages sessions.
type AuthService struct {
	username     string
	passwordHash []byte
	sessions     SessionStore
	logger       *zap.Logger
}

// NewAuthService creates a new AuthService for a single administrator.
func NewAuthService(username, passwordHash string, sessions SessionStore, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		username:     username,
		passwordHash: []byte(passwordHash),
		sessions:     sessions,
		logger:       logger,
	}
}

// Login verifies the credentials and returns a new session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if len(s.passwordHash) == 0 {
		s.logger.Warn("login attempted but no administrator password is configured")
		return "", ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		s.logger.Info("failed login", zap.String("user", username))
		return "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(username)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	s.logger.Info("user logged in", zap.String("user", username))
	return token, nil
}

// Logout revokes a session token. Unknown tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// HashPassword returns the bcrypt hash to configure as the administrator
// password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
