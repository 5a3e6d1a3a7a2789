package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"takjil_scheduler/internal/model"
	"takjil_scheduler/internal/repository"
	"takjil_scheduler/internal/utils"

	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials is deliberately the only login failure exposed
	// to callers, whatever the underlying cause.
	ErrInvalidCredentials = errors.New("invalid password")
)

// AuthService authenticates the administrator and issues session tokens
type AuthService interface {
	Login(ctx context.Context, password string) (token string, expiresAt time.Time, err error)
}

type authService struct {
	settingsRepo repository.SettingsRepository
	jwtUtil      *utils.JWTUtil
	logger       *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(settingsRepo repository.SettingsRepository, jwtUtil *utils.JWTUtil, logger *zap.Logger) AuthService {
	return &authService{settingsRepo: settingsRepo, jwtUtil: jwtUtil, logger: logger}
}

// Login checks the password against the stored hash and returns a signed
// session token with the admin role claim
func (s *authService) Login(ctx context.Context, password string) (string, time.Time, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to load settings for login: %w", err)
	}

	if !utils.CheckPasswordHash(password, settings.AdminPasswordHash) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(model.RoleAdmin)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	s.logger.Info("admin login succeeded")
	return token, time.Now().Add(s.jwtUtil.TokenTTL()), nil
}
