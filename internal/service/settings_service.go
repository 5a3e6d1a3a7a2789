package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"takjil_scheduler/internal/model"
	"takjil_scheduler/internal/repository"
	"takjil_scheduler/internal/utils"

	"go.uber.org/zap"
)

const minAdminPasswordLen = 8

// fallbackAdminPassword seeds the credential when neither the store nor the
// environment provides one. Operators are expected to override it via
// ADMIN_PASSWORD or the settings update endpoint.
const fallbackAdminPassword = "takjil2026"

// SettingsService provides read and partial-update access to the singleton
// settings row
type SettingsService interface {
	Get(ctx context.Context) (*model.SettingsResponse, error)
	Update(ctx context.Context, req model.UpdateSettingsRequest) (*model.SettingsResponse, error)
	// EnsureAdminCredential upgrades a plaintext or empty stored credential
	// to a bcrypt hash. Run once at startup; a no-op once migrated.
	EnsureAdminCredential(ctx context.Context) error
}

type settingsService struct {
	repo   repository.SettingsRepository
	logger *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo repository.SettingsRepository, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) Get(ctx context.Context) (*model.SettingsResponse, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	resp := settings.Response()
	return &resp, nil
}

func (s *settingsService) Update(ctx context.Context, req model.UpdateSettingsRequest) (*model.SettingsResponse, error) {
	var startDate *time.Time
	if req.StartDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil || len(*req.StartDate) != len("2006-01-02") {
			return nil, newFieldError(CodeDateFormat, "Tanggal mulai harus berformat YYYY-MM-DD",
				map[string]string{"start_date": "Format harus YYYY-MM-DD"})
		}
		startDate = &parsed
	}

	var passwordHash *string
	if req.AdminPassword != nil {
		if len(*req.AdminPassword) < minAdminPasswordLen {
			msg := fmt.Sprintf("Password minimal %d karakter", minAdminPasswordLen)
			return nil, newFieldError(CodePasswordLength, msg,
				map[string]string{"admin_password": msg})
		}
		hash, err := utils.HashPassword(*req.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash new admin password: %w", err)
		}
		passwordHash = &hash
	}

	settings, err := s.repo.Update(ctx, req.Phase2Unlocked, req.AppTitle, startDate, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	s.logger.Info("settings updated",
		zap.Bool("phase2_unlocked", settings.Phase2Unlocked),
		zap.Bool("password_changed", passwordHash != nil))
	resp := settings.Response()
	return &resp, nil
}

func (s *settingsService) EnsureAdminCredential(ctx context.Context) error {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings for credential check: %w", err)
	}
	if utils.IsBcryptHash(settings.AdminPasswordHash) {
		return nil
	}

	// Prefer an operator-supplied secret; otherwise rehash the stored
	// plaintext value.
	plain := settings.AdminPasswordHash
	if env := os.Getenv("ADMIN_PASSWORD"); env != "" {
		plain = env
	}
	if plain == "" {
		plain = fallbackAdminPassword
		s.logger.Warn("no admin credential configured, seeding default; set ADMIN_PASSWORD or change it via settings")
	}

	hash, err := utils.HashPassword(plain)
	if err != nil {
		return fmt.Errorf("failed to hash admin credential: %w", err)
	}
	if err := s.repo.UpdatePasswordHash(ctx, hash); err != nil {
		return fmt.Errorf("failed to store migrated credential: %w", err)
	}

	s.logger.Info("admin credential migrated to bcrypt hash")
	return nil
}
