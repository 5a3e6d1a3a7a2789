package repository

import (
	"context"
	"fmt"
	"time"

	"takjil_scheduler/internal/model"
)

// SettingsRepository defines operations for the singleton settings row
type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	// Update applies a partial update: nil fields keep their stored value.
	Update(ctx context.Context, phase2Unlocked *bool, appTitle *string, startDate *time.Time, passwordHash *string) (*model.Settings, error)
	// UpdatePasswordHash replaces only the credential hash. Used by the
	// one-time startup migration.
	UpdatePasswordHash(ctx context.Context, hash string) error
}

type settingsRepository struct {
	db DB
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the singleton settings row
func (r *settingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	s := &model.Settings{}
	sql := `SELECT id, phase2_unlocked, admin_password_hash, app_title, start_date, updated_at
            FROM settings WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, model.SettingsID).Scan(
		&s.ID, &s.Phase2Unlocked, &s.AdminPasswordHash, &s.AppTitle, &s.StartDate, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}

// Update merges the provided fields into the settings row. COALESCE keeps
// the stored value for every nil argument.
func (r *settingsRepository) Update(ctx context.Context, phase2Unlocked *bool, appTitle *string, startDate *time.Time, passwordHash *string) (*model.Settings, error) {
	s := &model.Settings{}
	sql := `UPDATE settings
            SET phase2_unlocked = COALESCE($1, phase2_unlocked),
                app_title = COALESCE($2, app_title),
                start_date = COALESCE($3, start_date),
                admin_password_hash = COALESCE($4, admin_password_hash),
                updated_at = NOW()
            WHERE id = $5
            RETURNING id, phase2_unlocked, admin_password_hash, app_title, start_date, updated_at`
	err := r.db.QueryRow(ctx, sql, phase2Unlocked, appTitle, startDate, passwordHash, model.SettingsID).Scan(
		&s.ID, &s.Phase2Unlocked, &s.AdminPasswordHash, &s.AppTitle, &s.StartDate, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return s, nil
}

// UpdatePasswordHash stores a new credential hash
func (r *settingsRepository) UpdatePasswordHash(ctx context.Context, hash string) error {
	_, err := r.db.Exec(ctx, `UPDATE settings SET admin_password_hash = $1, updated_at = NOW() WHERE id = $2`,
		hash, model.SettingsID)
	if err != nil {
		return fmt.Errorf("failed to update credential hash: %w", err)
	}
	return nil
}
