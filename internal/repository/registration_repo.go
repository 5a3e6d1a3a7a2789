package repository

import (
	"context"
	"errors"
	"fmt"

	"takjil_scheduler/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// slotLockClass namespaces the per-day advisory lock so it cannot collide
// with other advisory locks on the same database.
const slotLockClass = 7411

var (
	// ErrSlotFull is returned when a slot day already holds the maximum
	// number of registrations.
	ErrSlotFull = errors.New("slot day is already at capacity")
	// ErrDuplicateHouseCode is returned when the same house code is already
	// registered for the requested slot day.
	ErrDuplicateHouseCode = errors.New("house code already registered for this slot day")
	// ErrNotFound is returned by Update/Delete when the id does not exist.
	ErrNotFound = errors.New("registration not found")
)

// DB is the subset of pgxpool.Pool the repositories use. pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RegistrationRepository defines operations for registration data
type RegistrationRepository interface {
	Create(ctx context.Context, reg *model.Registration, capacity int, rejectDuplicateHouse bool) error
	Update(ctx context.Context, reg *model.Registration, capacity int, rejectDuplicateHouse bool) error
	FindByID(ctx context.Context, id int64) (*model.Registration, error)
	FindAll(ctx context.Context) ([]model.Registration, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

type registrationRepository struct {
	db DB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create inserts a registration. The capacity count and the insert run in
// one transaction serialized per slot day by an advisory lock, so two
// concurrent creates for the same day can never together exceed capacity.
func (r *registrationRepository) Create(ctx context.Context, reg *model.Registration, capacity int, rejectDuplicateHouse bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, slotLockClass, reg.SlotDay); err != nil {
		return fmt.Errorf("failed to lock slot day: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE slot_day = $1`, reg.SlotDay).Scan(&count); err != nil {
		return fmt.Errorf("failed to count slot registrations: %w", err)
	}
	if count >= capacity {
		return ErrSlotFull
	}

	if rejectDuplicateHouse {
		var dup int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE slot_day = $1 AND house_code = $2`,
			reg.SlotDay, reg.HouseCode).Scan(&dup); err != nil {
			return fmt.Errorf("failed to check duplicate house code: %w", err)
		}
		if dup > 0 {
			return ErrDuplicateHouseCode
		}
	}

	sql := `INSERT INTO registrations (slot_day, house_code, family_name, phone_number, created_at)
            VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	if err := tx.QueryRow(ctx, sql, reg.SlotDay, reg.HouseCode, reg.FamilyName, reg.PhoneNumber, reg.CreatedAt).
		Scan(&reg.ID, &reg.CreatedAt); err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

// Update overwrites all mutable fields of an existing registration under the
// same per-day lock discipline as Create. The capacity and duplicate counts
// exclude the row's own id.
func (r *registrationRepository) Update(ctx context.Context, reg *model.Registration, capacity int, rejectDuplicateHouse bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, slotLockClass, reg.SlotDay); err != nil {
		return fmt.Errorf("failed to lock slot day: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE slot_day = $1 AND id <> $2`,
		reg.SlotDay, reg.ID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count slot registrations: %w", err)
	}
	if count >= capacity {
		return ErrSlotFull
	}

	if rejectDuplicateHouse {
		var dup int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE slot_day = $1 AND house_code = $2 AND id <> $3`,
			reg.SlotDay, reg.HouseCode, reg.ID).Scan(&dup); err != nil {
			return fmt.Errorf("failed to check duplicate house code: %w", err)
		}
		if dup > 0 {
			return ErrDuplicateHouseCode
		}
	}

	sql := `UPDATE registrations
            SET slot_day = $1, house_code = $2, family_name = $3, phone_number = $4
            WHERE id = $5 RETURNING created_at`
	if err := tx.QueryRow(ctx, sql, reg.SlotDay, reg.HouseCode, reg.FamilyName, reg.PhoneNumber, reg.ID).
		Scan(&reg.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update registration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration update: %w", err)
	}
	return nil
}

// FindByID retrieves a registration by its ID
func (r *registrationRepository) FindByID(ctx context.Context, id int64) (*model.Registration, error) {
	reg := &model.Registration{}
	sql := `SELECT id, slot_day, house_code, family_name, phone_number, created_at
            FROM registrations WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&reg.ID, &reg.SlotDay, &reg.HouseCode, &reg.FamilyName, &reg.PhoneNumber, &reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found; service layer decides what that means
		}
		return nil, fmt.Errorf("failed to find registration by ID: %w", err)
	}
	return reg, nil
}

// FindAll retrieves every registration ordered by slot day, then creation time
func (r *registrationRepository) FindAll(ctx context.Context) ([]model.Registration, error) {
	sql := `SELECT id, slot_day, house_code, family_name, phone_number, created_at
            FROM registrations ORDER BY slot_day ASC, created_at ASC, id ASC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.SlotDay, &reg.HouseCode, &reg.FamilyName, &reg.PhoneNumber, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		regs = append(regs, reg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return regs, nil
}

// Delete removes one registration by id
func (r *registrationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every registration and returns the count removed.
// Safe to call on an empty table.
func (r *registrationRepository) DeleteAll(ctx context.Context) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM registrations`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete all registrations: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
