package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"takjil_scheduler/internal/model"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, RegistrationRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewRegistrationRepository(mock)
}

func expectSlotLock(mock pgxmock.PgxPoolIface, day int) {
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1, $2)`)).
		WithArgs(slotLockClass, day).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
}

func TestRegistrationRepository_Create(t *testing.T) {
	mock, repo := newMockRepo(t)

	reg := &model.Registration{
		SlotDay:     5,
		HouseCode:   "WB-01",
		FamilyName:  "Keluarga Ahmad",
		PhoneNumber: "6281234567890",
		CreatedAt:   time.Now(),
	}

	mock.ExpectBegin()
	expectSlotLock(mock, 5)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM registrations WHERE slot_day = $1`)).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM registrations WHERE slot_day = $1 AND house_code = $2`)).
		WithArgs(5, "WB-01").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO registrations`)).
		WithArgs(5, "WB-01", "Keluarga Ahmad", "6281234567890", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), time.Now()))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), reg, 2, true)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), reg.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_Create_SlotFull(t *testing.T) {
	mock, repo := newMockRepo(t)

	reg := &model.Registration{SlotDay: 5, HouseCode: "WB-01", FamilyName: "Test", PhoneNumber: "6281234567890"}

	mock.ExpectBegin()
	expectSlotLock(mock, 5)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM registrations WHERE slot_day = $1`)).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), reg, 2, true)

	assert.ErrorIs(t, err, ErrSlotFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_Create_DuplicateHouse(t *testing.T) {
	mock, repo := newMockRepo(t)

	reg := &model.Registration{SlotDay: 5, HouseCode: "WB-01", FamilyName: "Test", PhoneNumber: "6281234567890"}

	mock.ExpectBegin()
	expectSlotLock(mock, 5)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM registrations WHERE slot_day = $1`)).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM registrations WHERE slot_day = $1 AND house_code = $2`)).
		WithArgs(5, "WB-01").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), reg, 2, true)

	assert.ErrorIs(t, err, ErrDuplicateHouseCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_Create_DuplicatePolicyDisabled(t *testing.T) {
	mock, repo := newMockRepo(t)

	reg := &model.Registration{SlotDay: 5, HouseCode: "WB-01", FamilyName: "Test", PhoneNumber: "6281234567890"}

	mock.ExpectBegin()
	expectSlotLock(mock, 5)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM registrations WHERE slot_day = $1`)).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	// No duplicate check expected when the policy is off
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO registrations`)).
		WithArgs(5, "WB-01", "Test", "6281234567890", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(8), time.Now()))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), reg, 2, false)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_Update_ExcludesOwnID(t *testing.T) {
	mock, repo := newMockRepo(t)

	reg := &model.Registration{ID: 7, SlotDay: 5, HouseCode: "WB-02", FamilyName: "Keluarga Budi", PhoneNumber: "6281234567891"}

	mock.ExpectBegin()
	expectSlotLock(mock, 5)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM registrations WHERE slot_day = $1 AND id <> $2`)).
		WithArgs(5, int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM registrations WHERE slot_day = $1 AND house_code = $2 AND id <> $3`)).
		WithArgs(5, "WB-02", int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE registrations`)).
		WithArgs(5, "WB-02", "Keluarga Budi", "6281234567891", int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), reg, 2, true)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_Update_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	reg := &model.Registration{ID: 999999, SlotDay: 5, HouseCode: "WB-02", FamilyName: "Test", PhoneNumber: "6281234567891"}

	mock.ExpectBegin()
	expectSlotLock(mock, 5)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM registrations WHERE slot_day = $1 AND id <> $2`)).
		WithArgs(5, int64(999999)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM registrations WHERE slot_day = $1 AND house_code = $2 AND id <> $3`)).
		WithArgs(5, "WB-02", int64(999999)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE registrations`)).
		WithArgs(5, "WB-02", "Test", "6281234567891", int64(999999)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), reg, 2, true)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_FindAll_Ordering(t *testing.T) {
	mock, repo := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(`ORDER BY slot_day ASC, created_at ASC, id ASC`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "slot_day", "house_code", "family_name", "phone_number", "created_at"}).
			AddRow(int64(1), 3, "WB-01", "Keluarga Ahmad", "6281234567890", now).
			AddRow(int64(2), 3, "WB-02", "Keluarga Budi", "6281234567891", now.Add(time.Minute)))

	regs, err := repo.FindAll(context.Background())

	assert.NoError(t, err)
	assert.Len(t, regs, 2)
	assert.Equal(t, "WB-01", regs[0].HouseCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_FindByID_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, slot_day, house_code, family_name, phone_number, created_at`)).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "slot_day", "house_code", "family_name", "phone_number", "created_at"}))

	reg, err := repo.FindByID(context.Background(), 42)

	assert.NoError(t, err)
	assert.Nil(t, reg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_Delete_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM registrations WHERE id = $1`)).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 42)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_DeleteAll(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM registrations`)).
		WillReturnResult(pgxmock.NewResult("DELETE", 12))

	count, err := repo.DeleteAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(12), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_DeleteAll_Empty(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM registrations`)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	count, err := repo.DeleteAll(context.Background())

	assert.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
