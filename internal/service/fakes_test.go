package service

import (
	"context"
	"time"

	"takjil_scheduler/internal/model"
	"takjil_scheduler/internal/repository"
)

// fakeRegistrationRepo is an in-memory RegistrationRepository that enforces
// the same capacity and duplicate contracts as the real one.
type fakeRegistrationRepo struct {
	regs    []model.Registration
	nextID  int64
	findErr error
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{nextID: 1}
}

func (f *fakeRegistrationRepo) Create(_ context.Context, reg *model.Registration, capacity int, rejectDuplicateHouse bool) error {
	count := 0
	for _, r := range f.regs {
		if r.SlotDay == reg.SlotDay {
			count++
			if rejectDuplicateHouse && r.HouseCode == reg.HouseCode {
				return repository.ErrDuplicateHouseCode
			}
		}
	}
	if count >= capacity {
		return repository.ErrSlotFull
	}
	reg.ID = f.nextID
	f.nextID++
	f.regs = append(f.regs, *reg)
	return nil
}

func (f *fakeRegistrationRepo) Update(_ context.Context, reg *model.Registration, capacity int, rejectDuplicateHouse bool) error {
	idx := -1
	count := 0
	for i, r := range f.regs {
		if r.ID == reg.ID {
			idx = i
			continue
		}
		if r.SlotDay == reg.SlotDay {
			count++
			if rejectDuplicateHouse && r.HouseCode == reg.HouseCode {
				return repository.ErrDuplicateHouseCode
			}
		}
	}
	if count >= capacity {
		return repository.ErrSlotFull
	}
	if idx < 0 {
		return repository.ErrNotFound
	}
	reg.CreatedAt = f.regs[idx].CreatedAt
	f.regs[idx] = *reg
	return nil
}

func (f *fakeRegistrationRepo) FindByID(_ context.Context, id int64) (*model.Registration, error) {
	for _, r := range f.regs {
		if r.ID == id {
			reg := r
			return &reg, nil
		}
	}
	return nil, nil
}

func (f *fakeRegistrationRepo) FindAll(_ context.Context) ([]model.Registration, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]model.Registration, len(f.regs))
	copy(out, f.regs)
	return out, nil
}

func (f *fakeRegistrationRepo) Delete(_ context.Context, id int64) error {
	for i, r := range f.regs {
		if r.ID == id {
			f.regs = append(f.regs[:i], f.regs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRegistrationRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(f.regs))
	f.regs = nil
	return n, nil
}

// fakeSettingsRepo holds a single settings row in memory.
type fakeSettingsRepo struct {
	settings model.Settings
	getErr   error
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		settings: model.Settings{
			ID:       model.SettingsID,
			AppTitle: "Takjil Ramadhan 1447H",
		},
	}
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*model.Settings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s := f.settings
	return &s, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, phase2Unlocked *bool, appTitle *string, startDate *time.Time, passwordHash *string) (*model.Settings, error) {
	if phase2Unlocked != nil {
		f.settings.Phase2Unlocked = *phase2Unlocked
	}
	if appTitle != nil {
		f.settings.AppTitle = *appTitle
	}
	if startDate != nil {
		d := *startDate
		f.settings.StartDate = &d
	}
	if passwordHash != nil {
		f.settings.AdminPasswordHash = *passwordHash
	}
	f.settings.UpdatedAt = time.Now()
	s := f.settings
	return &s, nil
}

func (f *fakeSettingsRepo) UpdatePasswordHash(_ context.Context, hash string) error {
	f.settings.AdminPasswordHash = hash
	return nil
}

func ptr[T any](v T) *T { return &v }
