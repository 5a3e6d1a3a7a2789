package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"takjil_scheduler/internal/model"
	"takjil_scheduler/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
)

// RegistrationService defines operations on takjil slot registrations
type RegistrationService interface {
	ListPublic(ctx context.Context) ([]model.PublicRegistration, error)
	ListAdmin(ctx context.Context) ([]model.Registration, error)
	Create(ctx context.Context, req model.CreateRegistrationRequest) (*model.Registration, error)
	Update(ctx context.Context, id int64, req model.UpdateRegistrationRequest) (*model.Registration, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

type registrationService struct {
	repo         repository.RegistrationRepository
	settingsRepo repository.SettingsRepository
	capacity     int
	rejectDupes  bool
	logger       *zap.Logger
}

// NewRegistrationService creates a new RegistrationService. capacity is the
// per-day limit K; rejectDupes controls the duplicate-house-code-per-day
// policy.
func NewRegistrationService(repo repository.RegistrationRepository, settingsRepo repository.SettingsRepository, capacity int, rejectDupes bool, logger *zap.Logger) RegistrationService {
	return &registrationService{
		repo:         repo,
		settingsRepo: settingsRepo,
		capacity:     capacity,
		rejectDupes:  rejectDupes,
		logger:       logger,
	}
}

func (s *registrationService) ListPublic(ctx context.Context) ([]model.PublicRegistration, error) {
	regs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	out := make([]model.PublicRegistration, 0, len(regs))
	for _, reg := range regs {
		out = append(out, reg.Public())
	}
	return out, nil
}

func (s *registrationService) ListAdmin(ctx context.Context) ([]model.Registration, error) {
	regs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	if regs == nil {
		regs = []model.Registration{}
	}
	return regs, nil
}

// validate runs the shared create/update checks in the documented order:
// missing fields, day range, phase gate, house code, family name, phone.
// It returns the normalized registration fields.
func (s *registrationService) validate(ctx context.Context, req model.CreateRegistrationRequest) (*model.Registration, error) {
	missing := map[string]string{}
	if req.SlotDay == nil {
		missing["slot_day"] = "Tanggal harus diisi"
	}
	if req.HouseCode == nil || *req.HouseCode == "" {
		missing["house_code"] = "Kode jalan harus diisi"
	}
	if req.FamilyName == nil || *req.FamilyName == "" {
		missing["family_name"] = "Nama keluarga harus diisi"
	}
	if req.PhoneNumber == nil || *req.PhoneNumber == "" {
		missing["phone_number"] = "Nomor WhatsApp harus diisi"
	}
	if len(missing) > 0 {
		return nil, newFieldError(CodeMissingFields, "Semua field harus diisi", missing)
	}

	day := *req.SlotDay
	if day < model.MinSlotDay || day > model.MaxSlotDay {
		return nil, newFieldError(CodeDayRange, "Tanggal harus antara 1-30",
			map[string]string{"slot_day": "Tanggal harus antara 1-30"})
	}

	if day >= model.Phase2FirstDay {
		settings, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings for phase check: %w", err)
		}
		if !settings.Phase2Unlocked {
			return nil, newFieldError(CodePhaseLocked, "Tanggal 21-30 belum dibuka",
				map[string]string{"slot_day": "Tanggal 21-30 belum dibuka"})
		}
	}

	houseCode := NormalizeHouseCode(*req.HouseCode)
	if !IsValidHouseCode(houseCode) {
		return nil, newFieldError(CodeHouseCode, "Kode jalan tidak valid. Pilih dari daftar.",
			map[string]string{"house_code": "Kode jalan tidak valid"})
	}

	familyName := SanitizeFamilyName(*req.FamilyName)
	if !IsValidFamilyName(familyName) {
		return nil, newFieldError(CodeNameLength, "Nama keluarga harus 2-60 karakter",
			map[string]string{"family_name": "Nama keluarga harus 2-60 karakter"})
	}

	phone := NormalizePhone(*req.PhoneNumber)
	if !IsValidPhone(phone) {
		return nil, newFieldError(CodePhoneFormat, "Nomor WhatsApp tidak valid. Harus diawali 08 atau 62",
			map[string]string{"phone_number": "Nomor WhatsApp tidak valid"})
	}

	return &model.Registration{
		SlotDay:     day,
		HouseCode:   houseCode,
		FamilyName:  familyName,
		PhoneNumber: phone,
	}, nil
}

// mapStoreError converts the repository's capacity outcomes to validation
// errors with user-facing messages.
func (s *registrationService) mapStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrSlotFull):
		msg := fmt.Sprintf("Tanggal ini sudah penuh (%d keluarga)", s.capacity)
		return newFieldError(CodeSlotFull, msg, map[string]string{"slot_day": msg})
	case errors.Is(err, repository.ErrDuplicateHouseCode):
		return newFieldError(CodeDuplicateHouse, "Kode jalan ini sudah terdaftar di tanggal ini",
			map[string]string{"house_code": "Kode jalan ini sudah terdaftar di tanggal ini"})
	default:
		return err
	}
}

func (s *registrationService) Create(ctx context.Context, req model.CreateRegistrationRequest) (*model.Registration, error) {
	reg, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	reg.CreatedAt = time.Now()

	if err := s.repo.Create(ctx, reg, s.capacity, s.rejectDupes); err != nil {
		if errors.Is(err, repository.ErrSlotFull) || errors.Is(err, repository.ErrDuplicateHouseCode) {
			return nil, s.mapStoreError(err)
		}
		return nil, fmt.Errorf("failed to create registration in repo: %w", err)
	}

	s.logger.Info("registration created",
		zap.Int64("id", reg.ID),
		zap.Int("slot_day", reg.SlotDay),
		zap.String("house_code", reg.HouseCode))
	return reg, nil
}

func (s *registrationService) Update(ctx context.Context, id int64, req model.UpdateRegistrationRequest) (*model.Registration, error) {
	reg, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	reg.ID = id

	if err := s.repo.Update(ctx, reg, s.capacity, s.rejectDupes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		if errors.Is(err, repository.ErrSlotFull) || errors.Is(err, repository.ErrDuplicateHouseCode) {
			return nil, s.mapStoreError(err)
		}
		return nil, fmt.Errorf("failed to update registration in repo: %w", err)
	}

	s.logger.Info("registration updated", zap.Int64("id", reg.ID), zap.Int("slot_day", reg.SlotDay))
	return reg, nil
}

func (s *registrationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to delete registration in repo: %w", err)
	}
	s.logger.Info("registration deleted", zap.Int64("id", id))
	return nil
}

func (s *registrationService) DeleteAll(ctx context.Context) (int64, error) {
	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete all registrations: %w", err)
	}
	s.logger.Info("all registrations deleted", zap.Int64("count", count))
	return count, nil
}
