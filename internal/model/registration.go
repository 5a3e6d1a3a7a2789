package model

import "time"

const (
	// MinSlotDay and MaxSlotDay bound the Ramadhan calendar.
	MinSlotDay = 1
	MaxSlotDay = 30

	// Phase2FirstDay is the first slot day gated behind the phase-2 flag.
	Phase2FirstDay = 21
)

// Registration represents one household's claim on a slot day
type Registration struct {
	ID          int64     `json:"id"`
	SlotDay     int       `json:"slot_day"`
	HouseCode   string    `json:"house_code"`
	FamilyName  string    `json:"family_name"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// PublicRegistration is the unauthenticated view of a registration.
// It deliberately has no phone number field.
type PublicRegistration struct {
	ID         int64     `json:"id"`
	SlotDay    int       `json:"slot_day"`
	HouseCode  string    `json:"house_code"`
	FamilyName string    `json:"family_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Public strips the contact number for the public listing.
func (r Registration) Public() PublicRegistration {
	return PublicRegistration{
		ID:         r.ID,
		SlotDay:    r.SlotDay,
		HouseCode:  r.HouseCode,
		FamilyName: r.FamilyName,
		CreatedAt:  r.CreatedAt,
	}
}

// CreateRegistrationRequest is the public submission body. Pointers let the
// validator distinguish a missing field from a zero value.
type CreateRegistrationRequest struct {
	SlotDay     *int    `json:"slot_day"`
	HouseCode   *string `json:"house_code"`
	FamilyName  *string `json:"family_name"`
	PhoneNumber *string `json:"phone_number"`
}

// UpdateRegistrationRequest carries the same fields as create for an
// admin edit of an existing row.
type UpdateRegistrationRequest = CreateRegistrationRequest
