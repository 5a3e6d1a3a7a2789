package model

import "time"

// SettingsID is the fixed id of the singleton settings row.
const SettingsID = 1

// RoleAdmin is the only role the session token carries.
const RoleAdmin = "admin"

// Settings is the singleton configuration row
type Settings struct {
	ID                int        `json:"id"`
	Phase2Unlocked    bool       `json:"phase2_unlocked"`
	AdminPasswordHash string     `json:"-"` // Never expose the credential hash in JSON responses
	AppTitle          string     `json:"app_title"`
	StartDate         *time.Time `json:"-"` // Serialized as YYYY-MM-DD via SettingsResponse
	UpdatedAt         time.Time  `json:"updated_at"`
}

// SettingsResponse is the credential-stripped public view of the settings row.
type SettingsResponse struct {
	Phase2Unlocked bool      `json:"phase2_unlocked"`
	AppTitle       string    `json:"app_title"`
	StartDate      *string   `json:"start_date"` // YYYY-MM-DD, null when unset
	UpdatedAt      time.Time `json:"updated_at"`
}

// Response converts the stored row to its public shape.
func (s Settings) Response() SettingsResponse {
	resp := SettingsResponse{
		Phase2Unlocked: s.Phase2Unlocked,
		AppTitle:       s.AppTitle,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.StartDate != nil {
		d := s.StartDate.Format("2006-01-02")
		resp.StartDate = &d
	}
	return resp
}

// UpdateSettingsRequest supports partial updates: nil fields keep their
// previous value. AdminPassword is write-only and stored hashed.
type UpdateSettingsRequest struct {
	Phase2Unlocked *bool   `json:"phase2_unlocked,omitempty"`
	AppTitle       *string `json:"app_title,omitempty"`
	StartDate      *string `json:"start_date,omitempty"` // strict YYYY-MM-DD
	AdminPassword  *string `json:"admin_password,omitempty"`
}
