package service

import (
	"strings"
	"unicode"
)

// Machine-distinguishable validation failure codes.
const (
	CodeMissingFields  = "missing_fields"
	CodeDayRange       = "day_range"
	CodePhaseLocked    = "phase_locked"
	CodeHouseCode      = "house_code"
	CodeNameLength     = "name_length"
	CodePhoneFormat    = "phone_format"
	CodeSlotFull       = "slot_full"
	CodeDuplicateHouse = "duplicate_house"
	CodeDateFormat     = "date_format"
	CodePasswordLength = "password_length"
)

// ValidationError rejects a request as a whole with a machine code, a
// user-facing message, and optional per-field messages.
type ValidationError struct {
	Code    string
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newFieldError(code, message string, fields map[string]string) *ValidationError {
	return &ValidationError{Code: code, Message: message, Fields: fields}
}

const (
	minFamilyNameLen = 2
	maxFamilyNameLen = 60
)

// SanitizeFamilyName trims surrounding whitespace and strips control
// characters from a submitted family name.
func SanitizeFamilyName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// IsValidFamilyName reports whether a sanitized family name is within the
// accepted length bounds.
func IsValidFamilyName(name string) bool {
	n := len([]rune(name))
	return n >= minFamilyNameLen && n <= maxFamilyNameLen
}
