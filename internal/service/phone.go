package service

import (
	"regexp"
	"strings"
	"unicode"
)

// Canonical form: country code 62 followed by 9-13 digits, no symbols.
var rePhoneCanonical = regexp.MustCompile(`^62[0-9]{9,13}$`)

// NormalizePhone normalizes WhatsApp numbers to the canonical 62-prefixed
// digit string. Rules: strip everything but digits; 0062.. -> 62..;
// 08.. (local trunk prefix) -> 628..; 62.. kept as-is.
func NormalizePhone(p string) string {
	s := digitsOnly(strings.TrimSpace(p))
	if s == "" {
		return ""
	}

	if strings.HasPrefix(s, "0062") {
		s = s[2:]
	}
	if strings.HasPrefix(s, "08") {
		s = "62" + s[1:]
	}
	return s
}

// IsValidPhone reports whether a normalized number matches the canonical
// international format.
func IsValidPhone(p string) bool {
	return rePhoneCanonical.MatchString(p)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
