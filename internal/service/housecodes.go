package service

import "strings"

// HouseCodeOther is the sentinel for addresses outside the listed streets.
const HouseCodeOther = "LAINNYA"

// houseCodes is the fixed allow-list of valid house/street codes.
var houseCodes = []string{
	// WB series
	"WB-01", "WB-02", "WB-03", "WB-05", "WB-06", "WB-07", "WB-08", "WB-09", "WB-10",
	"WB-11", "WB-12", "WB-14", "WB-15", "WB-16", "WB-17", "WB-18", "WB-19", "WB-20",
	"WB-21", "WB-22", "WB-23", "WB-24", "WB-25", "WB-26", "WB-27", "WB-28", "WB-29", "WB-30",
	"WB-31", "WB-32", "WB-33", "WB-34", "WB-35", "WB-36", "WB-37", "WB-38", "WB-39", "WB-40",
	"WB-41", "WB-42", "WB-43", "WB-45", "WB-46", "WB-47", "WB-48",

	// PN series
	"PN-01", "PN-02", "PN-03", "PN-05", "PN-06", "PN-07", "PN-08", "PN-09", "PN-10",
	"PN-11", "PN-12", "PN-14", "PN-15", "PN-16", "PN-17", "PN-18", "PN-19", "PN-20",
	"PN-21", "PN-22", "PN-23", "PN-24", "PN-25", "PN-26", "PN-27", "PN-28", "PN-29", "PN-30",
	"PN-31", "PN-32", "PN-33", "PN-34", "PN-35", "PN-36", "PN-37", "PN-38", "PN-39", "PN-41",
	"PN-43", "PN-45", "PN-47",

	// MB series
	"MB-01", "MB-02", "MB-03",

	// LP series
	"LP-01", "LP-02", "LP-03", "LP-05", "LP-06", "LP-07", "LP-08", "LP-09", "LP-10",
	"LP-11", "LP-12", "LP-14", "LP-16",

	// PW series
	"PW-01", "PW-02", "PW-03", "PW-05", "PW-06", "PW-07", "PW-08", "PW-09", "PW-10",
	"PW-11", "PW-12", "PW-14",

	// SL series
	"SL-01", "SL-02", "SL-03", "SL-05", "SL-06", "SL-07", "SL-08", "SL-09", "SL-10",
	"SL-12", "SL-14",

	// LS series
	"LS-01", "LS-02", "LS-03", "LS-05", "LS-06", "LS-07", "LS-08", "LS-10", "LS-12",

	// RW series
	"RW-03", "RW-05", "RW-07", "RW-09",

	// ML series
	"ML-01", "ML-02", "ML-03", "ML-05", "ML-06", "ML-07", "ML-08", "ML-09", "ML-10",
	"ML-11", "ML-12", "ML-14",

	HouseCodeOther,
}

var houseCodeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(houseCodes))
	for _, c := range houseCodes {
		m[c] = struct{}{}
	}
	return m
}()

// NormalizeHouseCode uppercases and trims a submitted house code.
func NormalizeHouseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidHouseCode reports allow-list membership for a normalized code.
func IsValidHouseCode(code string) bool {
	_, ok := houseCodeSet[code]
	return ok
}
