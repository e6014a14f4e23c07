package model

import "strings"

// Severity is the ordinal severity scale reported by the scan service.
// The zero value is SeverityNormal, the lowest rank.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityMinor
	SeverityMajor
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "Minor"
	case SeverityMajor:
		return "Major"
	case SeverityCritical:
		return "Critical"
	default:
		return "Normal"
	}
}

// ParseSeverity parses a severity string case-insensitively.
// Unrecognized values rank lowest (Normal).
func ParseSeverity(s string) Severity {
	switch strings.ToLower(s) {
	case "minor":
		return SeverityMinor
	case "major":
		return SeverityMajor
	case "critical":
		return SeverityCritical
	default:
		return SeverityNormal
	}
}
