package lint

import "strings"

// Severity indicates the importance of a finding. The numeric values are
// part of the JSON output contract: 2 reports as an error, 1 as a warning.
type Severity int

// Severity levels for findings.
const (
	// SeverityWarning indicates a demoted or advisory issue.
	SeverityWarning Severity = 1
	// SeverityError indicates an issue that fails the lint run.
	SeverityError Severity = 2
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityError and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	default:
		return SeverityError, false
	}
}
