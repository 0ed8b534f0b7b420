package schemas

import (
	"fmt"
	"strings"
)

// -- Finding Schemas --

// Severity represents the severity level of a visual issue. The values are
// lowercase to match the report wire format.
type Severity string

// Constants defining the severity levels an issue can carry.
const (
	SeverityHigh   Severity = "high"   // Blocks or seriously degrades use of the page.
	SeverityMedium Severity = "medium" // Noticeably hurts clarity.
	SeverityLow    Severity = "low"    // Polish.
)

// Rank orders severities for sorting; higher is more severe. Unknown values rank lowest.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether s is as severe as min or more.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

// ParseSeverity converts a case-insensitive name into a Severity.
func ParseSeverity(name string) (Severity, error) {
	s := Severity(strings.ToLower(strings.TrimSpace(name)))
	if s.Rank() == 0 {
		return "", fmt.Errorf("unknown severity %q (want high, medium or low)", name)
	}
	return s, nil
}

// Severities lists the known severities from most to least severe.
var Severities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}
