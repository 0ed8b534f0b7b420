package results

import (
	"fmt"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
)

// Points recoverable per fixed issue, and the cap on the total estimate.
var potentialGains = map[schemas.Severity]int{
	schemas.SeverityHigh:   5,
	schemas.SeverityMedium: 3,
	schemas.SeverityLow:    1,
}

const maxPotentialGain = 30

// Grade converts a 0-100 score into a letter grade.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// Summarize counts a report's issues and writes a one-sentence verdict.
func Summarize(report *schemas.VisualReport) Summary {
	s := Summary{
		Score:      report.Score,
		Grade:      Grade(report.Score),
		Total:      len(report.Issues),
		BySeverity: make(map[string]int),
		ByType:     make(map[string]int),
	}
	for _, issue := range report.Issues {
		s.BySeverity[string(issue.Severity)]++
		s.ByType[string(issue.Type)]++
		s.PotentialGain += potentialGains[issue.Severity]
	}
	if s.PotentialGain > maxPotentialGain {
		s.PotentialGain = maxPotentialGain
	}
	s.Headline = headline(report.Score, s.BySeverity[string(schemas.SeverityHigh)])
	return s
}

func headline(score, high int) string {
	var base string
	switch {
	case score >= 90:
		base = "Excellent visual clarity."
	case score >= 80:
		base = "Good visual clarity with room for improvement."
	case score >= 70:
		base = "Moderate visual clarity; some users may struggle with readability or layout."
	case score >= 60:
		base = "Below average visual clarity; significant improvements are needed."
	default:
		base = "Poor visual clarity; major issues likely hurt engagement."
	}

	switch {
	case high > 5:
		return fmt.Sprintf("%s %d critical issues require immediate attention.", base, high)
	case high > 1:
		return fmt.Sprintf("%s %d high-priority issues detected.", base, high)
	case high == 1:
		return base + " 1 high-priority issue detected."
	default:
		return base
	}
}
