// internal/results/providers/suggestions.go
package providers

import "github.com/xkilldash9x/clarity-cli/api/schemas"

// DefaultSuggestion is returned for (type, severity) pairs without an entry.
const DefaultSuggestion = "Review and fix this issue for better user experience"

// SuggestionProvider maps an issue to a remediation hint.
type SuggestionProvider interface {
	Suggestion(issueType schemas.IssueType, severity schemas.Severity) string
}

// InMemorySuggestionProvider serves suggestions from a fixed table.
type InMemorySuggestionProvider struct {
	data map[schemas.IssueType]map[schemas.Severity]string
}

// NewInMemorySuggestionProvider creates a provider preloaded with the built-in table.
func NewInMemorySuggestionProvider() *InMemorySuggestionProvider {
	data := map[schemas.IssueType]map[schemas.Severity]string{
		schemas.IssueContrast: {
			schemas.SeverityHigh:   "Use darker text colors or lighter background colors to meet WCAG AA standards",
			schemas.SeverityMedium: "Increase color contrast between text and background",
			schemas.SeverityLow:    "Consider slightly darkening text or lightening background for better accessibility",
		},
		schemas.IssueTypography: {
			schemas.SeverityHigh:   "Increase font size to at least 16px for desktop or 14px for mobile",
			schemas.SeverityMedium: "Increase line-height to at least 1.3 times the font size",
			schemas.SeverityLow:    "Limit line length to 45-75 characters by reducing text width",
		},
		schemas.IssueTapTarget: {
			schemas.SeverityHigh:   "Increase button/link size to at least 44x44px with adequate spacing",
			schemas.SeverityMedium: "Make touch targets larger for easier mobile interaction",
			schemas.SeverityLow:    "Add more padding around interactive elements",
		},
		schemas.IssueOverlap: {
			schemas.SeverityHigh:   "Adjust positioning, margins, or z-index to prevent element overlap",
			schemas.SeverityMedium: "Fix overlapping elements that may hide content",
			schemas.SeverityLow:    "Review layout to ensure proper element spacing",
		},
		schemas.IssueDensity: {
			schemas.SeverityHigh:   "Distribute elements across more space or use progressive disclosure",
			schemas.SeverityMedium: "Reduce number of interactive elements in this area",
			schemas.SeverityLow:    "Group related elements and add more whitespace",
		},
		schemas.IssueAlignment: {
			schemas.SeverityHigh:   "Align elements to a consistent grid using CSS flexbox or grid",
			schemas.SeverityMedium: "Fix alignment issues to improve visual consistency",
			schemas.SeverityLow:    "Ensure elements align to a common baseline",
		},
		schemas.IssueError: {
			schemas.SeverityHigh: "Check that the page snapshot is complete and re-run the audit",
		},
	}
	return &InMemorySuggestionProvider{data: data}
}

// Suggestion looks up the hint for an issue, falling back to DefaultSuggestion.
func (p *InMemorySuggestionProvider) Suggestion(issueType schemas.IssueType, severity schemas.Severity) string {
	if byType, ok := p.data[issueType]; ok {
		if s, ok := byType[severity]; ok {
			return s
		}
	}
	return DefaultSuggestion
}
