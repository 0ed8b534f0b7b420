package results

import (
	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/results/providers"
)

// PipelineConfig holds everything the results pipeline needs.
type PipelineConfig struct {
	// MinSeverity drops issues below this severity. Empty keeps everything.
	MinSeverity schemas.Severity
	// SuggestionProvider is optional. If nil, the built-in table is used.
	SuggestionProvider providers.SuggestionProvider
}

// ProcessedIssue is an issue ready for presentation.
type ProcessedIssue struct {
	schemas.Issue `yaml:",inline"`
	Suggestion    string `json:"suggestion" yaml:"suggestion"`
}

// Summary condenses a report for humans.
type Summary struct {
	Score      int            `json:"score" yaml:"score"`
	Grade      string         `json:"grade" yaml:"grade"`
	Headline   string         `json:"headline" yaml:"headline"`
	Total      int            `json:"total" yaml:"total"`
	BySeverity map[string]int `json:"by_severity" yaml:"by_severity"`
	ByType     map[string]int `json:"by_type" yaml:"by_type"`
	// PotentialGain estimates the points recoverable by fixing every issue.
	PotentialGain int `json:"potential_gain" yaml:"potential_gain"`
}

// Audit is the processed outcome of one analyzed input.
type Audit struct {
	Source  string                `json:"source" yaml:"source"`
	Summary Summary               `json:"summary" yaml:"summary"`
	Issues  []ProcessedIssue      `json:"issues" yaml:"issues"`
	Report  *schemas.VisualReport `json:"report" yaml:"report"`
	// Error is set instead of Report when the input could not be analyzed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
