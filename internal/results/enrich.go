// internal/results/enrich.go
package results

import (
	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/results/providers"
	"go.uber.org/zap"
)

// Enricher attaches remediation suggestions to issues.
type Enricher struct {
	provider providers.SuggestionProvider
	logger   *zap.Logger
}

// NewEnricher creates a new Enricher instance.
func NewEnricher(provider providers.SuggestionProvider, logger *zap.Logger) *Enricher {
	return &Enricher{
		provider: provider,
		logger:   logger.Named("enricher"),
	}
}

// Enrich converts one issue into its presentation form.
func (e *Enricher) Enrich(issue schemas.Issue) ProcessedIssue {
	suggestion := e.provider.Suggestion(issue.Type, issue.Severity)
	if suggestion == providers.DefaultSuggestion {
		e.logger.Debug("No specific suggestion", zap.String("type", string(issue.Type)), zap.String("severity", string(issue.Severity)))
	}
	return ProcessedIssue{Issue: issue, Suggestion: suggestion}
}
