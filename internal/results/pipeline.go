// File: internal/results/pipeline.go
package results

import (
	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/results/providers"
	"go.uber.org/zap"
)

// Pipeline turns raw visual reports into presentation-ready audits.
type Pipeline struct {
	cfg      PipelineConfig
	enricher *Enricher
	logger   *zap.Logger
}

// NewPipeline creates a new results processing pipeline.
func NewPipeline(cfg PipelineConfig, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	provider := cfg.SuggestionProvider
	if provider == nil {
		provider = providers.NewInMemorySuggestionProvider()
	}

	return &Pipeline{
		cfg:      cfg,
		enricher: NewEnricher(provider, logger),
		logger:   logger.Named("results_pipeline"),
	}
}

// Process summarizes, filters, prioritizes and enriches one report. The summary
// always covers the full issue list; the filter only affects Issues.
func (p *Pipeline) Process(source string, report *schemas.VisualReport) Audit {
	audit := Audit{
		Source:  source,
		Summary: Summarize(report),
		Report:  report,
	}

	// 1. Filtering
	filtered := FilterMinSeverity(report.Issues, p.cfg.MinSeverity)

	// 2. Prioritization
	prioritized := Prioritize(filtered)

	// 3. Enrichment
	audit.Issues = make([]ProcessedIssue, 0, len(prioritized))
	for _, issue := range prioritized {
		audit.Issues = append(audit.Issues, p.enricher.Enrich(issue))
	}

	p.logger.Debug("Processed report",
		zap.String("source", source),
		zap.Int("issues", len(report.Issues)),
		zap.Int("kept", len(audit.Issues)),
	)
	return audit
}

// Failed builds the audit entry for an input that produced no report.
func (p *Pipeline) Failed(source string, err error) Audit {
	return Audit{
		Source:  source,
		Summary: Summary{Grade: Grade(0), BySeverity: map[string]int{}, ByType: map[string]int{}},
		Issues:  []ProcessedIssue{},
		Error:   err.Error(),
	}
}
