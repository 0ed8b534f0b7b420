// internal/reporting/text_reporter.go
package reporting

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/results"
)

// subScores lists the sub-score features in display order.
var subScores = []struct {
	label string
	key   string
}{
	{"Contrast", schemas.FeatureContrastScore},
	{"Typography", schemas.FeatureTypographyScore},
	{"Tap targets", schemas.FeatureTapTargetScore},
	{"Overlap", schemas.FeatureOverlapScore},
	{"Density", schemas.FeatureDensityScore},
	{"Alignment", schemas.FeatureAlignmentScore},
}

// maxSelectorWidth truncates long selectors in the issue table.
const maxSelectorWidth = 48

// TextReporter writes a human readable report as audits arrive.
type TextReporter struct {
	writer io.WriteCloser
	logger *zap.Logger
	mu     sync.Mutex

	audits, failed, issues int
}

// NewTextReporter creates a reporter for the text format.
func NewTextReporter(writer io.WriteCloser, logger *zap.Logger) *TextReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextReporter{writer: writer, logger: logger.Named("text_reporter")}
}

// Write renders one audit.
func (r *TextReporter) Write(audit *results.Audit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.audits++
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", audit.Source)

	if audit.Error != "" {
		r.failed++
		fmt.Fprintf(&b, "ERROR: %s\n\n", audit.Error)
		return r.flush(b.String())
	}

	s := audit.Summary
	fmt.Fprintf(&b, "Score: %d/100 (%s)\n%s\n", s.Score, s.Grade, s.Headline)
	if s.Total > 0 {
		fmt.Fprintf(&b, "Issues: %d (high %d, medium %d, low %d), potential gain +%d\n",
			s.Total, s.BySeverity[string(schemas.SeverityHigh)], s.BySeverity[string(schemas.SeverityMedium)],
			s.BySeverity[string(schemas.SeverityLow)], s.PotentialGain)
	}
	b.WriteString("\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	if audit.Report != nil {
		for _, sub := range subScores {
			if v, ok := audit.Report.Features[sub.key]; ok {
				fmt.Fprintf(tw, "  %s\t%v\n", sub.label, v)
			}
		}
		if level, ok := audit.Report.Features["wcag_level"]; ok {
			fmt.Fprintf(tw, "  WCAG\t%v\n", level)
		}
	}
	_ = tw.Flush()

	if len(audit.Issues) > 0 {
		b.WriteString("\n")
		tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  SEVERITY\tTYPE\tSELECTOR\tMESSAGE")
		for _, issue := range audit.Issues {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
				strings.ToUpper(string(issue.Severity)), issue.Type, truncate(issue.Selector, maxSelectorWidth), issue.Message)
			if issue.Suggestion != "" {
				fmt.Fprintf(tw, "  \t\t\t-> %s\n", issue.Suggestion)
			}
		}
		_ = tw.Flush()
	}
	b.WriteString("\n")

	r.issues += len(audit.Issues)
	return r.flush(b.String())
}

func (r *TextReporter) flush(s string) error {
	if _, err := io.WriteString(r.writer, s); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}

// Close writes the run totals and closes the writer.
func (r *TextReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	writeErr := r.flush(fmt.Sprintf("%d audit(s), %d failed, %d issue(s) reported\n", r.audits, r.failed, r.issues))
	closeErr := r.writer.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		r.logger.Error("Failed to close output writer", zap.Error(closeErr))
		return fmt.Errorf("failed to close output writer: %w", closeErr)
	}
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
