// internal/reporting/envelope.go
package reporting

import (
	"fmt"
	"io"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/results"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope is the document written by the json and yaml formats.
type Envelope struct {
	RunID       string          `json:"run_id" yaml:"run_id"`
	ToolVersion string          `json:"tool_version,omitempty" yaml:"tool_version,omitempty"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Audits      []EnvelopeAudit `json:"audits" yaml:"audits"`
}

// EnvelopeAudit is one audit within an Envelope.
type EnvelopeAudit struct {
	Source  string                   `json:"source" yaml:"source"`
	Grade   string                   `json:"grade" yaml:"grade"`
	Summary results.Summary          `json:"summary" yaml:"summary"`
	Issues  []results.ProcessedIssue `json:"issues" yaml:"issues"`
	Report  *schemas.VisualReport    `json:"report,omitempty" yaml:"report,omitempty"`
	Error   string                   `json:"error,omitempty" yaml:"error,omitempty"`
}

// EnvelopeReporter buffers audits and encodes them as one JSON or YAML
// document on Close. It is thread safe.
type EnvelopeReporter struct {
	writer   io.WriteCloser
	format   string
	envelope Envelope
	logger   *zap.Logger
	mu       sync.Mutex
}

// NewEnvelopeReporter creates a reporter for the json or yaml format.
func NewEnvelopeReporter(writer io.WriteCloser, format string, run RunInfo, logger *zap.Logger) *EnvelopeReporter {
	return &EnvelopeReporter{
		writer: writer,
		format: format,
		envelope: Envelope{
			RunID:       run.ID,
			ToolVersion: run.ToolVersion,
			GeneratedAt: time.Now().UTC(),
			Audits:      []EnvelopeAudit{},
		},
		logger: logger.Named(format + "_reporter"),
	}
}

// Write adds an audit to the envelope.
func (r *EnvelopeReporter) Write(audit *results.Audit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	issues := audit.Issues
	if issues == nil {
		issues = []results.ProcessedIssue{}
	}
	r.envelope.Audits = append(r.envelope.Audits, EnvelopeAudit{
		Source:  audit.Source,
		Grade:   audit.Summary.Grade,
		Summary: audit.Summary,
		Issues:  issues,
		Report:  audit.Report,
		Error:   audit.Error,
	})
	return nil
}

// Close encodes the envelope and closes the writer.
func (r *EnvelopeReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var encodeErr error
	switch r.format {
	case FormatYAML:
		enc := yaml.NewEncoder(r.writer)
		enc.SetIndent(2)
		encodeErr = enc.Encode(r.envelope)
		if encodeErr == nil {
			encodeErr = enc.Close()
		}
	default:
		enc := json.NewEncoder(r.writer)
		enc.SetIndent("", "  ")
		encodeErr = enc.Encode(r.envelope)
	}
	// Always attempt to close the writer, regardless of encoding success.
	closeErr := r.writer.Close()

	if encodeErr != nil {
		r.logger.Error("Failed to encode report", zap.Error(encodeErr))
		return fmt.Errorf("failed to encode %s output: %w", r.format, encodeErr)
	}
	if closeErr != nil {
		r.logger.Error("Failed to close output writer", zap.Error(closeErr))
		return fmt.Errorf("failed to close output writer: %w", closeErr)
	}

	r.logger.Info("Wrote report", zap.Int("audits", len(r.envelope.Audits)))
	return nil
}
