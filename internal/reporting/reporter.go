// internal/reporting/reporter.go
package reporting

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/clarity-cli/internal/results"
)

// ErrUnsupportedFormat is returned by New for unknown report formats.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Supported report formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatSARIF = "sarif"
)

// Formats lists the supported report formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatSARIF}

// Reporter defines the interface for writing audit results to an output.
type Reporter interface {
	// Write processes a single audit.
	Write(audit *results.Audit) error
	// Close finalizes the report and closes any underlying resources (e.g., file handles).
	Close() error
}

// RunInfo identifies the run a report belongs to.
type RunInfo struct {
	ID          string
	ToolVersion string
}

// nopWriteCloser wraps an io.Writer and provides a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error {
	return nil
}

// IsSupportedFormat reports whether New accepts the format.
func IsSupportedFormat(format string) bool {
	for _, f := range Formats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// New creates a new reporter based on the specified format and output path.
func New(format, outputPath string, run RunInfo, logger *zap.Logger) (Reporter, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	// Check before touching the filesystem so a bad flag leaves no empty file behind.
	if !IsSupportedFormat(format) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	var writer io.WriteCloser
	if outputPath == "" || outputPath == "stdout" {
		// Wrap Stdout so Close() is a no-op.
		writer = &nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}

	// Each reporter takes ownership of the writer.
	switch format {
	case FormatSARIF:
		return NewSARIFReporter(writer, run, logger), nil
	case FormatJSON, FormatYAML:
		return NewEnvelopeReporter(writer, format, run, logger), nil
	default:
		return NewTextReporter(writer, logger), nil
	}
}
