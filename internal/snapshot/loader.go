// internal/snapshot/loader.go
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrEmptyInput is returned for documents with no content.
	ErrEmptyInput = errors.New("empty audit input")
	// ErrUnsupportedFormat is returned when a document is neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported audit input format")
)

// StdinPath is the path that selects standard input.
const StdinPath = "-"

// DefaultViewport is applied when a document carries no usable viewport.
var DefaultViewport = schemas.Viewport{Width: 1920, Height: 1080}

// Format identifies the encoding of an audit document.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension. Unknown extensions
// yield FormatAuto so the content is sniffed.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Sniff guesses the format of a document from its first significant byte.
func Sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return FormatAuto
	}
	switch trimmed[0] {
	case '{', '[':
		return FormatJSON
	default:
		return FormatYAML
	}
}

// document is the on-disk shape. css_snapshot is accepted as an alias of
// style_snapshot, and a bare style snapshot (top-level elements) is accepted too.
type document struct {
	Source         string                      `json:"source" yaml:"source"`
	DOM            string                      `json:"dom" yaml:"dom"`
	StyleSnapshot  *schemas.StyleSnapshot      `json:"style_snapshot" yaml:"style_snapshot"`
	CSSSnapshot    *schemas.StyleSnapshot      `json:"css_snapshot" yaml:"css_snapshot"`
	Viewport       *schemas.Viewport           `json:"viewport" yaml:"viewport"`
	ComputedStyles map[string]schemas.StyleMap `json:"computed_styles" yaml:"computed_styles"`
	Elements       []schemas.ElementSnapshot   `json:"elements" yaml:"elements"`
}

func (d document) toInput() schemas.AuditInput {
	input := schemas.AuditInput{Source: d.Source, DOM: d.DOM}
	switch {
	case d.StyleSnapshot != nil:
		input.StyleSnapshot = *d.StyleSnapshot
	case d.CSSSnapshot != nil:
		input.StyleSnapshot = *d.CSSSnapshot
	default:
		input.StyleSnapshot = schemas.StyleSnapshot{ComputedStyles: d.ComputedStyles, Elements: d.Elements}
	}
	if d.Viewport != nil && d.Viewport.Width > 0 && d.Viewport.Height > 0 {
		input.Viewport = *d.Viewport
	} else {
		input.Viewport = DefaultViewport
	}
	return input
}

// Decode parses one audit document.
func Decode(data []byte, format Format) (schemas.AuditInput, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return schemas.AuditInput{}, ErrEmptyInput
	}
	if format == FormatAuto {
		format = Sniff(data)
	}

	var doc document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return schemas.AuditInput{}, fmt.Errorf("failed to decode JSON audit input: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return schemas.AuditInput{}, fmt.Errorf("failed to decode YAML audit input: %w", err)
		}
	default:
		return schemas.AuditInput{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return doc.toInput(), nil
}

// Loader reads audit documents from files or standard input.
type Loader struct {
	stdin  io.Reader
	logger *zap.Logger
}

// NewLoader creates a Loader. A nil stdin means os.Stdin.
func NewLoader(stdin io.Reader, logger *zap.Logger) *Loader {
	if stdin == nil {
		stdin = os.Stdin
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{stdin: stdin, logger: logger.Named("snapshot")}
}

// Load reads and decodes one document. Source defaults to the path ("stdin"
// for standard input) when the document does not name itself.
func (l *Loader) Load(path string) (schemas.AuditInput, error) {
	var (
		data   []byte
		err    error
		source = path
	)
	if path == StdinPath {
		source = "stdin"
		data, err = io.ReadAll(l.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return schemas.AuditInput{}, fmt.Errorf("failed to read audit input %s: %w", source, err)
	}

	input, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return schemas.AuditInput{}, fmt.Errorf("%s: %w", source, err)
	}
	if input.Source == "" {
		input.Source = source
	}

	l.logger.Debug("Loaded audit input",
		zap.String("source", input.Source),
		zap.Int("elements", len(input.StyleSnapshot.Elements)),
		zap.Int("viewport_width", input.Viewport.Width),
		zap.Int("viewport_height", input.Viewport.Height),
	)
	return input, nil
}

// Cap truncates the element list to max entries and reports whether it did.
// A max of zero or less disables the cap.
func Cap(snapshot schemas.StyleSnapshot, max int) (schemas.StyleSnapshot, bool) {
	if max <= 0 || len(snapshot.Elements) <= max {
		return snapshot, false
	}
	snapshot.Elements = snapshot.Elements[:max]
	return snapshot, true
}
