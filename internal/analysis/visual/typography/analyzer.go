// internal/analysis/visual/typography/analyzer.go
package typography

import (
	"fmt"
	"math"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/core"
	"github.com/xkilldash9x/clarity-cli/internal/style"
	"go.uber.org/zap"
)

// -- Readability Thresholds --

const (
	MinFontSizeDesktop = 16.0
	MinFontSizeMobile  = 14.0
	// Fonts below this size are reported as high severity on any viewport.
	CriticalFontSize = 12.0

	MinLineHeight = 1.3

	// Average glyph advance as a fraction of the font size.
	CharWidthFactor = 0.6
	MaxLineLength   = 90

	penaltyTinyFont   = 12
	penaltySmallFont  = 8
	penaltyLineHeight = 5
	penaltyLineLength = 5
)

// Analyzer flags undersized fonts, cramped line-height and overly long lines.
// The three checks are independent, so one element may raise up to three issues.
type Analyzer struct {
	core.BaseAnalyzer
}

// NewAnalyzer creates a typography analyzer.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{
		BaseAnalyzer: *core.NewBaseAnalyzer("typography", "Checks font size, line-height and line length", schemas.IssueTypography, logger),
	}
}

// Analyze runs the typography checks over every visible, text-bearing element.
func (a *Analyzer) Analyze(ac *core.AnalysisContext) core.Result {
	result := core.NewResult()

	minFont, viewportKind := MinFontSizeDesktop, "desktop"
	if ac.IsMobile() {
		minFont, viewportKind = MinFontSizeMobile, "mobile"
	}

	for _, el := range ac.Elements {
		if !el.Contributing() || !el.HasText() {
			continue
		}

		fontSize := style.BaseFontSize
		if raw, ok := ac.Styles.Lookup(el, schemas.PropFontSize); ok {
			fontSize = style.ParseFontSizePx(raw)
		}

		a.checkFontSize(&result, el, fontSize, minFont, viewportKind)
		a.checkLineHeight(ac, &result, el, fontSize)
		a.checkLineLength(&result, el, fontSize)
	}

	return result
}

func (a *Analyzer) checkFontSize(result *core.Result, el schemas.ElementSnapshot, fontSize, minFont float64, viewportKind string) {
	if fontSize >= minFont {
		return
	}
	severity, penalty := schemas.SeverityMedium, penaltySmallFont
	if fontSize < CriticalFontSize {
		severity, penalty = schemas.SeverityHigh, penaltyTinyFont
	}
	report(result, el, severity, penalty, fmt.Sprintf(
		"Font size %spx on %s is below the %spx minimum for %s viewports.",
		core.FormatPx(fontSize), core.Describe(el), core.FormatPx(minFont), viewportKind))
}

// checkLineHeight is skipped when the element has no line-height at all.
func (a *Analyzer) checkLineHeight(ac *core.AnalysisContext, result *core.Result, el schemas.ElementSnapshot, fontSize float64) {
	raw, ok := ac.Styles.Lookup(el, schemas.PropLineHeight)
	if !ok {
		return
	}
	ratio, ok := style.LineHeightRatio(raw, fontSize)
	if !ok {
		a.Logger.Debug("Skipping unparseable line-height.", zap.String("selector", el.Selector), zap.String("line_height", raw))
		return
	}
	if ratio >= MinLineHeight {
		return
	}
	report(result, el, schemas.SeverityMedium, penaltyLineHeight, fmt.Sprintf(
		"Line height %.2f on %s is cramped; use at least %.1f times the font size.",
		ratio, core.Describe(el), MinLineHeight))
}

func (a *Analyzer) checkLineLength(result *core.Result, el schemas.ElementSnapshot, fontSize float64) {
	charsPerLine := el.BBox.Width / (fontSize * CharWidthFactor)
	if charsPerLine <= MaxLineLength {
		return
	}
	report(result, el, schemas.SeverityLow, penaltyLineLength, fmt.Sprintf(
		"Line length of about %d characters on %s exceeds the %d character maximum.",
		int(math.Round(charsPerLine)), core.Describe(el), MaxLineLength))
}

func report(result *core.Result, el schemas.ElementSnapshot, severity schemas.Severity, penalty int, message string) {
	result.Add(schemas.Issue{
		Type:     schemas.IssueTypography,
		Selector: el.Selector,
		BBox:     el.BBox,
		Severity: severity,
		Message:  message,
	}, penalty)
}
