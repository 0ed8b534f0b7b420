// internal/analysis/visual/contrast/analyzer.go
package contrast

import (
	"fmt"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/core"
	"github.com/xkilldash9x/clarity-cli/internal/style"
	"go.uber.org/zap"
)

// -- WCAG Thresholds --

const (
	MinRatioAANormal  = 4.5
	MinRatioAALarge   = 3.0
	MinRatioAAANormal = 7.0
	MinRatioAAALarge  = 4.5

	// Below this ratio a failing pair is reported as high severity.
	severeRatio = 3.0

	penaltySevere  = 15
	penaltyFailAA  = 10
	penaltyFailAAA = 3
)

// Analyzer flags text whose contrast against its background misses the WCAG
// AA or AAA thresholds.
type Analyzer struct {
	core.BaseAnalyzer
}

// NewAnalyzer creates a contrast analyzer.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{
		BaseAnalyzer: *core.NewBaseAnalyzer("contrast", "Checks text/background contrast against WCAG AA and AAA", schemas.IssueContrast, logger),
	}
}

// Analyze checks every visible, text-bearing element.
func (a *Analyzer) Analyze(ac *core.AnalysisContext) core.Result {
	result := core.NewResult()

	for _, el := range ac.Elements {
		if !el.Contributing() || !el.HasText() {
			continue
		}
		a.checkElement(ac, el, &result)
	}

	return result
}

func (a *Analyzer) checkElement(ac *core.AnalysisContext, el schemas.ElementSnapshot, result *core.Result) {
	fg, ok := a.foreground(ac, el)
	if !ok {
		return
	}
	bg, ok := a.background(ac, el)
	if !ok {
		return
	}

	fontSize := style.BaseFontSize
	if raw, ok := ac.Styles.Lookup(el, schemas.PropFontSize); ok {
		fontSize = style.ParseFontSizePx(raw)
	}
	weight, _ := ac.Styles.Lookup(el, schemas.PropFontWeight)
	large := style.IsLargeText(fontSize, style.IsBold(weight))

	minAA, minAAA := MinRatioAANormal, MinRatioAAANormal
	if large {
		minAA, minAAA = MinRatioAALarge, MinRatioAAALarge
	}

	ratio := style.ContrastRatio(fg, bg)
	switch {
	case ratio < minAA:
		severity, penalty := schemas.SeverityMedium, penaltyFailAA
		if ratio < severeRatio {
			severity, penalty = schemas.SeverityHigh, penaltySevere
		}
		a.report(result, el, severity, penalty, fmt.Sprintf(
			"Text contrast ratio of %.2f:1 on %s is below the WCAG AA minimum of %.1f:1.",
			ratio, core.Describe(el), minAA))
	case ratio < minAAA:
		a.report(result, el, schemas.SeverityLow, penaltyFailAAA, fmt.Sprintf(
			"Text contrast ratio of %.2f:1 on %s meets WCAG AA but is below the AAA target of %.1f:1.",
			ratio, core.Describe(el), minAAA))
	}
}

// foreground resolves the text color; absent means black.
func (a *Analyzer) foreground(ac *core.AnalysisContext, el schemas.ElementSnapshot) (style.Color, bool) {
	raw, ok := ac.Styles.Lookup(el, schemas.PropColor)
	if !ok {
		return style.Black, true
	}
	c, ok := style.ParseColor(raw)
	if !ok {
		a.Logger.Debug("Skipping element with an unparseable text color.", zap.String("selector", el.Selector), zap.String("color", raw))
		return style.Color{}, false
	}
	return c, true
}

// background resolves the background color; absent or transparent means white.
func (a *Analyzer) background(ac *core.AnalysisContext, el schemas.ElementSnapshot) (style.Color, bool) {
	raw, ok := ac.Styles.Lookup(el, schemas.PropBackgroundColor)
	if !ok {
		return style.White, true
	}
	c, ok := style.ParseColor(raw)
	if !ok {
		a.Logger.Debug("Skipping element with an unparseable background color.", zap.String("selector", el.Selector), zap.String("background", raw))
		return style.Color{}, false
	}
	if c.IsTransparent() {
		return style.White, true
	}
	return c, true
}

func (a *Analyzer) report(result *core.Result, el schemas.ElementSnapshot, severity schemas.Severity, penalty int, message string) {
	result.Add(schemas.Issue{
		Type:     schemas.IssueContrast,
		Selector: el.Selector,
		BBox:     el.BBox,
		Severity: severity,
		Message:  message,
	}, penalty)
}
