// internal/analysis/visual/taptarget/analyzer.go
package taptarget

import (
	"fmt"
	"math"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/core"
	"go.uber.org/zap"
)

const (
	// MinTargetSize is the recommended minimum touch target edge in CSS pixels.
	MinTargetSize = 44.0
	// Targets with a smaller edge than this are reported as high severity.
	CriticalTargetSize = 32.0

	penaltyCritical = 15
	penaltySmall    = 10
)

// Analyzer flags interactive elements that are too small to tap reliably. It
// only runs on mobile viewports.
type Analyzer struct {
	core.BaseAnalyzer
}

// NewAnalyzer creates a tap-target analyzer.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{
		BaseAnalyzer: *core.NewBaseAnalyzer("tap_target", "Checks touch target sizes on mobile viewports", schemas.IssueTapTarget, logger),
	}
}

// Analyze returns a perfect score on non-mobile viewports.
func (a *Analyzer) Analyze(ac *core.AnalysisContext) core.Result {
	result := core.NewResult()
	if !ac.IsMobile() {
		return result
	}

	for _, el := range ac.Elements {
		if !el.Contributing() || !core.IsInteractive(el.Selector) {
			continue
		}

		smallest := math.Min(el.BBox.Width, el.BBox.Height)
		if smallest >= MinTargetSize {
			continue
		}

		severity, penalty := schemas.SeverityMedium, penaltySmall
		if smallest < CriticalTargetSize {
			severity, penalty = schemas.SeverityHigh, penaltyCritical
		}
		result.Add(schemas.Issue{
			Type:     schemas.IssueTapTarget,
			Selector: el.Selector,
			BBox:     el.BBox,
			Severity: severity,
			Message: fmt.Sprintf("Tap target on %s is %sx%spx, below the recommended %.0fx%.0fpx minimum.",
				core.Describe(el), core.FormatPx(el.BBox.Width), core.FormatPx(el.BBox.Height), MinTargetSize, MinTargetSize),
		}, penalty)
	}

	return result
}
