// internal/analysis/visual/overlap/analyzer.go
package overlap

import (
	"fmt"
	"math"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/core"
	"go.uber.org/zap"
)

const (
	// MinOverlapFraction of the smaller element's area that an intersection must
	// exceed before it is reported.
	MinOverlapFraction = 0.1

	penaltyOverlap = 8
)

// Analyzer reports pairs of elements whose boxes overlap beyond incidental
// edge contact. Every unordered pair is considered once, so the cost is
// quadratic in the element count.
type Analyzer struct {
	core.BaseAnalyzer
}

// NewAnalyzer creates an overlap detector.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{
		BaseAnalyzer: *core.NewBaseAnalyzer("overlap", "Detects overlapping elements", schemas.IssueOverlap, logger),
	}
}

// Analyze compares each pair (i, j) with i < j in input order.
func (a *Analyzer) Analyze(ac *core.AnalysisContext) core.Result {
	result := core.NewResult()
	elements := ac.Contributing()

	for i := 0; i < len(elements); i++ {
		for j := i + 1; j < len(elements); j++ {
			first, second := elements[i], elements[j]

			inter, ok := first.BBox.Intersection(second.BBox)
			if !ok {
				continue
			}
			smaller := math.Min(first.BBox.Area(), second.BBox.Area())
			if inter.Area() <= MinOverlapFraction*smaller {
				continue
			}

			result.Add(schemas.Issue{
				Type:     schemas.IssueOverlap,
				Selector: first.Selector,
				BBox:     first.BBox,
				Severity: schemas.SeverityMedium,
				Message: fmt.Sprintf("%s overlaps %s by %spx² (%.0f%% of the smaller element).",
					capitalize(core.Describe(first)), core.Describe(second), core.FormatPx(inter.Area()), 100*inter.Area()/smaller),
			}, penaltyOverlap)
		}
	}

	return result
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
