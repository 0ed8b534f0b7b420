// internal/analysis/visual/alignment/analyzer.go
package alignment

import (
	"fmt"
	"math"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/core"
	"go.uber.org/zap"
)

const (
	// RowTolerance is the vertical distance within which an element joins a row.
	RowTolerance = 20.0
	// MinRowSize is the smallest row that is checked for alignment.
	MinRowSize = 3
	// MaxLeftDeviation is the largest accepted spread of left edges within a row.
	MaxLeftDeviation = 8.0

	penaltyMisaligned = 5
)

// Analyzer groups elements into visual rows and flags rows whose left edges
// drift apart.
type Analyzer struct {
	core.BaseAnalyzer
}

// NewAnalyzer creates an alignment analyzer.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{
		BaseAnalyzer: *core.NewBaseAnalyzer("alignment", "Checks left-edge alignment within rows", schemas.IssueAlignment, logger),
	}
}

// row keeps the y of the element that started it; later members do not move it.
type row struct {
	y       float64
	members []schemas.ElementSnapshot
}

// Analyze emits at most one issue per row.
func (a *Analyzer) Analyze(ac *core.AnalysisContext) core.Result {
	result := core.NewResult()

	for _, r := range groupRows(ac.Contributing()) {
		if len(r.members) < MinRowSize {
			continue
		}

		minX, maxX := math.Inf(1), math.Inf(-1)
		for _, el := range r.members {
			minX = math.Min(minX, el.BBox.X)
			maxX = math.Max(maxX, el.BBox.X)
		}
		deviation := maxX - minX
		if deviation <= MaxLeftDeviation {
			continue
		}

		first := r.members[0]
		result.Add(schemas.Issue{
			Type:     schemas.IssueAlignment,
			Selector: first.Selector,
			BBox:     first.BBox,
			Severity: schemas.SeverityLow,
			Message: fmt.Sprintf("Inconsistent alignment: %d elements in the row near y=%spx have a left-edge deviation of %spx (tolerance %.0fpx).",
				len(r.members), core.FormatPx(r.y), core.FormatPx(deviation), MaxLeftDeviation),
		}, penaltyMisaligned)
	}

	return result
}

// groupRows assigns each element to the first row whose y is within RowTolerance.
func groupRows(elements []schemas.ElementSnapshot) []*row {
	var rows []*row
	for _, el := range elements {
		var target *row
		for _, r := range rows {
			if math.Abs(el.BBox.Y-r.y) <= RowTolerance {
				target = r
				break
			}
		}
		if target == nil {
			target = &row{y: el.BBox.Y}
			rows = append(rows, target)
		}
		target.members = append(target.members, el)
	}
	return rows
}
