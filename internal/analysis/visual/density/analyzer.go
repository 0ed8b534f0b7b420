// internal/analysis/visual/density/analyzer.go
package density

import (
	"fmt"
	"math"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/core"
	"go.uber.org/zap"
)

const (
	RegionWidth  = 1000.0
	RegionHeight = 800.0
	// MaxInteractivePerRegion is the largest interactive element count a region may hold.
	MaxInteractivePerRegion = 20

	penaltyDense = 15
)

// Analyzer bins interactive elements into fixed page regions and flags regions
// that are crowded with controls. Viewport size does not matter here.
type Analyzer struct {
	core.BaseAnalyzer
}

// NewAnalyzer creates a density analyzer.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{
		BaseAnalyzer: *core.NewBaseAnalyzer("density", "Detects clusters of interactive elements", schemas.IssueDensity, logger),
	}
}

type regionKey struct {
	col, row int64
}

type region struct {
	key     regionKey
	members []schemas.ElementSnapshot
}

// Analyze reports offending regions in the order their first element appears.
func (a *Analyzer) Analyze(ac *core.AnalysisContext) core.Result {
	result := core.NewResult()

	var regions []*region
	index := make(map[regionKey]*region)
	for _, el := range ac.Elements {
		if !el.Contributing() || !core.IsInteractive(el.Selector) {
			continue
		}
		key := keyFor(el.BBox)
		r, ok := index[key]
		if !ok {
			r = &region{key: key}
			index[key] = r
			regions = append(regions, r)
		}
		r.members = append(r.members, el)
	}

	for _, r := range regions {
		if len(r.members) <= MaxInteractivePerRegion {
			continue
		}
		first := r.members[0]
		result.Add(schemas.Issue{
			Type:     schemas.IssueDensity,
			Selector: first.Selector,
			BBox:     first.BBox,
			Severity: schemas.SeverityMedium,
			Message: fmt.Sprintf("High interactive element density: %d interactive elements in one %.0fx%.0fpx region at (%d, %d), above the limit of %d.",
				len(r.members), RegionWidth, RegionHeight,
				int64(RegionWidth)*r.key.col, int64(RegionHeight)*r.key.row, MaxInteractivePerRegion),
		}, penaltyDense)
	}

	return result
}

func keyFor(b schemas.BoundingBox) regionKey {
	return regionKey{
		col: int64(math.Floor(b.X / RegionWidth)),
		row: int64(math.Floor(b.Y / RegionHeight)),
	}
}
