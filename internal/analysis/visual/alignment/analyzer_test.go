package alignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/core"
	"go.uber.org/zap"
)

func at(selector string, x, y float64) schemas.ElementSnapshot {
	return schemas.ElementSnapshot{Selector: selector, BBox: schemas.BoundingBox{X: x, Y: y, Width: 50, Height: 20}}
}

func analyze(elements ...schemas.ElementSnapshot) core.Result {
	ac := core.NewAnalysisContext("", schemas.StyleSnapshot{Elements: elements}, schemas.Viewport{Width: 1280, Height: 800}, zap.NewNop())
	return NewAnalyzer(zap.NewNop()).Analyze(ac)
}

func TestAlignmentAnalyzer(t *testing.T) {
	t.Parallel()

	t.Run("should accept a deviation of 8px", func(t *testing.T) {
		t.Parallel()
		res := analyze(at("div.a", 100, 100), at("div.b", 104, 105), at("div.c", 108, 110))
		assert.Empty(t, res.Issues)
		assert.Equal(t, 100, res.Score)
	})

	t.Run("should flag a deviation of 9px exactly once", func(t *testing.T) {
		t.Parallel()
		res := analyze(at("div.a", 100, 100), at("div.b", 104, 105), at("div.c", 109, 110))
		require.Len(t, res.Issues, 1)
		issue := res.Issues[0]
		assert.Equal(t, schemas.SeverityLow, issue.Severity)
		assert.Equal(t, "div.a", issue.Selector)
		assert.Contains(t, issue.Message, "deviation of 9px")
		assert.Equal(t, 95, res.Score)
	})

	t.Run("should ignore rows with fewer than three elements", func(t *testing.T) {
		t.Parallel()
		res := analyze(at("div.a", 0, 100), at("div.b", 500, 100))
		assert.Empty(t, res.Issues)
	})

	t.Run("should anchor rows on the first element's y", func(t *testing.T) {
		t.Parallel()
		// y=100 starts a row; 120 joins it (inclusive); 135 is 35px from the anchor
		// and starts a new row even though it is 15px from the previous element.
		res := analyze(at("div.a", 0, 100), at("div.b", 50, 120), at("div.c", 200, 135))
		assert.Empty(t, res.Issues)

		res = analyze(at("div.a", 0, 100), at("div.b", 50, 120), at("div.c", 200, 80))
		assert.Len(t, res.Issues, 1)
	})

	t.Run("should assign elements to the first matching row", func(t *testing.T) {
		t.Parallel()
		res := analyze(
			at("div.a", 0, 0), at("div.b", 0, 10), at("div.c", 0, 20),
			at("div.d", 0, 100), at("div.e", 30, 110), at("div.f", 60, 120),
		)
		require.Len(t, res.Issues, 1)
		assert.Equal(t, "div.d", res.Issues[0].Selector)
	})

	t.Run("should skip zero-size elements", func(t *testing.T) {
		t.Parallel()
		zero := at("div.z", 400, 100)
		zero.BBox.Width = 0
		res := analyze(at("div.a", 0, 100), at("div.b", 0, 100), zero)
		assert.Empty(t, res.Issues)
	})
}
