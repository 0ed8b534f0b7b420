package taptarget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/core"
	"go.uber.org/zap"
)

func target(selector string, w, h float64) schemas.ElementSnapshot {
	return schemas.ElementSnapshot{Selector: selector, Text: "Go", BBox: schemas.BoundingBox{X: 10, Y: 10, Width: w, Height: h}}
}

func analyze(vp schemas.Viewport, elements ...schemas.ElementSnapshot) core.Result {
	ac := core.NewAnalysisContext("", schemas.StyleSnapshot{Elements: elements}, vp, zap.NewNop())
	return NewAnalyzer(zap.NewNop()).Analyze(ac)
}

func TestTapTargetAnalyzer(t *testing.T) {
	t.Parallel()
	mobile := schemas.Viewport{Width: 375, Height: 667}

	t.Run("should flag a 30x25 button as high", func(t *testing.T) {
		t.Parallel()
		res := analyze(mobile, target("button", 30, 25))
		require.Len(t, res.Issues, 1)
		assert.Equal(t, schemas.SeverityHigh, res.Issues[0].Severity)
		assert.Contains(t, res.Issues[0].Message, "30x25px")
		assert.Contains(t, res.Issues[0].Message, "44x44px")
		assert.Equal(t, 85, res.Score)
	})

	t.Run("should flag targets between 32 and 44 pixels as medium", func(t *testing.T) {
		t.Parallel()
		res := analyze(mobile, target("a.nav", 120, 32), target("input", 200, 43.9))
		require.Len(t, res.Issues, 2)
		assert.Equal(t, schemas.SeverityMedium, res.Issues[0].Severity)
		assert.Equal(t, schemas.SeverityMedium, res.Issues[1].Severity)
		assert.Equal(t, 80, res.Score)
	})

	t.Run("should accept 44 pixel targets and non-interactive elements", func(t *testing.T) {
		t.Parallel()
		res := analyze(mobile, target("button", 44, 44), target("p", 10, 10), target("div.icon", 5, 5))
		assert.Empty(t, res.Issues)
	})

	t.Run("should skip zero-size targets", func(t *testing.T) {
		t.Parallel()
		res := analyze(mobile, target("button", 0, 10))
		assert.Empty(t, res.Issues)
	})

	t.Run("should not run on desktop viewports", func(t *testing.T) {
		t.Parallel()
		for _, vp := range []schemas.Viewport{{Width: 768, Height: 1024}, {Width: 1920, Height: 1080}} {
			res := analyze(vp, target("button", 30, 25))
			assert.Empty(t, res.Issues)
			assert.Equal(t, 100, res.Score)
		}
	})
}
