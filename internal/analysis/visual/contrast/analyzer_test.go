package contrast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/core"
	"go.uber.org/zap"
)

var desktop = schemas.Viewport{Width: 1920, Height: 1080}

func textElement(selector, text string, styles schemas.StyleMap) schemas.ElementSnapshot {
	return schemas.ElementSnapshot{
		Selector: selector,
		Text:     text,
		Styles:   styles,
		BBox:     schemas.BoundingBox{X: 10, Y: 10, Width: 200, Height: 30},
	}
}

func analyze(t *testing.T, snapshot schemas.StyleSnapshot) core.Result {
	t.Helper()
	ac := core.NewAnalysisContext("", snapshot, desktop, zap.NewNop())
	return NewAnalyzer(zap.NewNop()).Analyze(ac)
}

func TestContrastAnalyzer(t *testing.T) {
	t.Parallel()

	t.Run("should not flag black on white", func(t *testing.T) {
		t.Parallel()
		res := analyze(t, schemas.StyleSnapshot{Elements: []schemas.ElementSnapshot{
			textElement("h1", "Welcome", schemas.StyleMap{Color: "rgb(0, 0, 0)", BackgroundColor: "rgb(255, 255, 255)", FontSize: "24px"}),
		}})
		assert.Equal(t, 100, res.Score)
		assert.Empty(t, res.Issues)
	})

	t.Run("should flag severe failures as high", func(t *testing.T) {
		t.Parallel()
		res := analyze(t, schemas.StyleSnapshot{Elements: []schemas.ElementSnapshot{
			textElement("p", "Body copy", schemas.StyleMap{Color: "rgb(170, 170, 170)", BackgroundColor: "white", FontSize: "16px"}),
		}})
		require.Len(t, res.Issues, 1)
		issue := res.Issues[0]
		assert.Equal(t, schemas.IssueContrast, issue.Type)
		assert.Equal(t, schemas.SeverityHigh, issue.Severity)
		assert.Equal(t, "p", issue.Selector)
		assert.Contains(t, issue.Message, "2.32:1")
		assert.Contains(t, issue.Message, `the paragraph "Body copy"`)
		assert.Equal(t, 85, res.Score)
	})

	t.Run("should flag AA failures above 3:1 as medium", func(t *testing.T) {
		t.Parallel()
		// #767676 on white is about 4.54:1, #888 about 3.54:1.
		res := analyze(t, schemas.StyleSnapshot{Elements: []schemas.ElementSnapshot{
			textElement("span", "Caption", schemas.StyleMap{Color: "#888", FontSize: "14px"}),
		}})
		require.Len(t, res.Issues, 1)
		assert.Equal(t, schemas.SeverityMedium, res.Issues[0].Severity)
		assert.Equal(t, 90, res.Score)
	})

	t.Run("should flag AA passes below AAA as low", func(t *testing.T) {
		t.Parallel()
		res := analyze(t, schemas.StyleSnapshot{Elements: []schemas.ElementSnapshot{
			textElement("span", "Caption", schemas.StyleMap{Color: "#767676", FontSize: "16px"}),
		}})
		require.Len(t, res.Issues, 1)
		assert.Equal(t, schemas.SeverityLow, res.Issues[0].Severity)
		assert.Contains(t, res.Issues[0].Message, "AAA")
		assert.Equal(t, 97, res.Score)
	})

	t.Run("should use the large text thresholds for bold 14px text", func(t *testing.T) {
		t.Parallel()
		// #888 on white passes AA large (3.0) but not AAA large (4.5).
		res := analyze(t, schemas.StyleSnapshot{Elements: []schemas.ElementSnapshot{
			textElement("strong", "Bold", schemas.StyleMap{Color: "#888", FontSize: "14px", FontWeight: "700"}),
		}})
		require.Len(t, res.Issues, 1)
		assert.Equal(t, schemas.SeverityLow, res.Issues[0].Severity)
	})

	t.Run("should treat absent and transparent backgrounds as white", func(t *testing.T) {
		t.Parallel()
		res := analyze(t, schemas.StyleSnapshot{Elements: []schemas.ElementSnapshot{
			textElement("p", "One", schemas.StyleMap{Color: "white"}),
			textElement("p", "Two", schemas.StyleMap{Color: "white", BackgroundColor: "transparent"}),
			textElement("p", "Three", schemas.StyleMap{Color: "white", BackgroundColor: "rgba(0, 0, 0, 0)"}),
		}})
		require.Len(t, res.Issues, 3)
		for _, issue := range res.Issues {
			assert.Equal(t, schemas.SeverityHigh, issue.Severity)
		}
	})

	t.Run("should skip unparseable colors, empty text and zero-size boxes", func(t *testing.T) {
		t.Parallel()
		zero := textElement("p", "Hidden", schemas.StyleMap{Color: "#eee"})
		zero.BBox.Width = 0
		res := analyze(t, schemas.StyleSnapshot{Elements: []schemas.ElementSnapshot{
			textElement("p", "Bad", schemas.StyleMap{Color: "hsl(0, 0%, 90%)"}),
			textElement("p", "Bad bg", schemas.StyleMap{Color: "#eee", BackgroundColor: "url(x.png)"}),
			textElement("p", "", schemas.StyleMap{Color: "#eee"}),
			textElement("p", "Plain black", schemas.StyleMap{Color: "#000"}),
			zero,
		}})
		assert.Empty(t, res.Issues)
		assert.Equal(t, 100, res.Score)
	})

	t.Run("should treat a missing text color as black", func(t *testing.T) {
		t.Parallel()
		res := analyze(t, schemas.StyleSnapshot{Elements: []schemas.ElementSnapshot{
			textElement("p", "Dark on dark", schemas.StyleMap{BackgroundColor: "rgb(0, 0, 0)"}),
			textElement("p", "Default on white", schemas.StyleMap{}),
		}})
		require.Len(t, res.Issues, 1)
		assert.Equal(t, schemas.SeverityHigh, res.Issues[0].Severity)
		assert.Contains(t, res.Issues[0].Message, "1.00:1")
		assert.Equal(t, 85, res.Score)
	})

	t.Run("should resolve heading colors from the computed style table", func(t *testing.T) {
		t.Parallel()
		res := analyze(t, schemas.StyleSnapshot{
			ComputedStyles: map[string]schemas.StyleMap{"h2": {Color: "#ccc", BackgroundColor: "#fff"}},
			Elements:       []schemas.ElementSnapshot{textElement("section > h2.title", "Pricing", schemas.StyleMap{})},
		})
		require.Len(t, res.Issues, 1)
		assert.Contains(t, res.Issues[0].Message, "heading")
	})

	t.Run("should floor the score at zero", func(t *testing.T) {
		t.Parallel()
		var elements []schemas.ElementSnapshot
		for i := 0; i < 10; i++ {
			elements = append(elements, textElement("p", "x", schemas.StyleMap{Color: "#fefefe"}))
		}
		res := analyze(t, schemas.StyleSnapshot{Elements: elements})
		assert.Len(t, res.Issues, 10)
		assert.Equal(t, 0, res.Score)
	})
}
