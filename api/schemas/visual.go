package schemas

import "math"

// -- Visual Clarity Schemas --

// MobileBreakpoint is the viewport width below which a viewport is treated as mobile.
const MobileBreakpoint = 768

// Viewport is the rendered viewport size in CSS pixels.
type Viewport struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// IsMobile reports whether the viewport is classified as mobile.
func (v Viewport) IsMobile() bool {
	return v.Width < MobileBreakpoint
}

// BoundingBox is an axis-aligned rectangle in page coordinates. Y grows downward
// and is not clamped to the viewport.
type BoundingBox struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Right returns the x coordinate of the right edge.
func (b BoundingBox) Right() float64 { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b BoundingBox) Bottom() float64 { return b.Y + b.Height }

// Area returns width * height.
func (b BoundingBox) Area() float64 { return b.Width * b.Height }

// IsEmpty is true for boxes that cover no area, including malformed negative sizes.
func (b BoundingBox) IsEmpty() bool {
	return !(b.Width > 0) || !(b.Height > 0)
}

// Intersection returns the overlapping rectangle of two boxes. The second return
// value is false when the boxes only touch or are disjoint.
func (b BoundingBox) Intersection(o BoundingBox) (BoundingBox, bool) {
	if b.Right() <= o.X || o.Right() <= b.X || b.Bottom() <= o.Y || o.Bottom() <= b.Y {
		return BoundingBox{}, false
	}
	x := math.Max(b.X, o.X)
	y := math.Max(b.Y, o.Y)
	return BoundingBox{
		X:      x,
		Y:      y,
		Width:  math.Min(b.Right(), o.Right()) - x,
		Height: math.Min(b.Bottom(), o.Bottom()) - y,
	}, true
}

// ElementSnapshot is one rendered element as extracted by the rendering collaborator.
type ElementSnapshot struct {
	// Selector is an opaque identifier. It is not guaranteed to be unique or valid CSS.
	Selector string      `json:"selector" yaml:"selector"`
	Text     string      `json:"text" yaml:"text"`
	Styles   StyleMap    `json:"styles" yaml:"styles"`
	BBox     BoundingBox `json:"bbox" yaml:"bbox"`

	// Visible and AboveFoldHint are advisory flags from the extractor. The engine
	// does not rely on them.
	Visible       *bool `json:"visible,omitempty" yaml:"visible,omitempty"`
	AboveFoldHint *bool `json:"above_fold,omitempty" yaml:"above_fold,omitempty"`
}

// Contributing reports whether the element has a drawable box. Zero-size
// elements are skipped by every analyzer.
func (e ElementSnapshot) Contributing() bool {
	return !e.BBox.IsEmpty()
}

// HasText reports whether the element carries visible text.
func (e ElementSnapshot) HasText() bool {
	return e.Text != ""
}

// AboveFold recomputes the above-the-fold state from the box position, ignoring
// the extractor's advisory flag.
func (e ElementSnapshot) AboveFold(v Viewport) bool {
	return e.BBox.Y < float64(v.Height)
}

// StyleSnapshot bundles the extracted elements with a selector-keyed style table
// used as a fallback when an element's own styles lack a property.
type StyleSnapshot struct {
	ComputedStyles map[string]StyleMap `json:"computed_styles" yaml:"computed_styles"`
	Elements       []ElementSnapshot   `json:"elements" yaml:"elements"`
}

// IssueType classifies a visual finding by the analyzer that raised it.
type IssueType string

const (
	IssueContrast   IssueType = "contrast"
	IssueTypography IssueType = "typography"
	IssueTapTarget  IssueType = "tap_target"
	IssueOverlap    IssueType = "overlap"
	IssueDensity    IssueType = "density"
	IssueAlignment  IssueType = "alignment"
	// IssueError is only emitted by the failure report.
	IssueError IssueType = "error"
)

// IssueTypes lists the analyzer issue types in aggregation order.
var IssueTypes = []IssueType{
	IssueContrast, IssueTypography, IssueTapTarget, IssueOverlap, IssueDensity, IssueAlignment,
}

// Issue is a single usability finding.
type Issue struct {
	Type     IssueType   `json:"type" yaml:"type"`
	Selector string      `json:"selector" yaml:"selector"`
	BBox     BoundingBox `json:"bbox" yaml:"bbox"`
	Severity Severity    `json:"severity" yaml:"severity"`
	Message  string      `json:"message" yaml:"message"`
}

// Feature keys that every successful VisualReport carries.
const (
	FeatureContrastScore   = "contrast_score"
	FeatureTypographyScore = "typography_score"
	FeatureTapTargetScore  = "tap_target_score"
	FeatureOverlapScore    = "overlap_score"
	FeatureDensityScore    = "density_score"
	FeatureAlignmentScore  = "alignment_score"
	FeatureViewportWidth   = "viewport_width"
	FeatureViewportHeight  = "viewport_height"
	FeatureIsMobile        = "is_mobile"
	FeatureTotalElements   = "total_elements"
	FeatureTotalIssues     = "total_issues"
)

// VisualReport is the engine's only output.
type VisualReport struct {
	Score    int            `json:"score" yaml:"score"`
	Issues   []Issue        `json:"issues" yaml:"issues"`
	Features map[string]any `json:"features" yaml:"features"`
}

// IssuesOfType returns the issues with the given type, preserving order.
func (r *VisualReport) IssuesOfType(t IssueType) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Type == t {
			out = append(out, issue)
		}
	}
	return out
}

// AuditInput is the document handed to the engine by the rendering collaborator.
type AuditInput struct {
	// Source names where the input came from (file path, URL). Informational only.
	Source        string        `json:"source,omitempty" yaml:"source,omitempty"`
	DOM           string        `json:"dom" yaml:"dom"`
	StyleSnapshot StyleSnapshot `json:"style_snapshot" yaml:"style_snapshot"`
	Viewport      Viewport      `json:"viewport" yaml:"viewport"`
}
