// internal/engine/engine.go
package engine

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/core"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/visual/alignment"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/visual/contrast"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/visual/density"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/visual/overlap"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/visual/taptarget"
	"github.com/xkilldash9x/clarity-cli/internal/analysis/visual/typography"
	"github.com/xkilldash9x/clarity-cli/internal/dom"
)

// Weights holds the fixed share, in percent, of each sub-score in the overall
// score. They sum to 100.
var Weights = map[schemas.IssueType]int{
	schemas.IssueContrast:   25,
	schemas.IssueTypography: 20,
	schemas.IssueTapTarget:  15,
	schemas.IssueOverlap:    15,
	schemas.IssueDensity:    15,
	schemas.IssueAlignment:  10,
}

// scoreFeature maps an analyzer category to its sub-score feature key.
var scoreFeature = map[schemas.IssueType]string{
	schemas.IssueContrast:   schemas.FeatureContrastScore,
	schemas.IssueTypography: schemas.FeatureTypographyScore,
	schemas.IssueTapTarget:  schemas.FeatureTapTargetScore,
	schemas.IssueOverlap:    schemas.FeatureOverlapScore,
	schemas.IssueDensity:    schemas.FeatureDensityScore,
	schemas.IssueAlignment:  schemas.FeatureAlignmentScore,
}

// Additional feature keys.
const (
	FeatureInteractiveElements = "interactive_elements"
	FeatureTextElements        = "text_elements"
	FeatureAboveFoldElements   = "above_fold_elements"
	FeatureSkippedElements     = "skipped_elements"
	FeatureWCAGLevel           = "wcag_level"

	FeatureDOMNodeCount       = "dom_node_count"
	FeatureDOMMaxDepth        = "dom_max_depth"
	FeatureDOMHeadingCount    = "dom_heading_count"
	FeatureDOMImageCount      = "dom_image_count"
	FeatureDOMFormCount       = "dom_form_count"
	FeatureDOMHasViewportMeta = "dom_has_viewport_meta"
)

// WCAG compliance levels derived from the contrast issues of a report.
const (
	WCAGLevelAAA  = "AAA"
	WCAGLevelAA   = "AA"
	WCAGLevelFail = "FAIL"
)

// Engine runs the visual analyzers and aggregates their results. It holds no
// per-call state and is safe for concurrent use.
type Engine struct {
	logger    *zap.Logger
	analyzers []core.Analyzer
}

// Option configures an Engine.
type Option func(*Engine)

// WithAnalyzers replaces the default analyzer set. Analyzers run and report in
// the given order.
func WithAnalyzers(analyzers ...core.Analyzer) Option {
	return func(e *Engine) {
		e.analyzers = analyzers
	}
}

// New creates an engine with the six visual analyzers in aggregation order.
func New(logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("engine")

	e := &Engine{
		logger: logger,
		analyzers: []core.Analyzer{
			contrast.NewAnalyzer(logger),
			typography.NewAnalyzer(logger),
			taptarget.NewAnalyzer(logger),
			overlap.NewAnalyzer(logger),
			density.NewAnalyzer(logger),
			alignment.NewAnalyzer(logger),
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze is a convenience wrapper around a default, silent Engine.
func Analyze(markup string, snapshot schemas.StyleSnapshot, viewport schemas.Viewport) *schemas.VisualReport {
	return New(nil).Analyze(markup, snapshot, viewport)
}

// Analyze scores one page. It never panics: any internal failure is converted
// into the fixed failure report.
func (e *Engine) Analyze(markup string, snapshot schemas.StyleSnapshot, viewport schemas.Viewport) (report *schemas.VisualReport) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Visual analysis panicked",
				zap.Any("panicValue", r),
				zap.String("stack", string(debug.Stack())),
			)
			report = FailureReport(fmt.Errorf("%v", r))
		}
	}()

	ac := core.NewAnalysisContext(markup, snapshot, viewport, e.logger)

	issues := make([]schemas.Issue, 0)
	features := make(map[string]any, 24)
	weighted := 0
	for _, analyzer := range e.analyzers {
		res := analyzer.Analyze(ac)
		issues = append(issues, res.Issues...)
		weighted += res.Score * Weights[analyzer.Category()]
		if key, ok := scoreFeature[analyzer.Category()]; ok {
			features[key] = res.Score
		}
	}

	score := clamp(weighted/100, 0, core.MaxScore)

	features[schemas.FeatureViewportWidth] = viewport.Width
	features[schemas.FeatureViewportHeight] = viewport.Height
	features[schemas.FeatureIsMobile] = viewport.IsMobile()
	features[schemas.FeatureTotalElements] = len(snapshot.Elements)
	features[schemas.FeatureTotalIssues] = len(issues)
	e.addElementFeatures(features, snapshot.Elements, viewport)
	features[FeatureWCAGLevel] = wcagLevel(issues)
	e.addDOMFeatures(features, markup)

	e.logger.Debug("Visual analysis complete",
		zap.Int("score", score),
		zap.Int("issues", len(issues)),
		zap.Int("elements", len(snapshot.Elements)),
	)

	return &schemas.VisualReport{Score: score, Issues: issues, Features: features}
}

// FailureReport is the report returned when analysis cannot complete.
func FailureReport(err error) *schemas.VisualReport {
	return &schemas.VisualReport{
		Score: 0,
		Issues: []schemas.Issue{{
			Type:     schemas.IssueError,
			Severity: schemas.SeverityHigh,
			Message:  fmt.Sprintf("Visual analysis failed: %v", err),
		}},
		Features: map[string]any{},
	}
}

func (e *Engine) addElementFeatures(features map[string]any, elements []schemas.ElementSnapshot, viewport schemas.Viewport) {
	var interactive, text, aboveFold, skipped int
	for _, el := range elements {
		if !el.Contributing() {
			skipped++
			continue
		}
		if core.IsInteractive(el.Selector) {
			interactive++
		}
		if el.HasText() {
			text++
		}
		if el.AboveFold(viewport) {
			aboveFold++
		}
	}
	features[FeatureInteractiveElements] = interactive
	features[FeatureTextElements] = text
	features[FeatureAboveFoldElements] = aboveFold
	features[FeatureSkippedElements] = skipped
}

// addDOMFeatures adds markup metrics when the markup is present and parses.
func (e *Engine) addDOMFeatures(features map[string]any, markup string) {
	if markup == "" {
		return
	}
	m, err := dom.Inspect(markup)
	if err != nil {
		e.logger.Debug("Skipping DOM metrics.", zap.Error(err))
		return
	}
	features[FeatureDOMNodeCount] = m.NodeCount
	features[FeatureDOMMaxDepth] = m.MaxDepth
	features[FeatureDOMHeadingCount] = m.HeadingCount
	features[FeatureDOMImageCount] = m.ImageCount
	features[FeatureDOMFormCount] = m.FormCount
	features[FeatureDOMHasViewportMeta] = m.HasViewportMeta
}

// wcagLevel is FAIL when any contrast issue is high severity, AA when other
// contrast issues exist, and AAA otherwise.
func wcagLevel(issues []schemas.Issue) string {
	level := WCAGLevelAAA
	for _, issue := range issues {
		if issue.Type != schemas.IssueContrast {
			continue
		}
		if issue.Severity == schemas.SeverityHigh {
			return WCAGLevelFail
		}
		level = WCAGLevelAA
	}
	return level
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
