package core

import (
	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"go.uber.org/zap"
)

// MaxScore is the sub-score an analyzer reports when it finds nothing.
const MaxScore = 100

// Analyzer is the contract every visual heuristic implements. Analyze must not
// retain or mutate the context; each call returns its own Result.
type Analyzer interface {
	Name() string
	Description() string
	Category() schemas.IssueType
	Analyze(ac *AnalysisContext) Result
}

// BaseAnalyzer provides the common fields of the Analyzer interface. It is
// intended to be embedded within specific analyzer implementations.
type BaseAnalyzer struct {
	name        string
	description string
	category    schemas.IssueType
	Logger      *zap.Logger // Exposed for use in specific analyzer implementations.
}

// NewBaseAnalyzer creates a BaseAnalyzer with a named sub-logger. A nil logger
// is replaced by a no-op logger.
func NewBaseAnalyzer(name, description string, category schemas.IssueType, logger *zap.Logger) *BaseAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaseAnalyzer{
		name:        name,
		description: description,
		category:    category,
		Logger:      logger.Named(name),
	}
}

// Name returns the analyzer's name.
func (b *BaseAnalyzer) Name() string {
	return b.name
}

// Description returns the analyzer's description.
func (b *BaseAnalyzer) Description() string {
	return b.description
}

// Category returns the issue type the analyzer emits.
func (b *BaseAnalyzer) Category() schemas.IssueType {
	return b.category
}

// Result is one analyzer's sub-score and the issues behind it.
type Result struct {
	Score  int
	Issues []schemas.Issue

	penalty int
}

// NewResult returns a perfect, issue-free result.
func NewResult() Result {
	return Result{Score: MaxScore, Issues: []schemas.Issue{}}
}

// Add records an issue and deducts its penalty. The score is floored at zero.
func (r *Result) Add(issue schemas.Issue, penalty int) {
	r.Issues = append(r.Issues, issue)
	r.penalty += penalty
	r.Score = MaxScore - r.penalty
	if r.Score < 0 {
		r.Score = 0
	}
}
