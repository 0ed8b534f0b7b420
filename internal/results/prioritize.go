package results

import (
	"sort"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
)

// Prioritize returns a copy of issues sorted from most to least severe. Issues
// of equal severity keep their original order.
func Prioritize(issues []schemas.Issue) []schemas.Issue {
	sorted := make([]schemas.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Rank() > sorted[j].Severity.Rank()
	})
	return sorted
}

// FilterMinSeverity keeps the issues at or above min, preserving order. An
// empty min keeps everything.
func FilterMinSeverity(issues []schemas.Issue, min schemas.Severity) []schemas.Issue {
	if min == "" {
		return issues
	}
	out := make([]schemas.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity.AtLeast(min) {
			out = append(out, issue)
		}
	}
	return out
}
