// internal/reporting/sarif_reporter.go
package reporting

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/reporting/sarif"
	"github.com/xkilldash9x/clarity-cli/internal/results"
)

// Constants for tool identification in the SARIF report.
const (
	ToolName     = "Clarity CLI"
	ToolInfoURI  = "https://github.com/xkilldash9x/clarity-cli"
	SARIFVersion = "2.1.0"
	SARIFSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	RuleIDPrefix = "CLARITY-"
)

// ruleIDSanitizer replaces characters not allowed in SARIF rule IDs. Runs of
// other characters collapse into a single hyphen.
var ruleIDSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_.]+`)

// ruleDescriptions holds the short and full description of each issue type.
var ruleDescriptions = map[schemas.IssueType][2]string{
	schemas.IssueContrast: {
		"Insufficient text contrast",
		"Text does not reach the WCAG 2.x contrast ratio against its background.",
	},
	schemas.IssueTypography: {
		"Hard-to-read typography",
		"Font size, line height or line length make the text hard to read.",
	},
	schemas.IssueTapTarget: {
		"Small tap target",
		"An interactive element is smaller than 44x44px on a mobile viewport.",
	},
	schemas.IssueOverlap: {
		"Overlapping elements",
		"Two elements overlap by more than 10% of the smaller one.",
	},
	schemas.IssueDensity: {
		"Crowded interactive region",
		"Too many interactive elements share one region of the page.",
	},
	schemas.IssueAlignment: {
		"Inconsistent alignment",
		"Elements on the same row do not share a left edge.",
	},
	schemas.IssueError: {
		"Analysis failure",
		"The page could not be analyzed.",
	},
}

// SARIFReporter implements the Reporter interface for the SARIF 2.1.0 format.
// It is thread safe.
type SARIFReporter struct {
	writer io.WriteCloser
	logger *zap.Logger
	log    *sarif.Log
	// mu protects the log structure and the rule index.
	mu sync.Mutex
	// ruleIndex maps an issue type to the position of its rule in the driver.
	ruleIndex map[schemas.IssueType]int
}

// NewSARIFReporter creates a new reporter that writes SARIF output.
func NewSARIFReporter(writer io.WriteCloser, run RunInfo, logger *zap.Logger) *SARIFReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	sarifRun := &sarif.Run{
		Tool: &sarif.Tool{
			Driver: &sarif.ToolComponent{
				Name:           ToolName,
				InformationURI: pString(ToolInfoURI),
				// Initialize empty slices (not nil) for proper JSON marshalling
				Rules: []*sarif.ReportingDescriptor{},
			},
		},
		Invocations: []*sarif.Invocation{{ExecutionSuccessful: true}},
		Results:     []*sarif.Result{},
	}
	if run.ToolVersion != "" {
		sarifRun.Tool.Driver.Version = pString(run.ToolVersion)
	}
	if run.ID != "" {
		sarifRun.AutomationDetails = &sarif.RunAutomationDetails{
			ID:   pString("clarity/" + run.ID),
			GUID: pString(run.ID),
		}
	}

	return &SARIFReporter{
		writer: writer,
		logger: logger.Named("sarif_reporter"),
		log: &sarif.Log{
			Version: SARIFVersion,
			Schema:  SARIFSchema,
			Runs:    []*sarif.Run{sarifRun},
		},
		ruleIndex: make(map[schemas.IssueType]int),
	}
}

// Write converts an audit into SARIF results and adds them to the log. Audits
// that carry an error become tool execution notifications.
func (r *SARIFReporter) Write(audit *results.Audit) error {
	startTime := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	run := r.log.Runs[0]

	if audit.Error != "" {
		invocation := run.Invocations[0]
		invocation.ExecutionSuccessful = false
		invocation.ToolExecutionNotifications = append(invocation.ToolExecutionNotifications, &sarif.Notification{
			Message:   &sarif.Message{Text: pString(audit.Error)},
			Level:     sarif.LevelError,
			Locations: []*sarif.Location{artifactLocation(audit.Source)},
		})
		return nil
	}

	for _, issue := range audit.Issues {
		idx := r.ensureRule(issue.Type)
		rule := run.Tool.Driver.Rules[idx]

		location := artifactLocation(audit.Source)
		if issue.Selector != "" {
			location.LogicalLocations = []*sarif.LogicalLocation{{
				Name:               pString(issue.Selector),
				FullyQualifiedName: pString(audit.Source + "#" + issue.Selector),
				Kind:               pString("element"),
			}}
		}

		properties := sarif.PropertyBag{
			"severity": string(issue.Severity),
			"bbox": map[string]float64{
				"x":      issue.BBox.X,
				"y":      issue.BBox.Y,
				"width":  issue.BBox.Width,
				"height": issue.BBox.Height,
			},
		}
		if issue.Suggestion != "" {
			properties["suggestion"] = issue.Suggestion
		}

		run.Results = append(run.Results, &sarif.Result{
			RuleID:     rule.ID,
			RuleIndex:  idx,
			Message:    &sarif.Message{Text: pString(issue.Message)},
			Level:      mapSeverityToSARIFLevel(issue.Severity),
			Locations:  []*sarif.Location{location},
			Properties: &properties,
		})
	}

	if len(audit.Issues) > 0 {
		r.logger.Debug("Wrote issues to SARIF buffer",
			zap.String("source", audit.Source),
			zap.Int("issues_count", len(audit.Issues)),
			zap.Duration("duration_ms", time.Since(startTime)),
		)
	}
	return nil
}

// Close finalizes the SARIF log and writes it to the output writer.
func (r *SARIFReporter) Close() error {
	startTime := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	run := r.log.Runs[0]
	r.logger.Info("Finalizing SARIF report",
		zap.Int("total_results", len(run.Results)),
		zap.Int("total_rules", len(run.Tool.Driver.Rules)),
	)

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ") // Pretty print

	encodeErr := encoder.Encode(r.log)
	// Always attempt to close the writer, regardless of encoding success.
	closeErr := r.writer.Close()

	if encodeErr != nil {
		r.logger.Error("Failed to encode SARIF log to JSON", zap.Error(encodeErr))
		// Prioritize the encoding error as it indicates corrupted/incomplete output.
		return fmt.Errorf("failed to encode SARIF output: %w", encodeErr)
	}
	if closeErr != nil {
		r.logger.Error("Failed to close output writer", zap.Error(closeErr))
		return fmt.Errorf("failed to close output writer: %w", closeErr)
	}

	r.logger.Info("Successfully wrote SARIF report",
		zap.Duration("duration_ms", time.Since(startTime)),
	)
	return nil
}

// RuleID returns the SARIF rule ID for an issue type.
func RuleID(issueType schemas.IssueType) string {
	name := strings.ToUpper(string(issueType))
	name = ruleIDSanitizer.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "UNKNOWN"
	}
	return RuleIDPrefix + name
}

// ensureRule registers the rule for an issue type on first use and returns its index.
// NOTE: Must be called while holding the mutex.
func (r *SARIFReporter) ensureRule(issueType schemas.IssueType) int {
	if idx, ok := r.ruleIndex[issueType]; ok {
		return idx
	}

	driver := r.log.Runs[0].Tool.Driver
	ruleID := RuleID(issueType)
	r.logger.Debug("Registering new SARIF rule definition", zap.String("rule_id", ruleID))

	desc, ok := ruleDescriptions[issueType]
	if !ok {
		desc = [2]string{string(issueType), string(issueType)}
	}
	help := fmt.Sprintf("**%s**\n\n%s", desc[0], desc[1])

	driver.Rules = append(driver.Rules, &sarif.ReportingDescriptor{
		ID:               ruleID,
		Name:             pString(string(issueType)),
		ShortDescription: &sarif.MultiformatMessageString{Text: pString(desc[0])},
		FullDescription:  &sarif.MultiformatMessageString{Text: pString(desc[1])},
		Help: &sarif.MultiformatMessageString{
			Text:     pString(desc[1]),
			Markdown: pString(help),
		},
		DefaultConfiguration: &sarif.Configuration{Level: sarif.LevelWarning},
		Properties: &sarif.PropertyBag{
			"tags": []string{"accessibility", "usability", "clarity"},
		},
	})
	idx := len(driver.Rules) - 1
	r.ruleIndex[issueType] = idx
	return idx
}

func artifactLocation(source string) *sarif.Location {
	return &sarif.Location{
		PhysicalLocation: &sarif.PhysicalLocation{
			ArtifactLocation: &sarif.ArtifactLocation{URI: pString(source)},
		},
	}
}

// mapSeverityToSARIFLevel converts an issue severity to the SARIF standard.
func mapSeverityToSARIFLevel(severity schemas.Severity) sarif.Level {
	switch severity {
	case schemas.SeverityHigh:
		return sarif.LevelError
	case schemas.SeverityMedium:
		return sarif.LevelWarning
	default:
		return sarif.LevelNote
	}
}

// pString returns a pointer to the given string value. Helper for optional SARIF fields.
func pString(s string) *string {
	return &s
}
