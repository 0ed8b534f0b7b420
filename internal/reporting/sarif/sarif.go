package sarif

// This file defines the Go structs for the subset of SARIF 2.1.0 the reporter emits.
// Pointers are used for optional fields. Required fields use value types.

type Log struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []*Run `json:"runs"`
}

type Run struct {
	Tool              *Tool                 `json:"tool"`
	AutomationDetails *RunAutomationDetails `json:"automationDetails,omitempty"`
	Invocations       []*Invocation         `json:"invocations,omitempty"`
	Results           []*Result             `json:"results"`
}

type Tool struct {
	Driver *ToolComponent `json:"driver"`
}

// ToolComponent describes the tool that produced the results. Pointers are used for optional bits.
type ToolComponent struct {
	Name           string                 `json:"name"`
	Version        *string                `json:"version,omitempty"`
	InformationURI *string                `json:"informationUri,omitempty"`
	Rules          []*ReportingDescriptor `json:"rules,omitempty"`
}

// RunAutomationDetails identifies one run of the tool.
type RunAutomationDetails struct {
	ID   *string `json:"id,omitempty"`
	GUID *string `json:"guid,omitempty"`
}

// Invocation records how the run went. Audits that could not be analyzed are
// reported as notifications here rather than as results.
type Invocation struct {
	ExecutionSuccessful        bool            `json:"executionSuccessful"`
	ToolExecutionNotifications []*Notification `json:"toolExecutionNotifications,omitempty"`
}

type Notification struct {
	Message   *Message    `json:"message"`
	Level     Level       `json:"level,omitempty"`
	Locations []*Location `json:"locations,omitempty"`
}

type ReportingDescriptor struct {
	ID                   string                    `json:"id"` // Required
	Name                 *string                   `json:"name,omitempty"`
	ShortDescription     *MultiformatMessageString `json:"shortDescription,omitempty"`
	FullDescription      *MultiformatMessageString `json:"fullDescription,omitempty"`
	Help                 *MultiformatMessageString `json:"help,omitempty"`
	DefaultConfiguration *Configuration            `json:"defaultConfiguration,omitempty"`
	Properties           *PropertyBag              `json:"properties,omitempty"`
}

type Configuration struct {
	Level Level `json:"level,omitempty"`
}

type Result struct {
	RuleID     string       `json:"ruleId"` // Required
	RuleIndex  int          `json:"ruleIndex"`
	Message    *Message     `json:"message"`
	Level      Level        `json:"level,omitempty"`
	Locations  []*Location  `json:"locations,omitempty"`
	Properties *PropertyBag `json:"properties,omitempty"`
}

type Location struct {
	PhysicalLocation *PhysicalLocation  `json:"physicalLocation,omitempty"`
	LogicalLocations []*LogicalLocation `json:"logicalLocations,omitempty"`
	Message          *Message           `json:"message,omitempty"`
}

type PhysicalLocation struct {
	ArtifactLocation *ArtifactLocation `json:"artifactLocation,omitempty"`
	Region           *Region           `json:"region,omitempty"`
}

type ArtifactLocation struct {
	URI *string `json:"uri,omitempty"`
}

// Region is unused for rendered pages; bounding boxes travel in result properties.
type Region struct {
	StartLine *int `json:"startLine,omitempty"`
}

// LogicalLocation names a programmatic construct, here an element selector.
type LogicalLocation struct {
	Name               *string `json:"name,omitempty"`
	FullyQualifiedName *string `json:"fullyQualifiedName,omitempty"`
	Kind               *string `json:"kind,omitempty"`
}

type Message struct {
	Text *string `json:"text,omitempty"`
}

type MultiformatMessageString struct {
	Text     *string `json:"text"`
	Markdown *string `json:"markdown,omitempty"`
}

type PropertyBag map[string]interface{}

type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelNote    Level = "note"
)
