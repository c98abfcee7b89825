package spec

// RunSpec is the unified execution specification for one sandboxed task.
// Paths are host paths inside the submission's scratch directory.
type RunSpec struct {
	SubmissionID string
	TestID       string
	WorkDir      string
	Cmd          []string
	Env          []string
	StdinPath    string
	StdoutPath   string
	StderrPath   string
	Limits       ResourceLimits
}

// ComparisonType selects the comparator used for a test case.
type ComparisonType string

const (
	CompareAuto    ComparisonType = "auto"
	CompareExact   ComparisonType = "exact"
	CompareText    ComparisonType = "text"
	CompareNumeric ComparisonType = "numeric"
	CompareJSON    ComparisonType = "json"
	CompareArray   ComparisonType = "array"
)

// TestCase is one input/expected-output pair supplied by the test-data
// collaborator. Immutable once handed to the orchestrator.
type TestCase struct {
	ID             string `json:"id"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`

	// Limits carries optional per-test overrides; zero fields fall
	// back to submission- then language-level defaults.
	Limits *ResourceLimits `json:"limits,omitempty"`

	ComparisonType   ComparisonType `json:"comparison_type,omitempty"`
	ComparisonConfig map[string]any `json:"comparison_config,omitempty"`
}
