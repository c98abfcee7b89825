// Package result defines sandbox execution results and verdict mapping.
package result

import (
	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
)

// Status classifies the raw outcome of one sandboxed process run.
type Status string

const (
	StatusOK  Status = "OK"
	StatusTLE Status = "TLE" // wall-clock or CPU-time ceiling exceeded
	StatusMLE Status = "MLE"
	StatusOLE Status = "OLE"
	StatusRE  Status = "RE"
	StatusIE  Status = "IE"
)

// Verdict represents the final outcome of a test case or submission.
// It extends Status with CE (compile rejected) and WA (output mismatch).
type Verdict string

const (
	VerdictOK  Verdict = "OK"
	VerdictWA  Verdict = "WA"
	VerdictTLE Verdict = "TLE"
	VerdictMLE Verdict = "MLE"
	VerdictOLE Verdict = "OLE"
	VerdictRE  Verdict = "RE"
	VerdictCE  Verdict = "CE"
	VerdictIE  Verdict = "IE"
)

// VerdictFromStatus maps a run status onto the verdict space.
func VerdictFromStatus(s Status) Verdict {
	switch s {
	case StatusOK:
		return VerdictOK
	case StatusTLE:
		return VerdictTLE
	case StatusMLE:
		return VerdictMLE
	case StatusOLE:
		return VerdictOLE
	case StatusRE:
		return VerdictRE
	default:
		return VerdictIE
	}
}

// CompileResult contains compilation outcomes. Exactly one is produced
// per submission; languages without a compile step report a vacuous
// success with zero compile time.
type CompileResult struct {
	Success       bool   `json:"success"`
	Stdout        string `json:"stdout,omitempty"`
	Stderr        string `json:"stderr,omitempty"`
	ExitCode      int    `json:"exit_code"`
	CompileTimeMs int64  `json:"compile_time_ms"`
}

// RunResult captures raw sandbox execution data for one test case.
type RunResult struct {
	Status   Status `json:"status"`
	ExitCode int    `json:"exit_code"`
	TimeMs   int64  `json:"time_ms"`
	MemoryMB int64  `json:"memory_mb"`
	Stdout   string `json:"stdout,omitempty"`
	Stderr   string `json:"stderr,omitempty"`
	Signal   int    `json:"signal,omitempty"`
}

// TestCaseResult is one reportable row: the test case, its run, and
// the comparison outcome.
type TestCaseResult struct {
	TestCase   spec.TestCase `json:"test_case"`
	Run        RunResult     `json:"run"`
	Verdict    Verdict       `json:"verdict"`
	Diff       string        `json:"diff,omitempty"`
	Similarity float64       `json:"similarity"`
	Message    string        `json:"message,omitempty"`
}

// SubmissionResult is the aggregate report for one graded submission.
// Passed and Verdict are reported together, never conflated.
type SubmissionResult struct {
	SubmissionID string           `json:"submission_id"`
	Language     string           `json:"language"`
	Verdict      Verdict          `json:"verdict"`
	Passed       int              `json:"passed"`
	Total        int              `json:"total"`
	TotalTimeMs  int64            `json:"total_time_ms"`
	AvgTimeMs    int64            `json:"avg_time_ms"`
	MaxMemoryMB  int64            `json:"max_memory_mb"`
	Compile      *CompileResult   `json:"compile,omitempty"`
	Tests        []TestCaseResult `json:"tests"`
	Error        string           `json:"error,omitempty"`
}
