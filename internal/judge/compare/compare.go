// Package compare implements the output comparison subsystem: exact
// text, numeric-with-tolerance, JSON structural and array comparison,
// plus a factory with auto-detection.
//
// Comparators never panic; malformed input yields Verdict Error, which
// is kept distinct from Mismatch.
package compare

// Verdict is the outcome of one comparison.
type Verdict string

const (
	Match    Verdict = "MATCH"
	Mismatch Verdict = "MISMATCH"
	Error    Verdict = "ERROR"
)

// Details carries the full comparison outcome. Similarity is in [0,1]
// and is exactly 1.0 for Match; it feeds partial-credit analytics and
// never changes the binary verdict.
type Details struct {
	Verdict        Verdict
	Message        string
	Diff           string
	ExpectedParsed any
	ActualParsed   any
	Similarity     float64
}

// Comparator evaluates one test case's output against the expectation.
type Comparator interface {
	Compare(expected, actual string) Details
	Name() string
}
