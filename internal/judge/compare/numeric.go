package compare

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberTokenRe extracts numeric tokens from free text. It accepts
// integers, decimals, scientific notation, and the IEEE specials nan
// and inf so that special values take part in the comparison instead
// of silently vanishing from both sides.
var numberTokenRe = regexp.MustCompile(`(?i)[-+]?(?:nan|inf(?:inity)?|\d+\.?\d*(?:[eE][-+]?\d+)?|\.\d+(?:[eE][-+]?\d+)?)`)

// Numeric extracts all numbers from both outputs positionally and
// compares them under an absolute epsilon or a relative tolerance,
// whichever admits the pair.
type Numeric struct {
	Epsilon           float64
	RelativeTolerance float64
}

// NewNumeric returns a numeric comparator with epsilon 1e-9 and
// relative tolerance 1e-6.
func NewNumeric() *Numeric {
	return &Numeric{Epsilon: 1e-9, RelativeTolerance: 1e-6}
}

func (c *Numeric) Name() string { return "numeric" }

func extractNumbers(s string) []float64 {
	tokens := numberTokenRe.FindAllString(s, -1)
	nums := make([]float64, 0, len(tokens))
	for _, t := range tokens {
		v, err := strconv.ParseFloat(strings.ToLower(t), 64)
		if err != nil {
			continue
		}
		nums = append(nums, v)
	}
	return nums
}

// equal reports whether a single pair of values agrees. NaN equals
// NaN, infinities must match sign, and finite values pass under
// either the absolute or the relative tolerance.
func (c *Numeric) equal(e, a float64) bool {
	if math.IsNaN(e) || math.IsNaN(a) {
		return math.IsNaN(e) && math.IsNaN(a)
	}
	if math.IsInf(e, 0) || math.IsInf(a, 0) {
		return e == a
	}
	diff := math.Abs(e - a)
	if diff <= c.Epsilon {
		return true
	}
	larger := math.Max(math.Abs(e), math.Abs(a))
	return larger > 0 && diff/larger <= c.RelativeTolerance
}

func (c *Numeric) Compare(expected, actual string) Details {
	en := extractNumbers(expected)
	an := extractNumbers(actual)

	if len(en) != len(an) {
		return Details{
			Verdict:        Mismatch,
			Message:        fmt.Sprintf("different number of numeric values: expected %d, got %d", len(en), len(an)),
			ExpectedParsed: en,
			ActualParsed:   an,
		}
	}

	var b strings.Builder
	var totalErr float64
	mismatches := 0
	for i := range en {
		if c.equal(en[i], an[i]) {
			continue
		}
		mismatches++
		absErr := math.Abs(en[i] - an[i])
		totalErr += absErr
		fmt.Fprintf(&b, "Value %d:\n  Expected: %v\n  Actual:   %v\n  Abs Error: %.2e\n", i+1, en[i], an[i], absErr)
	}

	if mismatches == 0 {
		return Details{
			Verdict:        Match,
			Message:        fmt.Sprintf("all %d numeric values match within tolerance", len(en)),
			ExpectedParsed: en,
			ActualParsed:   an,
			Similarity:     1.0,
		}
	}

	// Averaged over all values, not just the failing ones, so one bad
	// value in a long output still earns partial credit.
	avgErr := totalErr / float64(len(en))
	sim := 1.0 - math.Min(1.0, avgErr)
	if math.IsNaN(sim) || sim < 0 {
		sim = 0
	}
	return Details{
		Verdict:        Mismatch,
		Message:        fmt.Sprintf("%d numeric value(s) outside tolerance (avg error %.2e)", mismatches, avgErr),
		Diff:           strings.TrimRight(b.String(), "\n"),
		ExpectedParsed: en,
		ActualParsed:   an,
		Similarity:     sim,
	}
}
