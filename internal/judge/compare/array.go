package compare

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	leadingBracketRe  = regexp.MustCompile(`^[\[\(]`)
	trailingBracketRe = regexp.MustCompile(`[\]\)]$`)
	defaultSepRe      = regexp.MustCompile(`[,\s]+`)
)

// Array compares outputs as flat element lists. Brackets and quoting
// are presentation noise: "[1, 2, 3]" equals "1 2 3".
type Array struct {
	IgnoreOrder    bool
	IgnoreBrackets bool
	sepRe          *regexp.Regexp
}

// NewArray returns an order-sensitive array comparator that strips
// brackets and splits on commas and whitespace.
func NewArray() *Array {
	return &Array{IgnoreBrackets: true, sepRe: defaultSepRe}
}

// SetSeparator replaces the element separator pattern.
func (c *Array) SetSeparator(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid separator pattern %q: %w", pattern, err)
	}
	c.sepRe = re
	return nil
}

func (c *Array) Name() string { return "array" }

func (c *Array) parse(s string) []string {
	s = strings.TrimSpace(s)
	if c.IgnoreBrackets {
		s = leadingBracketRe.ReplaceAllString(s, "")
		s = trailingBracketRe.ReplaceAllString(s, "")
	}
	sep := c.sepRe
	if sep == nil {
		sep = defaultSepRe
	}
	parts := sep.Split(s, -1)
	elems := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"'`)
		if p != "" {
			elems = append(elems, p)
		}
	}
	return elems
}

func (c *Array) Compare(expected, actual string) Details {
	ee := c.parse(expected)
	ae := c.parse(actual)

	ce, ca := ee, ae
	if c.IgnoreOrder {
		ce = append([]string(nil), ee...)
		ca = append([]string(nil), ae...)
		sort.Strings(ce)
		sort.Strings(ca)
	}

	if equalStrings(ce, ca) {
		return Details{
			Verdict:        Match,
			Message:        fmt.Sprintf("arrays match (%d element(s))", len(ee)),
			ExpectedParsed: ee,
			ActualParsed:   ae,
			Similarity:     1.0,
		}
	}

	var b strings.Builder
	if len(ce) != len(ca) {
		fmt.Fprintf(&b, "length mismatch: expected %d element(s), got %d\n", len(ce), len(ca))
	}
	n := len(ce)
	if len(ca) < n {
		n = len(ca)
	}
	for i := 0; i < n; i++ {
		if ce[i] != ca[i] {
			fmt.Fprintf(&b, "Element %d: expected %q, got %q\n", i+1, ce[i], ca[i])
		}
	}
	return Details{
		Verdict:        Mismatch,
		Message:        "array elements differ",
		Diff:           strings.TrimRight(b.String(), "\n"),
		ExpectedParsed: ee,
		ActualParsed:   ae,
		Similarity:     jaccard(ce, ca),
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// jaccard measures element-set overlap, giving partial credit for
// answers that contain most of the right elements.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	set := make(map[string]struct{}, len(a)+len(b))
	as := make(map[string]struct{}, len(a))
	for _, v := range a {
		as[v] = struct{}{}
		set[v] = struct{}{}
	}
	inter := 0
	bs := make(map[string]struct{}, len(b))
	for _, v := range b {
		if _, dup := bs[v]; dup {
			continue
		}
		bs[v] = struct{}{}
		set[v] = struct{}{}
		if _, ok := as[v]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(set))
}
