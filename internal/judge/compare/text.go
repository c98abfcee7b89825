package compare

import (
	"fmt"
	"regexp"
	"strings"
)

var collapseSpaceRe = regexp.MustCompile(`\s+`)

// TextExact compares normalized text. With defaults it tolerates
// trailing whitespace and collapses internal runs of whitespace, so
// "hello  world \n" equals "hello world".
type TextExact struct {
	CaseSensitive            bool
	NormalizeWhitespace      bool
	IgnoreTrailingWhitespace bool
}

// NewTextExact returns a text comparator with the default tolerance:
// case sensitive, whitespace normalized, trailing whitespace ignored.
func NewTextExact() *TextExact {
	return &TextExact{
		CaseSensitive:            true,
		NormalizeWhitespace:      true,
		IgnoreTrailingWhitespace: true,
	}
}

func (c *TextExact) Name() string { return "text_exact" }

func (c *TextExact) normalize(s string) string {
	if !c.CaseSensitive {
		s = strings.ToLower(s)
	}
	if c.IgnoreTrailingWhitespace {
		s = strings.TrimRight(s, " \t\r\n\v\f")
	}
	if c.NormalizeWhitespace {
		s = collapseSpaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	}
	return s
}

func (c *TextExact) Compare(expected, actual string) Details {
	ne, na := c.normalize(expected), c.normalize(actual)
	if ne == na {
		return Details{
			Verdict:    Match,
			Message:    "outputs match exactly",
			Similarity: 1.0,
		}
	}
	return Details{
		Verdict:    Mismatch,
		Message:    "text outputs differ",
		Diff:       lineDiff(strings.TrimRight(expected, "\n"), strings.TrimRight(actual, "\n")),
		Similarity: textSimilarity(ne, na),
	}
}

// lineDiff renders a line-by-line diff, adding a character-level
// highlight for differing lines short enough to read inline.
func lineDiff(expected, actual string) string {
	el := strings.Split(expected, "\n")
	al := strings.Split(actual, "\n")
	n := len(el)
	if len(al) > n {
		n = len(al)
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		var e, a string
		haveE, haveA := i < len(el), i < len(al)
		if haveE {
			e = el[i]
		}
		if haveA {
			a = al[i]
		}
		switch {
		case haveE && haveA && e == a:
			continue
		case !haveA:
			fmt.Fprintf(&b, "Line %d: missing\n  Expected: %q\n", i+1, e)
		case !haveE:
			fmt.Fprintf(&b, "Line %d: unexpected\n  Actual:   %q\n", i+1, a)
		default:
			fmt.Fprintf(&b, "Line %d:\n  Expected: %q\n  Actual:   %q\n", i+1, e, a)
			if len(e) < 100 && len(a) < 100 {
				fmt.Fprintf(&b, "  Diff:     %s\n", charHighlight(e, a))
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// charHighlight marks the positions where two short lines diverge.
func charHighlight(e, a string) string {
	n := len(e)
	if len(a) > n {
		n = len(a)
	}
	marks := make([]byte, n)
	for i := 0; i < n; i++ {
		if i < len(e) && i < len(a) && e[i] == a[i] {
			marks[i] = ' '
		} else {
			marks[i] = '^'
		}
	}
	return string(marks)
}

// textSimilarity is 1 minus the normalized Levenshtein distance.
func textSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(longest)
}

func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
