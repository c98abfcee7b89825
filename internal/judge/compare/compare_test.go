package compare

import (
	"math"
	"strings"
	"testing"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
)

func TestTextExactDefaults(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     Verdict
	}{
		{"identical", "hello world", "hello world", Match},
		{"trailing newline ignored", "hello world", "hello world\n", Match},
		{"internal runs collapse", "hello  world", "hello world", Match},
		{"tabs collapse", "hello\tworld", "hello world", Match},
		{"different text", "hello world", "goodbye world", Mismatch},
		{"case matters", "Hello", "hello", Mismatch},
		{"both empty", "", "", Match},
		{"empty vs text", "", "x", Mismatch},
	}
	c := NewTextExact()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Compare(tt.expected, tt.actual)
			if got.Verdict != tt.want {
				t.Errorf("Compare(%q, %q) = %v, want %v", tt.expected, tt.actual, got.Verdict, tt.want)
			}
		})
	}
}

func TestTextExactCaseInsensitive(t *testing.T) {
	c := NewTextExact()
	c.CaseSensitive = false
	if got := c.Compare("Hello World", "hello world"); got.Verdict != Match {
		t.Errorf("case-insensitive compare = %v, want Match", got.Verdict)
	}
}

func TestTextMismatchDetails(t *testing.T) {
	c := NewTextExact()
	got := c.Compare("line one\nline two", "line one\nline 2wo")
	if got.Verdict != Mismatch {
		t.Fatalf("verdict = %v, want Mismatch", got.Verdict)
	}
	if !strings.Contains(got.Diff, "Line 2") {
		t.Errorf("diff does not locate the differing line:\n%s", got.Diff)
	}
	if got.Similarity <= 0 || got.Similarity >= 1 {
		t.Errorf("similarity = %v, want value in (0,1)", got.Similarity)
	}
}

func TestTextDiffKeepsOriginalLines(t *testing.T) {
	c := NewTextExact()
	got := c.Compare("a\nb\nc\n", "a\nb\nd\n")
	if got.Verdict != Mismatch {
		t.Fatalf("verdict = %v, want Mismatch", got.Verdict)
	}
	if !strings.Contains(got.Diff, "Line 3") {
		t.Errorf("diff does not locate the third line:\n%s", got.Diff)
	}
	if strings.Contains(got.Diff, "Line 1") {
		t.Errorf("diff reports a matching line:\n%s", got.Diff)
	}
}

func TestNumericTolerance(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     Verdict
	}{
		{"exact", "3.14159", "3.14159", Match},
		{"within epsilon", "3.14159", "3.141590000001", Match},
		{"within relative tolerance", "1000000.0", "1000000.5", Match},
		{"outside tolerance", "3.14159", "3.15", Mismatch},
		{"scientific notation", "1.5e3", "1500", Match},
		{"multiple values", "1.0 2.0 3.0", "1.0, 2.0, 3.0", Match},
		{"count mismatch", "1.0 2.0", "1.0 2.0 3.0", Mismatch},
		{"embedded in text", "answer: 42", "result = 42", Match},
		{"nan equals nan", "nan", "nan", Match},
		{"inf sign matters", "inf", "-inf", Mismatch},
		{"inf equals inf", "inf", "inf", Match},
		{"nan vs number", "nan", "1.0", Mismatch},
	}
	c := NewNumeric()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Compare(tt.expected, tt.actual)
			if got.Verdict != tt.want {
				t.Errorf("Compare(%q, %q) = %v, want %v", tt.expected, tt.actual, got.Verdict, tt.want)
			}
		})
	}
}

func TestNumericMismatchSimilarity(t *testing.T) {
	c := NewNumeric()
	got := c.Compare("1.0", "1.5")
	if got.Verdict != Mismatch {
		t.Fatalf("verdict = %v, want Mismatch", got.Verdict)
	}
	if got.Similarity < 0 || got.Similarity > 1 {
		t.Errorf("similarity = %v, want value in [0,1]", got.Similarity)
	}
	if !strings.Contains(got.Diff, "Abs Error") {
		t.Errorf("diff missing error detail:\n%s", got.Diff)
	}
}

func TestNumericSimilarityAveragesOverAllValues(t *testing.T) {
	c := NewNumeric()
	// One value off by 0.4 out of four values: the error spreads over
	// the whole output, so similarity is 1 - 0.4/4 = 0.9.
	got := c.Compare("1.0 2.0 3.0 4.0", "1.0 2.0 3.0 4.4")
	if got.Verdict != Mismatch {
		t.Fatalf("verdict = %v, want Mismatch", got.Verdict)
	}
	if math.Abs(got.Similarity-0.9) > 1e-9 {
		t.Errorf("similarity = %v, want 0.9", got.Similarity)
	}
}

func TestJsonKeyOrderIrrelevant(t *testing.T) {
	c := NewJson()
	got := c.Compare(`{"name": "John", "age": 30}`, `{"age": 30, "name": "John"}`)
	if got.Verdict != Match {
		t.Errorf("reordered keys = %v, want Match", got.Verdict)
	}
}

func TestJsonComparisons(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     Verdict
	}{
		{"nested objects", `{"a": {"b": [1, 2]}}`, `{"a": {"b": [1, 2]}}`, Match},
		{"list order ignored by default", `[3, 1, 2]`, `[1, 2, 3]`, Match},
		{"numeric tolerance in leaves", `{"pi": 3.14159}`, `{"pi": 3.141590000000001}`, Match},
		{"value differs", `{"a": 1}`, `{"a": 2}`, Mismatch},
		{"missing key", `{"a": 1, "b": 2}`, `{"a": 1}`, Mismatch},
		{"extra key", `{"a": 1}`, `{"a": 1, "b": 2}`, Mismatch},
		{"type mismatch", `{"a": 1}`, `{"a": "1"}`, Mismatch},
		{"array length", `[1, 2]`, `[1, 2, 3]`, Mismatch},
		{"null handling", `{"a": null}`, `{"a": null}`, Match},
		{"invalid expected", `{nope`, `{}`, Error},
		{"invalid actual", `{}`, `{nope`, Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewJson().Compare(tt.expected, tt.actual)
			if got.Verdict != tt.want {
				t.Errorf("Compare(%q, %q) = %v, want %v", tt.expected, tt.actual, got.Verdict, tt.want)
			}
		})
	}
}

func TestJsonExtraFieldTolerance(t *testing.T) {
	c := NewJson()
	c.IgnoreExtraFields = true
	if got := c.Compare(`{"a": 1}`, `{"a": 1, "b": 2}`); got.Verdict != Match {
		t.Errorf("extra field with tolerance = %v, want Match", got.Verdict)
	}
}

func TestJsonListOrderSensitive(t *testing.T) {
	c := NewJson()
	c.IgnoreOrder = false
	if got := c.Compare(`[1, 2, 3]`, `[3, 2, 1]`); got.Verdict != Mismatch {
		t.Errorf("order-sensitive list compare = %v, want Mismatch", got.Verdict)
	}
}

func TestArrayComparisons(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     Verdict
	}{
		{"brackets vs bare", "[1, 2, 3]", "1 2 3", Match},
		{"parens", "(1, 2, 3)", "1, 2, 3", Match},
		{"quotes stripped", `["a", "b"]`, "a b", Match},
		{"order matters by default", "[1, 2, 3]", "[3, 2, 1]", Mismatch},
		{"different elements", "[1, 2, 3]", "[1, 2, 4]", Mismatch},
		{"length mismatch", "[1, 2]", "[1, 2, 3]", Mismatch},
		{"both empty", "[]", "", Match},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewArray().Compare(tt.expected, tt.actual)
			if got.Verdict != tt.want {
				t.Errorf("Compare(%q, %q) = %v, want %v", tt.expected, tt.actual, got.Verdict, tt.want)
			}
		})
	}
}

func TestArrayIgnoreOrder(t *testing.T) {
	c := NewArray()
	c.IgnoreOrder = true
	if got := c.Compare("[1, 2, 3]", "[3, 1, 2]"); got.Verdict != Match {
		t.Errorf("unordered compare = %v, want Match", got.Verdict)
	}
}

func TestArrayPartialCredit(t *testing.T) {
	c := NewArray()
	got := c.Compare("[1, 2, 3, 4]", "[1, 2, 3, 5]")
	if got.Verdict != Mismatch {
		t.Fatalf("verdict = %v, want Mismatch", got.Verdict)
	}
	if got.Similarity <= 0 || got.Similarity >= 1 {
		t.Errorf("similarity = %v, want value in (0,1)", got.Similarity)
	}
}

func TestAutoDetect(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     string
	}{
		{"bracketed primitives", "[1, 2, 3]", "[1, 2, 3]", "array"},
		{"bracketed strings", `["a", "b"]`, `["a", "b"]`, "array"},
		{"json object", `{"a": 1}`, `{"a": 1}`, "json"},
		{"nested lists stay json", `[[1], [2]]`, `[[1], [2]]`, "json"},
		{"number line", "1.5 2.5 3.5", "1.5 2.5 3.5", "numeric"},
		{"plain text", "hello world", "hello world", "text_exact"},
		{"mixed falls back to text", "answer is 42", "answer is 42", "text_exact"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := AutoDetect(tt.expected, tt.actual)
			if c.Name() != tt.want {
				t.Errorf("AutoDetect(%q, %q) = %s, want %s", tt.expected, tt.actual, c.Name(), tt.want)
			}
		})
	}
}

func TestFactoryConfig(t *testing.T) {
	c, err := New(spec.CompareNumeric, map[string]any{"epsilon": 0.5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Compare("1.0", "1.4"); got.Verdict != Match {
		t.Errorf("epsilon override not applied: verdict = %v", got.Verdict)
	}

	if _, err := New("bogus", nil); err == nil {
		t.Error("New with unknown type: expected error")
	}
}
