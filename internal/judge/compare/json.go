package compare

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Json compares parsed JSON documents structurally. Object key order
// is irrelevant by construction; list order sensitivity and tolerance
// for extra object fields are configurable.
type Json struct {
	IgnoreOrder       bool
	IgnoreExtraFields bool
	NumericTolerance  float64
}

// NewJson returns a JSON comparator that ignores list order, rejects
// extra object fields, and compares numbers with tolerance 1e-9.
func NewJson() *Json {
	return &Json{IgnoreOrder: true, NumericTolerance: 1e-9}
}

func (c *Json) Name() string { return "json" }

func (c *Json) Compare(expected, actual string) Details {
	var ev, av any
	if err := json.Unmarshal([]byte(expected), &ev); err != nil {
		return Details{
			Verdict: Error,
			Message: fmt.Sprintf("expected output is not valid JSON: %v", err),
		}
	}
	if err := json.Unmarshal([]byte(actual), &av); err != nil {
		return Details{
			Verdict:        Error,
			Message:        fmt.Sprintf("actual output is not valid JSON: %v", err),
			ExpectedParsed: ev,
		}
	}

	var diffs []string
	c.compareValues(ev, av, "$", &diffs)

	if len(diffs) == 0 {
		return Details{
			Verdict:        Match,
			Message:        "JSON structures match",
			ExpectedParsed: ev,
			ActualParsed:   av,
			Similarity:     1.0,
		}
	}
	sim := math.Max(0, 1.0-math.Min(1.0, float64(len(diffs))/10.0))
	return Details{
		Verdict:        Mismatch,
		Message:        fmt.Sprintf("JSON structures differ (%d difference(s))", len(diffs)),
		Diff:           strings.Join(diffs, "\n"),
		ExpectedParsed: ev,
		ActualParsed:   av,
		Similarity:     sim,
	}
}

func (c *Json) compareValues(e, a any, path string, diffs *[]string) {
	switch ev := e.(type) {
	case map[string]any:
		av, ok := a.(map[string]any)
		if !ok {
			*diffs = append(*diffs, fmt.Sprintf("%s: type mismatch: expected object, got %s", path, jsonTypeName(a)))
			return
		}
		c.compareObjects(ev, av, path, diffs)
	case []any:
		av, ok := a.([]any)
		if !ok {
			*diffs = append(*diffs, fmt.Sprintf("%s: type mismatch: expected array, got %s", path, jsonTypeName(a)))
			return
		}
		c.compareArrays(ev, av, path, diffs)
	case float64:
		av, ok := a.(float64)
		if !ok {
			*diffs = append(*diffs, fmt.Sprintf("%s: type mismatch: expected number, got %s", path, jsonTypeName(a)))
			return
		}
		if math.Abs(ev-av) > c.NumericTolerance {
			*diffs = append(*diffs, fmt.Sprintf("%s: expected %v, got %v", path, ev, av))
		}
	default:
		if !sameJSONType(e, a) {
			*diffs = append(*diffs, fmt.Sprintf("%s: type mismatch: expected %s, got %s", path, jsonTypeName(e), jsonTypeName(a)))
			return
		}
		if e != a {
			*diffs = append(*diffs, fmt.Sprintf("%s: expected %v, got %v", path, e, a))
		}
	}
}

func (c *Json) compareObjects(e, a map[string]any, path string, diffs *[]string) {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		av, ok := a[k]
		if !ok {
			*diffs = append(*diffs, fmt.Sprintf("%s.%s: missing key", path, k))
			continue
		}
		c.compareValues(e[k], av, path+"."+k, diffs)
	}
	if c.IgnoreExtraFields {
		return
	}
	extras := make([]string, 0)
	for k := range a {
		if _, ok := e[k]; !ok {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	for _, k := range extras {
		*diffs = append(*diffs, fmt.Sprintf("%s.%s: unexpected key", path, k))
	}
}

func (c *Json) compareArrays(e, a []any, path string, diffs *[]string) {
	if len(e) != len(a) {
		*diffs = append(*diffs, fmt.Sprintf("%s: array length mismatch: expected %d, got %d", path, len(e), len(a)))
		return
	}
	if c.IgnoreOrder {
		e = canonicalSort(e)
		a = canonicalSort(a)
	}
	for i := range e {
		c.compareValues(e[i], a[i], fmt.Sprintf("%s[%d]", path, i), diffs)
	}
}

// canonicalSort orders array elements by their canonical JSON
// encoding so that order-insensitive comparison is deterministic for
// heterogeneous and nested elements alike.
func canonicalSort(items []any) []any {
	sorted := make([]any, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return canonicalKey(sorted[i]) < canonicalKey(sorted[j])
	})
	return sorted
}

func canonicalKey(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func sameJSONType(a, b any) bool {
	return jsonTypeName(a) == jsonTypeName(b)
}
