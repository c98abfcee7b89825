package compare

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/alexespinoza28/offline-leetcode-sub000/internal/judge/spec"
	appErr "github.com/alexespinoza28/offline-leetcode-sub000/pkg/errors"
)

// numericLineRe matches a full line of numbers separated by commas
// and/or whitespace, used only for auto-detection.
var numericLineRe = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?(?:\s*,?\s*[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)*$`)

// New builds the comparator for the given type with optional per-test
// configuration overlaid on the comparator's defaults.
func New(typ spec.ComparisonType, config map[string]any) (Comparator, error) {
	switch typ {
	case spec.CompareExact, spec.CompareText, "":
		c := NewTextExact()
		boolOpt(config, "case_sensitive", &c.CaseSensitive)
		boolOpt(config, "normalize_whitespace", &c.NormalizeWhitespace)
		boolOpt(config, "ignore_trailing_whitespace", &c.IgnoreTrailingWhitespace)
		return c, nil
	case spec.CompareNumeric:
		c := NewNumeric()
		floatOpt(config, "epsilon", &c.Epsilon)
		floatOpt(config, "relative_tolerance", &c.RelativeTolerance)
		return c, nil
	case spec.CompareJSON:
		c := NewJson()
		boolOpt(config, "ignore_order", &c.IgnoreOrder)
		boolOpt(config, "ignore_extra_fields", &c.IgnoreExtraFields)
		floatOpt(config, "numeric_tolerance", &c.NumericTolerance)
		return c, nil
	case spec.CompareArray:
		c := NewArray()
		boolOpt(config, "ignore_order", &c.IgnoreOrder)
		boolOpt(config, "ignore_brackets", &c.IgnoreBrackets)
		if v, ok := config["separator_pattern"].(string); ok {
			if err := c.SetSeparator(v); err != nil {
				return nil, appErr.Wrapf(err, appErr.InvalidValue, "bad comparator config")
			}
		}
		return c, nil
	default:
		return nil, appErr.Newf(appErr.InvalidValue, "unknown comparison type %q", typ)
	}
}

// ForTestCase resolves the comparator for one test case, running
// auto-detection when the type is auto or unset.
func ForTestCase(tc spec.TestCase, actual string) (Comparator, error) {
	if tc.ComparisonType == spec.CompareAuto || tc.ComparisonType == "" {
		return AutoDetect(tc.ExpectedOutput, actual), nil
	}
	return New(tc.ComparisonType, tc.ComparisonConfig)
}

// AutoDetect inspects both outputs and picks the most specific
// comparator that fits: array, then JSON, then numeric, then text.
func AutoDetect(expected, actual string) Comparator {
	et, at := strings.TrimSpace(expected), strings.TrimSpace(actual)

	if looksBracketed(et) && looksBracketed(at) {
		var ev, av any
		ee := json.Unmarshal([]byte(et), &ev)
		ae := json.Unmarshal([]byte(at), &av)
		if ee != nil || ae != nil {
			// Bracketed but not JSON, e.g. (1, 2) or ['a' 'b'].
			return NewArray()
		}
		if el, ok := ev.([]any); ok {
			if _, ok := av.([]any); ok && allPrimitive(el) {
				return NewArray()
			}
		}
	}

	var ev, av any
	if json.Unmarshal([]byte(et), &ev) == nil && json.Unmarshal([]byte(at), &av) == nil {
		return NewJson()
	}

	if et != "" && at != "" && numericLineRe.MatchString(et) && numericLineRe.MatchString(at) {
		return NewNumeric()
	}

	return NewTextExact()
}

func looksBracketed(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) ||
		(strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"))
}

func allPrimitive(items []any) bool {
	for _, it := range items {
		switch it.(type) {
		case map[string]any, []any:
			return false
		}
	}
	return true
}

func boolOpt(config map[string]any, key string, dst *bool) {
	if v, ok := config[key].(bool); ok {
		*dst = v
	}
}

func floatOpt(config map[string]any, key string, dst *float64) {
	switch v := config[key].(type) {
	case float64:
		*dst = v
	case int:
		*dst = float64(v)
	}
}
