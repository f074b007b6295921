package assertion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Built-in assertion types.
const (
	TypeEquals         = "equals"
	TypeNotEquals      = "not_equals"
	TypeErrorIs        = "error_is"
	TypeNoError        = "no_error"
	TypeOutputEquals   = "output_equals"
	TypeOutputContains = "output_contains"
)

// evaluateEquals compares the canonical forms of the expected
// and actual values, so int32(4), 4, 4.0 and "4" are equal.
func evaluateEquals(
	assertion Definition,
	value any,
) (bool, string) {
	want := canonical(assertion.Value)
	got := canonical(value)
	if want == got {
		return true, fmt.Sprintf("equals %s", got)
	}
	return false, fmt.Sprintf("expected %s, got %s", want, got)
}

func evaluateNotEquals(
	assertion Definition,
	value any,
) (bool, string) {
	want := canonical(assertion.Value)
	got := canonical(value)
	if want != got {
		return true, fmt.Sprintf("%s differs from %s", got, want)
	}
	return false, fmt.Sprintf("unexpectedly equals %s", got)
}

// evaluateErrorIs checks that the error kind equals the
// expected kind name.
func evaluateErrorIs(
	assertion Definition,
	value any,
) (bool, string) {
	want, ok := assertion.Value.(string)
	if !ok || want == "" {
		return false, "expected error kind is not a string"
	}
	got, _ := value.(string)
	if got == "" {
		return false, fmt.Sprintf("expected error %s, got none", want)
	}
	if got == want {
		return true, fmt.Sprintf("error is %s", want)
	}
	return false, fmt.Sprintf("expected error %s, got %s", want, got)
}

func evaluateNoError(
	_ Definition,
	value any,
) (bool, string) {
	if value == nil {
		return true, "no error"
	}
	if s, ok := value.(string); ok && s == "" {
		return true, "no error"
	}
	return false, fmt.Sprintf("unexpected error: %v", value)
}

// evaluateOutputEquals compares captured output with the
// expected text, ignoring trailing newlines.
func evaluateOutputEquals(
	assertion Definition,
	value any,
) (bool, string) {
	got, ok := value.(string)
	if !ok {
		return false, "value is not a string"
	}
	want, ok := assertion.Value.(string)
	if !ok {
		return false, "expected value is not a string"
	}
	got = strings.TrimRight(got, "\r\n")
	want = strings.TrimRight(want, "\r\n")
	if got == want {
		return true, fmt.Sprintf("output is %q", got)
	}
	return false, fmt.Sprintf("expected output %q, got %q", want, got)
}

func evaluateOutputContains(
	assertion Definition,
	value any,
) (bool, string) {
	got, ok := value.(string)
	if !ok {
		return false, "value is not a string"
	}
	want, ok := assertion.Value.(string)
	if !ok {
		return false, "expected value is not a string"
	}
	if strings.Contains(got, want) {
		return true, fmt.Sprintf("output contains %q", want)
	}
	return false, fmt.Sprintf("output does not contain %q", want)
}

// canonical renders v in a form where numerically equal values
// of different Go types compare equal.
func canonical(v any) string {
	if n, ok := toInt64(v); ok {
		return strconv.FormatInt(n, 10)
	}
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		if n, err := strconv.ParseInt(
			strings.TrimSpace(x), 10, 64,
		); err == nil {
			return strconv.FormatInt(n, 10)
		}
		return strconv.Quote(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		if n == math.Trunc(n) &&
			n >= math.MinInt64 && n < math.MaxInt64 {
			return int64(n), true
		}
	}
	return 0, false
}
