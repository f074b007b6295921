package plugin

import (
	"fmt"
	"strconv"
	"strings"

	"digital.vasic.evaluator/pkg/assertion"
)

// Numeric assertion types contributed by NumericPlugin.
const (
	TypeGreaterThan = "greater_than"
	TypeLessThan    = "less_than"
	TypeInRange     = "in_range"
)

// NumericPlugin adds ordering assertions on integer results.
// in_range takes its bounds as "lo..hi", inclusive.
type NumericPlugin struct{}

func (NumericPlugin) Name() string    { return "numeric" }
func (NumericPlugin) Version() string { return "1.0.0" }

// Init registers the numeric assertion types with the engine.
func (NumericPlugin) Init(ctx *Context) error {
	if ctx == nil || ctx.Engine == nil {
		return fmt.Errorf("numeric plugin needs an assertion engine")
	}
	for typ, fn := range map[string]assertion.Evaluator{
		TypeGreaterThan: evaluateGreaterThan,
		TypeLessThan:    evaluateLessThan,
		TypeInRange:     evaluateInRange,
	} {
		if err := ctx.Engine.Register(typ, fn); err != nil {
			return err
		}
	}
	return nil
}

func evaluateGreaterThan(a assertion.Definition, value any) (bool, string) {
	return compare(a, value, ">", func(got, want int64) bool {
		return got > want
	})
}

func evaluateLessThan(a assertion.Definition, value any) (bool, string) {
	return compare(a, value, "<", func(got, want int64) bool {
		return got < want
	})
}

func compare(
	a assertion.Definition,
	value any,
	op string,
	ok func(got, want int64) bool,
) (bool, string) {
	want, err := toInt(a.Value)
	if err != nil {
		return false, fmt.Sprintf("invalid bound: %v", err)
	}
	got, err := toInt(value)
	if err != nil {
		return false, fmt.Sprintf("value is not an integer: %v", err)
	}
	if ok(got, want) {
		return true, fmt.Sprintf("%d %s %d", got, op, want)
	}
	return false, fmt.Sprintf("expected a value %s %d, got %d", op, want, got)
}

func evaluateInRange(a assertion.Definition, value any) (bool, string) {
	bounds, _ := a.Value.(string)
	loText, hiText, found := strings.Cut(bounds, "..")
	if !found {
		return false, fmt.Sprintf("invalid range %q, want lo..hi", bounds)
	}
	lo, errLo := toInt(loText)
	hi, errHi := toInt(hiText)
	if errLo != nil || errHi != nil {
		return false, fmt.Sprintf("invalid range %q, want lo..hi", bounds)
	}
	got, err := toInt(value)
	if err != nil {
		return false, fmt.Sprintf("value is not an integer: %v", err)
	}
	if got < lo || got > hi {
		return false, fmt.Sprintf("%d is outside %d..%d", got, lo, hi)
	}
	return true, fmt.Sprintf("%d is within %d..%d", got, lo, hi)
}

func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	}
	return 0, fmt.Errorf("unsupported type %T", v)
}
