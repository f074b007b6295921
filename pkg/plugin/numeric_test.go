package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.evaluator/pkg/assertion"
)

func numericEngine(t *testing.T) *assertion.DefaultEngine {
	t.Helper()
	engine := assertion.NewEngine()
	require.NoError(t, NumericPlugin{}.Init(&Context{Engine: engine}))
	return engine
}

func TestNumericPlugin_Init(t *testing.T) {
	engine := numericEngine(t)
	for _, typ := range []string{TypeGreaterThan, TypeLessThan, TypeInRange} {
		assert.True(t, engine.HasEvaluator(typ), typ)
	}

	assert.Error(t, NumericPlugin{}.Init(&Context{}))
	assert.Error(t, NumericPlugin{}.Init(&Context{Engine: engine}))
}

func TestNumericPlugin_Evaluators(t *testing.T) {
	engine := numericEngine(t)

	tests := []struct {
		assertion string
		value     any
		passed    bool
		message   string
	}{
		{"greater_than:3", int32(4), true, "4 > 3"},
		{"greater_than:4", int32(4), false, "expected a value > 4, got 4"},
		{"less_than:0", int32(-2), true, "-2 < 0"},
		{"less_than:x", int32(1), false, "invalid bound: strconv.ParseInt: parsing \"x\": invalid syntax"},
		{"in_range:0..10", int32(10), true, "10 is within 0..10"},
		{"in_range:0..10", int32(11), false, "11 is outside 0..10"},
		{"in_range:5", int32(5), false, "invalid range \"5\", want lo..hi"},
		{"greater_than:0", "OK", false, "value is not an integer: strconv.ParseInt: parsing \"OK\": invalid syntax"},
		{"greater_than:0", nil, false, "value is not an integer: unsupported type <nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.assertion, func(t *testing.T) {
			res := engine.Evaluate(assertion.ParseDefinition(tt.assertion), tt.value)
			assert.Equal(t, tt.passed, res.Passed)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}
