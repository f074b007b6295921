package assertion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateEquals(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{"int32 vs int", 4, int32(4), true},
		{"int32 vs float64 from json", float64(6), int32(6), true},
		{"int32 vs compact string", "-2", int32(-2), true},
		{"mismatch", 5, int32(4), false},
		{"labels", "OK", "OK", true},
		{"label mismatch", "OK", "Unknown", false},
		{"number vs label", 200, "OK", false},
		{"nil vs nil", nil, nil, true},
		{"fractional float", 2.5, int32(2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := evaluateEquals(
				Definition{Value: tt.expected}, tt.actual,
			)
			assert.Equal(t, tt.want, got, msg)
		})
	}
}

func TestEvaluateNotEquals(t *testing.T) {
	ok, _ := evaluateNotEquals(Definition{Value: 2}, int32(3))
	assert.True(t, ok)

	ok, msg := evaluateNotEquals(Definition{Value: 3}, int32(3))
	assert.False(t, ok)
	assert.Equal(t, "unexpectedly equals 3", msg)
}

func TestEvaluateErrorIs(t *testing.T) {
	def := Definition{Value: "division_by_zero"}

	ok, _ := evaluateErrorIs(def, "division_by_zero")
	assert.True(t, ok)

	ok, msg := evaluateErrorIs(def, "")
	assert.False(t, ok)
	assert.Contains(t, msg, "got none")

	ok, msg = evaluateErrorIs(def, "arity")
	assert.False(t, ok)
	assert.Contains(t, msg, "got arity")

	ok, _ = evaluateErrorIs(Definition{Value: 7}, "arity")
	assert.False(t, ok)
}

func TestEvaluateNoError(t *testing.T) {
	ok, _ := evaluateNoError(Definition{}, "")
	assert.True(t, ok)

	ok, _ = evaluateNoError(Definition{}, nil)
	assert.True(t, ok)

	ok, msg := evaluateNoError(Definition{}, "division_by_zero")
	assert.False(t, ok)
	assert.Contains(t, msg, "division_by_zero")
}

func TestEvaluateOutputEquals(t *testing.T) {
	ok, _ := evaluateOutputEquals(
		Definition{Value: "Positive"}, "Positive\n",
	)
	assert.True(t, ok)

	ok, _ = evaluateOutputEquals(
		Definition{Value: "Positive"}, "Non-positive\n",
	)
	assert.False(t, ok)

	ok, msg := evaluateOutputEquals(Definition{Value: "x"}, 1)
	assert.False(t, ok)
	assert.Equal(t, "value is not a string", msg)

	ok, msg = evaluateOutputEquals(Definition{Value: 1}, "x")
	assert.False(t, ok)
	assert.Equal(t, "expected value is not a string", msg)
}

func TestEvaluateOutputContains(t *testing.T) {
	ok, _ := evaluateOutputContains(
		Definition{Value: "positive"}, "Non-positive\n",
	)
	assert.True(t, ok)

	ok, _ = evaluateOutputContains(
		Definition{Value: "Positive"}, "Non-positive\n",
	)
	assert.False(t, ok)
}

func TestToInt64_FloatBounds(t *testing.T) {
	n, ok := toInt64(float64(math.MinInt64))
	assert.True(t, ok)
	assert.Equal(t, int64(math.MinInt64), n)

	n, ok = toInt64(float64(1 << 62))
	assert.True(t, ok)
	assert.Equal(t, int64(1<<62), n)

	// float64(MaxInt64) rounds up to 2^63, which int64 cannot hold.
	_, ok = toInt64(float64(math.MaxInt64))
	assert.False(t, ok)
	assert.Equal(t, "9.223372036854776e+18", canonical(float64(math.MaxInt64)))

	_, ok = toInt64(2.5)
	assert.False(t, ok)
}
