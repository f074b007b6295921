package assertion

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_RegistersAllBuiltins(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, []string{
		"equals", "error_is", "no_error",
		"not_equals", "output_contains", "output_equals",
	}, e.Types())
}

func TestDefaultEngine_Register_Success(t *testing.T) {
	e := NewEngine()

	err := e.Register("even", func(
		_ Definition, v any,
	) (bool, string) {
		n, _ := toInt64(v)
		return n%2 == 0, "parity"
	})

	require.NoError(t, err)
	assert.True(t, e.HasEvaluator("even"))

	r := e.Evaluate(Definition{Type: "even"}, int32(4))
	assert.True(t, r.Passed)
	assert.Equal(t, "result", r.Target)
}

func TestDefaultEngine_Register_Duplicate(t *testing.T) {
	e := NewEngine()

	err := e.Register(TypeEquals, func(
		_ Definition, _ any,
	) (bool, string) {
		return true, "dup"
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestDefaultEngine_Evaluate_UnknownType(t *testing.T) {
	r := NewEngine().Evaluate(Definition{
		Type:   "nonexistent",
		Target: "x",
	}, "hello")

	assert.False(t, r.Passed)
	assert.Equal(t, "x", r.Target)
	assert.Contains(t, r.Message, "unknown assertion type")
}

func TestDefaultEngine_Evaluate_CustomMessage(t *testing.T) {
	r := NewEngine().Evaluate(Definition{
		Type:    TypeEquals,
		Value:   2,
		Message: "deliberately wrong expectation",
	}, int32(3))

	assert.False(t, r.Passed)
	assert.Equal(t, "deliberately wrong expectation: expected 2, got 3", r.Message)
	assert.Equal(t, 2, r.Expected)
	assert.Equal(t, int32(3), r.Actual)
}

func TestDefaultEngine_EvaluateAll(t *testing.T) {
	e := NewEngine()

	results := e.EvaluateAll(
		[]Definition{
			{Type: TypeEquals, Value: 4},
			{Type: TypeNoError},
			{Type: TypeOutputEquals, Value: "Positive"},
			{Type: TypeEquals, Target: "missing", Value: 1},
		},
		map[string]any{
			"result": int32(4),
			"error":  "",
			"output": "Positive\n",
		},
	)

	require.Len(t, results, 4)
	assert.True(t, results[0].Passed)
	assert.True(t, results[1].Passed)
	assert.True(t, results[2].Passed)
	assert.False(t, results[3].Passed)
	assert.Equal(t, "target not found: missing", results[3].Message)
}

func TestDefaultEngine_ConcurrentUse(t *testing.T) {
	e := NewEngine()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r := e.Evaluate(Definition{Type: TypeEquals, Value: n}, n)
			assert.True(t, r.Passed)
			assert.True(t, e.HasEvaluator(TypeEquals))
		}(i)
	}
	wg.Wait()
}
