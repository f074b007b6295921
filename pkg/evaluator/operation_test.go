package evaluator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		op   string
		args []int32
		want any
	}{
		{OpAdd, []int32{2, 3}, int32(5)},
		{OpSubtract, []int32{10, 3}, int32(7)},
		{OpMultiply, []int32{4, 5}, int32(20)},
		{OpDivide, []int32{10, 2}, int32(5)},
		{OpPower, []int32{2, 3}, int32(8)},
		{OpStatusLabel, []int32{404}, "Not Found"},
		{
			OpComplexMethod,
			[]int32{1, 1, 1, 1, 1, 1, 1, 1},
			int32(8),
		},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			got, err := e.Apply(tt.op, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_Classify(t *testing.T) {
	var buf bytes.Buffer
	e := New(WithOutput(&buf))

	got, err := e.Apply(OpClassify, -4)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, "Non-positive\n", buf.String())
}

func TestApply_DivideByZero(t *testing.T) {
	got, err := New().Apply(OpDivide, 1, 0)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestApply_UnknownOperation(t *testing.T) {
	_, err := New().Apply("modulo", 1, 2)
	assert.ErrorIs(t, err, ErrUnknownOperation)
	assert.Contains(t, err.Error(), `"modulo"`)
}

func TestApply_Arity(t *testing.T) {
	_, err := New().Apply(OpComplexMethod, 1, 2, 3)
	assert.ErrorIs(t, err, ErrArity)
	assert.Contains(t, err.Error(), "expects 8 arguments, got 3")
}

func TestArity(t *testing.T) {
	n, ok := Arity(OpDivide)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = Arity(OpClassify)
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = Arity("sqrt")
	assert.False(t, ok)
}

func TestOperations(t *testing.T) {
	assert.Equal(t, []string{
		"add",
		"classify",
		"complex_method",
		"divide",
		"multiply",
		"power",
		"status_label",
		"subtract",
	}, Operations())
}
