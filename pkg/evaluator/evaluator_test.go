package evaluator

import (
	"bytes"
	"errors"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsToStdout(t *testing.T) {
	e := New()
	assert.Equal(t, os.Stdout, e.out)
}

func TestNew_NilOutputDiscards(t *testing.T) {
	e := New(WithOutput(nil))
	require.NotNil(t, e.out)
	assert.NoError(t, e.ClassifyAndReport(1))
}

func TestEvaluator_SeedScenarios(t *testing.T) {
	e := New()

	assert.Equal(t, int32(4), e.Add(2, 2))
	assert.Equal(t, int32(0), e.Subtract(5, 5))
	assert.Equal(t, int32(6), e.Multiply(2, 3))
	assert.Equal(t, int32(-2), e.Add(-5, 3))
	assert.Equal(t, int32(0), e.Multiply(100, 0))

	v, err := e.Divide(4, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)

	v, err = e.Divide(10, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(5), v)
}

func TestEvaluator_Divide(t *testing.T) {
	tests := []struct {
		name string
		a, b int32
		want int32
	}{
		{"exact", 10, 2, 5},
		{"truncates positive", 7, 2, 3},
		{"truncates toward zero", -7, 2, -3},
		{"negative divisor", 7, -2, -3},
		{"both negative", -7, -2, 3},
		{"min by minus one wraps", math.MinInt32, -1, math.MinInt32},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Divide(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluator_DivideByZero(t *testing.T) {
	e := New()

	_, err := e.Divide(10, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDivisionByZero))
	assert.Equal(t, "division by zero", err.Error())
}

func TestEvaluator_Power(t *testing.T) {
	tests := []struct {
		name           string
		base, exponent int32
		want           int32
	}{
		{"two cubed", 2, 3, 8},
		{"zero exponent", 5, 0, 1},
		{"zero to the zero", 0, 0, 1},
		{"zero base", 0, 5, 0},
		{"negative base odd", -2, 3, -8},
		{"negative base even", -2, 4, 16},
		{"wraps on overflow", 2, 31, math.MinInt32},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Power(tt.base, tt.exponent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluator_PowerNegativeExponent(t *testing.T) {
	_, err := New().Power(2, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeExponent)
	assert.Contains(t, err.Error(), "power(2, -1)")
}

func TestEvaluator_AddWraps(t *testing.T) {
	e := New()
	assert.Equal(t, int32(math.MinInt32), e.Add(math.MaxInt32, 1))
	assert.Equal(
		t, int32(math.MaxInt32), e.Subtract(math.MinInt32, 1),
	)
}

func TestEvaluator_ClassifyAndReport(t *testing.T) {
	tests := []struct {
		value int32
		want  string
	}{
		{1, "Positive\n"},
		{math.MaxInt32, "Positive\n"},
		{0, "Non-positive\n"},
		{-1, "Non-positive\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		e := New(WithOutput(&buf))
		require.NoError(t, e.ClassifyAndReport(tt.value))
		assert.Equal(t, tt.want, buf.String(), "value %d", tt.value)
	}
}

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("closed")
}

func TestEvaluator_ClassifyAndReport_WriteError(t *testing.T) {
	e := New(WithOutput(failingWriter{}))
	assert.EqualError(t, e.ClassifyAndReport(1), "closed")
}

func TestEvaluator_ComplexMethod(t *testing.T) {
	e := New()
	assert.Equal(t, int32(36), e.ComplexMethod(1, 2, 3, 4, 5, 6, 7, 8))
	assert.Equal(t, int32(0), e.ComplexMethod(0, 0, 0, 0, 0, 0, 0, 0))
	assert.Equal(
		t, int32(0), e.ComplexMethod(1, -1, 2, -2, 3, -3, 4, -4),
	)
}

func TestEvaluator_StatusLabel(t *testing.T) {
	want := map[int32]string{
		200: "OK",
		201: "Created",
		204: "No Content",
		400: "Bad Request",
		401: "Unauthorized",
		403: "Forbidden",
		404: "Not Found",
		500: "Server Error",
		502: "Bad Gateway",
		503: "Service Unavailable",
		999: "Unknown",
		0:   "Unknown",
	}

	e := New()
	for code, label := range want {
		assert.Equal(t, label, e.StatusLabel(code), "code %d", code)
	}
	assert.Equal(t, UnknownStatus, e.StatusLabel(-200))
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "", ErrorKind(nil))
	assert.Equal(t, KindDivisionByZero, ErrorKind(ErrDivisionByZero))

	_, err := New().Power(1, -3)
	assert.Equal(t, KindNegativeExponent, ErrorKind(err))

	_, err = New().Apply("modulo", 1, 2)
	assert.Equal(t, KindUnknownOperation, ErrorKind(err))

	_, err = New().Apply(OpAdd, 1)
	assert.Equal(t, KindArity, ErrorKind(err))

	assert.Equal(t, "unknown", ErrorKind(errors.New("other")))
}
