package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAssertionString(t *testing.T) {
	tests := []struct {
		input     string
		wantType  string
		wantValue any
	}{
		{"equals:4", "equals", "4"},
		{"no_error", "no_error", nil},
		{"error_is: division_by_zero", "error_is", "division_by_zero"},
		{"output_contains:a:b", "output_contains", "a:b"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			typ, val := ParseAssertionString(tt.input)
			assert.Equal(t, tt.wantType, typ)
			assert.Equal(t, tt.wantValue, val)
		})
	}
}

func TestParseDefinition_DefaultTargets(t *testing.T) {
	assert.Equal(t, Definition{
		Type: "equals", Target: "result", Value: "8",
	}, ParseDefinition("equals:8"))

	assert.Equal(t, "error", ParseDefinition("error_is:arity").Target)
	assert.Equal(t, "error", ParseDefinition("no_error").Target)
	assert.Equal(t, "output", ParseDefinition("output_equals:Positive").Target)
}
