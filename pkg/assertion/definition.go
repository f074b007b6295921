// Package assertion provides an extensible assertion engine for
// checking evaluator outcomes. It ships with built-in evaluators
// for values, error kinds and captured output, and supports
// custom evaluator registration.
package assertion

// Definition describes a single assertion to evaluate against
// a named scenario value.
type Definition struct {
	// Type is the evaluator type (e.g., "equals", "error_is",
	// "output_equals").
	Type string `json:"type" yaml:"type"`

	// Target is the name of the value to check. When empty,
	// DefaultTarget(Type) is used.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// Value is the expected value.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Message is a human-readable description shown on
	// failure.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Result captures the outcome of evaluating a single assertion.
type Result struct {
	Type     string `json:"type"`
	Target   string `json:"target"`
	Expected any    `json:"expected"`
	Actual   any    `json:"actual"`
	Passed   bool   `json:"passed"`
	Message  string `json:"message"`
}

// Evaluator is a function that evaluates a single assertion type
// against a concrete value. It returns whether the assertion
// passed and a human-readable explanation.
type Evaluator func(assertion Definition, value any) (bool, string)
