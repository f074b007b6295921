// Package evaluator provides a stateless set of fixed-width
// integer arithmetic operations together with a status-code
// lookup and a value classifier that reports to an output
// stream.
package evaluator

import (
	"fmt"
	"io"
	"os"
)

// Classification labels written by ClassifyAndReport.
const (
	LabelPositive    = "Positive"
	LabelNonPositive = "Non-positive"
)

// Evaluator performs integer arithmetic on int32 operands.
// Results wrap on overflow using two's-complement semantics.
// An Evaluator holds no mutable state and is safe for
// concurrent use.
type Evaluator struct {
	out io.Writer
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithOutput sets the writer used by ClassifyAndReport. The
// default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Evaluator) {
		e.out = w
	}
}

// New creates an Evaluator with the supplied options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{out: os.Stdout}
	for _, opt := range opts {
		opt(e)
	}
	if e.out == nil {
		e.out = io.Discard
	}
	return e
}

// Add returns a+b.
func (e *Evaluator) Add(a, b int32) int32 {
	return a + b
}

// Subtract returns a-b.
func (e *Evaluator) Subtract(a, b int32) int32 {
	return a - b
}

// Multiply returns a*b.
func (e *Evaluator) Multiply(a, b int32) int32 {
	return a * b
}

// Divide returns a/b truncated toward zero. It returns
// ErrDivisionByZero when b is zero. Dividing math.MinInt32
// by -1 wraps to math.MinInt32.
func (e *Evaluator) Divide(a, b int32) (int32, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// Power raises base to exponent by repeated multiplication.
// Any base raised to zero is 1, including zero itself.
// A negative exponent returns ErrNegativeExponent.
func (e *Evaluator) Power(base, exponent int32) (int32, error) {
	if exponent < 0 {
		return 0, fmt.Errorf(
			"power(%d, %d): %w", base, exponent,
			ErrNegativeExponent,
		)
	}
	result := int32(1)
	for i := int32(0); i < exponent; i++ {
		result *= base
	}
	return result, nil
}

// Classify returns LabelPositive for values above zero and
// LabelNonPositive otherwise.
func (e *Evaluator) Classify(value int32) string {
	if value > 0 {
		return LabelPositive
	}
	return LabelNonPositive
}

// ClassifyAndReport writes the classification of value as a
// single line to the configured output.
func (e *Evaluator) ClassifyAndReport(value int32) error {
	_, err := fmt.Fprintln(e.out, e.Classify(value))
	return err
}

// ComplexMethod returns the sum of its eight operands.
func (*Evaluator) ComplexMethod(
	a, b, c, d, e, f, g, h int32,
) int32 {
	return a + b + c + d + e + f + g + h
}
