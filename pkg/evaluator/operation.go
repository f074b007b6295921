package evaluator

import (
	"fmt"
	"sort"
)

// Operation names accepted by Apply.
const (
	OpAdd           = "add"
	OpSubtract      = "subtract"
	OpMultiply      = "multiply"
	OpDivide        = "divide"
	OpPower         = "power"
	OpClassify      = "classify"
	OpStatusLabel   = "status_label"
	OpComplexMethod = "complex_method"
)

type operation struct {
	arity int
	call  func(e *Evaluator, args []int32) (any, error)
}

var operations = map[string]operation{
	OpAdd: {2, func(e *Evaluator, a []int32) (any, error) {
		return e.Add(a[0], a[1]), nil
	}},
	OpSubtract: {2, func(e *Evaluator, a []int32) (any, error) {
		return e.Subtract(a[0], a[1]), nil
	}},
	OpMultiply: {2, func(e *Evaluator, a []int32) (any, error) {
		return e.Multiply(a[0], a[1]), nil
	}},
	OpDivide: {2, func(e *Evaluator, a []int32) (any, error) {
		v, err := e.Divide(a[0], a[1])
		if err != nil {
			return nil, err
		}
		return v, nil
	}},
	OpPower: {2, func(e *Evaluator, a []int32) (any, error) {
		v, err := e.Power(a[0], a[1])
		if err != nil {
			return nil, err
		}
		return v, nil
	}},
	OpClassify: {1, func(e *Evaluator, a []int32) (any, error) {
		return nil, e.ClassifyAndReport(a[0])
	}},
	OpStatusLabel: {1, func(e *Evaluator, a []int32) (any, error) {
		return e.StatusLabel(a[0]), nil
	}},
	OpComplexMethod: {8, func(e *Evaluator, a []int32) (any, error) {
		return e.ComplexMethod(
			a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7],
		), nil
	}},
}

// Apply invokes the named operation. Arithmetic operations
// return an int32, status_label returns a string and classify
// returns nil after writing its line to the output.
func (e *Evaluator) Apply(op string, args ...int32) (any, error) {
	o, ok := operations[op]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	if len(args) != o.arity {
		return nil, fmt.Errorf(
			"%s expects %d arguments, got %d: %w",
			op, o.arity, len(args), ErrArity,
		)
	}
	return o.call(e, args)
}

// Arity returns the number of arguments the named operation
// takes, and false if the operation is unknown.
func Arity(op string) (int, bool) {
	o, ok := operations[op]
	return o.arity, ok
}

// Operations returns the supported operation names in sorted
// order.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
