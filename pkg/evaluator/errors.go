package evaluator

import "errors"

var (
	// ErrDivisionByZero is returned by Divide when the divisor
	// is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNegativeExponent is returned by Power when the
	// exponent is below zero.
	ErrNegativeExponent = errors.New("negative exponent")

	// ErrUnknownOperation is returned by Apply for an
	// unsupported operation name.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrArity is returned by Apply when the number of
	// arguments does not match the operation.
	ErrArity = errors.New("wrong number of arguments")
)

// Error kind names used by declarative assertions.
const (
	KindDivisionByZero   = "division_by_zero"
	KindNegativeExponent = "negative_exponent"
	KindUnknownOperation = "unknown_operation"
	KindArity            = "arity"
)

// ErrorKind maps err to its kind name. It returns an empty
// string for nil and "unknown" for errors outside this
// package.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, ErrNegativeExponent):
		return KindNegativeExponent
	case errors.Is(err, ErrUnknownOperation):
		return KindUnknownOperation
	case errors.Is(err, ErrArity):
		return KindArity
	}
	return "unknown"
}
