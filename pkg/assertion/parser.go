package assertion

import "strings"

// ParseAssertionString parses a compact assertion string of the
// form "type:value" into its components. If no colon is present
// the entire string is treated as the type and value is nil.
//
// Examples:
//
//	"equals:4"                   -> ("equals", "4")
//	"no_error"                   -> ("no_error", nil)
//	"error_is:division_by_zero"  -> ("error_is", "division_by_zero")
func ParseAssertionString(
	s string,
) (assertionType string, value any) {
	parts := strings.SplitN(s, ":", 2)
	assertionType = strings.TrimSpace(parts[0])

	if len(parts) > 1 {
		value = strings.TrimSpace(parts[1])
	}

	return
}

// ParseDefinition builds a Definition from the compact form,
// using the default target for its type.
func ParseDefinition(s string) Definition {
	t, v := ParseAssertionString(s)
	return Definition{
		Type:   t,
		Target: DefaultTarget(t),
		Value:  v,
	}
}

// DefaultTarget returns the value name an assertion type checks
// when no target is given.
func DefaultTarget(assertionType string) string {
	switch assertionType {
	case TypeErrorIs, TypeNoError:
		return "error"
	case TypeOutputEquals, TypeOutputContains:
		return "output"
	default:
		return "result"
	}
}
