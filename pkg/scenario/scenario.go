// Package scenario defines the vocabulary shared by the suite
// loader, the runner and the reporters: declarative scenario
// definitions, their markers, results and run configuration.
package scenario

import (
	"fmt"

	"digital.vasic.evaluator/pkg/assertion"
	"digital.vasic.evaluator/pkg/evaluator"
)

// ID uniquely identifies a scenario within a suite.
type ID string

// Marker changes how a scenario's outcome is interpreted.
type Marker string

const (
	// MarkerNone runs the scenario and reports its outcome
	// as-is.
	MarkerNone Marker = ""

	// MarkerSkip records the scenario as skipped without
	// executing it.
	MarkerSkip Marker = "skip"

	// MarkerExpectedFailure runs the scenario and inverts the
	// meaning of its outcome: a failure is reported as xfail,
	// a pass as xpass.
	MarkerExpectedFailure Marker = "expected_failure"
)

// Valid reports whether m is a known marker.
func (m Marker) Valid() bool {
	switch m {
	case MarkerNone, MarkerSkip, MarkerExpectedFailure:
		return true
	}
	return false
}

// Definition describes a single evaluator call and the
// assertions checked against its outcome.
type Definition struct {
	ID          ID                     `json:"id" yaml:"id"`
	Name        string                 `json:"name" yaml:"name"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string                 `json:"category,omitempty" yaml:"category,omitempty"`
	Operation   string                 `json:"operation" yaml:"operation"`
	Args        []int32                `json:"args" yaml:"args"`
	Assertions  []assertion.Definition `json:"assertions" yaml:"assertions"`

	// Expect holds assertions in compact "type:value" form.
	Expect []string `json:"expect,omitempty" yaml:"expect,omitempty"`

	// Marker is one of the Marker* constants.
	Marker Marker `json:"marker,omitempty" yaml:"marker,omitempty"`

	// Reason explains a skip or an expected failure.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Validate checks that the definition names a known operation
// with the right number of arguments and a known marker.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("scenario has no ID")
	}
	arity, ok := evaluator.Arity(d.Operation)
	if !ok {
		return fmt.Errorf(
			"scenario %s: %w: %q",
			d.ID, evaluator.ErrUnknownOperation, d.Operation,
		)
	}
	if len(d.Args) != arity {
		return fmt.Errorf(
			"scenario %s: %s expects %d arguments, got %d",
			d.ID, d.Operation, arity, len(d.Args),
		)
	}
	if len(d.Assertions)+len(d.Expect) == 0 &&
		d.Marker != MarkerSkip {
		return fmt.Errorf("scenario %s: no assertions", d.ID)
	}
	if !d.Marker.Valid() {
		return fmt.Errorf(
			"scenario %s: unknown marker %q", d.ID, d.Marker,
		)
	}
	return nil
}

// AllAssertions returns Assertions followed by the parsed
// Expect entries.
func (d *Definition) AllAssertions() []assertion.Definition {
	all := make(
		[]assertion.Definition, 0, len(d.Assertions)+len(d.Expect),
	)
	all = append(all, d.Assertions...)
	for _, e := range d.Expect {
		all = append(all, assertion.ParseDefinition(e))
	}
	return all
}

// DisplayName returns Name, or the ID when Name is empty.
func (d *Definition) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return string(d.ID)
}
