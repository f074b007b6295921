package bank

import "digital.vasic.evaluator/pkg/scenario"

// SuiteFile represents the on-disk structure of a scenario
// suite. JSON files decode through the same YAML tags.
type SuiteFile struct {
	Version   string                `yaml:"version" json:"version"`
	Name      string                `yaml:"name" json:"name"`
	Scenarios []scenario.Definition `yaml:"scenarios" json:"scenarios"`
	Metadata  map[string]any        `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}
