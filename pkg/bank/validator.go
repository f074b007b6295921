package bank

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ValidationError represents a validation issue found in a
// suite file.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf(
			"scenarios[%d].%s: %s", e.Index, e.Field, e.Message,
		)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateFile validates a suite file and returns all errors
// found.
func ValidateFile(path string) []ValidationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return []ValidationError{
			{Field: "file", Message: err.Error(), Index: -1},
		}
	}
	return ValidateBytes(data)
}

// ValidateBytes validates a suite document.
func ValidateBytes(data []byte) []ValidationError {
	var file SuiteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return []ValidationError{
			{Field: "yaml", Message: err.Error(), Index: -1},
		}
	}

	var errs []ValidationError
	if file.Version == "" {
		errs = append(errs, ValidationError{
			Field: "version", Message: "version is required", Index: -1,
		})
	}
	if len(file.Scenarios) == 0 {
		errs = append(errs, ValidationError{
			Field: "scenarios", Message: "suite is empty", Index: -1,
		})
	}

	ids := make(map[string]bool)
	for i := range file.Scenarios {
		sc := &file.Scenarios[i]
		if sc.ID != "" {
			if ids[string(sc.ID)] {
				errs = append(errs, ValidationError{
					Field:   "id",
					Message: fmt.Sprintf("duplicate ID: %s", sc.ID),
					Index:   i,
				})
			}
			ids[string(sc.ID)] = true
		}
		if sc.Name == "" {
			errs = append(errs, ValidationError{
				Field: "name", Message: "scenario name is required", Index: i,
			})
		}
		if err := sc.Validate(); err != nil {
			errs = append(errs, ValidationError{
				Field: "definition", Message: err.Error(), Index: i,
			})
		}
	}
	return errs
}
