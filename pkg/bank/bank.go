// Package bank loads scenario suites from YAML or JSON files
// and provides the built-in seed suite.
package bank

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"digital.vasic.evaluator/pkg/scenario"
)

// Bank manages an ordered collection of scenario definitions
// loaded from one or more suites.
type Bank struct {
	mu      sync.RWMutex
	order   []scenario.ID
	byID    map[scenario.ID]*scenario.Definition
	sources []string
}

// New creates a new empty Bank.
func New() *Bank {
	return &Bank{
		byID: make(map[scenario.ID]*scenario.Definition),
	}
}

// LoadFile loads a suite from a .yaml, .yml or .json file.
func (b *Bank) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read suite file %s: %w", path, err)
	}
	return b.LoadBytes(data, path)
}

// LoadBytes parses a suite and adds its scenarios. The suite
// needs a version and at least one scenario, every scenario
// must validate and IDs must be unique across the bank.
// Nothing is added when any check fails.
func (b *Bank) LoadBytes(data []byte, source string) error {
	var file SuiteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse suite %s: %w", source, err)
	}
	if file.Version == "" {
		return fmt.Errorf("suite %s: version is required", source)
	}
	if len(file.Scenarios) == 0 {
		return fmt.Errorf("suite %s: suite is empty", source)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[scenario.ID]bool, len(file.Scenarios))
	for i := range file.Scenarios {
		def := &file.Scenarios[i]
		if err := def.Validate(); err != nil {
			return fmt.Errorf(
				"scenario at index %d in %s: %w", i, source, err,
			)
		}
		if _, dup := b.byID[def.ID]; dup || seen[def.ID] {
			return fmt.Errorf(
				"duplicate scenario ID %s in %s", def.ID, source,
			)
		}
		seen[def.ID] = true
	}

	for i := range file.Scenarios {
		def := &file.Scenarios[i]
		b.byID[def.ID] = def
		b.order = append(b.order, def.ID)
	}
	b.sources = append(b.sources, source)
	return nil
}

// LoadDir loads every suite file in dir in lexical order. It
// does not recurse into subdirectories.
func (b *Bank) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read suite directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsSuiteFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		if err := b.LoadFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// LoadPath loads a single suite file or a directory of them.
func (b *Bank) LoadPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat suite path %s: %w", path, err)
	}
	if info.IsDir() {
		return b.LoadDir(path)
	}
	return b.LoadFile(path)
}

// IsSuiteFile reports whether name has a suite file extension.
func IsSuiteFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Get retrieves a scenario definition by ID.
func (b *Bank) Get(id scenario.ID) (*scenario.Definition, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	def, ok := b.byID[id]
	return def, ok
}

// All returns all definitions in load order.
func (b *Bank) All() []*scenario.Definition {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]*scenario.Definition, 0, len(b.order))
	for _, id := range b.order {
		result = append(result, b.byID[id])
	}
	return result
}

// ByCategory returns definitions filtered by category, in load
// order.
func (b *Bank) ByCategory(category string) []*scenario.Definition {
	var result []*scenario.Definition
	for _, def := range b.All() {
		if def.Category == category {
			result = append(result, def)
		}
	}
	return result
}

// Count returns the number of loaded definitions.
func (b *Bank) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// Sources returns the list of loaded sources.
func (b *Bank) Sources() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]string, len(b.sources))
	copy(result, b.sources)
	return result
}
