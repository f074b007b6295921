// Package plugin lets optional components extend a run with
// extra assertion types and scenario suites.
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"digital.vasic.evaluator/pkg/assertion"
	"digital.vasic.evaluator/pkg/bank"
	"digital.vasic.evaluator/pkg/logging"
)

// Plugin defines the interface for extending the harness.
type Plugin interface {
	// Name returns the plugin's unique name.
	Name() string
	// Version returns the plugin's version string.
	Version() string
	// Init registers the plugin's contributions.
	Init(ctx *Context) error
}

// Context provides access to harness components during
// initialization. Bank and Logger may be nil.
type Context struct {
	Engine assertion.Engine
	Bank   *bank.Bank
	Logger logging.Logger
	Config map[string]any
}

// Registry manages plugin registration and initialization.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	loaded  map[string]bool
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
		loaded:  make(map[string]bool),
	}
}

// Register adds a plugin to the registry.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("plugin cannot be nil")
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q already registered", name)
	}

	r.plugins[name] = p
	return nil
}

// Get retrieves a registered plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// InitAll initializes every registered plugin that has not
// been loaded yet, in name order.
func (r *Registry) InitAll(ctx *Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.sortedNames() {
		if err := r.initLocked(name, ctx); err != nil {
			return err
		}
	}
	return nil
}

// Init initializes a specific plugin by name.
func (r *Registry) Init(name string, ctx *Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plugins[name]; !ok {
		return fmt.Errorf("plugin %q not found", name)
	}
	return r.initLocked(name, ctx)
}

func (r *Registry) initLocked(name string, ctx *Context) error {
	if r.loaded[name] {
		return nil
	}
	p := r.plugins[name]
	if err := p.Init(ctx); err != nil {
		return fmt.Errorf("init plugin %q: %w", name, err)
	}
	r.loaded[name] = true
	if ctx.Logger != nil {
		ctx.Logger.Debug("plugin_loaded",
			logging.StringField("plugin", name),
			logging.StringField("version", p.Version()),
		)
	}
	return nil
}

// List returns all registered plugin names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsLoaded checks if a plugin has been initialized.
func (r *Registry) IsLoaded(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded[name]
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// LoadAndInit registers and initializes a set of plugins.
func (r *Registry) LoadAndInit(plugins []Plugin, ctx *Context) error {
	for _, p := range plugins {
		if err := r.Register(p); err != nil {
			return fmt.Errorf("load plugin: %w", err)
		}
	}
	return r.InitAll(ctx)
}
