package lint

import (
	"fmt"
	"sync"
)

// Plugin contributes externally supplied rules and named configuration
// presets. Presets are addressable from an extends entry as
// "pluginName:configName".
type Plugin struct {
	Name    string
	Rules   []RuleDef
	Configs map[string]*Config
}

// Registry maps rule names to rule definitions, preserving registration
// order. Built-in rules register first; plugin rules append after them.
// Registering an existing name replaces the definition in place, so a
// plugin can intentionally shadow a built-in or an earlier plugin rule.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	rules   map[string]RuleDef
	configs map[string]*Config // "name" for built-in presets, "plugin:name" for plugin presets
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:   make(map[string]RuleDef),
		configs: make(map[string]*Config),
	}
}

// Register adds a rule definition. Last registration for a name wins; the
// name keeps its original position in the dispatch order.
func (r *Registry) Register(def RuleDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.rules[def.Name] = def
}

// RegisterConfig records a named configuration preset, e.g. "recommended".
func (r *Registry) RegisterConfig(name string, cfg *Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[name] = cfg
}

// RegisterPlugin records a plugin's rules and named configs. Plugin configs
// are keyed "pluginName:configName" to avoid collisions between plugins.
func (r *Registry) RegisterPlugin(p Plugin) error {
	if p.Name == "" {
		return fmt.Errorf("plugin is missing a name")
	}
	for _, def := range p.Rules {
		if def.Name == "" || def.New == nil {
			return fmt.Errorf("plugin %q contains an incomplete rule definition", p.Name)
		}
		r.Register(def)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, cfg := range p.Configs {
		r.configs[p.Name+":"+name] = cfg
	}
	return nil
}

// Get returns the rule definition for name.
func (r *Registry) Get(name string) (RuleDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.rules[name]
	return def, ok
}

// Has reports whether a rule with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns all registered rule names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns all rule definitions in registration order.
func (r *Registry) All() []RuleDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]RuleDef, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.rules[name])
	}
	return defs
}

// NamedConfig returns a registered preset by reference, either a built-in
// preset name or a "pluginName:configName" plugin reference.
func (r *Registry) NamedConfig(ref string) (*Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[ref]
	return cfg, ok
}

// Clone returns an independent copy of the registry. Linter instances
// clone the default registry before applying their plugins.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := NewRegistry()
	clone.order = append([]string(nil), r.order...)
	for name, def := range r.rules {
		clone.rules[name] = def
	}
	for name, cfg := range r.configs {
		clone.configs[name] = cfg
	}
	return clone
}

// defaultRegistry holds built-in rules, registered from init functions in
// pkg/lint/rules.
var defaultRegistry = NewRegistry()

// Register adds a rule to the default registry.
// Call this from init() functions in rule packages.
func Register(def RuleDef) {
	defaultRegistry.Register(def)
}

// RegisterConfig adds a named preset to the default registry.
func RegisterConfig(name string, cfg *Config) {
	defaultRegistry.RegisterConfig(name, cfg)
}

// DefaultRegistry returns the registry holding all built-in rules.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
