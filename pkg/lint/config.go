package lint

// Config is the resolved lint configuration for a Linter instance.
//
// Rules values are polymorphic: false disables a rule, true enables it with
// defaults, and any other value is passed to the rule as its options.
type Config struct {
	Rules   map[string]any `json:"rules,omitempty" yaml:"rules,omitempty"`
	Pending []PendingEntry `json:"pending,omitempty" yaml:"pending,omitempty"`
	Ignore  []string       `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	Extends []string       `json:"extends,omitempty" yaml:"extends,omitempty"`
	Plugins []string       `json:"plugins,omitempty" yaml:"plugins,omitempty"`
}

// NewConfig creates an empty configuration: no rules active, nothing
// pending or ignored.
func NewConfig() *Config {
	return &Config{Rules: make(map[string]any)}
}

// RuleSetting returns the configured options for a rule and whether the
// rule is enabled. A bool value toggles the rule; any other non-nil value
// enables it with that value as options.
func (c *Config) RuleSetting(name string) (options any, enabled bool) {
	v, ok := c.Rules[name]
	if !ok || v == nil {
		return nil, false
	}
	if b, isBool := v.(bool); isBool {
		return nil, b
	}
	return v, true
}

// Clone returns a deep-enough copy: maps and slices are copied, option
// values are shared (they are treated as immutable after resolution).
func (c *Config) Clone() *Config {
	clone := &Config{
		Rules:   make(map[string]any, len(c.Rules)),
		Pending: append([]PendingEntry(nil), c.Pending...),
		Ignore:  append([]string(nil), c.Ignore...),
		Extends: append([]string(nil), c.Extends...),
		Plugins: append([]string(nil), c.Plugins...),
	}
	for k, v := range c.Rules {
		clone.Rules[k] = v
	}
	return clone
}

// merge overlays src onto c. Rule values merge per name with src winning on
// collision; pending, ignore and plugins lists are replaced when src sets
// them, matching the later-overrides-earlier contract of the extends chain.
func (c *Config) merge(src *Config) {
	if src == nil {
		return
	}
	for name, v := range src.Rules {
		c.Rules[name] = v
	}
	if src.Pending != nil {
		c.Pending = append([]PendingEntry(nil), src.Pending...)
	}
	if src.Ignore != nil {
		c.Ignore = append([]string(nil), src.Ignore...)
	}
	if src.Plugins != nil {
		c.Plugins = append([]string(nil), src.Plugins...)
	}
}

// PendingFor returns the pending entry matching moduleID, or nil.
func (c *Config) PendingFor(moduleID string) *PendingEntry {
	for i := range c.Pending {
		if c.Pending[i].Matches(moduleID) {
			return &c.Pending[i]
		}
	}
	return nil
}
