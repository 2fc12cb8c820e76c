package lint

import (
	"errors"

	"github.com/leapstack-labs/templint/pkg/ast"
	"github.com/leapstack-labs/templint/pkg/parser"
)

// Options configures a Linter instance.
type Options struct {
	// Config is an explicit configuration object. It always wins over the
	// config file.
	Config *Config

	// ConfigPath points at a config file. When empty and Config is nil,
	// a .template-lintrc.yaml is discovered from WorkingDir upward.
	ConfigPath string

	// WorkingDir anchors config discovery and relative extends entries.
	// Defaults to the process working directory semantics of ".".
	WorkingDir string

	// Registry overrides the rule registry. Defaults to the registry of
	// built-in rules.
	Registry *Registry

	// Plugins are registered, in order, into a copy of the registry before
	// configuration is resolved.
	Plugins []Plugin
}

// Linter verifies template modules against a configuration resolved once
// at construction time. The resolved configuration is immutable for the
// lifetime of the instance; Verify calls share no other state.
type Linter struct {
	config   *Config
	registry *Registry
}

// New creates a Linter, resolving configuration immediately. It returns a
// *ConfigLoadError if the configuration cannot be loaded.
func New(opts Options) (*Linter, error) {
	base := opts.Registry
	if base == nil {
		base = DefaultRegistry()
	}
	registry := base.Clone()
	for _, p := range opts.Plugins {
		if err := registry.RegisterPlugin(p); err != nil {
			return nil, err
		}
	}

	workingDir := opts.WorkingDir
	if workingDir == "" {
		workingDir = "."
	}

	config, err := Resolve(opts.Config, opts.ConfigPath, workingDir, registry)
	if err != nil {
		return nil, err
	}

	return &Linter{config: config, registry: registry}, nil
}

// Config returns the resolved configuration.
func (l *Linter) Config() *Config { return l.config }

// Registry returns the linter's rule registry.
func (l *Linter) Registry() *Registry { return l.registry }

// Verify lints one module and returns its findings in traversal order.
// A parse failure yields a single fatal finding; an ignored module yields
// no findings regardless of content.
func (l *Linter) Verify(source, moduleID string) []Finding {
	classifier := &Classifier{Config: l.config, Registry: l.registry}
	if classifier.Ignored(moduleID) {
		return nil
	}

	tpl, err := parser.Parse(source)
	if err != nil {
		return []Finding{fatalFinding(err, source, moduleID)}
	}

	dispatcher := &Dispatcher{ModuleID: moduleID, Source: source}
	messages := dispatcher.Run(tpl, l.activeRules())
	messages = newDirectiveFilter(tpl).Filter(messages)

	return classifier.Classify(messages, moduleID)
}

// activeRules resolves the enabled rule set in registry order.
func (l *Linter) activeRules() []ActiveRule {
	var active []ActiveRule
	for _, name := range l.registry.Names() {
		options, enabled := l.config.RuleSetting(name)
		if !enabled {
			continue
		}
		def, _ := l.registry.Get(name)
		active = append(active, ActiveRule{Def: def, Options: options})
	}
	return active
}

// fatalFinding converts a parse error into the single finding reported for
// an unparsable module.
func fatalFinding(err error, source, moduleID string) Finding {
	f := Finding{
		Message:  err.Error(),
		ModuleID: moduleID,
		Source:   source,
		Severity: SeverityError,
		Fatal:    true,
	}
	var perr *parser.Error
	if errors.As(err, &perr) {
		f.Line = perr.Pos.Line
		f.Column = perr.Pos.Column
	}
	return f
}

// VerifyTemplate runs the active rules over an already parsed template.
// It is used by callers that obtained the AST elsewhere and skips the
// ignore and parse handling of Verify.
func (l *Linter) VerifyTemplate(tpl *ast.Template, source, moduleID string) []Finding {
	dispatcher := &Dispatcher{ModuleID: moduleID, Source: source}
	messages := dispatcher.Run(tpl, l.activeRules())
	messages = newDirectiveFilter(tpl).Filter(messages)
	classifier := &Classifier{Config: l.config, Registry: l.registry}
	return classifier.Classify(messages, moduleID)
}
