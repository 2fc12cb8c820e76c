package lint

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config file names discovered in the working directory when no explicit
// path is given.
var configFileNames = []string{".template-lintrc.yaml", ".template-lintrc.yml"}

// maxUpwardSearchLevels limits how far up the directory tree to search for
// a config file.
const maxUpwardSearchLevels = 10

// ConfigLoadError reports a configuration that could not be loaded. It is
// the only failure that aborts a whole run.
type ConfigLoadError struct {
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("config file %q could not be found. Aborting.", e.Path)
	}
	return fmt.Sprintf("failed to load config file %q: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error { return e.Err }

// deprecatedRules maps legacy rule names to their canonical replacements.
// Configured values carry over unchanged.
var deprecatedRules = map[string]string{
	"bare-strings":   "no-bare-strings",
	"html-comments":  "no-html-comments",
	"triple-curlies": "no-triple-curlies",
}

// Resolve produces the final configuration for a Linter instance.
//
// Precedence, lowest first: built-in defaults (empty rule set), the config
// file (explicit path, or discovered when no explicit config object is
// given), the extends chain in listed order, and finally the explicit
// config object, which always wins.
func Resolve(explicit *Config, configPath, workingDir string, registry *Registry) (*Config, error) {
	merged := NewConfig()

	var fileCfg *Config
	var baseDir string
	switch {
	case configPath != "":
		if _, err := os.Stat(configPath); err != nil {
			return nil, &ConfigLoadError{Path: configPath}
		}
		cfg, err := loadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		fileCfg = cfg
		baseDir = filepath.Dir(configPath)
	case explicit == nil:
		if found := findConfigFile(workingDir); found != "" {
			cfg, err := loadConfigFile(found)
			if err != nil {
				return nil, err
			}
			fileCfg = cfg
			baseDir = filepath.Dir(found)
		}
	}
	if baseDir == "" {
		baseDir = workingDir
	}

	merged.merge(fileCfg)

	var extends []string
	if fileCfg != nil {
		extends = append(extends, fileCfg.Extends...)
	}
	if explicit != nil {
		extends = append(extends, explicit.Extends...)
	}
	resolving := map[string]bool{}
	for _, ref := range extends {
		sub, err := resolveExtendRef(ref, baseDir, registry, resolving)
		if err != nil {
			return nil, err
		}
		merged.merge(sub)
	}

	merged.merge(explicit)
	rewriteDeprecatedRules(merged)
	return merged, nil
}

// resolveExtendRef resolves one extends entry: a plugin preset
// ("pluginName:configName"), a registered built-in preset, or a config
// file path relative to baseDir. Extended configs may extend further;
// resolving holds the chain currently being expanded, so only a true
// back-edge is a cycle and two entries may share a common base.
func resolveExtendRef(ref, baseDir string, registry *Registry, resolving map[string]bool) (*Config, error) {
	if resolving[ref] {
		return nil, &ConfigLoadError{Path: ref, Err: fmt.Errorf("extends cycle detected at %q", ref)}
	}
	resolving[ref] = true
	defer delete(resolving, ref)

	if registry != nil {
		if cfg, ok := registry.NamedConfig(ref); ok {
			return flattenExtends(cfg, baseDir, registry, resolving)
		}
	}

	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, &ConfigLoadError{Path: ref}
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}
	return flattenExtends(cfg, filepath.Dir(path), registry, resolving)
}

// flattenExtends resolves cfg's own extends chain and folds it underneath
// cfg's direct settings.
func flattenExtends(cfg *Config, baseDir string, registry *Registry, resolving map[string]bool) (*Config, error) {
	if len(cfg.Extends) == 0 {
		return cfg, nil
	}
	out := NewConfig()
	for _, ref := range cfg.Extends {
		sub, err := resolveExtendRef(ref, baseDir, registry, resolving)
		if err != nil {
			return nil, err
		}
		out.merge(sub)
	}
	out.merge(cfg)
	out.Extends = nil
	return out, nil
}

func rewriteDeprecatedRules(cfg *Config) {
	for legacy, canonical := range deprecatedRules {
		v, ok := cfg.Rules[legacy]
		if !ok {
			continue
		}
		delete(cfg.Rules, legacy)
		if _, exists := cfg.Rules[canonical]; !exists {
			cfg.Rules[canonical] = v
		}
	}
}

// findConfigFile searches dir and its parents for a lint rc file.
func findConfigFile(dir string) string {
	if dir == "" {
		dir = "."
	}
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// rawConfig mirrors the persisted YAML shape before pending entries are
// normalized.
type rawConfig struct {
	Rules   map[string]any `koanf:"rules"`
	Pending []any          `koanf:"pending"`
	Ignore  []string       `koanf:"ignore"`
	Extends []string       `koanf:"extends"`
	Plugins []string       `koanf:"plugins"`
}

func loadConfigFile(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, &ConfigLoadError{Path: path, Err: err}
	}

	var raw rawConfig
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, &ConfigLoadError{Path: path, Err: err}
	}

	cfg := NewConfig()
	for name, v := range raw.Rules {
		cfg.Rules[name] = v
	}
	cfg.Ignore = raw.Ignore
	cfg.Extends = raw.Extends
	cfg.Plugins = raw.Plugins

	for _, entry := range raw.Pending {
		pe, err := decodePendingEntry(entry)
		if err != nil {
			return nil, &ConfigLoadError{Path: path, Err: err}
		}
		cfg.Pending = append(cfg.Pending, pe)
	}
	return cfg, nil
}

// decodePendingEntry accepts the two persisted forms: a bare module id
// string, or a {moduleId, only} mapping.
func decodePendingEntry(v any) (PendingEntry, error) {
	switch entry := v.(type) {
	case string:
		return PendingEntry{ModuleID: entry}, nil
	case map[string]any:
		var pe PendingEntry
		if err := mapstructure.Decode(entry, &pe); err != nil {
			return PendingEntry{}, fmt.Errorf("invalid pending entry: %w", err)
		}
		if pe.ModuleID == "" {
			return PendingEntry{}, fmt.Errorf("pending entry is missing moduleId")
		}
		return pe, nil
	default:
		return PendingEntry{}, fmt.Errorf("invalid pending entry of type %T", v)
	}
}
