// Package config loads CLI settings from defaults, environment variables
// and flags.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Defaults.
const (
	DefaultOutput = "auto"
)

// Config holds the settings that shape a CLI invocation. Lint rule
// configuration is separate; it lives in the project rc file and is
// resolved by pkg/lint.
type Config struct {
	ConfigPath string `koanf:"config_path"` // explicit rc file, empty for discovery
	Output     string `koanf:"output"`      // auto, text, markdown or json
	Verbose    bool   `koanf:"verbose"`
	Quiet      bool   `koanf:"quiet"` // report errors only
	WorkingDir string `koanf:"working_dir"`
}

// loggerKey stores the slog logger in a command context.
type loggerKey struct{}

// currentConfig stores the loaded config for access by commands.
var currentConfig *Config

// Load builds the CLI configuration.
// Precedence (highest to lowest): flags > env vars > defaults.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"output":  DefaultOutput,
		"verbose": false,
		"quiet":   false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// TEMPLINT_OUTPUT -> output, TEMPLINT_CONFIG_PATH -> config_path
	if err := k.Load(env.Provider("TEMPLINT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "TEMPLINT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.WorkingDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		cfg.WorkingDir = cwd
	}
	currentConfig = &cfg
	return &cfg, nil
}

// Reset clears the loaded config. Used for testing.
func Reset() {
	currentConfig = nil
}

// Current returns the most recently loaded configuration, or a default
// config when Load has not run (e.g. a command invoked in isolation).
func Current() *Config {
	if currentConfig != nil {
		return currentConfig
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &Config{Output: DefaultOutput, WorkingDir: cwd}
}

// NewLogger builds the CLI logger. Verbose mode enables debug level;
// otherwise only warnings and errors surface.
func NewLogger(cfg *Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg != nil && cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// LoggerKey returns the context key used for storing the logger, shared
// between the cli and commands packages.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
