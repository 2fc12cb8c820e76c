// Package cli provides the command-line interface for templint.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/templint/internal/cli/commands"
	"github.com/leapstack-labs/templint/internal/cli/config"
	"github.com/leapstack-labs/templint/internal/cli/output"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// rendererKey is used to store renderer in context.
type rendererKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "templint",
		Short: "templint - Component Template Linter",
		Long: `templint statically analyzes component templates for common
mistakes: untranslated strings, unsafe statements, leftover debug
helpers and accessibility issues.

Rules are configured in .template-lintrc.yaml; modules with known
violations can be parked on a pending list and tightened over time.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)

			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
			ctx = context.WithValue(ctx, rendererKey{}, renderer)

			logger := config.NewLogger(cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().String("config-path", "", "Path to the lint config file (default: discovered .template-lintrc.yaml)")
	rootCmd.PersistentFlags().String("working-dir", "", "Working directory for config discovery and module ids (default: current directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("quiet", false, "Report errors only, hiding warnings")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewLintCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{Output: config.DefaultOutput, WorkingDir: "."}
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for templint.

To load completions:

Bash:
  $ source <(templint completion bash)

Zsh:
  $ templint completion zsh > "${fpath[1]}/_templint"

Fish:
  $ templint completion fish | source

PowerShell:
  PS> templint completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
