package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/templint/internal/cli/output"
)

// defaultRCFile is written by the init command.
const defaultRCFile = `# templint configuration
# Run "templint rules" to see everything available.
extends:
  - recommended

# Per-rule overrides:
# rules:
#   no-bare-strings: false

# Modules with known violations, demoted to warnings until fixed:
# pending:
#   - app/templates/legacy

# Modules excluded from linting entirely:
# ignore:
#   - "generated/**"
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a starter lint configuration",
		Long: `Write a .template-lintrc.yaml with the recommended rule set and
commented examples for pending and ignore lists.`,
		Example: `  # Initialize in the current directory
  templint init

  # Initialize in a project directory
  templint init my-app

  # Overwrite an existing configuration
  templint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := newRenderer(cmd, "")
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, ".template-lintrc.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf(".template-lintrc.yaml already exists. Use --force to overwrite")
	}

	if err := os.WriteFile(configPath, []byte(defaultRCFile), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.Success("Lint configuration created at " + configPath)
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Run 'templint lint <dir>' to lint your templates")
	r.Println("  2. Run 'templint lint <dir> --print-pending' to park existing failures")
	r.Println("  3. Tighten the rule set in " + configPath)

	return nil
}
