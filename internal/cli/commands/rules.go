package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/templint/internal/cli/config"
	"github.com/leapstack-labs/templint/internal/cli/output"
	"github.com/leapstack-labs/templint/pkg/lint"
	_ "github.com/leapstack-labs/templint/pkg/lint/rules" // register built-in rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-name]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  templint rules

  # Show details for a specific rule
  templint rules no-bare-strings

  # Output as JSON
  templint rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// ruleInfo is the serializable description of a registered rule.
type ruleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newRenderer(cmd *cobra.Command, format string) *output.Renderer {
	cfg := config.Current()
	mode := output.Mode(cfg.Output)
	if format != "" {
		mode = output.Mode(format)
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := newRenderer(cmd, opts.Format)

	var rules []ruleInfo
	for _, def := range lint.DefaultRegistry().All() {
		rules = append(rules, ruleInfo{Name: def.Name, Description: def.Description})
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(map[string]any{"rules": rules, "count": len(rules)})
	case output.ModeMarkdown:
		r.Println("# Lint Rules")
		r.Println("")
		for _, rule := range rules {
			r.Printf("- **%s** - %s\n", rule.Name, rule.Description)
		}
		r.Println("")
		return nil
	default:
		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Rule", "Description"})
		for _, rule := range rules {
			t.AppendRow(table.Row{rule.Name, rule.Description})
		}
		t.Render()
		r.Println("")
		r.Println(r.Styles().Muted.Render("Use 'templint rules <rule-name>' for details"))
		return nil
	}
}

func showRule(cmd *cobra.Command, name string, opts *RulesOptions) error {
	r := newRenderer(cmd, opts.Format)

	def, ok := lint.DefaultRegistry().Get(name)
	if !ok {
		return fmt.Errorf("rule %q not found", name)
	}
	info := ruleInfo{Name: def.Name, Description: def.Description}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeMarkdown:
		r.Printf("# %s\n\n%s\n", info.Name, info.Description)
		return nil
	default:
		styles := r.Styles()
		r.Println("")
		r.Println(styles.Header1.Render(info.Name))
		r.Println("")
		r.Println("  " + info.Description)
		r.Println("")
		r.Printf("  Enable in .template-lintrc.yaml:\n")
		r.Println(styles.Muted.Render(fmt.Sprintf("    rules:\n      %s: true", info.Name)))
		return nil
	}
}
