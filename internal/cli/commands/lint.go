package commands

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/templint/internal/cli/config"
	"github.com/leapstack-labs/templint/internal/cli/output"
	"github.com/leapstack-labs/templint/pkg/lint"
	_ "github.com/leapstack-labs/templint/pkg/lint/rules" // register built-in rules
)

// lintConcurrency bounds parallel file verification.
const lintConcurrency = 8

// templateExtensions are picked up when a directory is linted.
var templateExtensions = map[string]bool{
	".hbs":        true,
	".handlebars": true,
	".html":       true,
}

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format       string // Output format: text, markdown, json
	JSON         bool   // Shorthand for --format json
	Filename     string // Module id for stdin input
	Quiet        bool   // Report errors only
	PrintPending bool   // Print a pending list instead of findings
	Watch        bool   // Re-lint on file changes
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Run lint rules on component templates",
		Long: `Analyze component templates and report rule violations.

Paths may be files, directories or glob patterns. Directories are
walked for template files. Pass "-" to lint stdin; use --filename to
give the stdin template a module id.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint all templates under app/
  templint lint app/

  # Lint specific files and globs
  templint lint app/templates/**/*.hbs

  # Lint stdin
  cat template.hbs | templint lint - --filename app/templates/application

  # Output as JSON
  templint lint app/ --format json

  # Regenerate the pending list
  templint lint app/ --print-pending

  # Re-lint automatically on changes
  templint lint app/ --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Shorthand for --format json")
	cmd.Flags().StringVar(&opts.Filename, "filename", "", "Module id used when linting stdin")
	cmd.Flags().BoolVar(&opts.Quiet, "quiet", false, "Report errors only, hiding warnings")
	cmd.Flags().BoolVar(&opts.PrintPending, "print-pending", false, "Print the pending list that would silence current failures")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Watch linted paths and re-run on changes")

	return cmd
}

// moduleResult holds findings for a single module.
type moduleResult struct {
	ModuleID string
	Path     string
	Findings []lint.Finding
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cfg := config.Current()
	logger := config.GetLogger(cmd.Context())

	format := opts.Format
	if opts.JSON {
		format = string(output.ModeJSON)
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
	if format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}
	quiet := opts.Quiet || cfg.Quiet

	linter, err := lint.New(lint.Options{
		ConfigPath: cfg.ConfigPath,
		WorkingDir: cfg.WorkingDir,
	})
	if err != nil {
		return err
	}

	if len(args) == 1 && (args[0] == "-" || args[0] == "/dev/stdin") {
		return lintStdin(cmd, r, linter, opts, quiet)
	}
	if len(args) == 0 {
		return fmt.Errorf("no paths given; pass files, directories or \"-\" for stdin")
	}

	paths, err := expandPaths(args, cfg.WorkingDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no template files matched %s", strings.Join(args, ", "))
	}
	logger.Debug("linting templates", "files", len(paths))

	results, err := lintFiles(linter, paths, cfg.WorkingDir)
	if err != nil {
		return err
	}

	if opts.PrintPending {
		return printPending(r, results)
	}

	lintErr := renderResults(r, results, quiet)

	if opts.Watch {
		return watchAndRelint(cmd, r, linter, args, cfg.WorkingDir, opts, quiet)
	}
	return lintErr
}

func lintStdin(cmd *cobra.Command, r *output.Renderer, linter *lint.Linter, opts *LintOptions, quiet bool) error {
	source, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	moduleID := opts.Filename
	if moduleID == "" {
		moduleID = "<stdin>"
	}
	moduleID = stripTemplateExtension(moduleID)

	results := []moduleResult{{
		ModuleID: moduleID,
		Path:     moduleID,
		Findings: linter.Verify(string(source), moduleID),
	}}

	if opts.PrintPending {
		return printPending(r, results)
	}
	return renderResults(r, results, quiet)
}

// lintFiles verifies each file, bounded by lintConcurrency, and returns
// results sorted by path.
func lintFiles(linter *lint.Linter, paths []string, workingDir string) ([]moduleResult, error) {
	var (
		mu      sync.Mutex
		results []moduleResult
	)

	g := new(errgroup.Group)
	g.SetLimit(lintConcurrency)
	for _, path := range paths {
		g.Go(func() error {
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			moduleID := moduleIDForPath(path, workingDir)
			findings := linter.Verify(string(source), moduleID)

			mu.Lock()
			results = append(results, moduleResult{ModuleID: moduleID, Path: path, Findings: findings})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

// expandPaths resolves files, directories and glob patterns into a sorted,
// de-duplicated list of template files.
func expandPaths(args []string, workingDir string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			if err := collectTemplates(arg, add); err != nil {
				return nil, err
			}
		case err == nil:
			add(arg)
		default:
			// Not an existing path: treat as a glob pattern.
			base := workingDir
			pattern := arg
			if filepath.IsAbs(pattern) {
				base = string(filepath.Separator)
				pattern = strings.TrimPrefix(pattern, base)
			}
			matches, globErr := doublestar.Glob(os.DirFS(base), filepath.ToSlash(pattern))
			if globErr != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", arg, globErr)
			}
			for _, m := range matches {
				full := filepath.Join(base, filepath.FromSlash(m))
				if info, statErr := os.Stat(full); statErr == nil && !info.IsDir() {
					add(full)
				}
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func collectTemplates(dir string, add func(string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if templateExtensions[filepath.Ext(path)] {
			add(path)
		}
		return nil
	})
}

// moduleIDForPath derives a module id from a file path: relative to the
// working directory, slash-separated, extension stripped.
func moduleIDForPath(path, workingDir string) string {
	if rel, err := filepath.Rel(workingDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		path = rel
	}
	return stripTemplateExtension(filepath.ToSlash(path))
}

func stripTemplateExtension(path string) string {
	ext := filepath.Ext(path)
	if templateExtensions[ext] {
		return strings.TrimSuffix(path, ext)
	}
	return path
}

// renderResults writes findings and returns a non-nil error when any
// error-severity finding was reported, which drives the exit code.
func renderResults(r *output.Renderer, results []moduleResult, quiet bool) error {
	var errorCount, warningCount int
	for _, res := range results {
		for _, f := range res.Findings {
			switch f.Severity {
			case lint.SeverityError:
				errorCount++
			case lint.SeverityWarning:
				warningCount++
			}
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		grouped := make(map[string][]lint.Finding, len(results))
		for _, res := range results {
			findings := res.Findings
			if quiet {
				findings = onlyErrors(findings)
			}
			if len(findings) > 0 {
				grouped[res.ModuleID] = findings
			}
		}
		if err := r.JSON(grouped); err != nil {
			return err
		}
		if errorCount > 0 {
			return fmt.Errorf("lint failures found")
		}
		return nil
	}

	styles := r.Styles()
	for _, res := range results {
		findings := res.Findings
		if quiet {
			findings = onlyErrors(findings)
		}
		if len(findings) == 0 {
			continue
		}

		r.Println(styles.ModulePath.Render(res.Path))
		for _, f := range findings {
			sev := styles.Error.Render("error  ")
			if f.Severity == lint.SeverityWarning {
				sev = styles.Warning.Render("warning")
			}
			loc := fmt.Sprintf("%d:%d", f.Line, f.Column)
			if f.Line == 0 {
				loc = "-"
			}
			r.Printf("  %s  %s  %s  %s\n",
				styles.Muted.Render(fmt.Sprintf("%-7s", loc)),
				sev,
				f.Message,
				styles.Muted.Render(f.Rule),
			)
		}
		r.Println("")
	}

	reported := errorCount + warningCount
	if quiet {
		reported = errorCount
	}
	if reported == 0 {
		r.Success("No lint issues found")
		return nil
	}

	summary := fmt.Sprintf("✖ %d problems (%d errors, %d warnings)", errorCount+warningCount, errorCount, warningCount)
	if errorCount > 0 {
		r.Println(styles.Error.Render(summary))
		return fmt.Errorf("lint failures found")
	}
	r.Println(styles.Warning.Render(summary))
	return nil
}

func onlyErrors(findings []lint.Finding) []lint.Finding {
	var out []lint.Finding
	for _, f := range findings {
		if f.Severity == lint.SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// printPending emits the pending list that would demote every current
// failure, as YAML ready for the rc file.
func printPending(r *output.Renderer, results []moduleResult) error {
	var entries []lint.PendingEntry
	for _, res := range results {
		rules := make(map[string]bool)
		fatal := false
		for _, f := range res.Findings {
			if f.Fatal {
				fatal = true
				break
			}
			if f.Rule != "" {
				rules[f.Rule] = true
			}
		}
		// Unparsable modules cannot be parked on the pending list.
		if fatal || len(rules) == 0 {
			continue
		}
		only := make([]string, 0, len(rules))
		for name := range rules {
			only = append(only, name)
		}
		sort.Strings(only)
		entries = append(entries, lint.PendingEntry{ModuleID: res.ModuleID, Only: only})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ModuleID < entries[j].ModuleID })

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(map[string]any{"pending": entries})
	}

	out, err := yaml.Marshal(map[string]any{"pending": entries})
	if err != nil {
		return err
	}
	r.Printf("%s", out)
	return nil
}
