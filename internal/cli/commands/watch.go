package commands

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/templint/internal/cli/config"
	"github.com/leapstack-labs/templint/internal/cli/output"
	"github.com/leapstack-labs/templint/pkg/lint"
)

// watchDebounce coalesces bursts of filesystem events into one re-lint.
const watchDebounce = 200 * time.Millisecond

// watchAndRelint watches the linted paths and re-runs the lint loop on
// every change until the command context is cancelled. It always returns
// the context error; per-run lint failures are reported, not fatal.
func watchAndRelint(cmd *cobra.Command, r *output.Renderer, linter *lint.Linter, args []string, workingDir string, opts *LintOptions, quiet bool) error {
	logger := config.GetLogger(cmd.Context())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range watchRoots(args, workingDir) {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("failed to watch directory", "dir", dir, "error", err)
		}
	}

	r.Println("")
	r.Println("Watching for changes...")

	var timer *time.Timer
	relint := func() {
		paths, err := expandPaths(args, workingDir)
		if err != nil {
			r.Error(err.Error())
			return
		}
		results, err := lintFiles(linter, paths, workingDir)
		if err != nil {
			r.Error(err.Error())
			return
		}
		_ = renderResults(r, results, quiet)
		r.Println("Watching for changes...")
	}

	for {
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, relint)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// watchRoots maps lint arguments to directories worth watching.
func watchRoots(args []string, workingDir string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if dir != "" && !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			add(arg)
			_ = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
				if err == nil && d.IsDir() {
					add(path)
				}
				return nil
			})
		case err == nil:
			add(filepath.Dir(arg))
		default:
			// Glob pattern: watch the static prefix before the first meta character.
			add(globRoot(arg, workingDir))
		}
	}
	return dirs
}

// globRoot returns the longest literal directory prefix of a glob pattern.
func globRoot(pattern, workingDir string) string {
	dir := pattern
	for {
		if !containsGlobMeta(dir) {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return workingDir
		}
		dir = parent
	}
}

func containsGlobMeta(s string) bool {
	for _, c := range s {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

func relevantEvent(e fsnotify.Event) bool {
	if !e.Op.Has(fsnotify.Write) && !e.Op.Has(fsnotify.Create) && !e.Op.Has(fsnotify.Remove) && !e.Op.Has(fsnotify.Rename) {
		return false
	}
	ext := filepath.Ext(e.Name)
	return templateExtensions[ext] || ext == ".yaml" || ext == ".yml"
}
