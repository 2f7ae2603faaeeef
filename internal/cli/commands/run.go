package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// stdinName names standard input in diagnostics.
const stdinName = "<stdin>"

// RunOptions holds options for the run command.
type RunOptions struct {
	Watch bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Execute nail scripts",
		Long: `Execute one or more scripts against a fresh in-memory database.

Files run in order against the same database. With no files, or the file
"-", the script is read from standard input. Errors are reported with
their location and execution continues with the next statement unless
--continue-on-error=false is given.`,
		Example: `  # Run a script
  nail run people.nail

  # Run from a pipe and print JSON
  cat people.nail | nail run -o json

  # Re-run whenever the script changes
  nail run --watch people.nail`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripts(cmd, args, opts)
		},
	}

	cmd.Flags().Bool("continue-on-error", true, "Keep executing after a failed statement")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run when a script file changes")

	return cmd
}

func runScripts(cmd *cobra.Command, args []string, opts *RunOptions) error {
	cc := NewCommandContext(cmd)

	if opts.Watch {
		if len(args) == 0 || containsStdin(args) {
			return fmt.Errorf("--watch needs at least one file (standard input cannot be watched)")
		}
		return watchScripts(cmd.Context(), cc, args)
	}

	scripts, err := readScripts(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	return cc.runOnce(scripts)
}

// runOnce executes scripts in order against one fresh database.
func (cc *CommandContext) runOnce(scripts []script) error {
	db := cc.NewDatabase()
	failed := 0
	for _, s := range scripts {
		diags, err := cc.execute(db, s, cc.Cfg.ContinueOnError)
		if err != nil {
			return err
		}
		failed += len(diags)
		if len(diags) > 0 && !cc.Cfg.ContinueOnError {
			break
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d statement(s) failed", failed)
	}
	return nil
}

// readScripts loads the named files; no names or "-" reads stdin.
func readScripts(stdin io.Reader, args []string) ([]script, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	scripts := make([]script, 0, len(args))
	for _, name := range args {
		if name == "-" {
			src, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read standard input: %w", err)
			}
			scripts = append(scripts, script{Name: stdinName, Src: src})
			continue
		}

		src, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		scripts = append(scripts, script{Name: name, Src: src})
	}
	return scripts, nil
}

func containsStdin(args []string) bool {
	for _, a := range args {
		if a == "-" {
			return true
		}
	}
	return false
}

// watchScripts runs files once, then again each time one of them is
// written, until ctx is cancelled. Every run starts from an empty database.
func watchScripts(ctx context.Context, cc *CommandContext, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch directories rather than files so editors that replace the
	// file on save keep triggering events.
	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	rerun := func() {
		scripts, err := readScripts(nil, files)
		if err != nil {
			cc.Renderer.Error(err.Error())
			return
		}
		if err := cc.runOnce(scripts); err != nil {
			cc.Renderer.Error(err.Error())
		}
	}

	rerun()
	cc.Logger.Info("watching scripts", "files", len(files))
	cc.Renderer.Muted("Watching for changes (Ctrl+C to stop)")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cc.Logger.Debug("script changed", "file", event.Name, "op", event.Op.String())
			cc.Renderer.Header(2, "Re-running "+filepath.Base(event.Name))
			rerun()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cc.Logger.Warn("watch error", "error", err)
		}
	}
}

// RunStdin executes a script read from the command's standard input.
func RunStdin(cmd *cobra.Command) error {
	return runScripts(cmd, nil, &RunOptions{})
}
