package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/grim/internal/logging"
	"github.com/yaklabco/grim/pkg/fsutil"
)

// watchOps are the events that may carry new file content. Editors that
// save through a rename show up as Create on the target.
const watchOps = fsnotify.Write | fsnotify.Create | fsnotify.Chmod

func newWatchCommand() *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-render a Markdown file every time it is saved",
		Long: heredoc.Doc(`
			Render the file like preview, then watch it and re-render on every
			change. Each save is applied to the previous decorations as a
			document edit, so only the constructs the edit touches are rebuilt.

			Stop with Ctrl-C.
		`),
		Example: heredoc.Doc(`
			grim watch notes.md --format ansi
			grim watch notes.md --format html -o notes.html
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], flags)
		},
	}

	addStateFlags(cmd, &flags.state)
	cmd.Flags().StringVar(&flags.format, "format", "plain", "output format: plain, ansi, html")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&flags.title, "title", "", "HTML page title (default: file name)")

	return cmd
}

func runWatch(cmd *cobra.Command, path string, flags *previewFlags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := newPreviewer(cmd, path, flags)
	if err != nil {
		return err
	}
	if err := p.build(ctx); err != nil {
		return err
	}
	if _, err := p.write(ctx); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory so atomic saves that replace the file are seen.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Join(ErrIO, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err))
	}

	status := logging.NewInteractive()
	status.Info("watching", logging.FieldPath, path)

	return watchLoop(ctx, p, abs, watcher.Events, watcher.Errors, status)
}

// watchLoop serializes file events into refresh-and-write cycles until ctx
// is done or the event channel closes.
func watchLoop(
	ctx context.Context,
	p *previewer,
	target string,
	events <-chan fsnotify.Event,
	errs <-chan error,
	status *log.Logger,
) error {
	for {
		select {
		case <-ctx.Done():
			status.Info("stopped watching", logging.FieldPath, p.path)
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				status.Warn("file removed; waiting for it to return", logging.FieldPath, p.path)
				continue
			}
			if event.Op&watchOps == 0 {
				continue
			}
			handleChange(ctx, p, event, status)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			status.Error("watcher error", logging.FieldError, err)
		}
	}
}

func handleChange(ctx context.Context, p *previewer, event fsnotify.Event, status *log.Logger) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		if modified, err := fsutil.CheckModified(ctx, p.info); err == nil && !modified {
			return
		}
	}

	changed, err := p.refresh(ctx)
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return
	case err != nil:
		status.Error("reload failed", logging.FieldPath, p.path, logging.FieldError, err)
		return
	case !changed:
		return
	}

	if _, err := p.write(ctx); err != nil {
		status.Error("write failed", logging.FieldPath, p.path, logging.FieldError, err)
		return
	}

	status.Info("rebuilt",
		logging.FieldEvent, event.Op.String(),
		logging.FieldRevision, p.result.Revision,
		logging.FieldDecorationsTotal, p.result.Len(),
	)
}
