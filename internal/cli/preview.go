package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/grim/internal/logging"
	"github.com/yaklabco/grim/internal/ui/pretty"
	"github.com/yaklabco/grim/pkg/compositor"
	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/fsutil"
	"github.com/yaklabco/grim/pkg/preview"
	"github.com/yaklabco/grim/pkg/runner"
)

// outputFilePermissions is the file mode for rendered previews.
const outputFilePermissions = 0o644

type previewFlags struct {
	state  stateFlags
	format string
	output string
	title  string
}

func newPreviewCommand() *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Render a Markdown file with its decorations applied",
		Long: heredoc.Doc(`
			Decorate a single Markdown file and write the result.

			The plain format shows widget text in place of the markup it replaces,
			ansi adds terminal styling, and html writes a standalone page with
			widgets as elements and marks as spans. Constructs under --cursor or
			--selection are written raw, as an editor would show them.
		`),
		Example: heredoc.Doc(`
			grim preview README.md                         # Plain text to stdout
			grim preview README.md --format ansi           # Styled for the terminal
			grim preview notes.md --format html -o out.html
			grim preview notes.md --cursor 0               # Keep the first line raw
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], flags)
		},
	}

	addStateFlags(cmd, &flags.state)
	cmd.Flags().StringVar(&flags.format, "format", "plain", "output format: plain, ansi, html")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&flags.title, "title", "", "HTML page title (default: file name)")

	return cmd
}

// previewer decorates one file and renders it. It keeps the compositor and
// its last result so watch can update incrementally.
type previewer struct {
	path     string
	output   string
	stdout   io.Writer
	opts     runner.Options
	comp     *compositor.Compositor
	renderer *preview.Renderer
	logger   *log.Logger

	state  compositor.State
	result *compositor.Result
	info   *fsutil.FileInfo
}

// newPreviewer resolves configuration and the editor state for path.
func newPreviewer(cmd *cobra.Command, path string, flags *previewFlags) (*previewer, error) {
	format, err := preview.ParseFormat(flags.format)
	if err != nil {
		return nil, errors.Join(ErrUsage, err)
	}
	sel, err := flags.state.selection()
	if err != nil {
		return nil, err
	}
	viewport, err := flags.state.viewport()
	if err != nil {
		return nil, err
	}

	cliCfg := &config.Config{}
	flags.state.apply(cmd, cliCfg)

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return nil, err
	}

	opts := runner.Options{
		WorkingDir: loaded.workDir,
		Config:     loaded.cfg,
		Selection:  sel,
		Viewport:   viewport,
		Logger:     loaded.logger,
	}

	title := flags.title
	if title == "" {
		title = filepath.Base(path)
	}

	return &previewer{
		path:     path,
		output:   flags.output,
		stdout:   cmd.OutOrStdout(),
		opts:     opts,
		comp:     compositor.New(runner.CompositorOptions(loaded.cfg, loaded.logger)...),
		renderer: newPreviewRenderer(cmd, format, title, flags.output),
		logger:   loaded.logger,
	}, nil
}

// newPreviewRenderer picks styles for the format. ANSI output written to a
// file is colored unless --color is never.
func newPreviewRenderer(cmd *cobra.Command, format preview.Format, title, output string) *preview.Renderer {
	opts := []preview.RendererOption{preview.WithTitle(title)}
	if format == preview.FormatANSI {
		mode := colorMode(cmd)
		colorEnabled := pretty.IsColorEnabled(mode, cmd.OutOrStdout())
		if output != "" {
			colorEnabled = mode != "never"
		}
		styles := pretty.NewStylesFor(pretty.NewRenderer(cmd.OutOrStdout(), colorEnabled), colorEnabled)
		opts = append(opts, preview.WithStyles(styles.Preview()))
	}
	return preview.NewRenderer(format, opts...)
}

// build decorates the file from scratch.
func (p *previewer) build(ctx context.Context) error {
	content, info, err := fsutil.ReadFile(ctx, p.path)
	if err != nil {
		return errors.Join(ErrIO, fmt.Errorf("decorate %s: %w", p.path, err))
	}

	p.info = info
	p.state = p.opts.State(document.New(1, content))
	p.result = p.comp.Rebuild(p.state)
	p.logger.Debug("preview built",
		logging.FieldPath, p.path,
		logging.FieldRevision, p.result.Revision,
		logging.FieldSpans, p.result.Inline.Len(),
	)
	return nil
}

// refresh re-reads the file and, when its content changed, applies the new
// revision as an edit transaction. A viewport derived from viewport_lines
// is recomputed for the new document and applied as a scroll.
func (p *previewer) refresh(ctx context.Context) (bool, error) {
	content, info, changed, err := fsutil.Reload(ctx, p.info)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	p.info = info

	next := document.New(p.state.Doc.Revision+1, content)
	tr := compositor.Edit(p.state, next)
	p.result = p.comp.Update(p.result, tr)
	p.state = tr.After

	if viewport := p.opts.State(next).Viewport; !slices.Equal(viewport, p.state.Viewport) {
		tr = compositor.Scroll(p.state, viewport...)
		p.result = p.comp.Update(p.result, tr)
		p.state = tr.After
	}
	return true, nil
}

// write renders the current result to stdout or the output file. It
// reports whether anything was written.
func (p *previewer) write(ctx context.Context) (bool, error) {
	segments := preview.Apply(p.state.Doc, p.result.All())

	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, segments); err != nil {
		return false, fmt.Errorf("render preview: %w", err)
	}

	if p.output == "" {
		if _, err := p.stdout.Write(buf.Bytes()); err != nil {
			return false, errors.Join(ErrIO, err)
		}
		return true, nil
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, p.output, buf.Bytes(), outputFilePermissions)
	if err != nil {
		return false, errors.Join(ErrIO, fmt.Errorf("write %s: %w", p.output, err))
	}
	return written, nil
}

func runPreview(cmd *cobra.Command, path string, flags *previewFlags) error {
	ctx := cmd.Context()

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

	if p.output != "" {
		p.logger.Info("wrote preview", logging.FieldOutput, p.output, logging.FieldFormat, p.renderer.Format())
	}
	return nil
}
