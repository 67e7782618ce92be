// Package reporter writes decoration results in human and machine formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/grim/pkg/analysis"
	"github.com/yaklabco/grim/pkg/runner"
)

// Reporter formats and writes decoration results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of decorations reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer writes an analyzed report. Renderers hold no per-run state.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Decorations, nil
}

// newRendererFacade creates a facade wrapping a Renderer.
func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	return &reporterFacade{
		renderer:     renderer,
		analysisOpts: opts.analysisOptions(),
	}
}

// New creates a Reporter for opts.Format, defaulting to text.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	factory, ok := factories[opts.Format]
	if !ok {
		return nil, unknownFormat(string(opts.Format))
	}
	return factory(opts), nil
}
