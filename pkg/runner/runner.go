package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/grim/internal/logging"
	"github.com/yaklabco/grim/pkg/compositor"
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/fsutil"
)

// Runner orchestrates multi-file decoration.
type Runner struct{}

// New creates a new Runner.
func New() *Runner {
	return &Runner{}
}

// Run discovers files under opts.Paths and decorates them on opts.Jobs workers.
// Outcomes are reported in discovery order. Each worker owns one compositor
// and decorates every document with a full rebuild under the selection and
// viewport from opts. Files not reached before cancellation are left out.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(files))

	logger := opts.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	ctx = logging.WithLogger(ctx, logger)

	compOpts := opts.Compositor
	if compOpts == nil {
		compOpts = CompositorOptions(opts.Config, logger)
	}

	// Each index is written by exactly one worker, so slots need no lock.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	work := make(chan int)
	var wg sync.WaitGroup
	for range jobs {
		wg.Go(func() {
			comp := compositor.New(compOpts...)
			for i := range work {
				outcomes[i] = decorateLogged(ctx, comp, files[i], opts)
				done[i] = true
			}
		})
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		case work <- i:
		}
	}
	close(work)
	wg.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func decorateLogged(ctx context.Context, comp *compositor.Compositor, path string, opts Options) FileOutcome {
	fileCtx := logging.WithFile(ctx, path)
	outcome := DecorateFile(fileCtx, comp, path, opts)
	logger := logging.FromContext(fileCtx)
	if outcome.Error != nil {
		logger.Debug("decorate failed", logging.FieldError, outcome.Error)
	} else {
		logger.Debug("decorated", logging.FieldDecorationsTotal, outcome.Result.Len())
	}
	return outcome
}

// DecorateFile reads path and decorates it with comp under the selection
// and viewport from opts.
func DecorateFile(ctx context.Context, comp *compositor.Compositor, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Document = document.New(1, content)
	outcome.Result = comp.Rebuild(opts.State(outcome.Document))
	return outcome
}
