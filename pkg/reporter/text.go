package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/grim/internal/ui/pretty"
	"github.com/yaklabco/grim/pkg/analysis"
	"github.com/yaklabco/grim/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStylesFor(pretty.NewRenderer(opts.Writer, colorEnabled), colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to decorate."))
		}
		return 0, nil
	}

	report := analysis.Analyze(result, r.opts.analysisOptions())

	r.reportErrors(report.Errors)

	if r.opts.GroupByFile {
		r.reportGrouped(report)
	} else {
		r.reportFlat(report.Entries)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return len(report.Entries), nil
}

func (r *TextReporter) reportErrors(errs []analysis.FileError) {
	for _, fileErr := range errs {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(fileErr.Path),
			r.styles.Error.Render("error: "+fileErr.Message),
		)
	}
}

// reportGrouped writes decorations under one header per file.
func (r *TextReporter) reportGrouped(report *analysis.Report) {
	counts := make(map[string]int, len(report.ByFile))
	for _, file := range report.ByFile {
		counts[file.Path] = file.Decorations
	}

	current := ""
	for i := range report.Entries {
		entry := &report.Entries[i]
		if entry.FilePath != current {
			if current != "" {
				fmt.Fprintln(r.bw)
			}
			current = entry.FilePath
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(current, counts[current]))
		}
		fmt.Fprint(r.bw, r.styles.FormatEntry(entry, r.opts.ShowContext, entry.SourceLine))
	}

	if current != "" {
		fmt.Fprintln(r.bw)
	}
}

// reportFlat writes decorations without grouping.
func (r *TextReporter) reportFlat(entries []analysis.Entry) {
	for i := range entries {
		fmt.Fprint(r.bw, r.styles.FormatEntry(&entries[i], r.opts.ShowContext, entries[i].SourceLine))
	}
}
