package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/grim/internal/ui/pretty"
	"github.com/yaklabco/grim/pkg/analysis"
	"github.com/yaklabco/grim/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// overallSeparatorWidth is the width of the rule above the per-file overall summary.
const overallSeparatorWidth = 80

// TableReporter formats results as a styled table.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStylesFor(pretty.NewRenderer(opts.Writer, colorEnabled), colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	for _, fileErr := range report.Errors {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(fileErr.Path),
			r.styles.Error.Render("error: "+fileErr.Message),
		)
	}

	if len(report.Entries) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render(
				fmt.Sprintf("No decorations (%d files checked)", result.Stats.FilesProcessed),
			))
		}
		return 0, nil
	}

	if r.opts.PerFile {
		r.reportPerFile(report.Entries, result.Stats)
	} else {
		r.reportCombined(report.Entries, result.Stats)
	}

	return len(report.Entries), nil
}

// reportCombined outputs all files in a single table.
func (r *TableReporter) reportCombined(entries []analysis.Entry, stats runner.Stats) {
	fmt.Fprint(r.bw, r.formatter.FormatTable(entries))

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(stats, ""))
	}
}

// reportPerFile outputs a separate table for each decorated file.
func (r *TableReporter) reportPerFile(entries []analysis.Entry, stats runner.Stats) {
	start := 0
	for i := 1; i <= len(entries); i++ {
		if i < len(entries) && entries[i].FilePath == entries[start].FilePath {
			continue
		}

		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Bold.Render(entries[start].FilePath))
		fmt.Fprint(r.bw, r.formatter.FormatFileTable(entries[start:i]))
		start = i
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("═", overallSeparatorWidth)))
		fmt.Fprintln(r.bw, r.styles.Bold.Render("Overall Summary"))
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(stats, ""))
	}
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
