package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/grim/internal/ui/pretty"
	"github.com/yaklabco/grim/pkg/analysis"
	"github.com/yaklabco/grim/pkg/config"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth           = 90 // Width of table separators (same for both tables).
	matcherColWidth      = 30 // Width of the matcher label column.
	fileColWidth         = 52 // Width of the file path column (wider for relative paths).
	numColWidth          = 7  // Width of numeric columns.
	fallbackColWidth     = 9  // Width of the fallbacks column.
	maxMatcherNameLength = 28 // Maximum characters for a matcher label before truncation.
	maxFilePathLength    = 50 // Maximum characters for file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStylesFor(pretty.NewRenderer(opts.Writer, colorEnabled), colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	for _, fileErr := range report.Errors {
		fmt.Fprintf(r.out, "%s: %s\n",
			r.styles.FilePath.Render(fileErr.Path),
			r.styles.Error.Render("error: "+fileErr.Message),
		)
	}

	if report.Totals.Decorations == 0 {
		fmt.Fprintln(r.out, r.styles.Dim.Render("No decorations"))
		return nil
	}

	if r.opts.SummaryOrder == config.SummaryOrderFiles {
		r.renderFileTable(report.ByFile)
		fmt.Fprintln(r.out)
		r.renderSourceTable(report.BySource)
	} else {
		r.renderSourceTable(report.BySource)
		fmt.Fprintln(r.out)
		r.renderFileTable(report.ByFile)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) countHeaders() string {
	return fmt.Sprintf("%s %s %s %s %s",
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Widget", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Mark", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Replace", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Fallback", fallbackColWidth)),
	)
}

func (r *SummaryRenderer) countCells(counts analysis.Counts) string {
	fallbacks := padLeft(strconv.Itoa(counts.Fallbacks), fallbackColWidth)
	if counts.Fallbacks > 0 {
		fallbacks = r.styles.TableFallback.Render(fallbacks)
	}
	return fmt.Sprintf("%s %s %s %s %s",
		padLeft(strconv.Itoa(counts.Decorations), numColWidth),
		padLeft(strconv.Itoa(counts.Widgets), numColWidth),
		padLeft(strconv.Itoa(counts.Marks), numColWidth),
		padLeft(strconv.Itoa(counts.Replaces), numColWidth),
		fallbacks,
	)
}

func (r *SummaryRenderer) renderSourceTable(sources []analysis.SourceAnalysis) {
	if len(sources) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Matchers Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
	fmt.Fprintf(r.out, "%s %s\n",
		r.styles.TableHeader.Render(padRight("Matcher", matcherColWidth)),
		r.countHeaders(),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, source := range sources {
		label := source.Label
		if label == "" {
			label = source.Source
		}
		if len(label) > maxMatcherNameLength {
			label = label[:maxMatcherNameLength] + "…"
		}

		fmt.Fprintf(r.out, "%s %s\n",
			r.styles.Matcher.Render(padRight(label, matcherColWidth)),
			r.countCells(source.Counts),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
	fmt.Fprintf(r.out, "%s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.countHeaders(),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		fmt.Fprintf(r.out, "%s %s\n",
			r.styles.FilePath.Render(padRight(path, fileColWidth)),
			r.countCells(file.Counts),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	word := "decorations"
	if totals.Decorations == 1 {
		word = "decoration"
	}
	line := fmt.Sprintf("%d %s", totals.Decorations, word)

	var kindParts []string
	for _, part := range []struct {
		kind  string
		count int
	}{
		{"widget", totals.Widgets},
		{"mark", totals.Marks},
		{"replace", totals.Replaces},
	} {
		if part.count > 0 {
			kindParts = append(kindParts, r.styles.KindStyle(part.kind).Render(fmt.Sprintf("%d %s", part.count, part.kind)))
		}
	}
	if len(kindParts) > 0 {
		line += " (" + strings.Join(kindParts, ", ") + ")"
	}

	fileWord := "files"
	if totals.FilesDecorated == 1 {
		fileWord = "file"
	}
	line += fmt.Sprintf(" in %d %s", totals.FilesDecorated, fileWord)

	if totals.Fallbacks > 0 {
		line += ", " + r.styles.Warning.Render(fmt.Sprintf("%d math fallbacks", totals.Fallbacks))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}
