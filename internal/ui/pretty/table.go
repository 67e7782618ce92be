package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/grim/pkg/analysis"
	"github.com/yaklabco/grim/pkg/runner"
)

// Table formatting constants.
const (
	fallbackSymbol      = "!"
	tablePadding        = 2
	tableColumnCount    = 5 // FILE, LOC, KIND, MATCHER, CONTENT
	perFileColumnCount  = 4 // LOC, KIND, MATCHER, CONTENT (no FILE column)
	fallbackColumnWidth = 3
	minFileWidth        = 20
	minLocWidth         = 10
	kindWidth           = 7
	minMatcherWidth     = 10
	minContentWidth     = 30
	heavySeparator      = "="
	lightSeparator      = "-"
	defaultTermWidth    = 100
)

// TableRow represents a single row in the decoration table.
type TableRow struct {
	File     string
	Location string
	Kind     string
	Matcher  string
	Content  string
	Fallback bool
}

// EntryToTableRow converts a report entry to a table row.
func EntryToTableRow(entry *analysis.Entry) TableRow {
	return TableRow{
		File:     entry.FilePath,
		Location: fmt.Sprintf("%d:%d", entry.StartLine, entry.StartColumn),
		Kind:     entry.Kind,
		Matcher:  entry.Label,
		Content:  Excerpt(entry.Content, maxContentWidth),
		Fallback: entry.Fallback,
	}
}

// TableFormatter formats decorations as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	file    int
	loc     int
	matcher int
	content int
}

// FormatTable formats report entries as a styled table grouped by file.
// Entries must be ordered by file.
func (t *TableFormatter) FormatTable(entries []analysis.Entry) string {
	groups := groupRows(entries)
	if len(groups) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(groups, true)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths, true))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, true, heavySeparator))
	builder.WriteString("\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, true, lightSeparator))
			builder.WriteString("\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths, true))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, true, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// FormatFileTable formats a single file's decorations as a standalone table.
func (t *TableFormatter) FormatFileTable(entries []analysis.Entry) string {
	if len(entries) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(entries))
	for i := range entries {
		rows = append(rows, EntryToTableRow(&entries[i]))
	}

	widths := t.calculateColumnWidths([][]TableRow{rows}, false)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths, false))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, false, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths, false))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, false, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatFileSummary(rows))
	builder.WriteString("\n")

	return builder.String()
}

// groupRows converts entries to rows, starting a new group when the file changes.
func groupRows(entries []analysis.Entry) [][]TableRow {
	var groups [][]TableRow
	var current []TableRow

	for i := range entries {
		row := EntryToTableRow(&entries[i])
		if len(current) > 0 && current[0].File != row.File {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, row)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups
}

// calculateColumnWidths determines column widths from content, then
// shrinks content and file columns to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow, withFile bool) columnWidths {
	widths := columnWidths{
		loc:     minLocWidth,
		matcher: minMatcherWidth,
		content: minContentWidth,
	}
	if withFile {
		widths.file = minFileWidth
	}

	for _, group := range groups {
		for _, row := range group {
			if withFile {
				widths.file = max(widths.file, len(row.File))
			}
			widths.loc = max(widths.loc, len(row.Location))
			widths.matcher = max(widths.matcher, len(row.Matcher))
			widths.content = max(widths.content, lipgloss.Width(row.Content))
		}
	}

	totalWidth := t.totalWidth(widths, withFile)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.content = max(minContentWidth, widths.content-excess)

		totalWidth = t.totalWidth(widths, withFile)
		if withFile && totalWidth > t.termWidth {
			excess = totalWidth - t.termWidth
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

func (t *TableFormatter) totalWidth(widths columnWidths, withFile bool) int {
	columns := perFileColumnCount
	total := widths.loc + kindWidth + widths.matcher + widths.content + fallbackColumnWidth
	if withFile {
		columns = tableColumnCount
		total += widths.file
	}
	return total + tablePadding*columns
}

func (t *TableFormatter) formatHeader(widths columnWidths, withFile bool) string {
	var header string
	if withFile {
		header = fmt.Sprintf(" %-*s  ", widths.file, "FILE")
	} else {
		header = " "
	}
	header += fmt.Sprintf("%-*s  %-*s  %-*s  %-*s   ",
		widths.loc, "LOC",
		kindWidth, "KIND",
		widths.matcher, "MATCHER",
		widths.content, "CONTENT",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, withFile bool, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.totalWidth(widths, withFile)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths, withFile bool) string {
	var builder strings.Builder

	builder.WriteString(" ")
	if withFile {
		builder.WriteString(fmt.Sprintf("%-*s  ", widths.file, truncateFilePath(row.File, widths.file)))
	}
	builder.WriteString(fmt.Sprintf("%-*s  ", widths.loc, truncateString(row.Location, widths.loc)))
	builder.WriteString(t.styles.KindStyle(row.Kind).Render(fmt.Sprintf("%-*s", kindWidth, row.Kind)))
	builder.WriteString("  ")
	builder.WriteString(t.styles.Matcher.Render(fmt.Sprintf("%-*s", widths.matcher, truncateString(row.Matcher, widths.matcher))))
	builder.WriteString("  ")
	builder.WriteString(fmt.Sprintf("%-*s", widths.content, truncateString(row.Content, widths.content)))
	builder.WriteString("  ")

	if row.Fallback {
		builder.WriteString(t.styles.TableFallback.Render(fallbackSymbol))
	} else {
		builder.WriteString(" ")
	}

	return builder.String()
}

func (t *TableFormatter) formatFileSummary(rows []TableRow) string {
	counts := make(map[string]int, 3)
	fallbacks := 0
	for _, row := range rows {
		counts[row.Kind]++
		if row.Fallback {
			fallbacks++
		}
	}

	var parts []string
	for _, kind := range []string{"widget", "mark", "replace"} {
		if counts[kind] > 0 {
			parts = append(parts, t.styles.KindStyle(kind).Render(fmt.Sprintf("%d %s", counts[kind], kind)))
		}
	}
	if fallbacks > 0 {
		parts = append(parts, t.styles.TableFallback.Render(fmt.Sprintf("%d math %s",
			fallbacks, plural(fallbacks, "fallback", "fallbacks"))))
	}

	return " " + strings.Join(parts, " | ")
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = math fallback", fallbackSymbol))
	}

	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s  %s  %s  %s = math fallback",
		t.styles.Widget.Render("widget"),
		t.styles.Mark.Render("mark"),
		t.styles.Replace.Render("replace"),
		t.styles.TableFallback.Render(fallbackSymbol),
	))
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d files checked", stats.FilesProcessed)}

	if stats.DecorationsTotal > 0 {
		parts = append(parts, fmt.Sprintf("%d decorations", stats.DecorationsTotal))
	}
	if stats.MathFallbacks > 0 {
		parts = append(parts, t.styles.TableFallback.Render(fmt.Sprintf("%d math fallbacks", stats.MathFallbacks)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
