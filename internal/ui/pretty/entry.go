package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/grim/pkg/analysis"
)

// maxContentWidth bounds the content excerpt shown per decoration.
const maxContentWidth = 48

// FormatEntry formats a single decoration for terminal output.
//
//	path:line:col  replace  "**bold**"  (emphasis)
func (s *Styles) FormatEntry(entry *analysis.Entry, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(entry.FilePath),
		entry.StartLine,
		entry.StartColumn,
	)

	kind := s.KindStyle(entry.Kind).Render(fmt.Sprintf("%-7s", entry.Kind))

	content := s.Content.Render(Excerpt(entry.Content, maxContentWidth))
	if entry.Fallback {
		content += " " + s.Warning.Render("[math fallback]")
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		kind,
		content,
		s.Matcher.Render("("+entry.Label+")"),
	))

	if showContext && sourceLine != "" {
		width := 1
		if entry.EndLine == entry.StartLine {
			width = max(1, entry.EndColumn-entry.StartColumn)
		}
		builder.WriteString(s.FormatSourceContext(sourceLine, entry.StartColumn, width))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a marker under
// width columns starting at column.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		marker := "^" + strings.Repeat("~", max(0, width-1))
		builder.WriteString(padding + s.Caret.Render(marker) + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, count int) string {
	header := s.FilePath.Render(path)
	if count > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", count, plural(count, "decoration", "decorations")))
	}
	return header
}

// Excerpt quotes content on one line, truncated to maxLen runes.
func Excerpt(content string, maxLen int) string {
	if content == "" {
		return `""`
	}
	quoted := fmt.Sprintf("%q", content)
	runes := []rune(quoted)
	if len(runes) <= maxLen {
		return quoted
	}
	return string(runes[:maxLen-1]) + "…"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
