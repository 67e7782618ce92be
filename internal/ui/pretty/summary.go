package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/grim/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 decorations (3 widget, 9 replace) in 3 files, 1 math fallback".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DecorationsTotal == 0 {
		msg := s.Dim.Render(fmt.Sprintf("No decorations (%d %s checked)",
			stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files")))
		if stats.FilesErrored > 0 {
			msg += ", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored))
		}
		return msg + "\n"
	}

	var parts []string

	var kindParts []string
	for _, kind := range []string{"widget", "mark", "replace"} {
		if n := stats.DecorationsByKind[kind]; n > 0 {
			kindParts = append(kindParts, s.KindStyle(kind).Render(fmt.Sprintf("%d %s", n, kind)))
		}
	}

	word := plural(stats.DecorationsTotal, "decoration", "decorations")
	if len(kindParts) > 0 {
		parts = append(parts, fmt.Sprintf("%d %s (%s)", stats.DecorationsTotal, word, strings.Join(kindParts, ", ")))
	} else {
		parts = append(parts, fmt.Sprintf("%d %s", stats.DecorationsTotal, word))
	}

	parts = append(parts, fmt.Sprintf("in %d %s", stats.FilesDecorated, plural(stats.FilesDecorated, "file", "files")))

	if stats.MathFallbacks > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d math %s",
			stats.MathFallbacks, plural(stats.MathFallbacks, "fallback", "fallbacks"))))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")
	if stats.FilesDecorated > 0 {
		builder.WriteString("  Files decorated:   " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesDecorated)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Decorations:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.DecorationsTotal)) + "\n")
	for _, source := range slices.Sorted(maps.Keys(stats.DecorationsBySource)) {
		builder.WriteString(fmt.Sprintf("    %-16s %s\n", source+":",
			s.SummaryValue.Render(strconv.Itoa(stats.DecorationsBySource[source]))))
	}
	if stats.MathFallbacks > 0 {
		builder.WriteString("  Math fallbacks:    " +
			s.Warning.Render(strconv.Itoa(stats.MathFallbacks)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Some files could not be decorated"))
	case stats.MathFallbacks > 0:
		builder.WriteString(s.Warning.Render("Decorated with math fallbacks"))
	default:
		builder.WriteString(s.Success.Render("Decorated"))
	}
	builder.WriteString("\n")

	return builder.String()
}
