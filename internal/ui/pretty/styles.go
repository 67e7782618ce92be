// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/yaklabco/grim/pkg/decoration"
	"github.com/yaklabco/grim/pkg/preview"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	// Decoration listing components
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Matcher    lipgloss.Style
	Widget     lipgloss.Style
	Mark       lipgloss.Style
	Replace    lipgloss.Style
	Content    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableBorder    lipgloss.Style
	TableFallback  lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	// Preview styles
	Heading  lipgloss.Style
	Emphasis lipgloss.Style
	Strong   lipgloss.Style
	List     lipgloss.Style
	Math     lipgloss.Style
	Fallback lipgloss.Style
	Fence    lipgloss.Style
	Language lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	return NewStylesFor(NewRenderer(os.Stdout, colorEnabled), colorEnabled)
}

// NewRenderer returns a lipgloss renderer for w whose color profile follows
// colorEnabled rather than terminal detection, so "always" works in pipes.
func NewRenderer(w io.Writer, colorEnabled bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if colorEnabled {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// NewStylesFor creates styles bound to a renderer.
func NewStylesFor(r *lipgloss.Renderer, colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles(r)
	}
	return newColorStyles(r)
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles(r *lipgloss.Renderer) *Styles {
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &Styles{
		Error:   fg("9").Bold(true),
		Warning: fg("11").Bold(true),
		Success: fg("10").Bold(true),
		Failure: fg("9").Bold(true),

		FilePath:   r.NewStyle().Bold(true),
		Location:   fg("8"),
		Matcher:    fg("8"),
		Widget:     fg("13"),
		Mark:       fg("12"),
		Replace:    fg("14"),
		Content:    r.NewStyle(),
		SourceLine: fg("7"),
		Caret:      fg("14"),

		SummaryTitle: r.NewStyle().Bold(true),
		SummaryValue: r.NewStyle(),

		TableHeader:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableBorder:    fg("8"),
		TableFallback:  fg("11"),
		TableLegend:    fg("8").Italic(true),
		TableSeparator: fg("8"),

		Heading:  fg("12").Bold(true),
		Emphasis: r.NewStyle().Italic(true),
		Strong:   r.NewStyle().Bold(true),
		List:     fg("14"),
		Math:     fg("13"),
		Fallback: fg("9").Underline(true),
		Fence:    fg("8"),
		Language: fg("8").Italic(true),

		Dim:  fg("8"),
		Bold: r.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles(r *lipgloss.Renderer) *Styles {
	plain := r.NewStyle()
	return &Styles{
		Error:          plain,
		Warning:        plain,
		Success:        plain,
		Failure:        plain,
		FilePath:       plain,
		Location:       plain,
		Matcher:        plain,
		Widget:         plain,
		Mark:           plain,
		Replace:        plain,
		Content:        plain,
		SourceLine:     plain,
		Caret:          plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		TableHeader:    plain,
		TableBorder:    plain,
		TableFallback:  plain,
		TableLegend:    plain,
		TableSeparator: plain,
		Heading:        plain,
		Emphasis:       plain,
		Strong:         plain,
		List:           plain,
		Math:           plain,
		Fallback:       plain,
		Fence:          plain,
		Language:       plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// Preview returns the subset of styles used by the ANSI preview renderer.
func (s *Styles) Preview() preview.Styles {
	return preview.Styles{
		Heading:  s.Heading,
		Emphasis: s.Emphasis,
		Strong:   s.Strong,
		List:     s.List,
		Math:     s.Math,
		Fallback: s.Fallback,
		Fence:    s.Fence,
		Language: s.Language,
	}
}

// KindStyle returns the style for a decoration kind name.
func (s *Styles) KindStyle(kind string) lipgloss.Style {
	switch kind {
	case decoration.KindWidget.String():
		return s.Widget
	case decoration.KindMark.String():
		return s.Mark
	case decoration.KindReplace.String():
		return s.Replace
	default:
		return s.Dim
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
