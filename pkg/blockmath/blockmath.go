// Package blockmath finds $$...$$ regions across the whole document and
// decorates them: a block widget with the typeset math is inserted before
// the region and every source line of the region is hidden with a style mark.
//
// Regions are found document-wide, not per viewport, because the widget is
// anchored at the region start and the lines it hides may scroll out of view
// independently.
package blockmath

import (
	"regexp"
	"strings"

	"github.com/yaklabco/grim/pkg/decoration"
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/render"
	"github.com/yaklabco/grim/pkg/selection"
)

// Source names decorations produced by this package.
const Source = "block-math"

// HiddenLineStyle hides source text while keeping the line in the layout.
const HiddenLineStyle = "color: transparent; text-shadow: none; user-select: none;"

// HiddenLineClass is set on the hidden-line marks.
const HiddenLineClass = "cm-block-math-source"

// The first closing $$ ends a region; regions do not nest.
var pattern = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)

// Region is one $$...$$ block.
type Region struct {
	// From and To cover the region including both delimiters.
	From int
	To   int

	// ContentStart and ContentEnd cover the text between the delimiters.
	ContentStart int
	ContentEnd   int

	// Content is the text between the delimiters, trimmed of surrounding whitespace.
	Content string

	// StartLine and EndLine are the 1-based lines containing From and To.
	StartLine int
	EndLine   int
}

// Range returns the region as a document range.
func (r Region) Range() document.Range {
	return document.Range{From: r.From, To: r.To}
}

// Regions returns every block math region in the document, in order.
// An unterminated $$ produces no region.
func Regions(doc *document.Document) []Region {
	text := doc.String()

	var regions []Region
	for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
		regions = append(regions, Region{
			From:         loc[0],
			To:           loc[1],
			ContentStart: loc[2],
			ContentEnd:   loc[3],
			Content:      strings.TrimSpace(text[loc[2]:loc[3]]),
			StartLine:    doc.LineAt(loc[0]).Number,
			EndLine:      doc.LineAt(loc[1]).Number,
		})
	}
	return regions
}

// Suppressed reports whether the selection reveals the region's raw source:
// a selection range touches the region, or the line holding a range's start
// spans the whole region.
func Suppressed(doc *document.Document, sel selection.Selection, region Region) bool {
	for _, r := range sel.Ranges {
		if r.Intersects(region.From, region.To) {
			return true
		}
		line := doc.LineAt(r.From())
		if line.From <= region.From && line.To >= region.To {
			return true
		}
	}
	return false
}

// Field is the document-scoped block math decoration source.
type Field struct {
	typesetter render.Typesetter
	math       render.MathOptions
}

// Option configures a Field.
type Option func(*Field)

// WithTypesetter sets the math typesetter. Nil shows literal source.
func WithTypesetter(ts render.Typesetter) Option {
	return func(f *Field) {
		f.typesetter = ts
	}
}

// WithMathOptions sets typesetter options. Display mode is always on.
func WithMathOptions(opts render.MathOptions) Option {
	return func(f *Field) {
		f.math = opts
	}
}

// NewField creates a block math field.
func NewField(opts ...Option) *Field {
	f := &Field{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Build decorates every region the selection does not reveal.
func (f *Field) Build(doc *document.Document, sel selection.Selection) *decoration.Set {
	var decos []decoration.Decoration
	lastMarked := 0

	for _, region := range Regions(doc) {
		if Suppressed(doc, sel, region) {
			continue
		}

		widget := render.BlockMath(f.typesetter, region.Content, f.math)
		decos = append(decos, decoration.Widget(region.From, widget, true, -1).
			WithSource(Source, region.Content))

		for n := max(region.StartLine, lastMarked+1); n <= region.EndLine; n++ {
			line, ok := doc.Line(n)
			if !ok || line.Len() == 0 {
				continue
			}
			decos = append(decos, decoration.Mark(line.From, line.To, HiddenLineClass,
				map[string]string{"style": HiddenLineStyle}).WithSource(Source, ""))
		}
		lastMarked = region.EndLine
	}

	set, err := decoration.NewSet(doc.Revision, decos...)
	if err != nil {
		// Unreachable: widgets are zero-width and marks cover non-empty lines.
		return decoration.Empty(doc.Revision)
	}
	return set
}

// Update rebuilds on a document or selection change and otherwise maps prev.
func (f *Field) Update(prev *decoration.Set, u decoration.FieldUpdate) *decoration.Set {
	return decoration.RebuildOrMap(f, prev, u)
}

// Zones returns the ranges of every region, revealed or not. Inline
// scanning skips them so "$$x$$" is never also read as inline math.
func Zones(doc *document.Document) []document.Range {
	regions := Regions(doc)
	zones := make([]document.Range, 0, len(regions))
	for _, r := range regions {
		zones = append(zones, r.Range())
	}
	return zones
}
