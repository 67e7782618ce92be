// Package preview applies a decoration set to its document and writes the
// result as plain text, ANSI-styled terminal output or an HTML page.
package preview

import (
	"strings"

	"github.com/yaklabco/grim/pkg/decoration"
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/render"
)

// SegmentKind identifies what a segment shows.
type SegmentKind int

const (
	// SegmentText is raw document text, optionally styled by a mark.
	SegmentText SegmentKind = iota

	// SegmentHidden is document text a mark hides while keeping its line.
	SegmentHidden

	// SegmentWidget is an inline node replacing or inserted into the text.
	SegmentWidget

	// SegmentBlock is a node occupying its own line.
	SegmentBlock
)

// Segment is one piece of the rendered preview.
type Segment struct {
	Kind SegmentKind

	// From and To are the document range the segment covers.
	// Inserted widgets have From == To.
	From int
	To   int

	// Text is the covered document text.
	Text string

	// Node is the widget for SegmentWidget and SegmentBlock.
	Node *render.Node

	// Class and Attrs come from the mark styling a text segment.
	Class string
	Attrs map[string]string

	// Source names the producer of the decoration.
	Source string
}

// hidden reports whether a mark makes its text invisible.
func hidden(d decoration.Decoration) bool {
	return strings.Contains(d.Attrs["style"], "color: transparent")
}

// Apply walks decorations in order and splits doc into segments.
// Decorations must be ordered as in decoration.Set. Text already consumed
// by a replace decoration is not revisited, so a later decoration starting
// inside it is clipped or dropped. Widgets inserted inside a mark split the
// mark and are kept.
func Apply(doc *document.Document, decos []decoration.Decoration) []Segment {
	var segments []Segment
	cursor := 0

	text := func(from, to int) {
		if to > from {
			segments = append(segments, Segment{Kind: SegmentText, From: from, To: to, Text: doc.Slice(from, to)})
		}
	}
	widget := func(d decoration.Decoration, at int) {
		kind := SegmentWidget
		if d.Block {
			kind = SegmentBlock
		}
		segments = append(segments, Segment{Kind: kind, From: at, To: at, Node: d.Widget, Source: d.Source})
	}
	mark := func(d decoration.Decoration, from, to int) {
		if to <= from {
			return
		}
		kind := SegmentText
		if hidden(d) {
			kind = SegmentHidden
		}
		segments = append(segments, Segment{
			Kind: kind, From: from, To: to, Text: doc.Slice(from, to),
			Class: d.Class, Attrs: d.Attrs, Source: d.Source,
		})
	}

	for i, d := range decos {
		from, to := max(d.From, 0), min(d.To, doc.Len())

		switch d.Kind {
		case decoration.KindWidget:
			if from < cursor {
				continue
			}
			text(cursor, from)
			cursor = from
			widget(d, from)

		case decoration.KindReplace:
			if from < cursor {
				continue
			}
			text(cursor, from)
			segments = append(segments, Segment{
				Kind: SegmentWidget, From: from, To: to,
				Text: doc.Slice(from, to), Node: d.Widget, Source: d.Source,
			})
			cursor = to

		case decoration.KindMark:
			from = max(from, cursor)
			if to <= from {
				continue
			}
			text(cursor, from)
			start := from
			for _, next := range decos[i+1:] {
				if next.From >= to {
					break
				}
				if next.Kind != decoration.KindWidget || next.From < start {
					continue
				}
				mark(d, start, next.From)
				start = next.From
				widget(next, start)
			}
			mark(d, start, to)
			cursor = to
		}
	}

	text(cursor, doc.Len())
	return segments
}
