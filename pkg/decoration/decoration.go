// Package decoration provides the ordered, immutable decoration sets the
// engine hands to a host renderer, plus the change mapping that carries a
// set across an edit without recomputing it.
package decoration

import (
	"fmt"
	"maps"

	"github.com/yaklabco/grim/pkg/render"
)

// Kind identifies how a decoration affects the text it covers.
type Kind int

// Kinds in the order they sort at an identical start offset.
const (
	// KindWidget inserts a node at a position without hiding text.
	KindWidget Kind = iota

	// KindMark styles a range of text.
	KindMark

	// KindReplace hides a range of text and shows a node instead.
	KindReplace
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindWidget:
		return "widget"
	case KindMark:
		return "mark"
	case KindReplace:
		return "replace"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Decoration is one visual instruction for the host.
type Decoration struct {
	// From is the byte offset where the decoration begins.
	From int

	// To is the byte offset where it ends. Widgets have To == From.
	To int

	Kind Kind

	// Widget is the node shown for Replace and Widget decorations.
	Widget *render.Node

	// Block marks a widget that occupies its own line.
	Block bool

	// Side places a widget before (-1) or after (1) text at its position.
	Side int

	// Class is applied to marked text.
	Class string

	// Attrs are applied to marked text.
	Attrs map[string]string

	// Source names the matcher or field that produced the decoration.
	Source string

	// Content is the construct's inner text, e.g. "bold" for **bold**.
	Content string
}

// Replace returns a decoration that replaces [from, to) with widget.
func Replace(from, to int, widget *render.Node) Decoration {
	return Decoration{From: from, To: to, Kind: KindReplace, Widget: widget}
}

// Widget returns a zero-width widget decoration at pos.
func Widget(pos int, widget *render.Node, block bool, side int) Decoration {
	return Decoration{From: pos, To: pos, Kind: KindWidget, Widget: widget, Block: block, Side: side}
}

// Mark returns a decoration that styles [from, to).
func Mark(from, to int, class string, attrs map[string]string) Decoration {
	return Decoration{From: from, To: to, Kind: KindMark, Class: class, Attrs: attrs}
}

// WithSource sets the producer name and content and returns the decoration.
func (d Decoration) WithSource(source, content string) Decoration {
	d.Source = source
	d.Content = content
	return d
}

// Len returns the number of bytes covered.
func (d Decoration) Len() int {
	return d.To - d.From
}

// Point reports whether the decoration is zero-width.
func (d Decoration) Point() bool {
	return d.From == d.To
}

// Equal reports whether two decorations are identical, widgets included.
func (d Decoration) Equal(other Decoration) bool {
	return d.From == other.From &&
		d.To == other.To &&
		d.Kind == other.Kind &&
		d.Block == other.Block &&
		d.Side == other.Side &&
		d.Class == other.Class &&
		d.Source == other.Source &&
		d.Content == other.Content &&
		maps.Equal(d.Attrs, other.Attrs) &&
		d.Widget.Equal(other.Widget)
}

// String formats the decoration for logs and test failures.
func (d Decoration) String() string {
	return fmt.Sprintf("%s[%d:%d]%s", d.Kind, d.From, d.To, d.Source)
}

// Less orders decorations by start offset, then kind, then side, then end offset.
func Less(a, b Decoration) bool {
	return Compare(a, b) < 0
}

// Compare returns the sort order of a relative to b. See Less.
func Compare(a, b Decoration) int {
	switch {
	case a.From != b.From:
		return a.From - b.From
	case a.Kind != b.Kind:
		return int(a.Kind) - int(b.Kind)
	case a.Side != b.Side:
		return a.Side - b.Side
	default:
		return a.To - b.To
	}
}
