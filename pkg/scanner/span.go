package scanner

import (
	"github.com/yaklabco/grim/pkg/decoration"
	"github.com/yaklabco/grim/pkg/render"
)

// Span is one matched markdown construct: a document range plus the node
// that replaces it. Spans are only valid for the revision they were scanned
// from.
type Span struct {
	// From is the byte offset of the first byte of the construct.
	From int

	// To is the byte offset just past the construct. Always greater than From.
	To int

	// Kind names the construct, e.g. "emphasis" or "heading".
	Kind string

	// Priority breaks ties between spans at the same start. Lower wins.
	// The scanner fills it from the matcher's effective priority.
	Priority int

	// Matcher is the ID of the matcher that produced the span.
	Matcher string

	// Content is the construct's inner text without markup.
	Content string

	// Attrs carries construct details such as heading level.
	Attrs map[string]string

	// Render builds the replacement node. It is called once per decoration.
	Render func() *render.Node
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.To - s.From
}

// Contains reports whether s fully covers other.
func (s Span) Contains(other Span) bool {
	return s.From <= other.From && s.To >= other.To
}

// Decoration converts the span into a replace decoration carrying the
// span's attributes.
func (s Span) Decoration() decoration.Decoration {
	var widget *render.Node
	if s.Render != nil {
		widget = s.Render()
	}
	deco := decoration.Replace(s.From, s.To, widget).WithSource(s.Matcher, s.Content)
	deco.Attrs = s.Attrs
	return deco
}
