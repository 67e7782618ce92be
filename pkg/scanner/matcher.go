// Package scanner finds inline markdown constructs in the visible parts of a
// document and resolves them into one ordered, non-overlapping span list.
package scanner

import (
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/render"
)

// Matcher finds one kind of construct in a text slice.
type Matcher interface {
	// ID returns the unique identifier for this matcher (e.g., "GM001").
	ID() string

	// Name returns the human-readable name of the matcher.
	Name() string

	// Description returns what the matcher recognizes.
	Description() string

	// Priority orders matchers and breaks span ties. Lower wins.
	Priority() int

	// DefaultEnabled returns whether the matcher runs when not configured.
	DefaultEnabled() bool

	// Scan returns every match in ctx.Text. Offsets in the returned spans
	// are absolute document offsets; use ScanContext.Span to build them.
	//
	// Matchers must not filter by selection or resolve overlaps with other
	// matchers: the scanner does both once, after all matchers ran.
	Scan(ctx *ScanContext) []Span
}

// ScanContext is the input to one matcher call over one visible range.
type ScanContext struct {
	// Doc is the document being scanned.
	Doc *document.Document

	// Text is the visible slice being scanned.
	Text string

	// Offset is the document offset of Text[0].
	Offset int

	// Typesetter renders math constructs.
	Typesetter render.Typesetter

	// Math holds the options math matchers pass to the typesetter.
	Math render.MathOptions
}

// Span builds a span from offsets relative to ctx.Text.
func (ctx *ScanContext) Span(from, to int, kind, content string, fn func() *render.Node) Span {
	return Span{
		From:    ctx.Offset + from,
		To:      ctx.Offset + to,
		Kind:    kind,
		Content: content,
		Render:  fn,
	}
}

// BaseMatcher provides the metadata half of the Matcher interface.
// Embed this in matcher implementations and override methods as needed.
type BaseMatcher struct {
	id       string
	name     string
	desc     string
	priority int
}

// NewBaseMatcher creates a BaseMatcher with the given properties.
func NewBaseMatcher(id, name, desc string, priority int) BaseMatcher {
	return BaseMatcher{
		id:       id,
		name:     name,
		desc:     desc,
		priority: priority,
	}
}

// ID returns the unique identifier for this matcher.
func (m *BaseMatcher) ID() string {
	return m.id
}

// Name returns the human-readable name of the matcher.
func (m *BaseMatcher) Name() string {
	return m.name
}

// Description returns what the matcher recognizes.
func (m *BaseMatcher) Description() string {
	return m.desc
}

// Priority returns the matcher's default priority.
func (m *BaseMatcher) Priority() int {
	return m.priority
}

// DefaultEnabled returns whether the matcher is enabled by default.
// Override this method to change the default.
func (m *BaseMatcher) DefaultEnabled() bool {
	return true
}

// Scan must be overridden by concrete matchers.
// The default implementation matches nothing.
func (m *BaseMatcher) Scan(_ *ScanContext) []Span {
	return nil
}
