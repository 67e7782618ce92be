// Package codefence decorates fenced code blocks and reports the code
// regions of a document. Each fenced block's opening line gets a mark
// carrying its language, and the byte ranges of all code can be handed to
// the inline scanner as exclusion zones.
package codefence

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/grim/internal/logging"
	"github.com/yaklabco/grim/pkg/decoration"
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/langdetect"
	"github.com/yaklabco/grim/pkg/parser/goldmark"
	"github.com/yaklabco/grim/pkg/selection"
)

// Source names decorations produced by this package.
const Source = "code-fence"

// Class is set on the opening fence line mark.
const Class = "cm-code-fence"

// Attribute names on the fence mark.
const (
	AttrLanguage = "data-language"
	AttrDetected = "data-detected"
)

// Analysis holds the code regions of one document revision.
type Analysis struct {
	Revision uint64
	Blocks   []goldmark.CodeBlock
	Spans    []goldmark.CodeSpan
}

// Fenced returns the fenced blocks only.
func (a *Analysis) Fenced() []goldmark.CodeBlock {
	var fenced []goldmark.CodeBlock
	for _, b := range a.Blocks {
		if b.Fenced {
			fenced = append(fenced, b)
		}
	}
	return fenced
}

// Zones returns the ranges of every code block and code span in source order.
func (a *Analysis) Zones() []document.Range {
	zones := make([]document.Range, 0, len(a.Blocks)+len(a.Spans))
	for _, b := range a.Blocks {
		zones = append(zones, document.Range{From: b.From, To: b.To})
	}
	for _, s := range a.Spans {
		zones = append(zones, document.Range{From: s.From, To: s.To})
	}
	return zones
}

// Field is the document-scoped code fence decoration source.
type Field struct {
	parser *goldmark.Parser
	labels bool
	logger *log.Logger
}

// Option configures a Field.
type Option func(*Field)

// WithParser sets the markdown parser. The default parses GFM.
func WithParser(p *goldmark.Parser) Option {
	return func(f *Field) {
		if p != nil {
			f.parser = p
		}
	}
}

// WithLabels controls content-based language detection for fences
// without an info string. Enabled by default.
func WithLabels(enabled bool) Option {
	return func(f *Field) {
		f.labels = enabled
	}
}

// WithLogger sets the logger for parse failures.
func WithLogger(logger *log.Logger) Option {
	return func(f *Field) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewField creates a code fence field.
func NewField(opts ...Option) *Field {
	f := &Field{
		parser: goldmark.New(goldmark.FlavorGFM),
		labels: true,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Analyze locates the code regions of doc. A parse failure yields an
// empty analysis.
func (f *Field) Analyze(doc *document.Document) *Analysis {
	analysis := &Analysis{Revision: doc.Revision}

	structure, err := f.parser.Parse(context.Background(), doc.Bytes())
	if err != nil {
		f.logger.Debug("code fence analysis failed", logging.FieldRevision, doc.Revision, logging.FieldError, err)
		return analysis
	}

	analysis.Blocks = structure.CodeBlocks
	analysis.Spans = structure.CodeSpans
	return analysis
}

// Decorate builds the fence marks for a previous analysis of doc.
func (f *Field) Decorate(doc *document.Document, sel selection.Selection, analysis *Analysis) *decoration.Set {
	var decos []decoration.Decoration

	for _, block := range analysis.Fenced() {
		if block.OpenFrom < 0 || block.OpenTo <= block.OpenFrom {
			continue
		}
		if Suppressed(doc, sel, block) {
			continue
		}

		attrs := f.attrs(doc, block)
		decos = append(decos, decoration.Mark(block.OpenFrom, block.OpenTo, Class, attrs).
			WithSource(Source, attrs[AttrLanguage]))
	}

	set, err := decoration.NewSet(doc.Revision, decos...)
	if err != nil {
		f.logger.Debug("code fence decorations rejected", logging.FieldRevision, doc.Revision, logging.FieldError, err)
		return decoration.Empty(doc.Revision)
	}
	return set
}

func (f *Field) attrs(doc *document.Document, block goldmark.CodeBlock) map[string]string {
	if block.Language == "" && !f.labels {
		return map[string]string{}
	}

	var body []byte
	if block.BodyTo > block.BodyFrom {
		body = []byte(doc.Slice(block.BodyFrom, block.BodyTo))
	}
	label := langdetect.LabelFor(block.Language, body)

	attrs := map[string]string{AttrLanguage: label.Language}
	if label.Detected {
		attrs[AttrDetected] = "true"
	}
	return attrs
}

// Build decorates every fenced block the selection does not reveal.
func (f *Field) Build(doc *document.Document, sel selection.Selection) *decoration.Set {
	return f.Decorate(doc, sel, f.Analyze(doc))
}

// Update rebuilds on a document or selection change and otherwise maps prev.
func (f *Field) Update(prev *decoration.Set, u decoration.FieldUpdate) *decoration.Set {
	return decoration.RebuildOrMap(f, prev, u)
}

// Zones returns the code regions of doc as exclusion zones.
func (f *Field) Zones(doc *document.Document) []document.Range {
	return f.Analyze(doc).Zones()
}

// Suppressed reports whether the selection reveals the block: a selection
// range touches the block, or the line holding a range's start spans it.
func Suppressed(doc *document.Document, sel selection.Selection, block goldmark.CodeBlock) bool {
	for _, r := range sel.Ranges {
		if r.Intersects(block.From, block.To) {
			return true
		}
		line := doc.LineAt(r.From())
		if line.From <= block.From && line.To >= block.To {
			return true
		}
	}
	return false
}
