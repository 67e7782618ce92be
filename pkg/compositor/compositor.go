// Package compositor orchestrates a rebuild of every decoration source for
// one editor state: the viewport-scoped pattern scanner, the document-scoped
// block math field and the code fence field. Each rebuild is a pure function
// of the state it is given.
package compositor

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/grim/internal/logging"
	"github.com/yaklabco/grim/pkg/blockmath"
	"github.com/yaklabco/grim/pkg/codefence"
	"github.com/yaklabco/grim/pkg/decoration"
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/render"
	"github.com/yaklabco/grim/pkg/scanner"
	"github.com/yaklabco/grim/pkg/texmath"

	// Register the built-in matchers with scanner.DefaultRegistry.
	_ "github.com/yaklabco/grim/pkg/scanner/matchers"
)

// Result holds the decoration sets for one document revision.
type Result struct {
	Revision uint64

	// Inline holds the scanner's replace decorations for the visible ranges.
	Inline *decoration.Set

	// Block holds block math widgets and hidden-line marks.
	Block *decoration.Set

	// Fences holds code fence language marks.
	Fences *decoration.Set
}

// Set merges the three sets into one, ordered by position and kind.
func (r *Result) Set() *decoration.Set {
	return decoration.Merge(r.Revision, r.Inline, r.Block, r.Fences)
}

// All returns every decoration in render order.
func (r *Result) All() []decoration.Decoration {
	return r.Set().All()
}

// Len returns the total number of decorations.
func (r *Result) Len() int {
	return r.Inline.Len() + r.Block.Len() + r.Fences.Len()
}

// Compositor combines the decoration sources.
type Compositor struct {
	registry   *scanner.Registry
	scanOpts   scanner.Options
	scanner    *scanner.Scanner
	block      *blockmath.Field
	fences     *codefence.Field
	fenceMarks bool
	fenceOpts  []codefence.Option
	typesetter render.Typesetter
	math       render.MathOptions
	skipCode   bool
	logger     *log.Logger
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithRegistry sets the matcher registry. The default is scanner.DefaultRegistry.
func WithRegistry(registry *scanner.Registry) Option {
	return func(c *Compositor) {
		c.registry = registry
	}
}

// WithScannerOptions sets per-matcher enablement and priority overrides.
// Typesetter and math options are taken from the compositor.
func WithScannerOptions(opts scanner.Options) Option {
	return func(c *Compositor) {
		c.scanOpts = opts
	}
}

// WithTypesetter sets the math typesetter. The default is texmath.New().
func WithTypesetter(ts render.Typesetter) Option {
	return func(c *Compositor) {
		c.typesetter = ts
	}
}

// WithMathOptions sets the options passed to the typesetter.
func WithMathOptions(opts render.MathOptions) Option {
	return func(c *Compositor) {
		c.math = opts
	}
}

// WithSkipCode keeps inline decorations out of code blocks and code spans.
func WithSkipCode(skip bool) Option {
	return func(c *Compositor) {
		c.skipCode = skip
	}
}

// WithFenceMarks controls whether code fence marks are produced.
// Enabled by default. Code zones are still computed for WithSkipCode.
func WithFenceMarks(enabled bool) Option {
	return func(c *Compositor) {
		c.fenceMarks = enabled
	}
}

// WithCodeFenceOptions configures the code fence field.
func WithCodeFenceOptions(opts ...codefence.Option) Option {
	return func(c *Compositor) {
		c.fenceOpts = append(c.fenceOpts, opts...)
	}
}

// WithLogger sets the logger for rebuild statistics and math failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Compositor) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a compositor.
func New(opts ...Option) *Compositor {
	c := &Compositor{
		typesetter: texmath.New(),
		fenceMarks: true,
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.typesetter = render.WithFailureHook(c.typesetter, func(source string, err error) {
		c.logger.Debug("math typesetting failed", logging.FieldSource, source, logging.FieldError, err)
	})

	scanOpts := c.scanOpts
	scanOpts.Typesetter = c.typesetter
	scanOpts.Math = c.math
	c.scanner = scanner.New(c.registry, scanOpts)

	c.block = blockmath.NewField(
		blockmath.WithTypesetter(c.typesetter),
		blockmath.WithMathOptions(c.math),
	)
	c.fences = codefence.NewField(append([]codefence.Option{codefence.WithLogger(c.logger)}, c.fenceOpts...)...)

	return c
}

// Scanner returns the inline pattern scanner.
func (c *Compositor) Scanner() *scanner.Scanner {
	return c.scanner
}

// Rebuild computes every decoration set from scratch.
func (c *Compositor) Rebuild(state State) *Result {
	doc := state.doc()
	analysis := c.fences.Analyze(doc)

	result := &Result{
		Revision: doc.Revision,
		Inline:   c.inline(state, analysis),
		Block:    c.block.Build(doc, state.Selection),
		Fences:   c.fenceSet(state, analysis),
	}
	c.logResult("rebuild", result)
	return result
}

// Update returns the decorations after tr. The inline set is recomputed
// when the document, selection or viewport changed; the document-scoped
// sets when the document or selection changed. Anything else is carried
// over through tr.Changes.
func (c *Compositor) Update(prev *Result, tr Transaction) *Result {
	if prev == nil {
		return c.Rebuild(tr.After)
	}

	doc := tr.After.doc()
	u := tr.FieldUpdate()
	docOrSelection := tr.DocChanged || tr.SelectionSet

	var analysis *codefence.Analysis
	analyze := func() *codefence.Analysis {
		if analysis == nil {
			analysis = c.fences.Analyze(doc)
		}
		return analysis
	}

	result := &Result{Revision: doc.Revision}

	if docOrSelection || tr.ViewportChanged {
		result.Inline = c.inline(tr.After, analyze())
	} else {
		result.Inline = prev.Inline.Map(tr.Changes)
	}

	result.Block = c.block.Update(prev.Block, u)

	if docOrSelection {
		result.Fences = c.fenceSet(tr.After, analyze())
	} else {
		result.Fences = prev.Fences.Map(tr.Changes)
	}

	c.logResult("update", result)
	return result
}

func (c *Compositor) inline(state State, analysis *codefence.Analysis) *decoration.Set {
	doc := state.doc()

	zones := blockmath.Zones(doc)
	if c.skipCode {
		zones = append(zones, analysis.Zones()...)
	}

	spans := c.scanner.WithExclude(zones...).Scan(doc, state.Selection, state.Visible())

	decos := make([]decoration.Decoration, 0, len(spans))
	for _, span := range spans {
		decos = append(decos, span.Decoration())
	}

	set, err := decoration.NewSet(doc.Revision, decos...)
	if err != nil {
		c.logger.Error("inline decorations rejected", logging.FieldRevision, doc.Revision, logging.FieldError, err)
		return decoration.Empty(doc.Revision)
	}
	return set
}

func (c *Compositor) fenceSet(state State, analysis *codefence.Analysis) *decoration.Set {
	doc := state.doc()
	if !c.fenceMarks {
		return decoration.Empty(doc.Revision)
	}
	return c.fences.Decorate(doc, state.Selection, analysis)
}

func (c *Compositor) logResult(event string, r *Result) {
	c.logger.Debug("decorations computed",
		logging.FieldEvent, event,
		logging.FieldRevision, r.Revision,
		logging.FieldSpans, r.Inline.Len(),
		logging.FieldBlocks, r.Block.Len(),
		logging.FieldFences, r.Fences.Len(),
	)
}

// Visible returns the line-aligned range of n lines starting at line first,
// the shape of viewport a host reports while scrolling.
func Visible(doc *document.Document, first, n int) document.Range {
	if doc == nil || n <= 0 {
		return document.Range{}
	}
	start, ok := doc.Line(max(first, 1))
	if !ok {
		return document.Range{From: doc.Len(), To: doc.Len()}
	}
	end, ok := doc.Line(start.Number + n - 1)
	if !ok {
		end = doc.LineAt(doc.Len())
	}
	return document.Range{From: start.From, To: end.To}
}
