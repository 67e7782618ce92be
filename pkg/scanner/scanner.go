package scanner

import (
	"cmp"
	"slices"

	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/render"
	"github.com/yaklabco/grim/pkg/selection"
)

// Options configures a Scanner.
type Options struct {
	// Enabled overrides DefaultEnabled per matcher ID.
	Enabled map[string]bool

	// Priorities overrides Priority per matcher ID.
	Priorities map[string]int

	// Exclude lists document ranges, such as code blocks or block math
	// regions, that spans may not fall inside or cut across. A span that
	// covers a whole zone is kept.
	Exclude []document.Range

	// Typesetter renders math constructs. Nil renders math as literal source.
	Typesetter render.Typesetter

	// Math holds the options passed to the typesetter.
	Math render.MathOptions
}

// Scanner runs the registered matchers over visible ranges.
type Scanner struct {
	registry *Registry
	opts     Options
}

// New creates a scanner over the given registry.
// A nil registry uses DefaultRegistry.
func New(registry *Registry, opts Options) *Scanner {
	if registry == nil {
		registry = DefaultRegistry
	}
	return &Scanner{registry: registry, opts: opts}
}

// Registry returns the scanner's matcher registry.
func (s *Scanner) Registry() *Registry {
	return s.registry
}

// WithExclude returns a copy of the scanner that also skips the given ranges.
func (s *Scanner) WithExclude(zones ...document.Range) *Scanner {
	opts := s.opts
	opts.Exclude = append(slices.Clone(s.opts.Exclude), zones...)
	return &Scanner{registry: s.registry, opts: opts}
}

// Enabled reports whether a matcher runs under the scanner's options.
func (s *Scanner) Enabled(m Matcher) bool {
	if enabled, ok := s.opts.Enabled[m.ID()]; ok {
		return enabled
	}
	return m.DefaultEnabled()
}

// Priority returns a matcher's effective priority.
func (s *Scanner) Priority(m Matcher) int {
	if p, ok := s.opts.Priorities[m.ID()]; ok {
		return p
	}
	return m.Priority()
}

// ActiveMatchers returns the enabled matchers in effective priority order.
func (s *Scanner) ActiveMatchers() []Matcher {
	var active []Matcher
	for _, m := range s.registry.Matchers() {
		if s.Enabled(m) {
			active = append(active, m)
		}
	}
	slices.SortStableFunc(active, func(a, b Matcher) int {
		return cmp.Compare(s.Priority(a), s.Priority(b))
	})
	return active
}

// Candidates runs every active matcher over each visible range and returns
// the raw spans, unfiltered and unsorted. Ranges are clamped to the document
// and empty ranges are skipped, so a construct straddling two ranges is
// never matched.
func (s *Scanner) Candidates(doc *document.Document, visible []document.Range) []Span {
	matchers := s.ActiveMatchers()
	var spans []Span

	for _, vr := range visible {
		vr = doc.Clamp(vr)
		if vr.IsEmpty() {
			continue
		}

		ctx := &ScanContext{
			Doc:        doc,
			Text:       doc.Slice(vr.From, vr.To),
			Offset:     vr.From,
			Typesetter: s.opts.Typesetter,
			Math:       s.opts.Math,
		}

		for _, m := range matchers {
			priority := s.Priority(m)
			for _, span := range m.Scan(ctx) {
				if span.To <= span.From {
					continue
				}
				span.Priority = priority
				span.Matcher = m.ID()
				spans = append(spans, span)
			}
		}
	}

	return spans
}

// Scan returns the resolved spans for the visible ranges: candidates that
// touch a selection range or cut into an excluded range are dropped, and the
// rest are ordered and made non-overlapping by Resolve.
func (s *Scanner) Scan(doc *document.Document, sel selection.Selection, visible []document.Range) []Span {
	candidates := s.Candidates(doc, visible)

	kept := candidates[:0]
	for _, span := range candidates {
		if sel.Intersects(span.From, span.To) {
			continue
		}
		if s.excluded(span) {
			continue
		}
		kept = append(kept, span)
	}

	return Resolve(kept)
}

func (s *Scanner) excluded(span Span) bool {
	r := document.Range{From: span.From, To: span.To}
	for _, zone := range s.opts.Exclude {
		if zone.Overlaps(r) && !r.Covers(zone) {
			return true
		}
	}
	return false
}

// Resolve sorts spans by start, end and priority and drops overlaps.
// A span is accepted only if it starts at or after the end of the last
// accepted span. At an identical start, a later span that fully contains
// the accepted one and has a lower priority number replaces it.
// The input slice is reordered.
func Resolve(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}

	slices.SortStableFunc(spans, func(a, b Span) int {
		if a.From != b.From {
			return cmp.Compare(a.From, b.From)
		}
		if a.To != b.To {
			return cmp.Compare(a.To, b.To)
		}
		return cmp.Compare(a.Priority, b.Priority)
	})

	accepted := make([]Span, 0, len(spans))
	for _, span := range spans {
		n := len(accepted)
		if n == 0 || span.From >= accepted[n-1].To {
			accepted = append(accepted, span)
			continue
		}

		last := accepted[n-1]
		if span.From == last.From && span.Contains(last) && span.Priority < last.Priority {
			accepted[n-1] = span
		}
	}

	return accepted
}
