package matchers

import (
	"regexp"

	"github.com/yaklabco/grim/pkg/render"
	"github.com/yaklabco/grim/pkg/scanner"
)

var inlineMathPattern = regexp.MustCompile(`\$([^\n]+?)\$`)

// InlineMathMatcher matches single-dollar math on one line.
type InlineMathMatcher struct {
	scanner.BaseMatcher
}

// NewInlineMathMatcher creates a new inline math matcher.
func NewInlineMathMatcher() *InlineMathMatcher {
	return &InlineMathMatcher{
		BaseMatcher: scanner.NewBaseMatcher(
			"GM005",
			"inline-math",
			"Single-dollar math typeset inline",
			PriorityInlineMath,
		),
	}
}

// Scan finds $...$ pairs. Rendering goes through render.Math, so a
// typesetting failure shows the literal source instead of failing the scan.
func (m *InlineMathMatcher) Scan(ctx *scanner.ScanContext) []scanner.Span {
	var spans []scanner.Span

	ts, opts := ctx.Typesetter, ctx.Math
	for _, loc := range inlineMathPattern.FindAllStringSubmatchIndex(ctx.Text, -1) {
		source := ctx.Text[loc[2]:loc[3]]
		spans = append(spans, ctx.Span(loc[0], loc[1], "inline-math", source, func() *render.Node {
			return render.InlineMath(ts, source, opts)
		}))
	}

	return spans
}
