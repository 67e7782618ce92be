package matchers

import (
	"regexp"
	"strconv"

	"github.com/yaklabco/grim/pkg/render"
	"github.com/yaklabco/grim/pkg/scanner"
)

var headingPattern = regexp.MustCompile(`(?m)^(#{1,6}) ([^\r\n]*)`)

// HeadingMatcher matches ATX headings of level 1 to 6.
type HeadingMatcher struct {
	scanner.BaseMatcher
}

// NewHeadingMatcher creates a new heading matcher.
func NewHeadingMatcher() *HeadingMatcher {
	return &HeadingMatcher{
		BaseMatcher: scanner.NewBaseMatcher(
			"GM002",
			"heading",
			"ATX headings rendered at their level without the leading hashes",
			PriorityHeading,
		),
	}
}

// Scan finds one heading per line that starts with 1-6 hashes and a space.
func (m *HeadingMatcher) Scan(ctx *scanner.ScanContext) []scanner.Span {
	var spans []scanner.Span

	for _, loc := range headingPattern.FindAllStringSubmatchIndex(ctx.Text, -1) {
		level := loc[3] - loc[2]
		content := ctx.Text[loc[4]:loc[5]]

		span := ctx.Span(loc[0], loc[1], "heading", content, func() *render.Node {
			return render.Heading(level, content)
		})
		span.Attrs = map[string]string{"level": strconv.Itoa(level)}
		spans = append(spans, span)
	}

	return spans
}
