package matchers

import (
	"regexp"

	"github.com/yaklabco/grim/pkg/render"
	"github.com/yaklabco/grim/pkg/scanner"
)

var (
	bulletPattern = regexp.MustCompile(`(?m)^([*-]) ([^\r\n]*)`)

	// \s+ may cross a line break, so "1.\nfoo" is one item.
	orderedPattern = regexp.MustCompile(`(?m)^(\d+)\.\s+([^\r\n]*)`)
)

// BulletListMatcher matches unordered list items marked with '-' or '*'.
type BulletListMatcher struct {
	scanner.BaseMatcher
}

// NewBulletListMatcher creates a new bullet list matcher.
func NewBulletListMatcher() *BulletListMatcher {
	return &BulletListMatcher{
		BaseMatcher: scanner.NewBaseMatcher(
			"GM003",
			"bullet-list",
			"Unordered list items shown with a bullet glyph",
			PriorityBulletList,
		),
	}
}

// Scan finds lines starting with "- " or "* ".
func (m *BulletListMatcher) Scan(ctx *scanner.ScanContext) []scanner.Span {
	var spans []scanner.Span

	for _, loc := range bulletPattern.FindAllStringSubmatchIndex(ctx.Text, -1) {
		content := ctx.Text[loc[4]:loc[5]]

		span := ctx.Span(loc[0], loc[1], "bullet-list", content, func() *render.Node {
			return render.Bullet(content)
		})
		span.Attrs = map[string]string{"marker": ctx.Text[loc[2]:loc[3]]}
		spans = append(spans, span)
	}

	return spans
}

// OrderedListMatcher matches ordered list items such as "1. item".
type OrderedListMatcher struct {
	scanner.BaseMatcher
}

// NewOrderedListMatcher creates a new ordered list matcher.
func NewOrderedListMatcher() *OrderedListMatcher {
	return &OrderedListMatcher{
		BaseMatcher: scanner.NewBaseMatcher(
			"GM004",
			"ordered-list",
			"Ordered list items shown with their number",
			PriorityOrderedList,
		),
	}
}

// Scan finds lines starting with digits, a period and whitespace.
func (m *OrderedListMatcher) Scan(ctx *scanner.ScanContext) []scanner.Span {
	var spans []scanner.Span

	for _, loc := range orderedPattern.FindAllStringSubmatchIndex(ctx.Text, -1) {
		number := ctx.Text[loc[2]:loc[3]]
		content := ctx.Text[loc[4]:loc[5]]

		span := ctx.Span(loc[0], loc[1], "ordered-list", content, func() *render.Node {
			return render.Ordered(number, content)
		})
		span.Attrs = map[string]string{"number": number}
		spans = append(spans, span)
	}

	return spans
}
