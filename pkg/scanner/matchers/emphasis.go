package matchers

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/grim/pkg/render"
	"github.com/yaklabco/grim/pkg/scanner"
)

// maxEmphasisRun is the longest delimiter run treated as emphasis.
const maxEmphasisRun = 3

// EmphasisMatcher matches *italic*, **bold** and ***bold italic*** runs.
type EmphasisMatcher struct {
	scanner.BaseMatcher
}

// NewEmphasisMatcher creates a new emphasis matcher.
func NewEmphasisMatcher() *EmphasisMatcher {
	return &EmphasisMatcher{
		BaseMatcher: scanner.NewBaseMatcher(
			"GM001",
			"emphasis",
			"Asterisk emphasis: one star italic, two bold, three bold italic",
			PriorityEmphasis,
		),
	}
}

// Scan finds emphasis runs. Content may not contain '*' or a newline and
// may not start or end with whitespace; the closing run must be at least as
// long as the opening one.
func (m *EmphasisMatcher) Scan(ctx *scanner.ScanContext) []scanner.Span {
	var spans []scanner.Span

	for _, em := range findEmphasis(ctx.Text) {
		stars, content := em.stars, em.content
		spans = append(spans, ctx.Span(em.from, em.to, "emphasis", content, func() *render.Node {
			return render.Emphasis(stars, content)
		}))
	}

	return spans
}

type emphasisMatch struct {
	from, to int
	stars    int
	content  string
}

func findEmphasis(text string) []emphasisMatch {
	var matches []emphasisMatch

	for i := 0; i < len(text); {
		em, ok := matchEmphasisAt(text, i)
		if !ok {
			i++
			continue
		}
		matches = append(matches, em)
		i = em.to
	}

	return matches
}

// matchEmphasisAt tries to match an emphasis run starting exactly at i.
// Only the full star run starting at i can succeed: a shorter opener would
// leave a '*' at the start of the content.
func matchEmphasisAt(text string, i int) (emphasisMatch, bool) {
	run := 0
	for i+run < len(text) && text[i+run] == '*' {
		run++
	}
	if run == 0 || run > maxEmphasisRun {
		return emphasisMatch{}, false
	}

	start := i + run
	end := start
	for end < len(text) && text[end] != '*' && text[end] != '\n' {
		end++
	}
	if end == start || end == len(text) || text[end] != '*' {
		return emphasisMatch{}, false
	}

	first, _ := utf8.DecodeRuneInString(text[start:end])
	last, _ := utf8.DecodeLastRuneInString(text[start:end])
	if unicode.IsSpace(first) || unicode.IsSpace(last) {
		return emphasisMatch{}, false
	}

	for k := range run {
		if end+k >= len(text) || text[end+k] != '*' {
			return emphasisMatch{}, false
		}
	}

	return emphasisMatch{
		from:    i,
		to:      end + run,
		stars:   run,
		content: text[start:end],
	}, true
}
