package matchers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/render"
	"github.com/yaklabco/grim/pkg/scanner"
	"github.com/yaklabco/grim/pkg/scanner/matchers"
)

type match struct {
	From, To int
	Content  string
}

func scan(m scanner.Matcher, text string, offset int) []scanner.Span {
	doc := document.FromString(1, text)
	return m.Scan(&scanner.ScanContext{Doc: doc, Text: text, Offset: offset})
}

func matchesOf(spans []scanner.Span) []match {
	out := make([]match, 0, len(spans))
	for _, s := range spans {
		out = append(out, match{From: s.From, To: s.To, Content: s.Content})
	}
	return out
}

func TestEmphasisMatcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []match
	}{
		{name: "italic", text: "*a*", want: []match{{0, 3, "a"}}},
		{name: "bold", text: "**bold**", want: []match{{0, 8, "bold"}}},
		{name: "bold italic", text: "***both***", want: []match{{0, 10, "both"}}},
		{name: "two on a line", text: "*a* and **b**", want: []match{{0, 3, "a"}, {8, 13, "b"}}},
		{name: "leading space", text: "* a*", want: []match{}},
		{name: "trailing space", text: "*a *", want: []match{}},
		{name: "inner spaces allowed", text: "*a b*", want: []match{{0, 5, "a b"}}},
		{name: "no newline inside", text: "*a\nb*", want: []match{}},
		{name: "unclosed", text: "**open", want: []match{}},
		{name: "short closer", text: "**a*", want: []match{{1, 4, "a"}}},
		{name: "long closer", text: "*a**", want: []match{{0, 3, "a"}}},
		{name: "four stars", text: "****a****", want: []match{{1, 8, "a"}}},
		{name: "unicode content", text: "*héllo*", want: []match{{0, 8, "héllo"}}},
		{name: "unicode space", text: "*\u00a0x*", want: []match{}},
		{name: "empty", text: "**", want: []match{}},
	}

	m := matchers.NewEmphasisMatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, matchesOf(scan(m, tt.text, 0)))
		})
	}
}

func TestEmphasisMatcher_Render(t *testing.T) {
	t.Parallel()

	spans := scan(matchers.NewEmphasisMatcher(), "x ***y*** **z** *w*", 10)
	require.Len(t, spans, 3)

	assert.Equal(t, 12, spans[0].From)
	assert.Equal(t, "span", spans[0].Render().Tag)
	assert.Equal(t, "<strong>z</strong>", spans[1].Render().HTML())
	assert.Equal(t, "<em>w</em>", spans[2].Render().HTML())
}

func TestHeadingMatcher(t *testing.T) {
	t.Parallel()

	text := "# Title\ntext\n###### Six\n####### Seven\n#NoSpace\n## \r\n"
	spans := scan(matchers.NewHeadingMatcher(), text, 0)

	assert.Equal(t, []match{
		{0, 7, "Title"},
		{13, 23, "Six"},
		{47, 50, ""},
	}, matchesOf(spans))
	assert.Equal(t, "1", spans[0].Attrs["level"])
	assert.Equal(t, "6", spans[1].Attrs["level"])

	node := spans[0].Render()
	assert.Equal(t, "h1", node.Tag)
	assert.Equal(t, "Title", node.PlainText())
}

func TestBulletListMatcher(t *testing.T) {
	t.Parallel()

	text := "- milk\n* eggs\n+ no\n-no\n  - nested"
	spans := scan(matchers.NewBulletListMatcher(), text, 0)

	assert.Equal(t, []match{{0, 6, "milk"}, {7, 13, "eggs"}}, matchesOf(spans))
	assert.Equal(t, "*", spans[1].Attrs["marker"])
	assert.Equal(t, "•eggs", spans[1].Render().PlainText())
}

func TestOrderedListMatcher(t *testing.T) {
	t.Parallel()

	text := "1. one\n12.  twelve\n3.x\n"
	spans := scan(matchers.NewOrderedListMatcher(), text, 0)

	assert.Equal(t, []match{{0, 6, "one"}, {7, 18, "twelve"}}, matchesOf(spans))
	assert.Equal(t, "12", spans[1].Attrs["number"])
	assert.Equal(t, "\t12.twelve", spans[1].Render().PlainText())
}

func TestInlineMathMatcher(t *testing.T) {
	t.Parallel()

	text := "a $x$ b $y^2$ $\nz"
	spans := scan(matchers.NewInlineMathMatcher(), text, 0)

	assert.Equal(t, []match{{2, 5, "x"}, {8, 13, "y^2"}}, matchesOf(spans))
}

func TestInlineMathMatcher_FallsBackToSource(t *testing.T) {
	t.Parallel()

	text := `$\invalidcmd$`
	failing := render.TypesetterFunc(func(string, render.MathOptions) (*render.Node, error) {
		panic("typesetter exploded")
	})

	doc := document.FromString(1, text)
	spans := matchers.NewInlineMathMatcher().Scan(&scanner.ScanContext{
		Doc:        doc,
		Text:       text,
		Typesetter: failing,
	})
	require.Len(t, spans, 1)
	assert.Equal(t, `\invalidcmd`, spans[0].Render().PlainText())
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := matchers.NewRegistry()
	ids := make([]string, 0, reg.Len())
	for _, m := range reg.Matchers() {
		ids = append(ids, m.ID())
	}
	assert.Equal(t, []string{"GM001", "GM002", "GM003", "GM004", "GM005"}, ids)

	id, _, ok := reg.Resolve("math")
	require.True(t, ok)
	assert.Equal(t, "GM005", id)

	_, ok = scanner.DefaultRegistry.Get("heading")
	assert.True(t, ok)
}

func TestInfos(t *testing.T) {
	t.Parallel()

	infos := matchers.Infos(matchers.NewRegistry())
	require.Len(t, infos, 5)
	assert.Equal(t, "GM001", infos[0].ID)
	assert.Equal(t, "emphasis", infos[0].Name)
	assert.Equal(t, matchers.PriorityEmphasis, infos[0].Priority)
	assert.True(t, infos[0].Enabled)
	assert.Equal(t, "GM005", infos[4].ID)
}
