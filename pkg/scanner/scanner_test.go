package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/render"
	"github.com/yaklabco/grim/pkg/scanner"
	"github.com/yaklabco/grim/pkg/scanner/matchers"
	"github.com/yaklabco/grim/pkg/selection"
)

// fixedMatcher returns preset relative ranges from every scan.
type fixedMatcher struct {
	scanner.BaseMatcher
	ranges [][2]int
}

func newFixed(id string, priority int, ranges ...[2]int) *fixedMatcher {
	return &fixedMatcher{
		BaseMatcher: scanner.NewBaseMatcher(id, id, "fixed", priority),
		ranges:      ranges,
	}
}

func (m *fixedMatcher) Scan(ctx *scanner.ScanContext) []scanner.Span {
	var spans []scanner.Span
	for _, r := range m.ranges {
		if r[1] > len(ctx.Text) {
			continue
		}
		spans = append(spans, ctx.Span(r[0], r[1], m.ID(), ctx.Text[r[0]:r[1]], nil))
	}
	return spans
}

func whole(doc *document.Document) []document.Range {
	return []document.Range{doc.Full()}
}

func spanRanges(spans []scanner.Span) [][2]int {
	out := make([][2]int, 0, len(spans))
	for _, s := range spans {
		out = append(out, [2]int{s.From, s.To})
	}
	return out
}

func TestScan_BoldRoundTrip(t *testing.T) {
	t.Parallel()

	doc := document.FromString(1, "**bold**")
	spans := scanner.New(matchers.NewRegistry(), scanner.Options{}).
		Scan(doc, selection.Empty(), whole(doc))

	require.Len(t, spans, 1)
	assert.Equal(t, 0, spans[0].From)
	assert.Equal(t, 8, spans[0].To)
	assert.Equal(t, "GM001", spans[0].Matcher)

	node := spans[0].Render()
	assert.Equal(t, "strong", node.Tag)
	assert.Equal(t, "bold", node.PlainText())
}

func TestScan_SelectionSuppression(t *testing.T) {
	t.Parallel()

	doc := document.FromString(1, "# Title\n\n**bold** and *it*\n\n1. first")
	sc := scanner.New(matchers.NewRegistry(), scanner.Options{})

	tests := []struct {
		name string
		sel  selection.Selection
		want [][2]int
	}{
		{name: "no selection", sel: selection.Empty(), want: [][2]int{{0, 7}, {9, 17}, {22, 26}, {28, 36}}},
		{name: "caret inside heading", sel: selection.Cursor(3), want: [][2]int{{9, 17}, {22, 26}, {28, 36}}},
		{name: "caret at heading end", sel: selection.Cursor(7), want: [][2]int{{9, 17}, {22, 26}, {28, 36}}},
		{name: "caret on blank line", sel: selection.Cursor(8), want: [][2]int{{0, 7}, {9, 17}, {22, 26}, {28, 36}}},
		{name: "caret at bold start", sel: selection.Cursor(9), want: [][2]int{{0, 7}, {22, 26}, {28, 36}}},
		{name: "range over both emphasis", sel: selection.Single(12, 24), want: [][2]int{{0, 7}, {28, 36}}},
		{name: "caret on ordered item", sel: selection.Cursor(30), want: [][2]int{{0, 7}, {9, 17}, {22, 26}}},
		{
			name: "multiple ranges",
			sel:  selection.Create(selection.Range{Anchor: 0, Head: 0}, selection.Range{Anchor: 36, Head: 36}),
			want: [][2]int{{9, 17}, {22, 26}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			spans := sc.Scan(doc, tt.sel, whole(doc))
			assert.Equal(t, tt.want, spanRanges(spans))
			for _, s := range spans {
				assert.False(t, tt.sel.Intersects(s.From, s.To))
			}
		})
	}
}

func TestScan_DeterministicAndNonOverlapping(t *testing.T) {
	t.Parallel()

	text := "# *Head* $x$\n- **item** $a$ *b*\n- * x\n1. $1$ **2**\n***t*** **u* $v $w$\n"
	doc := document.FromString(9, text)
	sc := scanner.New(matchers.NewRegistry(), scanner.Options{})

	first := sc.Scan(doc, selection.Cursor(len(text)+5), whole(doc))
	second := sc.Scan(doc, selection.Cursor(len(text)+5), whole(doc))

	require.Equal(t, spanRanges(first), spanRanges(second))
	for i := range first {
		assert.True(t, first[i].Render().Equal(second[i].Render()))
		if i > 0 {
			assert.LessOrEqual(t, first[i-1].To, first[i].From)
		}
	}
}

func TestScan_LineConstructsWinOverInner(t *testing.T) {
	t.Parallel()

	doc := document.FromString(1, "- **item**")
	spans := scanner.New(matchers.NewRegistry(), scanner.Options{}).
		Scan(doc, selection.Empty(), whole(doc))

	require.Len(t, spans, 1)
	assert.Equal(t, "GM003", spans[0].Matcher)
	assert.Equal(t, "**item**", spans[0].Content)
}

func TestScan_VisibleRanges(t *testing.T) {
	t.Parallel()

	doc := document.FromString(1, "*a* *b* *c*")
	sc := scanner.New(matchers.NewRegistry(), scanner.Options{})

	t.Run("only visible constructs", func(t *testing.T) {
		t.Parallel()
		spans := sc.Scan(doc, selection.Empty(), []document.Range{{From: 4, To: 7}})
		assert.Equal(t, [][2]int{{4, 7}}, spanRanges(spans))
	})

	t.Run("straddling construct is not matched", func(t *testing.T) {
		t.Parallel()
		spans := sc.Scan(doc, selection.Empty(), []document.Range{{From: 0, To: 5}, {From: 5, To: 11}})
		assert.Equal(t, [][2]int{{0, 3}, {8, 11}}, spanRanges(spans))
	})

	t.Run("out of bounds and empty ranges", func(t *testing.T) {
		t.Parallel()
		spans := sc.Scan(doc, selection.Empty(), []document.Range{{From: 3, To: 3}, {From: 8, To: 99}})
		assert.Equal(t, [][2]int{{8, 11}}, spanRanges(spans))
	})
}

func TestScan_Exclude(t *testing.T) {
	t.Parallel()

	doc := document.FromString(1, "*a* `*b*` *c*")
	sc := scanner.New(matchers.NewRegistry(), scanner.Options{
		Exclude: []document.Range{{From: 4, To: 9}},
	})

	spans := sc.Scan(doc, selection.Empty(), whole(doc))
	assert.Equal(t, [][2]int{{0, 3}, {10, 13}}, spanRanges(spans))

	spans = sc.WithExclude(document.Range{From: 2, To: 4}).Scan(doc, selection.Empty(), whole(doc))
	assert.Equal(t, [][2]int{{10, 13}}, spanRanges(spans))

	spans = sc.WithExclude(document.Range{From: 0, To: 1}).Scan(doc, selection.Empty(), whole(doc))
	assert.Equal(t, [][2]int{{0, 3}, {10, 13}}, spanRanges(spans), "a span covering a zone is kept")
}

func TestScan_EnabledAndPriorityOverrides(t *testing.T) {
	t.Parallel()

	doc := document.FromString(1, "# *x* $y$")

	disabled := scanner.New(matchers.NewRegistry(), scanner.Options{
		Enabled: map[string]bool{"GM002": false},
	})
	spans := disabled.Scan(doc, selection.Empty(), whole(doc))
	assert.Equal(t, [][2]int{{2, 5}, {6, 9}}, spanRanges(spans))

	reprioritized := scanner.New(matchers.NewRegistry(), scanner.Options{
		Priorities: map[string]int{"GM005": 0},
	})
	active := reprioritized.ActiveMatchers()
	require.NotEmpty(t, active)
	assert.Equal(t, "GM005", active[0].ID())
}

func TestResolve_TieBreaking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		matchers []scanner.Matcher
		want     [][2]int
		wantIDs  []string
	}{
		{
			name: "identical range keeps lower priority number",
			matchers: []scanner.Matcher{
				newFixed("LOW", 5, [2]int{0, 4}),
				newFixed("HIGH", 1, [2]int{0, 4}),
			},
			want:    [][2]int{{0, 4}},
			wantIDs: []string{"HIGH"},
		},
		{
			name: "containing span with higher precedence supersedes",
			matchers: []scanner.Matcher{
				newFixed("INNER", 5, [2]int{0, 3}),
				newFixed("OUTER", 1, [2]int{0, 8}),
			},
			want:    [][2]int{{0, 8}},
			wantIDs: []string{"OUTER"},
		},
		{
			name: "containing span with lower precedence is dropped",
			matchers: []scanner.Matcher{
				newFixed("INNER", 1, [2]int{0, 3}),
				newFixed("OUTER", 5, [2]int{0, 8}),
			},
			want:    [][2]int{{0, 3}},
			wantIDs: []string{"INNER"},
		},
		{
			name: "later overlapping span dropped",
			matchers: []scanner.Matcher{
				newFixed("A", 5, [2]int{0, 5}),
				newFixed("B", 1, [2]int{3, 8}),
			},
			want:    [][2]int{{0, 5}},
			wantIDs: []string{"A"},
		},
		{
			name: "adjacent spans both kept",
			matchers: []scanner.Matcher{
				newFixed("A", 1, [2]int{0, 4}, [2]int{4, 8}),
			},
			want:    [][2]int{{0, 4}, {4, 8}},
			wantIDs: []string{"A", "A"},
		},
	}

	doc := document.FromString(1, "0123456789")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := scanner.NewRegistry()
			for _, m := range tt.matchers {
				reg.Register(m)
			}

			spans := scanner.New(reg, scanner.Options{}).Scan(doc, selection.Empty(), whole(doc))
			assert.Equal(t, tt.want, spanRanges(spans))

			ids := make([]string, 0, len(spans))
			for _, s := range spans {
				ids = append(ids, s.Matcher)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSpan_Decoration(t *testing.T) {
	t.Parallel()

	span := scanner.Span{
		From: 2, To: 9, Matcher: "GM002", Content: "Title",
		Attrs:  map[string]string{"level": "1"},
		Render: func() *render.Node { return render.Heading(1, "Title") },
	}
	deco := span.Decoration()

	assert.Equal(t, 2, deco.From)
	assert.Equal(t, 9, deco.To)
	assert.Equal(t, "GM002", deco.Source)
	assert.Equal(t, "h1", deco.Widget.Tag)
	assert.Equal(t, "1", deco.Attrs["level"])
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := scanner.NewRegistry()
	reg.Register(newFixed("X1", 2))
	reg.Register(newFixed("X0", 2))
	reg.Register(newFixed("X9", 1))
	reg.RegisterAlias("nine", "X9")

	ids := make([]string, 0, 3)
	for _, m := range reg.Matchers() {
		ids = append(ids, m.ID())
	}
	assert.Equal(t, []string{"X9", "X0", "X1"}, ids)
	assert.Equal(t, []string{"X0", "X1", "X9"}, reg.IDs())

	m, ok := reg.Get("nine")
	require.True(t, ok)
	assert.Equal(t, "X9", m.ID())

	_, _, ok = reg.Resolve("missing")
	assert.False(t, ok)
}
