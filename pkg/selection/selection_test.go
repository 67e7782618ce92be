package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/grim/pkg/selection"
)

func TestRange_Normalizes(t *testing.T) {
	t.Parallel()

	r := selection.Range{Anchor: 9, Head: 3}
	assert.Equal(t, 3, r.From())
	assert.Equal(t, 9, r.To())
	assert.False(t, r.IsCaret())
	assert.True(t, selection.Range{Anchor: 4, Head: 4}.IsCaret())
}

func TestRange_Intersects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		r        selection.Range
		from, to int
		want     bool
	}{
		{name: "caret before", r: selection.Range{Anchor: 1, Head: 1}, from: 2, to: 8, want: false},
		{name: "caret at start", r: selection.Range{Anchor: 2, Head: 2}, from: 2, to: 8, want: true},
		{name: "caret inside", r: selection.Range{Anchor: 5, Head: 5}, from: 2, to: 8, want: true},
		{name: "caret at end", r: selection.Range{Anchor: 8, Head: 8}, from: 2, to: 8, want: true},
		{name: "caret after", r: selection.Range{Anchor: 9, Head: 9}, from: 2, to: 8, want: false},
		{name: "range covering", r: selection.Range{Anchor: 10, Head: 0}, from: 2, to: 8, want: true},
		{name: "range ending at start", r: selection.Range{Anchor: 0, Head: 2}, from: 2, to: 8, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.r.Intersects(tt.from, tt.to))
		})
	}
}

func TestSelection_Intersects(t *testing.T) {
	t.Parallel()

	sel := selection.Create(
		selection.Range{Anchor: 0, Head: 0},
		selection.Range{Anchor: 20, Head: 25},
	)

	assert.True(t, sel.Intersects(22, 30))
	assert.False(t, sel.Intersects(5, 10))
	assert.False(t, selection.Empty().Intersects(0, 100))
}

func TestSelection_Equal(t *testing.T) {
	t.Parallel()

	assert.True(t, selection.Cursor(3).Equal(selection.Single(3, 3)))
	assert.False(t, selection.Cursor(3).Equal(selection.Cursor(4)))
	assert.True(t, selection.Empty().Equal(selection.Selection{}))

	main, ok := selection.Single(1, 5).MainRange()
	assert.True(t, ok)
	assert.Equal(t, 5, main.To())

	_, ok = selection.Empty().MainRange()
	assert.False(t, ok)
}
