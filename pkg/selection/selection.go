// Package selection models the host editor's selection state.
// The engine reads selections only to decide which constructs reveal raw markup.
package selection

import "slices"

// Range is one selection range. Anchor is where the selection started and
// Head is where it currently ends; either may come first in the document.
type Range struct {
	Anchor int
	Head   int
}

// From returns the lower bound of the range.
func (r Range) From() int {
	return min(r.Anchor, r.Head)
}

// To returns the upper bound of the range.
func (r Range) To() int {
	return max(r.Anchor, r.Head)
}

// IsCaret reports whether the range is collapsed to a single position.
func (r Range) IsCaret() bool {
	return r.Anchor == r.Head
}

// Intersects reports whether the range touches [from, to] inclusively.
// A caret sitting on either boundary counts as touching.
func (r Range) Intersects(from, to int) bool {
	return r.From() <= to && r.To() >= from
}

// Selection is the set of selection ranges at one revision.
type Selection struct {
	Ranges []Range

	// Main is the index of the primary range.
	Main int
}

// Empty returns a selection with no ranges. Nothing is ever suppressed by it.
func Empty() Selection {
	return Selection{}
}

// Cursor returns a selection holding a single caret at pos.
func Cursor(pos int) Selection {
	return Selection{Ranges: []Range{{Anchor: pos, Head: pos}}}
}

// Single returns a selection holding one range.
func Single(anchor, head int) Selection {
	return Selection{Ranges: []Range{{Anchor: anchor, Head: head}}}
}

// Create returns a selection of the given ranges with the first one as main.
func Create(ranges ...Range) Selection {
	return Selection{Ranges: slices.Clone(ranges)}
}

// IsEmpty reports whether the selection has no ranges.
func (s Selection) IsEmpty() bool {
	return len(s.Ranges) == 0
}

// MainRange returns the primary range, or false when the selection is empty.
func (s Selection) MainRange() (Range, bool) {
	if s.Main < 0 || s.Main >= len(s.Ranges) {
		return Range{}, false
	}
	return s.Ranges[s.Main], true
}

// Intersects reports whether any range touches [from, to] inclusively.
func (s Selection) Intersects(from, to int) bool {
	for _, r := range s.Ranges {
		if r.Intersects(from, to) {
			return true
		}
	}
	return false
}

// Equal reports whether two selections hold the same ranges in the same order.
func (s Selection) Equal(other Selection) bool {
	return s.Main == other.Main && slices.Equal(s.Ranges, other.Ranges)
}

// Clone returns a deep copy of the selection.
func (s Selection) Clone() Selection {
	return Selection{Ranges: slices.Clone(s.Ranges), Main: s.Main}
}
