package document

import "fmt"

// Range represents a byte range [From, To) in a document.
type Range struct {
	// From is the byte index where the range begins (inclusive).
	From int

	// To is the byte index where the range ends (exclusive).
	To int
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.To - r.From
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.From == r.To
}

// Contains returns true if the given offset is within this range.
func (r Range) Contains(offset int) bool {
	return offset >= r.From && offset < r.To
}

// Covers returns true if other lies entirely inside r.
func (r Range) Covers(other Range) bool {
	return other.From >= r.From && other.To <= r.To
}

// Overlaps returns true if the two half-open ranges share at least one byte.
func (r Range) Overlaps(other Range) bool {
	return r.From < other.To && other.From < r.To
}

// Touches returns true if the ranges overlap or meet at an endpoint.
// This is the inclusive test used for selection suppression.
func (r Range) Touches(other Range) bool {
	return r.From <= other.To && r.To >= other.From
}

// Normalize returns the range with From <= To.
func (r Range) Normalize() Range {
	if r.From > r.To {
		return Range{From: r.To, To: r.From}
	}
	return r
}

// String formats the range as "from:to".
func (r Range) String() string {
	return fmt.Sprintf("%d:%d", r.From, r.To)
}

// Position represents a 1-based line and column in a document.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// String formats the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
