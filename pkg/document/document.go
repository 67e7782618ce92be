// Package document provides the immutable text snapshot the decoration engine reads.
// A Document is a lossless view of editor content at one revision. It holds
// the raw UTF-8 bytes, copied on construction, and a precomputed line index
// for offset and line-number lookups. Neither is reachable for mutation:
// readers get strings or copies.
//
// Offsets are byte offsets into the content. Every edit in the host produces
// a new Document with a new revision.
package document

import "slices"

// Document is an immutable snapshot of editor text at a specific revision.
type Document struct {
	// Revision identifies this snapshot. Hosts bump it on every content change.
	Revision uint64

	content []byte

	// At least one entry, even when the document is empty.
	lines []LineInfo
}

// LineInfo holds metadata for a single line in a document.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of document).
	EndOffset int
}

// New creates a Document from content at the given revision.
// The content is copied so later mutation by the caller cannot leak into the snapshot.
func New(revision uint64, content []byte) *Document {
	cp := make([]byte, len(content))
	copy(cp, content)

	return &Document{
		Revision: revision,
		content:  cp,
		lines:    BuildLines(cp),
	}
}

// FromString creates a Document from a string at the given revision.
func FromString(revision uint64, text string) *Document {
	return New(revision, []byte(text))
}

// Len returns the document length in bytes.
func (d *Document) Len() int {
	return len(d.content)
}

// Bytes returns a copy of the document content.
func (d *Document) Bytes() []byte {
	return slices.Clone(d.content)
}

// String returns the full document text.
func (d *Document) String() string {
	return string(d.content)
}

// Slice returns the text in [from, to), clamped to the document bounds.
func (d *Document) Slice(from, to int) string {
	r := d.Clamp(Range{From: from, To: to})
	return string(d.content[r.From:r.To])
}

// Clamp restricts a range to the document bounds and normalizes inverted ranges.
func (d *Document) Clamp(r Range) Range {
	r = r.Normalize()
	r.From = min(max(r.From, 0), len(d.content))
	r.To = min(max(r.To, 0), len(d.content))
	return r
}

// Full returns the range covering the whole document.
func (d *Document) Full() Range {
	return Range{From: 0, To: len(d.content)}
}

// SameContent reports whether two documents hold identical text.
// Revisions are not compared.
func (d *Document) SameContent(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return string(d.content) == string(other.content)
}
