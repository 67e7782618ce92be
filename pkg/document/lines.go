package document

import "sort"

// Line is a resolved line of a document.
// To excludes the line break; a CRLF break is excluded entirely.
type Line struct {
	// Number is the 1-based line number.
	Number int

	// From is the byte offset of the first character on the line.
	From int

	// To is the byte offset just past the last non-newline character.
	To int
}

// Len returns the length of the line content in bytes.
func (l Line) Len() int {
	return l.To - l.From
}

// Range returns the line content as a Range.
func (l Line) Range() Range {
	return Range{From: l.From, To: l.To}
}

// BuildLines constructs line metadata from document content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
// Empty content yields a single empty line.
func BuildLines(content []byte) []LineInfo {
	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			// Check for CRLF.
			newlineStart := idx
			if idx > lineStart && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// The last line never has a trailing newline and may be empty.
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// LineAt returns the line containing the given byte offset.
// Offsets are clamped to the document, so the result is always a valid line.
// An offset sitting on a line break belongs to the line the break terminates.
func (d *Document) LineAt(offset int) Line {
	offset = min(max(offset, 0), len(d.content))

	// Binary search for the first line whose end lies past the offset.
	lineIdx := sort.Search(len(d.lines), func(i int) bool {
		return d.lines[i].EndOffset > offset
	})

	if lineIdx >= len(d.lines) {
		lineIdx = len(d.lines) - 1
	}

	return d.lineFromIndex(lineIdx)
}

// Line returns the 1-based line with the given number.
// Returns false if the number is out of range.
func (d *Document) Line(number int) (Line, bool) {
	if number < 1 || number > len(d.lines) {
		return Line{}, false
	}
	return d.lineFromIndex(number - 1), true
}

// Position converts a byte offset to a 1-based line and column.
// Column counts bytes, not runes.
func (d *Document) Position(offset int) Position {
	line := d.LineAt(offset)
	offset = min(max(offset, 0), len(d.content))
	return Position{Line: line.Number, Column: offset - line.From + 1}
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (d *Document) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(d.lines) || col < 1 {
		return 0, false
	}

	info := d.lines[line-1]
	offset := info.StartOffset + col - 1

	// Allow the column to point at the end of the line for cursor positioning.
	if offset > info.NewlineStart {
		return 0, false
	}

	return offset, true
}

// LineContent returns the text of a 1-based line number, excluding the newline.
// Returns an empty string if the line number is out of range.
func (d *Document) LineContent(number int) string {
	line, ok := d.Line(number)
	if !ok {
		return ""
	}
	return string(d.content[line.From:line.To])
}

func (d *Document) lineFromIndex(idx int) Line {
	info := d.lines[idx]
	return Line{
		Number: idx + 1,
		From:   info.StartOffset,
		To:     info.NewlineStart,
	}
}
