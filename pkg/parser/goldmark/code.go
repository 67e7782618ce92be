package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
)

// CodeBlock is a fenced or indented code block located in the source.
type CodeBlock struct {
	// From and To cover the whole block, fences included.
	From int
	To   int

	// OpenFrom and OpenTo cover the opening fence line without its newline.
	// Both are -1 for indented blocks.
	OpenFrom int
	OpenTo   int

	// BodyFrom and BodyTo cover the code lines.
	BodyFrom int
	BodyTo   int

	// Info is the raw info string after the opening fence.
	Info string

	// Language is the first word of Info.
	Language string

	Fenced      bool
	Closed      bool
	FenceChar   byte
	FenceLength int
}

// CodeSpan is an inline code span, backticks included.
type CodeSpan struct {
	From int
	To   int
}

// Structure lists the code regions of a document in source order.
type Structure struct {
	CodeBlocks []CodeBlock
	CodeSpans  []CodeSpan
}

type collector struct {
	content   []byte
	structure *Structure
}

func (c *collector) visit(n ast.Node) ast.WalkStatus {
	switch node := n.(type) {
	case *ast.FencedCodeBlock:
		if block, ok := c.fencedBlock(node); ok {
			c.structure.CodeBlocks = append(c.structure.CodeBlocks, block)
		}
		return ast.WalkSkipChildren
	case *ast.CodeBlock:
		if block, ok := c.indentedBlock(node); ok {
			c.structure.CodeBlocks = append(c.structure.CodeBlocks, block)
		}
		return ast.WalkSkipChildren
	case *ast.CodeSpan:
		if span, ok := c.codeSpan(node); ok {
			c.structure.CodeSpans = append(c.structure.CodeSpans, span)
		}
		return ast.WalkSkipChildren
	}
	return ast.WalkContinue
}

// fencedBlock locates the opening fence from the info string or the first
// code line. Empty blocks without an info string cannot be located and are skipped.
func (c *collector) fencedBlock(node *ast.FencedCodeBlock) (CodeBlock, bool) {
	block := CodeBlock{Fenced: true}

	lines := node.Lines()
	switch {
	case node.Info != nil:
		block.OpenFrom = c.lineStart(node.Info.Segment.Start)
	case lines.Len() > 0:
		first := c.lineStart(lines.At(0).Start)
		if first == 0 {
			return CodeBlock{}, false
		}
		block.OpenFrom = c.lineStart(first - 1)
	default:
		return CodeBlock{}, false
	}
	block.OpenTo = c.lineEnd(block.OpenFrom)
	block.FenceChar, block.FenceLength = c.fence(block.OpenFrom, block.OpenTo)

	if node.Info != nil {
		block.Info = string(bytes.TrimSpace(node.Info.Segment.Value(c.content)))
		block.Language = string(node.Language(c.content))
	}

	block.BodyFrom = c.nextLine(block.OpenTo)
	block.BodyTo = block.BodyFrom
	if lines.Len() > 0 {
		block.BodyTo = lines.At(lines.Len() - 1).Stop
	}

	block.From = block.OpenFrom
	block.To = block.BodyTo
	closeFrom := c.lineStart(block.BodyTo)
	if closeFrom < block.BodyTo {
		closeFrom = c.nextLine(block.BodyTo)
	}
	if closeFrom < len(c.content) && closeFrom > block.OpenTo {
		closeTo := c.lineEnd(closeFrom)
		if ch, n := c.fence(closeFrom, closeTo); ch == block.FenceChar && n >= block.FenceLength {
			block.Closed = true
			block.To = closeTo
		}
	}
	block.To = max(block.To, block.OpenTo)

	return block, true
}

func (c *collector) indentedBlock(node *ast.CodeBlock) (CodeBlock, bool) {
	lines := node.Lines()
	if lines.Len() == 0 {
		return CodeBlock{}, false
	}

	from := c.lineStart(lines.At(0).Start)
	to := lines.At(lines.Len() - 1).Stop
	return CodeBlock{
		From:     from,
		To:       to,
		OpenFrom: -1,
		OpenTo:   -1,
		BodyFrom: from,
		BodyTo:   to,
	}, true
}

// codeSpan widens the span's text segments to include the backtick runs.
func (c *collector) codeSpan(node *ast.CodeSpan) (CodeSpan, bool) {
	start, end := -1, -1
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		t, ok := child.(*ast.Text)
		if !ok {
			continue
		}
		if start == -1 || t.Segment.Start < start {
			start = t.Segment.Start
		}
		if t.Segment.Stop > end {
			end = t.Segment.Stop
		}
	}
	if start < 0 {
		return CodeSpan{}, false
	}

	for start > 0 && c.content[start-1] != '`' {
		start--
	}
	for start > 0 && c.content[start-1] == '`' {
		start--
	}
	for end < len(c.content) && c.content[end] != '`' {
		end++
	}
	for end < len(c.content) && c.content[end] == '`' {
		end++
	}

	return CodeSpan{From: start, To: end}, true
}

// lineStart returns the offset of the first byte of the line holding pos.
func (c *collector) lineStart(pos int) int {
	pos = min(pos, len(c.content))
	for pos > 0 && c.content[pos-1] != '\n' {
		pos--
	}
	return pos
}

// lineEnd returns the offset of the line break (or end of content) after pos.
func (c *collector) lineEnd(pos int) int {
	for pos < len(c.content) && c.content[pos] != '\n' {
		pos++
	}
	if pos > 0 && pos <= len(c.content) && c.content[pos-1] == '\r' {
		pos--
	}
	return pos
}

// nextLine returns the start of the line after the one ending at lineEnd.
func (c *collector) nextLine(lineEnd int) int {
	for lineEnd < len(c.content) && c.content[lineEnd] != '\n' {
		lineEnd++
	}
	return min(lineEnd+1, len(c.content))
}

// fence extracts the fence character and length from a line.
func (c *collector) fence(start, end int) (byte, int) {
	pos := start
	for pos < end && (c.content[pos] == ' ' || c.content[pos] == '\t' || c.content[pos] == '>') {
		pos++
	}
	if pos >= end {
		return 0, 0
	}

	ch := c.content[pos]
	if ch != '`' && ch != '~' {
		return 0, 0
	}

	n := 0
	for pos < end && c.content[pos] == ch {
		n++
		pos++
	}
	if n < 3 {
		return 0, 0
	}
	return ch, n
}
