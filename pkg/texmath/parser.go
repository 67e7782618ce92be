package texmath

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/grim/pkg/render"
)

// MaxNesting bounds group and argument nesting so hostile input cannot
// exhaust the goroutine stack.
const MaxNesting = 1000

type parser struct {
	src    string
	pos    int
	strict bool
	depth  int
}

func (p *parser) fail(err error, pos int, detail string) error {
	return &ParseError{Pos: pos, Detail: detail, Err: err}
}

// enter records one level of nesting. Callers defer leave on success.
func (p *parser) enter() error {
	if p.depth >= MaxNesting {
		return p.fail(ErrTooDeep, p.pos, "")
	}
	p.depth++
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// atRight reports whether the input continues with the \right control word.
func (p *parser) atRight() bool {
	rest := p.src[p.pos:]
	if !strings.HasPrefix(rest, `\right`) {
		return false
	}
	return len(rest) == len(`\right`) || !isLetter(rest[len(`\right`)])
}

// parseList parses atoms until the input ends, a group closes, or \right appears.
func (p *parser) parseList(inGroup, inLeft bool) ([]*render.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	var out []*render.Node

	for !p.eof() {
		c := p.src[p.pos]

		switch {
		case c == '}':
			if !inGroup {
				return nil, p.fail(ErrUnbalancedBraces, p.pos, "}")
			}
			return out, nil

		case inLeft && p.atRight():
			return out, nil

		case c == '^' || c == '_':
			script, err := p.parseScript()
			if err != nil {
				return nil, err
			}
			out = append(out, script)

		default:
			atom, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			out = appendMerged(out, atom)
		}
	}

	if inGroup {
		return nil, p.fail(ErrUnbalancedBraces, len(p.src), "{")
	}
	if inLeft {
		return nil, p.fail(ErrUnbalancedDelimiters, len(p.src), `\left`)
	}
	return out, nil
}

// appendMerged appends node, folding adjacent plain text into one node.
func appendMerged(out []*render.Node, node *render.Node) []*render.Node {
	if node == nil {
		return out
	}
	if n := len(out); n > 0 && isPlain(out[n-1]) && isPlain(node) {
		out[n-1].Text += node.Text
		return out
	}
	return append(out, node)
}

func isPlain(n *render.Node) bool {
	return n.Tag == "span" && n.Class == "" && len(n.Style) == 0 &&
		len(n.Attrs) == 0 && len(n.Children) == 0
}

func text(s string) *render.Node {
	return render.El("span", s)
}

func (p *parser) parseAtom() (*render.Node, error) {
	c := p.src[p.pos]

	switch c {
	case ' ', '\t', '\n', '\r':
		p.pos++
		return nil, nil
	case '{':
		children, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return render.El("span", "").Append(children...), nil
	case '\\':
		return p.parseCommand()
	case '&', '~':
		p.pos++
		return text(" "), nil
	case '-':
		p.pos++
		return text("−"), nil
	case '\'':
		p.pos++
		return text("′"), nil
	}

	if c < utf8.RuneSelf {
		p.pos++
		return text(string(c)), nil
	}

	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	if p.strict {
		return nil, p.fail(ErrUnicodeInMath, p.pos, string(r))
	}
	p.pos += size
	return text(string(r)), nil
}

// parseGroup parses a brace-delimited group. The cursor must be on '{'.
func (p *parser) parseGroup() ([]*render.Node, error) {
	p.pos++
	children, err := p.parseList(true, false)
	if err != nil {
		return nil, err
	}
	p.pos++ // closing brace
	return children, nil
}

// parseArgument parses one command or script argument: a group, a command or a single character.
func (p *parser) parseArgument(owner string) ([]*render.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	start := p.pos
	p.skipSpace()
	if p.eof() {
		return nil, p.fail(ErrMissingArgument, start, owner)
	}

	switch p.src[p.pos] {
	case '{':
		return p.parseGroup()
	case '}', '^', '_':
		return nil, p.fail(ErrMissingArgument, p.pos, owner)
	}

	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if atom == nil {
		return nil, nil
	}
	return []*render.Node{atom}, nil
}

// parseRaw reads a brace group verbatim, honoring nested braces.
func (p *parser) parseRaw(owner string) (string, error) {
	p.skipSpace()
	if p.eof() || p.src[p.pos] != '{' {
		return "", p.fail(ErrMissingArgument, p.pos, owner)
	}

	start := p.pos + 1
	depth := 0
	for i := p.pos; i < len(p.src); i++ {
		switch p.src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos = i + 1
				return p.src[start:i], nil
			}
		}
	}
	return "", p.fail(ErrUnbalancedBraces, len(p.src), "{")
}

func (p *parser) parseScript() (*render.Node, error) {
	marker := p.src[p.pos]
	p.pos++

	arg, err := p.parseArgument(string(marker))
	if err != nil {
		return nil, err
	}

	table, tag, class := superscripts, "sup", "msup"
	if marker == '_' {
		table, tag, class = subscripts, "sub", "msub"
	}

	plain := plainText(arg)
	if mapped, ok := mapRunes(plain, table); ok {
		return render.El("span", mapped).WithClass(class), nil
	}
	return render.El(tag, "").Append(arg...), nil
}

func plainText(nodes []*render.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.PlainText())
	}
	return sb.String()
}

func mapRunes(s string, table map[rune]rune) (string, bool) {
	if s == "" {
		return "", false
	}
	var sb strings.Builder
	for _, r := range s {
		if r == '−' {
			r = '-'
		}
		m, ok := table[r]
		if !ok {
			return "", false
		}
		sb.WriteRune(m)
	}
	return sb.String(), true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// readControl reads the name after a backslash: a run of letters or one symbol.
func (p *parser) readControl() string {
	start := p.pos
	for !p.eof() && isLetter(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start && !p.eof() {
		_, size := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
	}
	return p.src[start:p.pos]
}
