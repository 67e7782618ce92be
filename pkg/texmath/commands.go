package texmath

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/grim/pkg/render"
)

var accents = map[string]rune{
	"bar":      '\u0304',
	"overline": '\u0305',
	"hat":      '\u0302',
	"widehat":  '\u0302',
	"tilde":    '\u0303',
	"dot":      '\u0307',
	"ddot":     '\u0308',
	"vec":      '\u20d7',
}

var doubleStruck = map[rune]rune{
	'C': 'ℂ', 'H': 'ℍ', 'N': 'ℕ', 'P': 'ℙ', 'Q': 'ℚ', 'R': 'ℝ', 'Z': 'ℤ',
}

func (p *parser) parseCommand() (*render.Node, error) {
	start := p.pos
	p.pos++ // backslash
	if p.eof() {
		return nil, p.fail(ErrUnknownCommand, start, `\`)
	}

	name := p.readControl()

	if name == `\` {
		return text("\n"), nil
	}
	if sym, ok := symbols[name]; ok {
		return text(sym), nil
	}
	if operatorNames[name] {
		return render.El("span", name).WithClass("mop"), nil
	}
	if mark, ok := accents[name]; ok {
		return p.parseAccent(name, mark)
	}

	switch name {
	case "frac", "dfrac", "tfrac":
		return p.parseFrac(name)
	case "sqrt":
		return p.parseSqrt()
	case "text", "textrm", "textit", "mbox":
		raw, err := p.parseRaw(`\` + name)
		if err != nil {
			return nil, err
		}
		return render.El("span", raw).WithClass("mtext"), nil
	case "operatorname":
		raw, err := p.parseRaw(`\` + name)
		if err != nil {
			return nil, err
		}
		return render.El("span", raw).WithClass("mop"), nil
	case "mathbf", "boldsymbol", "textbf":
		return p.parseStyled(name, "mathbf", "font-weight", "bold")
	case "mathit":
		return p.parseStyled(name, "mathit", "font-style", "italic")
	case "mathrm":
		return p.parseStyled(name, "mathrm", "font-style", "normal")
	case "mathbb":
		return p.parseDoubleStruck()
	case "left":
		return p.parseLeftRight(start)
	case "right":
		return nil, p.fail(ErrUnbalancedDelimiters, start, `\right`)
	}

	return nil, p.fail(ErrUnknownCommand, start, `\`+name)
}

func (p *parser) parseFrac(name string) (*render.Node, error) {
	num, err := p.parseArgument(`\` + name)
	if err != nil {
		return nil, err
	}
	den, err := p.parseArgument(`\` + name)
	if err != nil {
		return nil, err
	}

	return render.El("span", "").WithClass("mfrac").Append(
		render.El("span", "").WithClass("mnum").Append(parenthesize(num)...),
		render.El("span", "/").WithClass("frac-line"),
		render.El("span", "").WithClass("mden").Append(parenthesize(den)...),
	), nil
}

func (p *parser) parseSqrt() (*render.Node, error) {
	index := ""
	p.skipSpace()
	if !p.eof() && p.src[p.pos] == '[' {
		end := strings.IndexByte(p.src[p.pos:], ']')
		if end < 0 {
			return nil, p.fail(ErrMissingArgument, p.pos, `\sqrt[`)
		}
		raw := p.src[p.pos+1 : p.pos+end]
		p.pos += end + 1
		if mapped, ok := mapRunes(raw, superscripts); ok {
			index = mapped
		} else {
			index = raw
		}
	}

	arg, err := p.parseArgument(`\sqrt`)
	if err != nil {
		return nil, err
	}

	return render.El("span", index+"√").WithClass("msqrt").Append(parenthesize(arg)...), nil
}

func (p *parser) parseStyled(name, class, prop, value string) (*render.Node, error) {
	arg, err := p.parseArgument(`\` + name)
	if err != nil {
		return nil, err
	}
	return render.El("span", "").WithClass(class).WithStyle(prop, value).Append(arg...), nil
}

func (p *parser) parseDoubleStruck() (*render.Node, error) {
	arg, err := p.parseArgument(`\mathbb`)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	for _, r := range plainText(arg) {
		if m, ok := doubleStruck[r]; ok {
			r = m
		}
		sb.WriteRune(r)
	}
	return render.El("span", sb.String()).WithClass("mathbb"), nil
}

func (p *parser) parseAccent(name string, mark rune) (*render.Node, error) {
	arg, err := p.parseArgument(`\` + name)
	if err != nil {
		return nil, err
	}

	base := plainText(arg)
	if utf8.RuneCountInString(base) == 1 {
		return text(base + string(mark)), nil
	}
	return render.El("span", "").WithClass("accent-" + name).Append(arg...), nil
}

func (p *parser) parseLeftRight(start int) (*render.Node, error) {
	open, err := p.readDelimiter(`\left`)
	if err != nil {
		return nil, err
	}

	body, err := p.parseList(false, true)
	if err != nil {
		return nil, err
	}
	if !p.atRight() {
		return nil, p.fail(ErrUnbalancedDelimiters, start, `\left`)
	}
	p.pos += len(`\right`)

	closing, err := p.readDelimiter(`\right`)
	if err != nil {
		return nil, err
	}

	node := render.El("span", "").WithClass("minner")
	if open != "" {
		node.Append(render.El("span", open).WithClass("mopen"))
	}
	node.Append(body...)
	if closing != "" {
		node.Append(render.El("span", closing).WithClass("mclose"))
	}
	return node, nil
}

func (p *parser) readDelimiter(owner string) (string, error) {
	p.skipSpace()
	if p.eof() {
		return "", p.fail(ErrMissingArgument, p.pos, owner)
	}

	start := p.pos
	var key string
	if p.src[p.pos] == '\\' {
		p.pos++
		key = `\` + p.readControl()
	} else {
		_, size := utf8.DecodeRuneInString(p.src[p.pos:])
		key = p.src[p.pos : p.pos+size]
		p.pos += size
	}

	delim, ok := delimiters[key]
	if !ok {
		return "", p.fail(ErrMissingArgument, start, owner+" "+key)
	}
	return delim, nil
}

// parenthesize wraps multi-character content in parentheses so the flattened
// text stays unambiguous, e.g. (a+b)/2.
func parenthesize(nodes []*render.Node) []*render.Node {
	if utf8.RuneCountInString(plainText(nodes)) <= 1 {
		return nodes
	}
	out := make([]*render.Node, 0, len(nodes)+2)
	out = append(out, text("("))
	out = append(out, nodes...)
	return append(out, text(")"))
}
