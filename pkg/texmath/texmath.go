// Package texmath typesets a practical subset of LaTeX math as Unicode text.
// It is the built-in render.Typesetter: Greek letters, operators, relations,
// arrows, super- and subscripts, \frac, \sqrt, \text, \mathbf, \mathbb,
// accents and \left...\right delimiters.
//
// Output mirrors KaTeX's outer structure (span.katex, div.katex-display) so
// hosts can style both the same way.
package texmath

import (
	"github.com/yaklabco/grim/pkg/render"
)

// Typesetter converts LaTeX math source into render trees.
type Typesetter struct{}

// New returns a Typesetter.
func New() *Typesetter {
	return &Typesetter{}
}

// Typeset parses source and returns its render tree.
// When opts.ThrowOnError is false a parse failure yields a katex-error node
// holding the literal source and a nil error.
func (t *Typesetter) Typeset(source string, opts render.MathOptions) (*render.Node, error) {
	body, err := Parse(source, opts.Strict)
	if err != nil {
		if opts.ThrowOnError {
			return nil, err
		}
		return errorNode(source, err, opts.DisplayMode), nil
	}

	inner := render.El("span", "").WithClass("katex").Append(body...)
	if opts.DisplayMode {
		return render.El("div", "").WithClass("katex-display").Append(inner), nil
	}
	return inner, nil
}

// Parse converts source into a flat list of nodes.
func Parse(source string, strict bool) ([]*render.Node, error) {
	p := &parser{src: source, strict: strict}
	return p.parseList(false, false)
}

func errorNode(source string, err error, display bool) *render.Node {
	node := render.El("span", source).
		WithClass("katex-error").
		WithStyle("color", "#cc0000").
		WithAttr("title", err.Error())
	if display {
		return render.El("div", "").WithClass("katex-display").Append(node)
	}
	return node
}
