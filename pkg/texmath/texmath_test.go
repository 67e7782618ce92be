package texmath_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/grim/pkg/render"
	"github.com/yaklabco/grim/pkg/texmath"
)

func TestTypeset_PlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "superscript digit", source: "x^2", want: "x²"},
		{name: "braced subscript", source: "a_{12}", want: "a₁₂"},
		{name: "greek", source: `\alpha + \beta = \Gamma`, want: "α+β=Γ"},
		{name: "minus sign", source: "a - b", want: "a−b"},
		{name: "relations", source: `x \leq y \neq z`, want: "x≤y≠z"},
		{name: "simple fraction", source: `\frac{1}{2}`, want: "1/2"},
		{name: "compound fraction", source: `\frac{a+b}{c}`, want: "(a+b)/c"},
		{name: "square root", source: `\sqrt{x}`, want: "√x"},
		{name: "cube root", source: `\sqrt[3]{x+1}`, want: "³√(x+1)"},
		{name: "text keeps spaces", source: `\text{if } x`, want: "if x"},
		{name: "operator name", source: `\sin x`, want: "sinx"},
		{name: "left right", source: `\left( x \right)`, want: "(x)"},
		{name: "invisible delimiter", source: `\left. x \right|`, want: "x|"},
		{name: "double struck", source: `\mathbb{R}`, want: "ℝ"},
		{name: "accent", source: `\vec{v}`, want: "v\u20d7"},
		{name: "unmappable superscript", source: "e^{xy}", want: "exy"},
		{name: "sum with limits", source: `\sum_{i=0}^{n} i`, want: "∑ᵢ₌₀ⁿi"},
		{name: "escaped brace", source: `\{a\}`, want: "{a}"},
		{name: "unicode passthrough", source: "α+1", want: "α+1"},
		{name: "empty", source: "", want: ""},
	}

	ts := texmath.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			node, err := ts.Typeset(tt.source, render.MathOptions{ThrowOnError: true})
			require.NoError(t, err)
			assert.Equal(t, tt.want, node.PlainText())
			assert.True(t, node.HasClass("katex"))
		})
	}
}

func TestTypeset_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		strict bool
		want   error
	}{
		{name: "unknown command", source: `\invalidcmd`, want: texmath.ErrUnknownCommand},
		{name: "trailing backslash", source: `x\`, want: texmath.ErrUnknownCommand},
		{name: "unclosed group", source: `x^{2`, want: texmath.ErrUnbalancedBraces},
		{name: "stray close", source: `x}`, want: texmath.ErrUnbalancedBraces},
		{name: "dangling script", source: `x^`, want: texmath.ErrMissingArgument},
		{name: "frac missing denominator", source: `\frac{1}`, want: texmath.ErrMissingArgument},
		{name: "left without right", source: `\left( x`, want: texmath.ErrUnbalancedDelimiters},
		{name: "right without left", source: `x \right)`, want: texmath.ErrUnbalancedDelimiters},
		{name: "strict unicode", source: "α", strict: true, want: texmath.ErrUnicodeInMath},
		{name: "nested groups past limit", source: nested(texmath.MaxNesting), want: texmath.ErrTooDeep},
		{
			name:   "chained commands past limit",
			source: strings.Repeat(`\sqrt`, texmath.MaxNesting+1) + "x",
			want:   texmath.ErrTooDeep,
		},
	}

	ts := texmath.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ts.Typeset(tt.source, render.MathOptions{ThrowOnError: true, Strict: tt.strict})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var perr *texmath.ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func nested(depth int) string {
	return strings.Repeat("{", depth) + "x" + strings.Repeat("}", depth)
}

func TestTypeset_NestingLimit(t *testing.T) {
	t.Parallel()

	ts := texmath.New()

	node, err := ts.Typeset(nested(texmath.MaxNesting-1), render.MathOptions{ThrowOnError: true})
	require.NoError(t, err)
	assert.Equal(t, "x", node.PlainText())

	_, err = ts.Typeset(nested(4_000_000), render.MathOptions{ThrowOnError: true})
	require.ErrorIs(t, err, texmath.ErrTooDeep)
}

func TestTypeset_ErrorNodeWhenNotThrowing(t *testing.T) {
	t.Parallel()

	node, err := texmath.New().Typeset(`\invalidcmd`, render.MathOptions{})
	require.NoError(t, err)
	assert.True(t, node.HasClass("katex-error"))
	assert.Equal(t, `\invalidcmd`, node.PlainText())
	assert.Contains(t, node.Attrs["title"], "unknown command")
}

func TestTypeset_DisplayMode(t *testing.T) {
	t.Parallel()

	node, err := texmath.New().Typeset("x^2", render.MathOptions{DisplayMode: true})
	require.NoError(t, err)
	assert.Equal(t, "div", node.Tag)
	assert.True(t, node.HasClass("katex-display"))
	require.Len(t, node.Children, 1)
	assert.True(t, node.Children[0].HasClass("katex"))
}

func TestTypeset_ThroughBoundary(t *testing.T) {
	t.Parallel()

	node := render.InlineMath(texmath.New(), `\invalidcmd`, render.MathOptions{ThrowOnError: true})
	assert.Equal(t, `\invalidcmd`, node.PlainText())
	require.Len(t, node.Children, 1)
	assert.True(t, node.Children[0].HasClass(render.FallbackClass))
}
