package render_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/grim/pkg/render"
)

func TestEmphasis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stars int
		want  string
	}{
		{stars: 1, want: `<em>x</em>`},
		{stars: 2, want: `<strong>x</strong>`},
		{stars: 3, want: `<span style="font-style: italic; font-weight: bold;">x</span>`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, render.Emphasis(tt.stars, "x").HTML())
	}
}

func TestHeading(t *testing.T) {
	t.Parallel()

	node := render.Heading(2, "Title & more")
	assert.Equal(t, "h2", node.Tag)
	assert.True(t, node.HasClass("cm-header-2"))
	assert.Equal(t,
		`<h2 class="cm-header cm-header-2" style="text-align: left;">Title &amp; more</h2>`,
		node.HTML())
}

func TestListItems(t *testing.T) {
	t.Parallel()

	bullet := render.Bullet("milk")
	require.Len(t, bullet.Children, 2)
	assert.Equal(t, render.BulletGlyph, bullet.Children[0].Text)
	assert.Equal(t, "0.5em", bullet.Children[0].Style["margin-right"])
	assert.Equal(t, "•milk", bullet.PlainText())

	ordered := render.Ordered("12", "eggs")
	assert.Equal(t, "\t12.eggs", ordered.PlainText())
	assert.Equal(t, "inline-flex", ordered.Style["display"])
}

func TestMath_Boundary(t *testing.T) {
	t.Parallel()

	ok := render.TypesetterFunc(func(src string, opts render.MathOptions) (*render.Node, error) {
		return render.El("span", "T:"+src).WithClass("katex"), nil
	})
	failing := render.TypesetterFunc(func(string, render.MathOptions) (*render.Node, error) {
		return nil, errors.New("bad")
	})
	panicking := render.TypesetterFunc(func(string, render.MathOptions) (*render.Node, error) {
		panic("boom")
	})
	empty := render.TypesetterFunc(func(string, render.MathOptions) (*render.Node, error) {
		return nil, nil
	})

	assert.Equal(t, "T:x", render.Math(ok, "x", render.MathOptions{}).PlainText())

	for name, ts := range map[string]render.Typesetter{
		"error": failing,
		"panic": panicking,
		"nil":   empty,
		"unset": nil,
	} {
		node := render.Math(ts, `\bad`, render.MathOptions{DisplayMode: true})
		assert.Equal(t, `\bad`, node.PlainText(), name)
		assert.Equal(t, "div", node.Tag, name)
		assert.True(t, node.HasClass(render.FallbackClass), name)
	}
}

func TestWithFailureHook(t *testing.T) {
	t.Parallel()

	var failures []error
	hook := func(_ string, err error) { failures = append(failures, err) }

	panicking := render.TypesetterFunc(func(string, render.MathOptions) (*render.Node, error) {
		panic("boom")
	})

	node := render.InlineMath(render.WithFailureHook(panicking, hook), "a+b", render.MathOptions{})
	assert.Equal(t, "a+b", node.PlainText())
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], render.ErrTypesetPanic)

	assert.Nil(t, render.WithFailureHook(nil, hook))
}

func TestBlockMath_Wrapper(t *testing.T) {
	t.Parallel()

	var seen render.MathOptions
	ts := render.TypesetterFunc(func(src string, opts render.MathOptions) (*render.Node, error) {
		seen = opts
		return render.El("div", src), nil
	})

	node := render.BlockMath(ts, "x^2", render.MathOptions{})
	assert.True(t, seen.DisplayMode)
	assert.Equal(t, "div", node.Tag)
	assert.True(t, node.HasClass("cm-block-math"))
	assert.Equal(t, "x^2", node.PlainText())
}

func TestNode_EqualAndClone(t *testing.T) {
	t.Parallel()

	a := render.Bullet("item")
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Children[1].Text = "other"
	assert.False(t, a.Equal(b))
	assert.Equal(t, "item", a.Children[1].Text)

	var nilNode *render.Node
	assert.True(t, nilNode.Equal(nil))
	assert.Empty(t, nilNode.HTML())
}

func TestNode_Any(t *testing.T) {
	t.Parallel()

	tree := render.BlockMath(nil, `\x`, render.MathOptions{DisplayMode: true})
	assert.True(t, tree.Any(func(n *render.Node) bool { return n.HasClass(render.FallbackClass) }))
	assert.False(t, tree.Any(func(n *render.Node) bool { return n.Tag == "h1" }))

	var nilNode *render.Node
	assert.False(t, nilNode.Any(func(*render.Node) bool { return true }))
}
