package render

import "strconv"

// Emphasis renders *x*, **x** or ***x*** content.
// One star is italic, two bold, three bold italic.
func Emphasis(stars int, content string) *Node {
	switch stars {
	case 1:
		return El("em", content)
	case 2:
		return El("strong", content)
	default:
		return El("span", content).
			WithStyle("font-weight", "bold").
			WithStyle("font-style", "italic")
	}
}

// Heading renders an ATX heading without its leading hashes.
func Heading(level int, content string) *Node {
	lvl := strconv.Itoa(level)
	return El("h"+lvl, content).
		WithClass("cm-header cm-header-"+lvl).
		WithStyle("text-align", "left")
}

// BulletGlyph is the marker shown in place of "-" or "*".
const BulletGlyph = "•"

// Bullet renders an unordered list item.
func Bullet(content string) *Node {
	return listItem(BulletGlyph, content)
}

// Ordered renders an ordered list item. The number keeps its source digits.
func Ordered(number, content string) *Node {
	return listItem("\t"+number+".", content)
}

func listItem(marker, content string) *Node {
	return El("span", "").
		WithStyle("display", "inline-flex").
		WithStyle("align-items", "center").
		Append(
			El("span", marker).WithStyle("margin-right", "0.5em"),
			El("span", content),
		)
}

// InlineMath renders $...$ content through the typesetter.
func InlineMath(ts Typesetter, source string, opts MathOptions) *Node {
	opts.DisplayMode = false
	return El("span", "").WithClass("cm-inline-math").Append(Math(ts, source, opts))
}

// BlockMath renders $$...$$ content through the typesetter in display mode.
func BlockMath(ts Typesetter, source string, opts MathOptions) *Node {
	opts.DisplayMode = true
	return El("div", "").WithClass("cm-block-math").Append(Math(ts, source, opts))
}
