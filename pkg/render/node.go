// Package render builds the visual nodes that decorations display in place of raw markup.
// Nodes are plain data: the host turns them into DOM, terminal cells, or HTML.
package render

import (
	"html"
	"maps"
	"slices"
	"strings"
)

// Node is one element of a rendered widget tree.
type Node struct {
	// Tag is the element name, e.g. "strong" or "h1".
	Tag string

	// Class is the space-separated class list.
	Class string

	// Style holds inline CSS properties.
	Style map[string]string

	// Attrs holds extra element attributes.
	Attrs map[string]string

	// Text is the text content. Rendered before Children.
	Text string

	// Children are nested nodes.
	Children []*Node
}

// El creates a node with the given tag and text content.
func El(tag, text string) *Node {
	return &Node{Tag: tag, Text: text}
}

// WithClass sets the class list and returns the node.
func (n *Node) WithClass(class string) *Node {
	n.Class = class
	return n
}

// WithStyle sets one inline style property and returns the node.
func (n *Node) WithStyle(prop, value string) *Node {
	if n.Style == nil {
		n.Style = make(map[string]string)
	}
	n.Style[prop] = value
	return n
}

// WithAttr sets one attribute and returns the node.
func (n *Node) WithAttr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
	return n
}

// Append adds children and returns the node.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// HasClass reports whether class appears in the node's class list.
func (n *Node) HasClass(class string) bool {
	if n == nil {
		return false
	}
	return slices.Contains(strings.Fields(n.Class), class)
}

// Any reports whether fn holds for n or any of its descendants.
func (n *Node) Any(fn func(*Node) bool) bool {
	if n == nil {
		return false
	}
	if fn(n) {
		return true
	}
	for _, child := range n.Children {
		if child.Any(fn) {
			return true
		}
	}
	return false
}

// PlainText returns the concatenated text content of the tree.
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	sb.WriteString(n.Text)
	for _, child := range n.Children {
		if child != nil {
			child.writeText(sb)
		}
	}
}

// StyleString formats the inline style as CSS declarations in key order.
func (n *Node) StyleString() string {
	if len(n.Style) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, key := range slices.Sorted(maps.Keys(n.Style)) {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(n.Style[key])
		sb.WriteByte(';')
	}
	return sb.String()
}

// HTML serializes the tree. Attributes are written in a fixed order
// (class, style, then the rest sorted) so output is byte-stable.
func (n *Node) HTML() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.writeHTML(&sb)
	return sb.String()
}

func (n *Node) writeHTML(sb *strings.Builder) {
	tag := n.Tag
	if tag == "" {
		tag = "span"
	}

	sb.WriteByte('<')
	sb.WriteString(tag)
	if n.Class != "" {
		writeAttr(sb, "class", n.Class)
	}
	if style := n.StyleString(); style != "" {
		writeAttr(sb, "style", style)
	}
	for _, key := range slices.Sorted(maps.Keys(n.Attrs)) {
		writeAttr(sb, key, n.Attrs[key])
	}
	sb.WriteByte('>')

	sb.WriteString(html.EscapeString(n.Text))
	for _, child := range n.Children {
		if child != nil {
			child.writeHTML(sb)
		}
	}

	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(html.EscapeString(value))
	sb.WriteByte('"')
}

// Equal reports whether two trees are structurally identical.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Tag != other.Tag || n.Class != other.Class || n.Text != other.Text {
		return false
	}
	if !maps.Equal(n.Style, other.Style) || !maps.Equal(n.Attrs, other.Attrs) {
		return false
	}
	return slices.EqualFunc(n.Children, other.Children, (*Node).Equal)
}

// Clone returns a deep copy of the tree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{
		Tag:   n.Tag,
		Class: n.Class,
		Text:  n.Text,
		Style: maps.Clone(n.Style),
		Attrs: maps.Clone(n.Attrs),
	}
	for _, child := range n.Children {
		cp.Children = append(cp.Children, child.Clone())
	}
	return cp
}
