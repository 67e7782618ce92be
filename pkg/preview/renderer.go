package preview

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/grim/pkg/codefence"
	"github.com/yaklabco/grim/pkg/render"
)

// Format identifies a preview output format.
type Format string

// Supported formats.
const (
	FormatPlain Format = "plain"
	FormatANSI  Format = "ansi"
	FormatHTML  Format = "html"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown preview format")

// ParseFormat parses a format name. The empty string selects plain.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "plain", "text":
		return FormatPlain, nil
	case "ansi", "term", "terminal":
		return FormatANSI, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: plain, ansi, html)", ErrUnknownFormat, name)
	}
}

// Styles are the terminal styles for the ANSI format.
type Styles struct {
	Heading  lipgloss.Style
	Emphasis lipgloss.Style
	Strong   lipgloss.Style
	List     lipgloss.Style
	Math     lipgloss.Style
	Fallback lipgloss.Style
	Fence    lipgloss.Style
	Language lipgloss.Style
}

// PlainStyles returns styles that add no formatting.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Heading:  plain,
		Emphasis: plain,
		Strong:   plain,
		List:     plain,
		Math:     plain,
		Fallback: plain,
		Fence:    plain,
		Language: plain,
	}
}

// Renderer writes segments in one format.
type Renderer struct {
	format Format
	styles Styles
	title  string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithStyles sets the ANSI styles.
func WithStyles(styles Styles) RendererOption {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// WithTitle sets the HTML page title.
func WithTitle(title string) RendererOption {
	return func(r *Renderer) {
		r.title = title
	}
}

// NewRenderer creates a renderer for format.
func NewRenderer(format Format, opts ...RendererOption) *Renderer {
	r := &Renderer{format: format, styles: PlainStyles(), title: "grim preview"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format {
	return r.format
}

// Render writes segments to w.
func (r *Renderer) Render(w io.Writer, segments []Segment) error {
	var sb strings.Builder
	switch r.format {
	case FormatHTML:
		r.writeHTML(&sb, segments)
	case FormatANSI:
		r.writeText(&sb, segments, true)
	default:
		r.writeText(&sb, segments, false)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}

func (r *Renderer) writeText(sb *strings.Builder, segments []Segment, styled bool) {
	for _, seg := range segments {
		switch seg.Kind {
		case SegmentText:
			if styled && seg.Class != "" {
				sb.WriteString(r.styles.Fence.Render(seg.Text))
				if lang := seg.Attrs[codefence.AttrLanguage]; lang != "" {
					sb.WriteString(" " + r.styles.Language.Render(lang))
				}
				continue
			}
			sb.WriteString(seg.Text)
		case SegmentHidden:
			// The line stays, its text does not.
		case SegmentWidget:
			sb.WriteString(r.widget(seg.Node, styled))
		case SegmentBlock:
			sb.WriteString(r.widget(seg.Node, styled))
			sb.WriteByte('\n')
		}
	}
}

func (r *Renderer) widget(node *render.Node, styled bool) string {
	if node == nil {
		return ""
	}
	text := node.PlainText()
	if !styled {
		return text
	}
	return r.styleFor(node).Render(text)
}

// styleFor picks a style from the outer node's tag and classes.
func (r *Renderer) styleFor(node *render.Node) lipgloss.Style {
	switch {
	case containsClass(node, render.FallbackClass):
		return r.styles.Fallback
	case node.HasClass("cm-inline-math"), node.HasClass("cm-block-math"):
		return r.styles.Math
	case strings.HasPrefix(node.Tag, "h") && len(node.Tag) == 2:
		return r.styles.Heading
	case node.Tag == "em":
		return r.styles.Emphasis
	case node.Tag == "strong", node.Style["font-weight"] == "bold":
		return r.styles.Strong
	case node.Style["display"] == "inline-flex":
		return r.styles.List
	default:
		return lipgloss.NewStyle()
	}
}

func containsClass(node *render.Node, class string) bool {
	if node.HasClass(class) {
		return true
	}
	for _, child := range node.Children {
		if containsClass(child, class) {
			return true
		}
	}
	return false
}

const pageStyle = `body { font-family: sans-serif; max-width: 48em; margin: 2em auto; }
.grim-preview { white-space: pre-wrap; }
.cm-block-math { display: block; text-align: center; }
.cm-code-fence { color: #6a737d; }
.cm-math-fallback, .katex-error { color: #cc0000; font-family: monospace; }`

func (r *Renderer) writeHTML(sb *strings.Builder, segments []Segment) {
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<title>" + html.EscapeString(r.title) + "</title>\n")
	sb.WriteString("<style>\n" + pageStyle + "\n</style>\n</head>\n<body>\n")
	sb.WriteString(`<div class="grim-preview">`)

	for _, seg := range segments {
		switch seg.Kind {
		case SegmentText:
			if seg.Class == "" {
				sb.WriteString(html.EscapeString(seg.Text))
				continue
			}
			sb.WriteString(markNode(seg).HTML())
		case SegmentHidden:
			sb.WriteString(markNode(seg).HTML())
		case SegmentWidget, SegmentBlock:
			if seg.Node != nil {
				sb.WriteString(seg.Node.HTML())
			}
		}
	}

	sb.WriteString("</div>\n</body>\n</html>\n")
}

func markNode(seg Segment) *render.Node {
	node := render.El("span", seg.Text).WithClass(seg.Class)
	for name, value := range seg.Attrs {
		node = node.WithAttr(name, value)
	}
	return node
}
