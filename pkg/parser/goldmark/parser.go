// Package goldmark locates code regions in markdown using the goldmark parser.
// The decoration engine does not build a markdown AST for rendering; it only
// asks goldmark where fenced blocks, indented blocks and code spans are, so
// inline decoration can stay out of code.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Markdown flavors. Unknown names fall back to CommonMark.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// flavorExtensions are the goldmark extensions each flavor enables. GFM
// matters here because tables and autolinks change where code spans end.
//
//nolint:gochecknoglobals // Read-only lookup table.
var flavorExtensions = map[string][]goldmark.Extender{
	FlavorCommonMark: nil,
	FlavorGFM:        {extension.GFM},
}

// Parser finds code regions. It is safe for concurrent use; every Parse
// gets its own parser context.
type Parser struct {
	flavor string
	blocks parser.Parser
}

// New creates a parser for flavor.
func New(flavor string) *Parser {
	exts, ok := flavorExtensions[flavor]
	if !ok {
		flavor = FlavorCommonMark
	}
	return &Parser{
		flavor: flavor,
		blocks: goldmark.New(goldmark.WithExtensions(exts...)).Parser(),
	}
}

// Flavor returns the flavor in effect after fallback.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse returns the code regions of content in document order. It fails
// only when ctx is done.
func (p *Parser) Parse(ctx context.Context, content []byte) (*Structure, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("locate code: %w", err)
	}

	root := p.blocks.Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("locate code: %w", err)
	}

	c := &collector{content: content, structure: &Structure{}}
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		return c.visit(n), nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown tree: %w", err)
	}
	return c.structure, nil
}
