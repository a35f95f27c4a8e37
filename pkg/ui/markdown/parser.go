// Package markdown is the markdown collaborator widgets render rich text
// through: goldmark parses, the renderer emits a markup tree, and fenced
// code blocks pass through the chroma highlighter. Output is meant to go
// through the host's sanitizer before mounting.
package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Parser wraps goldmark for markdown parsing.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a markdown parser with common extensions enabled.
func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // tables, strikethrough, autolinks, task lists
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Parser{md: md}
}

// Parse parses markdown source and returns the AST root.
func (p *Parser) Parse(source []byte) ast.Node {
	reader := text.NewReader(source)
	return p.md.Parser().Parse(reader)
}

// ParseString is a convenience method for parsing string input.
func (p *Parser) ParseString(source string) ast.Node {
	return p.Parse([]byte(source))
}
