package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/theme"
)

// Renderer turns markdown into a markup tree.
type Renderer struct {
	parser      *Parser
	highlighter *Highlighter
}

// NewRenderer creates a renderer for the given theme context.
func NewRenderer(t theme.Context) *Renderer {
	return &Renderer{
		parser:      NewParser(),
		highlighter: NewHighlighter(t),
	}
}

// Render parses markdown and returns its markup tree. Raw HTML embedded
// in the source is dropped; rich text reaches the page only through
// markup nodes and the highlighter.
func (r *Renderer) Render(content string) markup.Node {
	source := []byte(content)
	doc := r.parser.Parse(source)
	root := markup.El("div").Class("ax-markdown")
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		root = root.Append(r.renderNode(child, source))
	}
	return root
}

// RenderHTML is the `parse(markdownText) -> html` collaborator surface.
func (r *Renderer) RenderHTML(content string) string {
	return r.Render(content).HTML()
}

func (r *Renderer) renderNode(n ast.Node, source []byte) markup.Node {
	switch node := n.(type) {
	case *ast.Heading:
		return r.renderChildren(markup.El("h"+strconv.Itoa(node.Level)), n, source)
	case *ast.Paragraph:
		return r.renderChildren(markup.El("p"), n, source)
	case *ast.TextBlock:
		return r.renderChildren(markup.El("span"), n, source)
	case *ast.Blockquote:
		return r.renderChildren(markup.El("blockquote"), n, source)
	case *ast.List:
		tag := "ul"
		if node.IsOrdered() {
			tag = "ol"
		}
		return r.renderChildren(markup.El(tag), n, source)
	case *ast.ListItem:
		return r.renderChildren(markup.El("li"), n, source)
	case *ast.ThematicBreak:
		return markup.El("hr")
	case *ast.FencedCodeBlock:
		lang := string(node.Language(source))
		return r.highlighter.Highlight(blockText(node, source), lang)
	case *ast.CodeBlock:
		return markup.El("pre", markup.El("code", markup.Text(blockText(node, source))))
	case *ast.CodeSpan:
		return r.renderChildren(markup.El("code"), n, source)
	case *ast.Emphasis:
		tag := "em"
		if node.Level == 2 {
			tag = "strong"
		}
		return r.renderChildren(markup.El(tag), n, source)
	case *ast.Link:
		return r.renderChildren(
			markup.El("a").Attr("href", string(node.Destination)), n, source,
		)
	case *ast.AutoLink:
		url := string(node.URL(source))
		return markup.El("a", markup.Text(url)).Attr("href", url)
	case *ast.Image:
		return markup.El("img").
			Attr("src", string(node.Destination)).
			Attr("alt", nodeText(n, source))
	case *ast.Text:
		t := markup.Text(string(node.Segment.Value(source)))
		if node.HardLineBreak() {
			return markup.El("span", t, markup.El("br"))
		}
		return t
	case *ast.String:
		return markup.Text(string(node.Value))
	case *ast.RawHTML, *ast.HTMLBlock:
		return markup.Text("")
	case *extast.Strikethrough:
		return r.renderChildren(markup.El("del"), n, source)
	case *extast.Table:
		return r.renderTable(node, source)
	case *extast.TaskCheckBox:
		box := markup.El("input").Attr("type", "checkbox").Attr("disabled", "disabled")
		if node.IsChecked {
			box = box.Attr("checked", "checked")
		}
		return box
	default:
		return r.renderChildren(markup.El("div"), n, source)
	}
}

func (r *Renderer) renderChildren(parent markup.Node, n ast.Node, source []byte) markup.Node {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		parent = parent.Append(r.renderNode(child, source))
	}
	return parent
}

func (r *Renderer) renderTable(table *extast.Table, source []byte) markup.Node {
	out := markup.El("table")
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		cellTag := "td"
		if _, ok := row.(*extast.TableHeader); ok {
			cellTag = "th"
		}
		tr := markup.El("tr")
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			tr = tr.Append(r.renderChildren(markup.El(cellTag), cell, source))
		}
		out = out.Append(tr)
	}
	return out
}

// blockText collects the raw lines of a code block.
func blockText(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}

// nodeText flattens a node's text content.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		} else {
			sb.WriteString(nodeText(child, source))
		}
	}
	return sb.String()
}
