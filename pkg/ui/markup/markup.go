// Package markup describes renderable widget output as a tree of nodes.
// Widgets build node trees in their render pass; the host's render target
// consumes the serialized HTML. Nodes are values: building and serializing
// them never mutates widget state.
package markup

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Kind identifies the node variant.
type Kind int

const (
	// KindElement is a tagged element with attributes and children.
	KindElement Kind = iota
	// KindText is escaped character data.
	KindText
	// KindRaw is pre-rendered HTML inserted verbatim. Raw content must
	// already be sanitized; widgets only produce Raw nodes for output of
	// the markdown collaborator or the highlighter.
	KindRaw
)

// Node is one node of a markup tree.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    map[string]string
	Children []Node
	Text     string
}

// El creates an element node with the given children.
func El(tag string, children ...Node) Node {
	return Node{Kind: KindElement, Tag: tag, Children: children}
}

// Text creates an escaped text node.
func Text(s string) Node {
	return Node{Kind: KindText, Text: s}
}

// Textf creates an escaped text node from formatted arguments.
func Textf(format string, args ...any) Node {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates a raw HTML node. The caller is responsible for sanitizing.
func Raw(html string) Node {
	return Node{Kind: KindRaw, Text: html}
}

// Attr returns a copy of the node with the attribute set.
func (n Node) Attr(key, value string) Node {
	attrs := make(map[string]string, len(n.Attrs)+1)
	for k, v := range n.Attrs {
		attrs[k] = v
	}
	attrs[key] = value
	n.Attrs = attrs
	return n
}

// Class is shorthand for Attr("class", value).
func (n Node) Class(value string) Node {
	return n.Attr("class", value)
}

// Data is shorthand for Attr("data-"+key, value). Widgets identify
// interactive sub-elements through data attributes the host maps back to
// message targets.
func (n Node) Data(key, value string) Node {
	return n.Attr("data-"+key, value)
}

// When returns the node unchanged if cond is true, or an empty text node
// otherwise. Useful for conditional children in builder expressions.
func (n Node) When(cond bool) Node {
	if cond {
		return n
	}
	return Text("")
}

// Append returns a copy of the node with extra children added.
func (n Node) Append(children ...Node) Node {
	out := make([]Node, 0, len(n.Children)+len(children))
	out = append(out, n.Children...)
	out = append(out, children...)
	n.Children = out
	return n
}

// voidTags are elements serialized without a closing tag.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// HTML serializes the node to an HTML string.
func (n Node) HTML() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n Node) write(sb *strings.Builder) {
	switch n.Kind {
	case KindText:
		sb.WriteString(html.EscapeString(n.Text))
	case KindRaw:
		sb.WriteString(n.Text)
	case KindElement:
		sb.WriteByte('<')
		sb.WriteString(n.Tag)
		for _, key := range sortedKeys(n.Attrs) {
			sb.WriteByte(' ')
			sb.WriteString(key)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(n.Attrs[key]))
			sb.WriteByte('"')
		}
		sb.WriteByte('>')
		if voidTags[n.Tag] {
			return
		}
		for _, child := range n.Children {
			child.write(sb)
		}
		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteByte('>')
	}
}

// sortedKeys returns attribute keys in deterministic order so serialized
// output is stable across renders.
func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Truncate shortens a string to fit within maxWidth display cells,
// appending an ellipsis when truncated. Width is measured with runewidth
// so wide characters count correctly.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
