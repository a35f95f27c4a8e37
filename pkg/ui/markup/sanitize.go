package markup

import (
	"bytes"
	"html"
	"net/url"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Policy controls which tags and attributes survive sanitization.
type Policy struct {
	// Tags maps an allowed tag name to its allowed attribute names.
	Tags map[string]map[string]bool
	// URLSchemes lists schemes permitted in href/src attributes.
	URLSchemes map[string]bool
}

// DefaultPolicy allows the formatting subset that widget bodies and the
// markdown collaborator produce. Script, style, and event-handler
// attributes are never allowed.
func DefaultPolicy() Policy {
	common := map[string]bool{"class": true, "title": true}
	withHref := map[string]bool{"class": true, "title": true, "href": true}
	withSrc := map[string]bool{"class": true, "title": true, "src": true, "alt": true, "width": true, "height": true}
	tags := map[string]map[string]bool{
		"a": withHref, "img": withSrc,
		"p": common, "div": common, "span": common, "br": common, "hr": common,
		"em": common, "strong": common, "b": common, "i": common, "u": common,
		"s": common, "del": common, "code": common, "pre": common,
		"blockquote": common, "ul": common, "ol": common, "li": common,
		"h1": common, "h2": common, "h3": common, "h4": common, "h5": common, "h6": common,
		"table": common, "thead": common, "tbody": common, "tr": common,
		"th": common, "td": common, "caption": common,
	}
	return Policy{
		Tags:       tags,
		URLSchemes: map[string]bool{"http": true, "https": true, "mailto": true},
	}
}

// Sanitizer cleans externally supplied HTML against a policy before it is
// mounted into widget output.
type Sanitizer struct {
	policy Policy
}

// NewSanitizer creates a sanitizer with the given policy.
func NewSanitizer(policy Policy) *Sanitizer {
	return &Sanitizer{policy: policy}
}

// Sanitize returns a safe subset of the input HTML. It never fails:
// input that cannot be parsed is returned fully escaped.
func (s *Sanitizer) Sanitize(input string) string {
	nodes, err := xhtml.ParseFragment(strings.NewReader(input), &xhtml.Node{
		Type:     xhtml.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return html.EscapeString(input)
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		s.writeClean(&buf, n)
	}
	return buf.String()
}

func (s *Sanitizer) writeClean(buf *bytes.Buffer, n *xhtml.Node) {
	switch n.Type {
	case xhtml.TextNode:
		buf.WriteString(html.EscapeString(n.Data))
	case xhtml.ElementNode:
		allowedAttrs, ok := s.policy.Tags[n.Data]
		if !ok {
			// Disallowed element: drop the tag entirely, but keep the
			// children of structural containers. Script and style bodies
			// are dropped with the tag.
			if n.Data != "script" && n.Data != "style" && n.Data != "iframe" && n.Data != "object" {
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					s.writeClean(buf, c)
				}
			}
			return
		}
		buf.WriteByte('<')
		buf.WriteString(n.Data)
		for _, a := range n.Attr {
			if a.Namespace != "" || !allowedAttrs[a.Key] {
				continue
			}
			if (a.Key == "href" || a.Key == "src") && !s.safeURL(a.Val) {
				continue
			}
			buf.WriteByte(' ')
			buf.WriteString(a.Key)
			buf.WriteString(`="`)
			buf.WriteString(html.EscapeString(a.Val))
			buf.WriteByte('"')
		}
		buf.WriteByte('>')
		if voidTags[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			s.writeClean(buf, c)
		}
		buf.WriteString("</")
		buf.WriteString(n.Data)
		buf.WriteByte('>')
	default:
		// Comments, doctypes, and anything else are dropped.
	}
}

func (s *Sanitizer) safeURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		// Relative URLs are fine.
		return true
	}
	return s.policy.URLSchemes[strings.ToLower(u.Scheme)]
}
