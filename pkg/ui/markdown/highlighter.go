package markdown

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/theme"
)

// Highlighter applies syntax highlighting to fenced code blocks,
// emitting span-per-token markup with stable class names. Colors are
// bound by the stylesheet Highlighter.CSS generates from the theme.
type Highlighter struct {
	theme theme.Context
}

// NewHighlighter creates a highlighter for the theme context.
func NewHighlighter(t theme.Context) *Highlighter {
	return &Highlighter{theme: t}
}

// tokenClass buckets chroma token types into the class vocabulary the
// generated stylesheet knows about. Unstyled tokens return "".
func tokenClass(t chroma.TokenType) string {
	switch {
	case t.InCategory(chroma.Keyword):
		return "tok-kw"
	case t.InCategory(chroma.NameFunction), t.InCategory(chroma.NameClass):
		return "tok-fn"
	case t.InCategory(chroma.LiteralString):
		return "tok-str"
	case t.InCategory(chroma.LiteralNumber):
		return "tok-num"
	case t.InCategory(chroma.Comment):
		return "tok-cmt"
	case t.InCategory(chroma.Operator), t.InCategory(chroma.Punctuation):
		return "tok-op"
	case t.InCategory(chroma.NameBuiltin):
		return "tok-bi"
	case t.InCategory(chroma.NameTag), t.InCategory(chroma.NameAttribute):
		return "tok-tag"
	default:
		return ""
	}
}

// Highlight tokenizes code in the given language and returns a <pre>
// block of classed spans. An unknown language or a lexer failure
// degrades to an unstyled block — highlighting never fails the render.
func (h *Highlighter) Highlight(code, language string) markup.Node {
	pre := markup.El("pre").Class("ax-code")
	block := markup.El("code")
	if language != "" {
		block = block.Attr("data-lang", language)
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		return pre.Append(block.Append(markup.Text(code)))
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return pre.Append(block.Append(markup.Text(code)))
	}
	for _, token := range iterator.Tokens() {
		if class := tokenClass(token.Type); class != "" {
			block = block.Append(markup.El("span", markup.Text(token.Value)).Class(class))
		} else {
			block = block.Append(markup.Text(token.Value))
		}
	}
	return pre.Append(block)
}

// CSS returns the token stylesheet for the highlighter's theme.
func (h *Highlighter) CSS() string {
	tok := h.theme.Tokens
	return ".ax-code { background: " + tok.SurfaceRaised + "; color: " + tok.TextPrimary + "; }\n" +
		".ax-code .tok-kw { color: " + tok.Accent + "; }\n" +
		".ax-code .tok-fn { color: " + tok.Info + "; }\n" +
		".ax-code .tok-str { color: " + tok.Success + "; }\n" +
		".ax-code .tok-num { color: " + tok.Warning + "; }\n" +
		".ax-code .tok-cmt { color: " + tok.TextMuted + "; }\n" +
		".ax-code .tok-op { color: " + tok.TextSecondary + "; }\n" +
		".ax-code .tok-bi { color: " + tok.Info + "; }\n" +
		".ax-code .tok-tag { color: " + tok.AccentDim + "; }\n"
}
