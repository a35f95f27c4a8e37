package markdown

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/axfoundry/axui/pkg/ui/theme"
)

func renderDoc(t *testing.T, md string) *goquery.Document {
	t.Helper()
	html := NewRenderer(theme.Dark()).RenderHTML(md)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse rendered HTML: %v", err)
	}
	return doc
}

func TestRenderBasicBlocks(t *testing.T) {
	doc := renderDoc(t, `# Title

Some *emphasis* and **bold** text.

> a quote

- one
- two

1. first
`)

	if got := doc.Find("div.ax-markdown h1").Text(); got != "Title" {
		t.Errorf("h1 text = %q", got)
	}
	if doc.Find("em").Length() != 1 || doc.Find("strong").Length() != 1 {
		t.Error("emphasis/bold elements missing")
	}
	if doc.Find("blockquote").Length() != 1 {
		t.Error("blockquote missing")
	}
	if doc.Find("ul li").Length() != 2 {
		t.Errorf("ul li count = %d", doc.Find("ul li").Length())
	}
	if doc.Find("ol li").Length() != 1 {
		t.Errorf("ol li count = %d", doc.Find("ol li").Length())
	}
}

func TestRenderLinksAndImages(t *testing.T) {
	doc := renderDoc(t, `[site](https://example.com) and ![pic](cat.png)`)

	link := doc.Find("a")
	if href, _ := link.Attr("href"); href != "https://example.com" {
		t.Errorf("href = %q", href)
	}
	if link.Text() != "site" {
		t.Errorf("link text = %q", link.Text())
	}
	img := doc.Find("img")
	if src, _ := img.Attr("src"); src != "cat.png" {
		t.Errorf("src = %q", src)
	}
	if alt, _ := img.Attr("alt"); alt != "pic" {
		t.Errorf("alt = %q", alt)
	}
}

func TestRenderFencedCodeHighlighted(t *testing.T) {
	doc := renderDoc(t, "```go\nfunc main() {}\n```")

	code := doc.Find("pre.ax-code code")
	if code.Length() != 1 {
		t.Fatal("highlighted code block missing")
	}
	if lang, _ := code.Attr("data-lang"); lang != "go" {
		t.Errorf("data-lang = %q", lang)
	}
	if code.Find("span.tok-kw").Length() == 0 {
		t.Error("keyword tokens not classed")
	}
	if !strings.Contains(code.Text(), "func main()") {
		t.Errorf("code text = %q", code.Text())
	}
}

func TestRenderUnknownLanguageDegrades(t *testing.T) {
	doc := renderDoc(t, "```zzznotalang\nplain body\n```")

	code := doc.Find("pre.ax-code code")
	if code.Length() != 1 {
		t.Fatal("code block missing")
	}
	if !strings.Contains(code.Text(), "plain body") {
		t.Errorf("code text = %q", code.Text())
	}
}

func TestRenderGFMExtensions(t *testing.T) {
	doc := renderDoc(t, `~~gone~~

| A | B |
|---|---|
| 1 | 2 |

- [x] done
- [ ] todo
`)

	if doc.Find("del").Text() != "gone" {
		t.Error("strikethrough missing")
	}
	if doc.Find("table th").Length() != 2 {
		t.Errorf("table header cells = %d", doc.Find("table th").Length())
	}
	if doc.Find("table td").Length() != 2 {
		t.Errorf("table body cells = %d", doc.Find("table td").Length())
	}
	boxes := doc.Find(`input[type="checkbox"]`)
	if boxes.Length() != 2 {
		t.Fatalf("checkboxes = %d", boxes.Length())
	}
	if boxes.Filter("[checked]").Length() != 1 {
		t.Error("checked state not preserved")
	}
}

func TestRawHTMLDropped(t *testing.T) {
	html := NewRenderer(theme.Dark()).RenderHTML(`before

<script>alert(1)</script>

<span onclick="x()">inline</span> after`)

	if strings.Contains(html, "script") || strings.Contains(html, "onclick") {
		t.Errorf("raw HTML leaked into output: %q", html)
	}
}

func TestHighlighterCSSUsesThemeTokens(t *testing.T) {
	h := NewHighlighter(theme.Dark())
	css := h.CSS()
	if !strings.Contains(css, theme.Dark().Tokens.Accent) {
		t.Error("CSS missing accent token color")
	}
	if !strings.Contains(css, ".tok-kw") {
		t.Error("CSS missing keyword class")
	}
}
