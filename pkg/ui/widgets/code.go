package widgets

import (
	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markdown"
	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/runtime"
	"github.com/axfoundry/axui/pkg/ui/theme"
)

// Code is the ax-code element: an editable code snippet with syntax
// highlighting. The highlighting engine itself is the external chroma
// collaborator; this widget only owns the text and language.
//
// Attributes:
//
//	language  lexer name (default plain)
//	code      initial snippet
//	readonly  boolean, render without the editing surface
type Code struct {
	language string
	text     string
	readonly bool
	seeded   bool // initial code attribute applied once
}

// NewCode creates an unconfigured code widget.
func NewCode() *Code {
	return &Code{}
}

// Kind implements runtime.Widget.
func (c *Code) Kind() string { return "ax-code" }

// Configure implements runtime.Widget. The code attribute seeds the
// buffer on first configure only — user edits are not clobbered by
// unrelated attribute changes.
func (c *Code) Configure(attrs attr.View) {
	c.language = attrs.String("language", "")
	c.readonly = attrs.Bool("readonly")
	if !c.seeded {
		c.text = attrs.String("code", "")
		c.seeded = true
	}
}

// Styles implements runtime.Styler with the highlighter's token
// stylesheet for the active theme.
func (c *Code) Styles(ctx theme.Context) string {
	return markdown.NewHighlighter(ctx).CSS()
}

// Value implements runtime.Widget.
func (c *Code) Value() any { return c.text }

// SetValue implements runtime.Widget.
func (c *Code) SetValue(v any) {
	s, ok := v.(string)
	if !ok {
		return
	}
	c.text = s
}

// Validate implements runtime.Widget.
func (c *Code) Validate() runtime.ValidationResult {
	return runtime.OK()
}

// HandleMessage implements runtime.MessageHandler. InputMsg "editor"
// replaces the buffer and emits an interim Change.
func (c *Code) HandleMessage(msg runtime.Message) runtime.HandleResult {
	in, ok := msg.(runtime.InputMsg)
	if !ok || in.Target != "editor" || c.readonly {
		return runtime.Unhandled()
	}
	c.text = in.Text
	return runtime.WithEvents(runtime.Change{Value: c.text})
}

// Render implements runtime.Widget.
func (c *Code) Render(ctx runtime.RenderContext) markup.Node {
	root := markup.El("div").
		Class("ax-code-editor").
		Data("state", ctx.State.String())

	highlighted := markdown.NewHighlighter(ctx.Theme).Highlight(c.text, c.language)
	root = root.Append(highlighted)
	if !c.readonly {
		root = root.Append(
			markup.El("textarea", markup.Text(c.text)).
				Class("ax-code-editor__input").
				Data("target", "editor").
				Attr("spellcheck", "false"),
		)
	}
	if ctx.ErrorMessage != "" {
		root = root.Append(
			markup.El("div", markup.Text(ctx.ErrorMessage)).Class("ax-error"),
		)
	}
	return root
}
