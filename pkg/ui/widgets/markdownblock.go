package widgets

import (
	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markdown"
	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// MarkdownBlock is the ax-markdown element: display-only rich text
// rendered through the markdown collaborator. Raw HTML in the source is
// dropped by the renderer, so the output is safe to mount.
//
// Attributes:
//
//	content  markdown source text
type MarkdownBlock struct {
	content string
}

// NewMarkdownBlock creates an unconfigured markdown block.
func NewMarkdownBlock() *MarkdownBlock {
	return &MarkdownBlock{}
}

// Kind implements runtime.Widget.
func (m *MarkdownBlock) Kind() string { return "ax-markdown" }

// Configure implements runtime.Widget.
func (m *MarkdownBlock) Configure(attrs attr.View) {
	m.content = attrs.String("content", "")
}

// Value implements runtime.Widget. Display-only.
func (m *MarkdownBlock) Value() any { return nil }

// SetValue implements runtime.Widget.
func (m *MarkdownBlock) SetValue(v any) {}

// Validate implements runtime.Widget.
func (m *MarkdownBlock) Validate() runtime.ValidationResult {
	return runtime.OK()
}

// Render implements runtime.Widget.
func (m *MarkdownBlock) Render(ctx runtime.RenderContext) markup.Node {
	return markdown.NewRenderer(ctx.Theme).Render(m.content).
		Data("state", ctx.State.String())
}
