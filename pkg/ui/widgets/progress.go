package widgets

import (
	"strconv"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// Progress is the ax-progress element: a determinate bar driven by the
// host raising the value attribute. ProgressComplete fires exactly once
// when the bar first reaches 100.
//
// Attributes:
//
//	value  0–100 percent (default 0)
//	label  optional caption
type Progress struct {
	percent   int
	label     string
	completed bool

	pending []runtime.Event
}

// NewProgress creates an unconfigured progress widget.
func NewProgress() *Progress {
	return &Progress{}
}

// Kind implements runtime.Widget.
func (p *Progress) Kind() string { return "ax-progress" }

// Configure implements runtime.Widget.
func (p *Progress) Configure(attrs attr.View) {
	p.label = attrs.String("label", "")
	p.setPercent(attrs.Int("value", 0))
}

// ObserveAttribute implements runtime.AttributeObserver: value updates
// move the bar without touching the label.
func (p *Progress) ObserveAttribute(name, value string, attrs attr.View) bool {
	if name != "value" {
		return false
	}
	p.setPercent(attrs.Int("value", 0))
	return true
}

func (p *Progress) setPercent(v int) {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	p.percent = v
	if v == 100 && !p.completed {
		p.completed = true
		p.pending = append(p.pending, runtime.ProgressComplete{})
	}
	if v < 100 {
		p.completed = false
	}
}

// DrainEvents implements runtime.EventSource.
func (p *Progress) DrainEvents() []runtime.Event {
	out := p.pending
	p.pending = nil
	return out
}

// Value implements runtime.Widget.
func (p *Progress) Value() any { return p.percent }

// SetValue implements runtime.Widget.
func (p *Progress) SetValue(v any) {
	n, ok := v.(int)
	if !ok {
		return
	}
	p.setPercent(n)
}

// Validate implements runtime.Widget.
func (p *Progress) Validate() runtime.ValidationResult {
	return runtime.OK()
}

// Render implements runtime.Widget.
func (p *Progress) Render(ctx runtime.RenderContext) markup.Node {
	root := markup.El("div").
		Class("ax-progress").
		Data("state", ctx.State.String())
	if p.label != "" {
		root = root.Append(markup.El("span", markup.Text(p.label)).Class("ax-progress__label"))
	}
	root = root.Append(
		markup.El("div").Class("ax-progress__track").Append(
			markup.El("div").
				Class("ax-progress__fill").
				Attr("style", "width:"+strconv.Itoa(p.percent)+"%"),
		),
		markup.El("span", markup.Textf("%d%%", p.percent)).Class("ax-progress__pct"),
	)
	return root
}
