package widgets

import (
	"strconv"
	"strings"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// Rating is the ax-rating element: a 1..max scale. Value is 0 while
// unset.
//
// Attributes:
//
//	max       scale size (default 5, clamped to [1,10])
//	required  boolean
type Rating struct {
	max      int
	required bool
	value    int
}

// NewRating creates an unconfigured rating widget.
func NewRating() *Rating {
	return &Rating{max: 5}
}

// Kind implements runtime.Widget.
func (r *Rating) Kind() string { return "ax-rating" }

// ratingConfig is the resolved attribute set, constraint-checked before
// use.
type ratingConfig struct {
	Max      int `validate:"gte=1,lte=10"`
	Required bool
}

// Configure implements runtime.Widget.
func (r *Rating) Configure(attrs attr.View) {
	cfg := ratingConfig{
		Max:      attrs.Int("max", 5),
		Required: attrs.Bool("required"),
	}
	if attrs.Check(&cfg) != nil {
		if cfg.Max < 1 {
			cfg.Max = 1
		}
		if cfg.Max > 10 {
			cfg.Max = 10
		}
	}
	r.max = cfg.Max
	r.required = cfg.Required
	if r.value > r.max {
		r.value = r.max
	}
}

// Value implements runtime.Widget.
func (r *Rating) Value() any { return r.value }

// SetValue implements runtime.Widget.
func (r *Rating) SetValue(v any) {
	n, ok := v.(int)
	if !ok || n < 0 || n > r.max {
		return
	}
	r.value = n
}

// Validate implements runtime.Widget.
func (r *Rating) Validate() runtime.ValidationResult {
	if r.required && r.value == 0 {
		return runtime.Invalid("a rating is required")
	}
	return runtime.OK()
}

// HandleMessage implements runtime.MessageHandler. ClickMsg "star:<n>"
// commits a rating.
func (r *Rating) HandleMessage(msg runtime.Message) runtime.HandleResult {
	click, ok := msg.(runtime.ClickMsg)
	if !ok {
		return runtime.Unhandled()
	}
	raw, ok := strings.CutPrefix(click.Target, "star:")
	if !ok {
		return runtime.Unhandled()
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > r.max {
		return runtime.Unhandled()
	}
	r.value = n
	return runtime.WithEvents(runtime.Response{Value: r.value})
}

// Render implements runtime.Widget.
func (r *Rating) Render(ctx runtime.RenderContext) markup.Node {
	root := markup.El("div").
		Class("ax-rating").
		Data("state", ctx.State.String())
	for i := 1; i <= r.max; i++ {
		star := "☆"
		classes := "ax-rating__star"
		if i <= r.value {
			star = "★"
			classes += " ax-rating__star--filled"
		}
		root = root.Append(
			markup.El("button", markup.Text(star)).
				Class(classes).
				Data("target", "star:"+strconv.Itoa(i)),
		)
	}
	if ctx.ErrorMessage != "" {
		root = root.Append(
			markup.El("div", markup.Text(ctx.ErrorMessage)).Class("ax-error"),
		)
	}
	return root
}
