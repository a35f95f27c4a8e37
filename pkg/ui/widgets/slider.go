package widgets

import (
	"fmt"
	"strconv"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// Slider is the ax-slider element. Dragging emits interim Change events
// for confirmation-mode hosts; releasing commits with Response.
//
// Attributes:
//
//	min / max  numeric bounds (defaults 0 / 100)
//	step       snap increment (default 1)
type Slider struct {
	min, max float64
	step     float64
	value    float64
}

// NewSlider creates an unconfigured slider.
func NewSlider() *Slider {
	return &Slider{max: 100, step: 1}
}

// Kind implements runtime.Widget.
func (s *Slider) Kind() string { return "ax-slider" }

// sliderConfig is the resolved attribute set, constraint-checked before
// use.
type sliderConfig struct {
	Min  float64
	Max  float64 `validate:"gtefield=Min"`
	Step float64 `validate:"gt=0"`
}

// Configure implements runtime.Widget.
func (s *Slider) Configure(attrs attr.View) {
	cfg := sliderConfig{
		Min:  attrs.Float("min", 0),
		Max:  attrs.Float("max", 100),
		Step: attrs.Float("step", 1),
	}
	if attrs.Check(&cfg) != nil {
		if cfg.Max < cfg.Min {
			cfg.Min, cfg.Max = cfg.Max, cfg.Min
		}
		if cfg.Step <= 0 {
			cfg.Step = 1
		}
	}
	s.min, s.max, s.step = cfg.Min, cfg.Max, cfg.Step
	s.value = s.clamp(s.value)
}

func (s *Slider) clamp(v float64) float64 {
	if v < s.min {
		return s.min
	}
	if v > s.max {
		return s.max
	}
	// Snap to the nearest step from min.
	steps := (v - s.min) / s.step
	snapped := s.min + float64(int64(steps+0.5))*s.step
	if snapped > s.max {
		snapped = s.max
	}
	return snapped
}

// Value implements runtime.Widget.
func (s *Slider) Value() any { return s.value }

// SetValue implements runtime.Widget.
func (s *Slider) SetValue(v any) {
	switch n := v.(type) {
	case float64:
		s.value = s.clamp(n)
	case int:
		s.value = s.clamp(float64(n))
	}
}

// Validate implements runtime.Widget. The clamp keeps the value in
// bounds, so a slider is always valid.
func (s *Slider) Validate() runtime.ValidationResult {
	return runtime.OK()
}

// HandleMessage implements runtime.MessageHandler.
//
//	InputMsg "slider" "<n>"  live drag position → interim Change
//	ClickMsg "commit"        release → Response
func (s *Slider) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.InputMsg:
		if m.Target != "slider" {
			return runtime.Unhandled()
		}
		v, err := strconv.ParseFloat(m.Text, 64)
		if err != nil {
			return runtime.Unhandled()
		}
		s.value = s.clamp(v)
		return runtime.WithEvents(runtime.Change{Value: s.value})
	case runtime.ClickMsg:
		if m.Target != "commit" {
			return runtime.Unhandled()
		}
		return runtime.WithEvents(runtime.Response{Value: s.value})
	}
	return runtime.Unhandled()
}

// Render implements runtime.Widget.
func (s *Slider) Render(ctx runtime.RenderContext) markup.Node {
	root := markup.El("div").
		Class("ax-slider").
		Data("state", ctx.State.String())
	root = root.Append(
		markup.El("input").
			Attr("type", "range").
			Attr("min", trimFloat(s.min)).
			Attr("max", trimFloat(s.max)).
			Attr("step", trimFloat(s.step)).
			Attr("value", trimFloat(s.value)).
			Data("target", "slider"),
		markup.El("span", markup.Text(trimFloat(s.value))).Class("ax-slider__value"),
	)
	if ctx.ErrorMessage != "" {
		root = root.Append(
			markup.El("div", markup.Text(ctx.ErrorMessage)).Class("ax-error"),
		)
	}
	return root
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
