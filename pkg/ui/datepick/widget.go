package datepick

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// dayTarget encodes a grid day as a click target id.
func dayTarget(t time.Time) string {
	return "day:" + t.Format("2006-01-02")
}

// Widget is the ax-date-picker element.
//
// Attributes:
//
//	mode               "date" | "time" | "datetime" | "range" (default date)
//	week-start         0–6, first weekday column (default 0, Sunday)
//	min / max          YYYY-MM-DD bounds
//	disabled-dates     JSON ["YYYY-MM-DD", ...]
//	disabled-weekdays  JSON [0, 6]
//	format             committed-value template, YYYY/MM/DD tokens
//	required           boolean
type Widget struct {
	engine     *Engine
	format     string
	required   bool
	open       bool // popover visibility
	configured bool

	now func() time.Time // injectable clock for tests
}

// New creates an unconfigured date picker.
func New() *Widget {
	w := &Widget{now: time.Now}
	w.engine = NewEngine(Config{}, w.now())
	return w
}

// Kind implements runtime.Widget.
func (w *Widget) Kind() string { return "ax-date-picker" }

// Configure implements runtime.Widget. The selection carries over when
// it remains interpretable under the new configuration; the view month
// is preserved.
func (w *Widget) Configure(attrs attr.View) {
	cfg := Config{
		Mode:             ParseMode(attrs.String("mode", "date")),
		WeekStart:        time.Weekday(clampInt(attrs.Int("week-start", 0), 0, 6)),
		DisabledWeekdays: make(map[time.Weekday]bool),
	}
	if t, ok := parseDate(attrs.String("min", "")); ok {
		cfg.MinDate = t
	}
	if t, ok := parseDate(attrs.String("max", "")); ok {
		cfg.MaxDate = t
	}
	for _, s := range attrs.StringList("disabled-dates", nil) {
		if t, ok := parseDate(s); ok {
			cfg.DisabledDates = append(cfg.DisabledDates, t)
		}
	}
	for _, wd := range attrs.IntList("disabled-weekdays", nil) {
		if wd >= 0 && wd <= 6 {
			cfg.DisabledWeekdays[time.Weekday(wd)] = true
		}
	}
	w.format = attrs.String("format", "YYYY-MM-DD")
	w.required = attrs.Bool("required")

	prev := w.engine
	w.engine = NewEngine(cfg, w.now())
	if prev != nil && w.configured {
		w.engine.SetView(prev.ViewDate())
		if prev.cfg.Mode == cfg.Mode {
			w.engine.SetValue(prev.Value())
		}
	}
	w.configured = true
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Value implements runtime.Widget.
func (w *Widget) Value() any { return w.engine.Value() }

// SetValue implements runtime.Widget.
func (w *Widget) SetValue(v any) { w.engine.SetValue(v) }

// Validate implements runtime.Widget.
func (w *Widget) Validate() runtime.ValidationResult {
	if !w.required {
		return runtime.OK()
	}
	switch w.engine.Config().Mode {
	case ModeTime:
		if !w.engine.todSet {
			return runtime.Invalid("a time is required")
		}
	case ModeRange:
		if !w.engine.rng.Complete() {
			return runtime.Invalid("a complete date range is required")
		}
	default:
		if w.engine.selected.IsZero() {
			return runtime.Invalid("a date is required")
		}
	}
	return runtime.OK()
}

// HandleMessage implements runtime.MessageHandler.
//
//	ClickMsg "toggle"        opens/closes the popover
//	ClickMsg "prev"/"next"   pages the calendar month
//	ClickMsg "day:<date>"    applies the selection protocol
//	InputMsg "time" "HH:MM"  sets the time of day
func (w *Widget) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.ClickMsg:
		switch {
		case m.Target == "toggle":
			w.open = !w.open
			return runtime.Handled()
		case m.Target == "prev":
			w.engine.PrevMonth()
			return runtime.Handled()
		case m.Target == "next":
			w.engine.NextMonth()
			return runtime.Handled()
		case strings.HasPrefix(m.Target, "day:"):
			day, ok := parseDate(strings.TrimPrefix(m.Target, "day:"))
			if !ok {
				return runtime.Unhandled()
			}
			changed, committed := w.engine.SelectDate(day)
			if !changed {
				return runtime.Unhandled()
			}
			events := []runtime.Event{runtime.DateChange{Value: w.engine.Value()}}
			if committed {
				// Completing a selection closes the popover.
				w.open = false
				events = append(events, runtime.Response{Value: w.engine.Value()})
			}
			return runtime.WithEvents(events...)
		}
	case runtime.InputMsg:
		if m.Target != "time" {
			return runtime.Unhandled()
		}
		hours, minutes, ok := parseClock(m.Text)
		if !ok || !w.engine.SetTime(hours, minutes) {
			return runtime.Unhandled()
		}
		return runtime.WithEvents(
			runtime.DateChange{Value: w.engine.Value()},
			runtime.Response{Value: w.engine.Value()},
		)
	}
	return runtime.Unhandled()
}

func parseClock(s string) (hours, minutes int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return h, m, true
}

// Render implements runtime.Widget.
func (w *Widget) Render(ctx runtime.RenderContext) markup.Node {
	root := markup.El("div").
		Class("ax-date-picker").
		Data("state", ctx.State.String())

	root = root.Append(w.renderField())
	if w.open {
		root = root.Append(w.renderPopover())
	}
	if ctx.ErrorMessage != "" {
		root = root.Append(
			markup.El("div", markup.Text(ctx.ErrorMessage)).Class("ax-error"),
		)
	}
	return root
}

// renderField shows the committed value through the format template and
// the long-form display string alongside it.
func (w *Widget) renderField() markup.Node {
	field := markup.El("button").
		Class("ax-date-picker__field").
		Data("target", "toggle")

	committed, display := w.fieldText()
	if committed == "" {
		field = field.Append(markup.El("span", markup.Text("Select…")).Class("ax-date-picker__placeholder"))
		return field
	}
	field = field.Append(
		markup.El("span", markup.Text(committed)).Class("ax-date-picker__value"),
		markup.El("span", markup.Text(display)).Class("ax-date-picker__display"),
	)
	return field
}

func (w *Widget) fieldText() (committed, display string) {
	switch w.engine.Config().Mode {
	case ModeTime:
		if !w.engine.todSet {
			return "", ""
		}
		tod := w.engine.tod
		s := fmt.Sprintf("%02d:%02d", tod.Hours, tod.Minutes)
		return s, s
	case ModeRange:
		rng := w.engine.rng
		if rng.Start.IsZero() {
			return "", ""
		}
		committed = Format(rng.Start, w.format)
		display = DisplayString(rng.Start)
		if !rng.End.IsZero() {
			committed += " – " + Format(rng.End, w.format)
			display += " – " + DisplayString(rng.End)
		}
		return committed, display
	case ModeDateTime:
		if w.engine.selected.IsZero() {
			return "", ""
		}
		tod := w.engine.tod
		committed = fmt.Sprintf("%s %02d:%02d", Format(w.engine.selected, w.format), tod.Hours, tod.Minutes)
		return committed, DisplayString(w.engine.selected)
	default:
		if w.engine.selected.IsZero() {
			return "", ""
		}
		return Format(w.engine.selected, w.format), DisplayString(w.engine.selected)
	}
}

func (w *Widget) renderPopover() markup.Node {
	pop := markup.El("div").Class("ax-date-picker__popover")
	mode := w.engine.Config().Mode
	if mode != ModeTime {
		pop = pop.Append(w.renderHeader(), w.renderGrid())
	}
	if mode == ModeTime || mode == ModeDateTime {
		pop = pop.Append(
			markup.El("input").
				Class("ax-date-picker__time").
				Data("target", "time").
				Attr("type", "time"),
		)
	}
	return pop
}

func (w *Widget) renderHeader() markup.Node {
	return markup.El("div").Class("ax-date-picker__header").Append(
		markup.El("button", markup.Text("‹")).Data("target", "prev"),
		markup.El("span", markup.Text(w.engine.ViewDate().Format("January 2006"))).
			Class("ax-date-picker__month"),
		markup.El("button", markup.Text("›")).Data("target", "next"),
	)
}

func (w *Widget) renderGrid() markup.Node {
	grid := markup.El("div").Class("ax-date-picker__grid")
	weekStart := w.engine.Config().WeekStart
	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(weekStart) + i) % 7)
		grid = grid.Append(
			markup.El("span", markup.Text(wd.String()[:2])).Class("ax-date-picker__weekday"),
		)
	}
	for _, cell := range w.engine.Grid() {
		classes := []string{"ax-date-picker__day"}
		if cell.OtherMonth {
			classes = append(classes, "ax-date-picker__day--other")
		}
		if cell.Disabled {
			classes = append(classes, "ax-date-picker__day--disabled")
		}
		if cell.Selected {
			classes = append(classes, "ax-date-picker__day--selected")
		}
		if cell.InRange {
			classes = append(classes, "ax-date-picker__day--in-range")
		}
		day := markup.El("button", markup.Textf("%d", cell.Date.Day())).
			Class(strings.Join(classes, " ")).
			Data("target", dayTarget(cell.Date))
		if cell.Disabled {
			day = day.Attr("aria-disabled", "true")
		}
		grid = grid.Append(day)
	}
	return grid
}
