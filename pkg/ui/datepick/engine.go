// Package datepick implements the ax-date-picker widget: single date,
// time-of-day, combined datetime, and date-range selection over a
// generated calendar grid. Calendar navigation state is independent of
// selection state — paging months never changes what is selected.
package datepick

import (
	"strings"
	"time"
)

// Mode selects the value shape.
type Mode int

const (
	ModeDate Mode = iota
	ModeTime
	ModeDateTime
	ModeRange
)

// ParseMode maps the mode attribute to a Mode. Unrecognized values
// resolve to ModeDate.
func ParseMode(s string) Mode {
	switch s {
	case "time":
		return ModeTime
	case "datetime":
		return ModeDateTime
	case "range":
		return ModeRange
	default:
		return ModeDate
	}
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Range is an inclusive date range. Start ≤ End holds for every
// committed range; a zero End means the range is still open.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Complete reports whether both endpoints are set.
func (r Range) Complete() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// Config is the engine's immutable configuration.
type Config struct {
	Mode             Mode
	WeekStart        time.Weekday // first column of the grid
	MinDate          time.Time    // zero = unbounded
	MaxDate          time.Time    // zero = unbounded
	DisabledDates    []time.Time  // compared by calendar date
	DisabledWeekdays map[time.Weekday]bool
}

// Engine is the date selection state machine.
type Engine struct {
	cfg      Config
	viewDate time.Time // any day inside the displayed month

	selected time.Time // date / datetime modes; zero = none
	rng      Range     // range mode
	tod      TimeOfDay // time / datetime modes
	todSet   bool
}

// NewEngine creates an engine viewing the month containing now.
func NewEngine(cfg Config, now time.Time) *Engine {
	return &Engine{cfg: cfg, viewDate: midnight(now)}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// midnight truncates to the calendar date in the value's location.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sameDate compares by calendar date, not exact timestamp.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ViewDate returns a day inside the displayed month.
func (e *Engine) ViewDate() time.Time { return e.viewDate }

// SetView jumps the calendar to the month containing t without touching
// the selection.
func (e *Engine) SetView(t time.Time) {
	e.viewDate = midnight(t)
}

// NextMonth pages the calendar forward one month.
func (e *Engine) NextMonth() {
	y, m, _ := e.viewDate.Date()
	e.viewDate = time.Date(y, m+1, 1, 0, 0, 0, 0, e.viewDate.Location())
}

// PrevMonth pages the calendar back one month.
func (e *Engine) PrevMonth() {
	y, m, _ := e.viewDate.Date()
	e.viewDate = time.Date(y, m-1, 1, 0, 0, 0, 0, e.viewDate.Location())
}

// Disabled reports whether a day rejects selection: outside the
// min/max bounds, on the explicit disabled-date list, or on a disabled
// weekday. Disabled days still render, dimmed, but never select.
func (e *Engine) Disabled(day time.Time) bool {
	day = midnight(day)
	if !e.cfg.MinDate.IsZero() && day.Before(midnight(e.cfg.MinDate)) {
		return true
	}
	if !e.cfg.MaxDate.IsZero() && day.After(midnight(e.cfg.MaxDate)) {
		return true
	}
	for _, d := range e.cfg.DisabledDates {
		if sameDate(day, d) {
			return true
		}
	}
	return e.cfg.DisabledWeekdays[day.Weekday()]
}

// DayCell is one cell of the 6×7 calendar grid.
type DayCell struct {
	Date       time.Time
	OtherMonth bool // trailing/leading day of an adjacent month
	Disabled   bool
	Selected   bool
	InRange    bool // strictly between a committed range's endpoints
	RangeStart bool
	RangeEnd   bool
}

// Grid generates exactly 42 day cells for the displayed month: trailing
// days of the previous month, the whole current month, and enough
// leading days of the next month to fill six rows of seven.
func (e *Engine) Grid() []DayCell {
	y, m, _ := e.viewDate.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, e.viewDate.Location())
	offset := (int(first.Weekday()) - int(e.cfg.WeekStart) + 7) % 7
	start := first.AddDate(0, 0, -offset)

	cells := make([]DayCell, 0, 42)
	for i := 0; i < 42; i++ {
		day := start.AddDate(0, 0, i)
		cell := DayCell{
			Date:       day,
			OtherMonth: day.Month() != m,
			Disabled:   e.Disabled(day),
		}
		switch e.cfg.Mode {
		case ModeRange:
			cell.RangeStart = !e.rng.Start.IsZero() && sameDate(day, e.rng.Start)
			cell.RangeEnd = !e.rng.End.IsZero() && sameDate(day, e.rng.End)
			cell.Selected = cell.RangeStart || cell.RangeEnd
			if e.rng.Complete() && day.After(e.rng.Start) && day.Before(e.rng.End) {
				cell.InRange = true
			}
		default:
			cell.Selected = !e.selected.IsZero() && sameDate(day, e.selected)
		}
		cells = append(cells, cell)
	}
	return cells
}

// SelectDate applies a day click. Returns changed (any selection state
// moved) and committed (the selection is now a complete value: always
// for date/datetime, only on range completion for range mode).
// Disabled days change nothing.
func (e *Engine) SelectDate(day time.Time) (changed, committed bool) {
	day = midnight(day)
	if e.Disabled(day) {
		return false, false
	}
	switch e.cfg.Mode {
	case ModeRange:
		if e.rng.Start.IsZero() || e.rng.Complete() {
			// First click of a new range: start set, end cleared. A click
			// after a completed range starts over rather than extending.
			e.rng = Range{Start: day}
			return true, false
		}
		// Second click completes; endpoints swap so Start ≤ End always
		// holds regardless of click order.
		if day.Before(e.rng.Start) {
			e.rng = Range{Start: day, End: e.rng.Start}
		} else {
			e.rng = Range{Start: e.rng.Start, End: day}
		}
		return true, true
	case ModeTime:
		return false, false
	default:
		e.selected = day
		return true, true
	}
}

// SetTime applies a time-of-day selection (time and datetime modes).
// Out-of-range components are clamped.
func (e *Engine) SetTime(hours, minutes int) bool {
	if e.cfg.Mode != ModeTime && e.cfg.Mode != ModeDateTime {
		return false
	}
	e.tod = TimeOfDay{Hours: clampInt(hours, 0, 23), Minutes: clampInt(minutes, 0, 59)}
	e.todSet = true
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Value returns the mode's value shape: a time.Time (or nil when unset)
// for date and datetime, TimeOfDay for time, Range for range.
func (e *Engine) Value() any {
	switch e.cfg.Mode {
	case ModeTime:
		return e.tod
	case ModeRange:
		return e.rng
	case ModeDateTime:
		if e.selected.IsZero() {
			return nil
		}
		return e.selected.Add(
			time.Duration(e.tod.Hours)*time.Hour + time.Duration(e.tod.Minutes)*time.Minute,
		)
	default:
		if e.selected.IsZero() {
			return nil
		}
		return e.selected
	}
}

// SetValue applies a value of the shape Value returns. Values that fall
// on disabled days, or shapes the mode cannot interpret, are ignored.
// An out-of-order range is normalized so Start ≤ End.
func (e *Engine) SetValue(v any) bool {
	switch e.cfg.Mode {
	case ModeTime:
		tod, ok := v.(TimeOfDay)
		if !ok {
			return false
		}
		return e.SetTime(tod.Hours, tod.Minutes)
	case ModeRange:
		rng, ok := v.(Range)
		if !ok {
			return false
		}
		if rng.Complete() && rng.End.Before(rng.Start) {
			rng.Start, rng.End = rng.End, rng.Start
		}
		if !rng.Start.IsZero() && e.Disabled(rng.Start) {
			return false
		}
		if !rng.End.IsZero() && e.Disabled(rng.End) {
			return false
		}
		if rng.Start.IsZero() {
			e.rng = Range{}
			return true
		}
		e.rng = Range{Start: midnight(rng.Start)}
		if !rng.End.IsZero() {
			e.rng.End = midnight(rng.End)
		}
		return true
	default:
		if v == nil {
			e.selected = time.Time{}
			return true
		}
		t, ok := v.(time.Time)
		if !ok {
			return false
		}
		if e.Disabled(t) {
			return false
		}
		e.selected = midnight(t)
		if e.cfg.Mode == ModeDateTime {
			e.tod = TimeOfDay{Hours: t.Hour(), Minutes: t.Minute()}
			e.todSet = true
		}
		return true
	}
}

// Format renders a date through a YYYY/MM/DD token template. This is the
// committed-value formatting path, distinct from the human-readable
// display string.
func Format(t time.Time, template string) string {
	if t.IsZero() {
		return ""
	}
	out := strings.ReplaceAll(template, "YYYY", t.Format("2006"))
	out = strings.ReplaceAll(out, "MM", t.Format("01"))
	out = strings.ReplaceAll(out, "DD", t.Format("02"))
	return out
}

// DisplayString is the long-form human-readable rendering used in the
// widget's display field. Independent of the Format template path.
// English-only: the stdlib carries no locale tables for month and
// weekday names, so hosts needing localized display render from the
// committed value themselves.
func DisplayString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Monday, January 2, 2006")
}
