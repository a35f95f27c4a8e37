package widgets

import (
	"fmt"
	"time"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// Timer is the ax-timer element: a countdown or elapsed display driven
// by the host scheduler's ticks. It registers nothing itself — the
// scheduler delivers TickMsg while the widget is attached, and the
// lifecycle's detach guarantees no ticks arrive afterwards.
//
// Attributes:
//
//	duration  seconds to count down from; 0 (default) counts up
//	label     optional caption
type Timer struct {
	duration time.Duration // 0 = elapsed mode
	label    string
	started  time.Time
	now      time.Time
	done     bool
	stopped  bool
}

// NewTimer creates an unconfigured timer.
func NewTimer() *Timer {
	return &Timer{}
}

// Kind implements runtime.Widget.
func (t *Timer) Kind() string { return "ax-timer" }

// Configure implements runtime.Widget. A duration change restarts the
// countdown.
func (t *Timer) Configure(attrs attr.View) {
	d := time.Duration(attrs.Int("duration", 0)) * time.Second
	t.label = attrs.String("label", "")
	if d != t.duration {
		t.duration = d
		t.started = time.Time{}
		t.done = false
	}
}

// Tick implements runtime.TickHandler. The first tick anchors the start
// time; each tick emits TimerTick and, for a countdown reaching zero,
// TimerComplete exactly once.
func (t *Timer) Tick(now time.Time) []runtime.Event {
	if t.stopped {
		return nil
	}
	if t.started.IsZero() {
		t.started = now
	}
	t.now = now
	elapsed := now.Sub(t.started)

	if t.duration == 0 {
		return []runtime.Event{runtime.TimerTick{Elapsed: elapsed}}
	}
	remaining := t.duration - elapsed
	if remaining <= 0 {
		if t.done {
			return nil
		}
		t.done = true
		return []runtime.Event{
			runtime.TimerTick{Remaining: 0, Elapsed: elapsed},
			runtime.TimerComplete{},
		}
	}
	return []runtime.Event{runtime.TimerTick{Remaining: remaining, Elapsed: elapsed}}
}

// Cleanup implements runtime.Cleaner: after detach any stray tick is
// absorbed silently.
func (t *Timer) Cleanup() {
	t.stopped = true
}

// Value implements runtime.Widget: whole elapsed (or remaining) seconds.
func (t *Timer) Value() any {
	if t.started.IsZero() {
		if t.duration > 0 {
			return int(t.duration / time.Second)
		}
		return 0
	}
	elapsed := t.now.Sub(t.started)
	if t.duration > 0 {
		remaining := t.duration - elapsed
		if remaining < 0 {
			remaining = 0
		}
		return int(remaining / time.Second)
	}
	return int(elapsed / time.Second)
}

// SetValue implements runtime.Widget. Timers are driven by the clock,
// not by the host; values are ignored.
func (t *Timer) SetValue(v any) {}

// Validate implements runtime.Widget.
func (t *Timer) Validate() runtime.ValidationResult {
	return runtime.OK()
}

// Render implements runtime.Widget.
func (t *Timer) Render(ctx runtime.RenderContext) markup.Node {
	root := markup.El("div").
		Class("ax-timer").
		Data("state", ctx.State.String())
	if t.label != "" {
		root = root.Append(markup.El("span", markup.Text(t.label)).Class("ax-timer__label"))
	}
	secs, _ := t.Value().(int)
	display := fmt.Sprintf("%02d:%02d", secs/60, secs%60)
	classes := "ax-timer__display"
	if t.done {
		classes += " ax-timer__display--complete"
	}
	root = root.Append(markup.El("span", markup.Text(display)).Class(classes))
	return root
}
