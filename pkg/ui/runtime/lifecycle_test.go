package runtime

import (
	"testing"
	"time"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markup"
)

// stubWidget records lifecycle calls so tests can assert ordering and
// counts. It opts into MessageHandler and Cleaner.
type stubWidget struct {
	configures int
	renders    int
	cleanups   int
	handled    []Message
	result     HandleResult
	value      any
	onHandle   func()
}

func (w *stubWidget) Kind() string              { return "ax-stub" }
func (w *stubWidget) Configure(attrs attr.View) { w.configures++ }
func (w *stubWidget) Render(ctx RenderContext) markup.Node {
	w.renders++
	return markup.El("div", markup.Text("stub"))
}
func (w *stubWidget) Value() any { return w.value }
func (w *stubWidget) SetValue(v any) {
	if s, ok := v.(string); ok {
		w.value = s
	}
}
func (w *stubWidget) Validate() ValidationResult { return OK() }
func (w *stubWidget) Cleanup()                   { w.cleanups++ }
func (w *stubWidget) HandleMessage(msg Message) HandleResult {
	w.handled = append(w.handled, msg)
	if w.onHandle != nil {
		w.onHandle()
	}
	return w.result
}

type recordTarget struct {
	mounts []string
	styles []string
}

func (t *recordTarget) Mount(html string)      { t.mounts = append(t.mounts, html) }
func (t *recordTarget) MountStyles(css string) { t.styles = append(t.styles, css) }

func TestAttachConfiguresAndRenders(t *testing.T) {
	w := &stubWidget{}
	lc := New(w, WithID("w1"))
	target := &recordTarget{}

	lc.Attach(target)

	if w.configures != 1 {
		t.Errorf("configures = %d, want 1", w.configures)
	}
	if len(target.mounts) != 1 {
		t.Fatalf("mounts = %d, want 1", len(target.mounts))
	}
	if target.mounts[0] != "<div>stub</div>" {
		t.Errorf("mounted %q", target.mounts[0])
	}
}

func TestAttributeChangeBeforeAttachIsRecordedOnly(t *testing.T) {
	w := &stubWidget{}
	lc := New(w)

	lc.SetAttribute("label", "hi")
	if w.configures != 0 {
		t.Errorf("configures before attach = %d, want 0", w.configures)
	}

	lc.Attach(&recordTarget{})
	if w.configures != 1 {
		t.Errorf("configures after attach = %d, want 1", w.configures)
	}
}

func TestAttributeChangeAfterAttachReconfigures(t *testing.T) {
	w := &stubWidget{}
	lc := New(w)
	target := &recordTarget{}
	lc.Attach(target)

	lc.SetAttribute("label", "hi")
	if w.configures != 2 {
		t.Errorf("configures = %d, want 2", w.configures)
	}
	if len(target.mounts) != 2 {
		t.Errorf("mounts = %d, want 2", len(target.mounts))
	}
}

func TestDispatchDroppedWhenNotInteractive(t *testing.T) {
	for _, state := range []WidgetState{StateDisabled, StateReadonly, StateLoading} {
		t.Run(state.String(), func(t *testing.T) {
			w := &stubWidget{result: Handled()}
			lc := New(w)
			lc.Attach(&recordTarget{})
			lc.SetState(state)

			lc.Dispatch(ClickMsg{Target: "x"})
			if len(w.handled) != 0 {
				t.Errorf("handled %d messages in %s state, want 0", len(w.handled), state)
			}
		})
	}
}

func TestDispatchBeforeAttachIsDropped(t *testing.T) {
	w := &stubWidget{result: Handled()}
	lc := New(w)

	lc.Dispatch(ClickMsg{Target: "x"})
	if len(w.handled) != 0 {
		t.Errorf("handled %d messages before attach, want 0", len(w.handled))
	}
}

func TestDispatchClearsErrorBeforeHandling(t *testing.T) {
	w := &stubWidget{result: Handled()}
	lc := New(w)
	lc.Attach(&recordTarget{})
	lc.ShowError("required")

	var errAtHandleTime string
	w.onHandle = func() { errAtHandleTime = lc.ErrorMessage() }

	lc.Dispatch(ClickMsg{Target: "x"})

	if errAtHandleTime != "" {
		t.Errorf("error still %q when handler ran, want cleared first", errAtHandleTime)
	}
	if lc.ErrorMessage() != "" {
		t.Errorf("error = %q after dispatch, want cleared", lc.ErrorMessage())
	}
}

func TestHostAttributeChangeDoesNotClearError(t *testing.T) {
	w := &stubWidget{}
	lc := New(w)
	lc.Attach(&recordTarget{})
	lc.ShowError("required")

	lc.SetAttribute("label", "new")
	if lc.ErrorMessage() != "required" {
		t.Errorf("error = %q after host attribute change, want preserved", lc.ErrorMessage())
	}
}

func TestSetStateEmitsOnlyOnChange(t *testing.T) {
	w := &stubWidget{}
	lc := New(w)
	var events []Envelope
	lc.Subscribe(func(env Envelope) { events = append(events, env) })
	lc.Attach(&recordTarget{})

	lc.SetState(StateActive)
	lc.SetState(StateActive) // no-op
	lc.SetState(StateIdle)

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	first, ok := events[0].Event.(StateChange)
	if !ok {
		t.Fatalf("event 0 is %T", events[0].Event)
	}
	if first.Old != StateIdle || first.New != StateActive {
		t.Errorf("first transition = %v -> %v", first.Old, first.New)
	}
}

func TestDispatchEmitsEventsWithEnvelope(t *testing.T) {
	w := &stubWidget{result: WithEvents(Response{ItemID: "a", Value: "v"})}
	lc := New(w, WithID("widget-9"))
	var got []Envelope
	lc.Subscribe(func(env Envelope) { got = append(got, env) })
	lc.Attach(&recordTarget{})

	lc.Dispatch(ClickMsg{Target: "a"})

	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	if got[0].WidgetID != "widget-9" {
		t.Errorf("WidgetID = %q", got[0].WidgetID)
	}
	if got[0].Time.IsZero() {
		t.Error("envelope time not stamped")
	}
	resp, ok := got[0].Event.(Response)
	if !ok || resp.ItemID != "a" {
		t.Errorf("event = %#v", got[0].Event)
	}
}

func TestDetachRunsCleanupAndCancelsSubscriptions(t *testing.T) {
	w := &stubWidget{result: Handled()}
	lc := New(w)
	var events int
	lc.Subscribe(func(Envelope) { events++ })
	lc.Attach(&recordTarget{})

	lc.Detach()
	if w.cleanups != 1 {
		t.Errorf("cleanups = %d, want 1", w.cleanups)
	}

	lc.Emit(Response{})
	if events != 0 {
		t.Errorf("events after detach = %d, want 0", events)
	}
	lc.Dispatch(ClickMsg{Target: "x"})
	if len(w.handled) != 0 {
		t.Error("message handled after detach")
	}
}

func TestValueRoundTrip(t *testing.T) {
	w := &stubWidget{value: "hello"}
	lc := New(w)
	lc.Attach(&recordTarget{})

	lc.SetValue(lc.Value())
	if got := lc.Value(); got != "hello" {
		t.Errorf("Value after round trip = %v, want hello", got)
	}

	// Unknown shapes are silently ignored.
	lc.SetValue(42)
	if got := lc.Value(); got != "hello" {
		t.Errorf("Value after unknown-shape set = %v, want hello", got)
	}
}

func TestGeneratedIDUnique(t *testing.T) {
	a := New(&stubWidget{})
	b := New(&stubWidget{})
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("ids %q and %q, want distinct non-empty", a.ID(), b.ID())
	}
}

// tickWidget exercises the TickHandler path.
type tickWidget struct {
	stubWidget
	ticks []time.Time
}

func (w *tickWidget) Tick(now time.Time) []Event {
	w.ticks = append(w.ticks, now)
	return []Event{TimerTick{Elapsed: time.Second}}
}

func TestTickMsgRoutesToTickHandler(t *testing.T) {
	w := &tickWidget{}
	lc := New(w)
	var events []Envelope
	lc.Subscribe(func(env Envelope) { events = append(events, env) })
	lc.Attach(&recordTarget{})

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lc.Dispatch(TickMsg{Time: now})

	if len(w.ticks) != 1 || !w.ticks[0].Equal(now) {
		t.Errorf("ticks = %v", w.ticks)
	}
	if len(w.handled) != 0 {
		t.Error("TickMsg leaked into HandleMessage")
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if _, ok := events[0].Event.(TimerTick); !ok {
		t.Errorf("event = %T", events[0].Event)
	}
}

func TestTickDoesNotClearDisplayedError(t *testing.T) {
	w := &tickWidget{}
	lc := New(w)
	lc.Attach(&recordTarget{})
	lc.ShowError("pick a value")

	lc.Dispatch(TickMsg{Time: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)})

	if got := lc.ErrorMessage(); got != "pick a value" {
		t.Errorf("ErrorMessage after tick = %q, want it kept", got)
	}
	if len(w.ticks) != 1 {
		t.Errorf("ticks = %d, want 1", len(w.ticks))
	}
}

// sourceWidget queues events on host-driven mutations, the EventSource
// path.
type sourceWidget struct {
	stubWidget
	pending []Event
}

func (w *sourceWidget) SetValue(v any) {
	w.stubWidget.SetValue(v)
	w.pending = append(w.pending, ProgressComplete{})
}

func (w *sourceWidget) DrainEvents() []Event {
	out := w.pending
	w.pending = nil
	return out
}

func TestSetValueDrainsQueuedEvents(t *testing.T) {
	w := &sourceWidget{}
	lc := New(w)
	var events []Envelope
	lc.Subscribe(func(env Envelope) { events = append(events, env) })
	lc.Attach(&recordTarget{})

	lc.SetValue("done")

	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if _, ok := events[0].Event.(ProgressComplete); !ok {
		t.Errorf("event = %T, want ProgressComplete", events[0].Event)
	}
}

func TestSetStateDrainsQueuedEvents(t *testing.T) {
	w := &sourceWidget{}
	lc := New(w)
	var events []Envelope
	lc.Subscribe(func(env Envelope) { events = append(events, env) })
	lc.Attach(&recordTarget{})

	w.pending = append(w.pending, ProgressComplete{})
	lc.SetState(StateDisabled)

	if len(events) != 2 {
		t.Fatalf("events = %d, want StateChange then ProgressComplete", len(events))
	}
	if _, ok := events[0].Event.(StateChange); !ok {
		t.Errorf("first event = %T, want StateChange", events[0].Event)
	}
	if _, ok := events[1].Event.(ProgressComplete); !ok {
		t.Errorf("second event = %T, want ProgressComplete", events[1].Event)
	}
}
