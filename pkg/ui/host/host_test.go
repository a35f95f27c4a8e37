package host

import (
	"testing"
	"time"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// formWidget is a minimal form member with a controllable value and
// validity.
type formWidget struct {
	value  any
	errors []string
	ticks  int
}

func (w *formWidget) Kind() string        { return "ax-form-stub" }
func (w *formWidget) Configure(attr.View) {}
func (w *formWidget) Value() any          { return w.value }
func (w *formWidget) SetValue(v any)      { w.value = v }
func (w *formWidget) Render(runtime.RenderContext) markup.Node {
	return markup.El("div")
}
func (w *formWidget) Validate() runtime.ValidationResult {
	if len(w.errors) > 0 {
		return runtime.Invalid(w.errors...)
	}
	return runtime.OK()
}
func (w *formWidget) HandleMessage(runtime.Message) runtime.HandleResult {
	return runtime.WithEvents(runtime.Response{Value: w.value})
}
func (w *formWidget) Tick(time.Time) []runtime.Event {
	w.ticks++
	return nil
}

type nopTarget struct{}

func (nopTarget) Mount(string) {}

func addMember(f *Form, id string, w runtime.Widget) *runtime.Lifecycle {
	lc := runtime.New(w, runtime.WithID(id))
	lc.Attach(nopTarget{})
	f.Add(lc)
	return lc
}

func TestFormValuesAggregation(t *testing.T) {
	f := NewForm()
	addMember(f, "name", &formWidget{value: "alice"})
	addMember(f, "score", &formWidget{value: 7})

	values := f.Values()
	if values["name"] != "alice" || values["score"] != 7 {
		t.Errorf("Values = %v", values)
	}
	ids := f.IDs()
	if len(ids) != 2 || ids[0] != "name" || ids[1] != "score" {
		t.Errorf("IDs = %v, want registration order", ids)
	}
}

func TestFormEventsFlowToBus(t *testing.T) {
	f := NewForm()
	lc := addMember(f, "w1", &formWidget{value: "x"})

	var got []runtime.Envelope
	f.Bus().Subscribe(func(env runtime.Envelope) { got = append(got, env) })

	lc.Dispatch(runtime.ClickMsg{Target: "any"})
	if len(got) != 1 {
		t.Fatalf("bus events = %d, want 1", len(got))
	}
	if got[0].WidgetID != "w1" {
		t.Errorf("WidgetID = %q", got[0].WidgetID)
	}
}

func TestValidateAllShowsFirstErrorPerWidget(t *testing.T) {
	f := NewForm()
	good := addMember(f, "good", &formWidget{})
	bad := addMember(f, "bad", &formWidget{errors: []string{"first", "second"}})

	res := f.ValidateAll()
	if res.Valid {
		t.Error("merged result valid")
	}
	if len(res.Errors) != 2 {
		t.Errorf("merged errors = %v", res.Errors)
	}
	if bad.ErrorMessage() != "first" {
		t.Errorf("bad widget shows %q, want first error", bad.ErrorMessage())
	}
	if good.ErrorMessage() != "" {
		t.Errorf("good widget shows %q", good.ErrorMessage())
	}
}

func TestFormRemoveDetaches(t *testing.T) {
	f := NewForm()
	w := &formWidget{value: "x"}
	lc := addMember(f, "w1", w)

	var events int
	f.Bus().Subscribe(func(runtime.Envelope) { events++ })

	f.Remove("w1")
	if _, ok := f.Get("w1"); ok {
		t.Error("removed widget still registered")
	}
	lc.Dispatch(runtime.ClickMsg{Target: "any"})
	if events != 0 {
		t.Errorf("events after remove = %d", events)
	}
	if len(f.IDs()) != 0 {
		t.Errorf("IDs = %v", f.IDs())
	}
}

func TestBusSubscriptionOrderAndCancel(t *testing.T) {
	b := NewBus()
	var order []string
	b.Subscribe(func(runtime.Envelope) { order = append(order, "first") })
	cancel := b.Subscribe(func(runtime.Envelope) { order = append(order, "second") })

	b.publish(runtime.Envelope{})
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("delivery order = %v", order)
	}

	cancel()
	order = nil
	b.publish(runtime.Envelope{})
	if len(order) != 1 || order[0] != "first" {
		t.Errorf("delivery after cancel = %v", order)
	}
}

func TestSchedulerDeliver(t *testing.T) {
	s := NewScheduler(time.Second)
	w1 := &formWidget{}
	w2 := &formWidget{}
	lc1 := runtime.New(w1)
	lc1.Attach(nopTarget{})
	lc2 := runtime.New(w2)
	lc2.Attach(nopTarget{})

	cancel1 := s.Register(lc1)
	s.Register(lc2)

	s.Deliver(time.Now())
	if w1.ticks != 1 || w2.ticks != 1 {
		t.Errorf("ticks = %d, %d", w1.ticks, w2.ticks)
	}

	cancel1()
	s.Deliver(time.Now())
	if w1.ticks != 1 {
		t.Error("cancelled registration still ticked")
	}
	if w2.ticks != 2 {
		t.Errorf("w2 ticks = %d", w2.ticks)
	}
}

func TestSchedulerRunStops(t *testing.T) {
	s := NewScheduler(time.Millisecond)
	s.Stop()

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	s.Stop() // idempotent
}

func TestFormClose(t *testing.T) {
	f := NewForm()
	addMember(f, "a", &formWidget{})
	addMember(f, "b", &formWidget{})

	f.Close()
	if len(f.IDs()) != 0 {
		t.Errorf("IDs after Close = %v", f.IDs())
	}
}

func TestBusCancelCompactsRegistrationOrder(t *testing.T) {
	b := NewBus()
	for i := 0; i < 100; i++ {
		cancel := b.Subscribe(func(runtime.Envelope) {})
		cancel()
	}
	if len(b.ordered) != 0 {
		t.Errorf("ordered = %d entries after cancelling all, want 0", len(b.ordered))
	}

	var got []string
	b.Subscribe(func(runtime.Envelope) { got = append(got, "a") })
	cancel := b.Subscribe(func(runtime.Envelope) { got = append(got, "b") })
	cancel()
	b.Subscribe(func(runtime.Envelope) { got = append(got, "c") })
	b.publish(runtime.Envelope{})
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("delivery order = %v, want [a c]", got)
	}
}

func TestSchedulerCancelCompactsRegistrationOrder(t *testing.T) {
	s := NewScheduler(time.Second)
	for i := 0; i < 100; i++ {
		cancel := s.Register(runtime.New(&formWidget{}))
		cancel()
	}
	if len(s.ordered) != 0 {
		t.Errorf("ordered = %d entries after cancelling all, want 0", len(s.ordered))
	}
}
