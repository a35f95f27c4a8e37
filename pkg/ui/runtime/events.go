package runtime

import (
	"sort"
	"time"
)

// Event is an outward notification emitted after a user-driven state
// change. Widgets only emit; they never assume who listens. The
// dispatcher wraps each event in an Envelope stamped with the widget id
// and time before delivery.
type Event interface {
	isEvent()
}

// Response carries a final, committed value.
type Response struct {
	ItemID string
	Value  any
}

func (Response) isEvent() {}

// Change carries an interim value during a multi-step interaction
// (e.g., a live slider drag) for confirmation-mode hosts.
type Change struct {
	Value any
}

func (Change) isEvent() {}

// StateChange reports a widget state transition. Emitted only when the
// state actually changed.
type StateChange struct {
	Old WidgetState
	New WidgetState
}

func (StateChange) isEvent() {}

// Drop reports a successful placement or removal, with the widget's full
// current value.
type Drop struct {
	ItemID   string
	TargetID string // "" for a removal back to the unplaced pool
	Value    any
}

func (Drop) isEvent() {}

// DateChange reports a date/time/range selection change.
type DateChange struct {
	Value any
}

func (DateChange) isEvent() {}

// SortChange reports the data table's active sort.
type SortChange struct {
	Column     string
	Descending bool
}

func (SortChange) isEvent() {}

// PageChange reports the data table's current page after clamping.
type PageChange struct {
	Page int
}

func (PageChange) isEvent() {}

// RowSelect reports the data table's selected source-row indices.
type RowSelect struct {
	Rows []int
}

func (RowSelect) isEvent() {}

// CellClick reports a click on a table cell, in source-row coordinates.
type CellClick struct {
	Row    int
	Column string
}

func (CellClick) isEvent() {}

// TimerTick is emitted once per scheduler tick by timer widgets.
type TimerTick struct {
	Remaining time.Duration
	Elapsed   time.Duration
}

func (TimerTick) isEvent() {}

// TimerComplete is emitted once when a countdown reaches zero.
type TimerComplete struct{}

func (TimerComplete) isEvent() {}

// ProgressComplete is emitted once when a progress widget first reaches
// 100%.
type ProgressComplete struct{}

func (ProgressComplete) isEvent() {}

// LoadError reports an embedded resource that failed to load. The widget
// has already transitioned to StateError and rendered a retry affordance.
type LoadError struct {
	Reason string
}

func (LoadError) isEvent() {}

// Retry reports a user-initiated retry of a failed resource load. The
// host collaborator that owns the fetch reacts by reloading.
type Retry struct{}

func (Retry) isEvent() {}

// Envelope is what subscribers receive: the event plus the emitting
// widget's id and the dispatch time.
type Envelope struct {
	WidgetID string
	Time     time.Time
	Event    Event
}

// Dispatcher delivers envelopes to subscribers. It belongs to a single
// widget lifecycle and, like the rest of the runtime, is driven from one
// goroutine; it is not safe for concurrent use.
type Dispatcher struct {
	widgetID string
	now      func() time.Time
	subs     map[int]func(Envelope)
	nextSub  int
}

// NewDispatcher creates a dispatcher stamping envelopes with widgetID.
func NewDispatcher(widgetID string) *Dispatcher {
	return &Dispatcher{
		widgetID: widgetID,
		now:      time.Now,
		subs:     make(map[int]func(Envelope)),
	}
}

// Subscribe registers a listener and returns its cancel function.
func (d *Dispatcher) Subscribe(fn func(Envelope)) func() {
	id := d.nextSub
	d.nextSub++
	d.subs[id] = fn
	return func() { delete(d.subs, id) }
}

// Emit wraps the event in an envelope and delivers it to every
// subscriber in registration order.
func (d *Dispatcher) Emit(e Event) {
	env := Envelope{WidgetID: d.widgetID, Time: d.now(), Event: e}
	ids := make([]int, 0, len(d.subs))
	for id := range d.subs {
		ids = append(ids, id)
	}
	// Registration order; map iteration alone is not deterministic.
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := d.subs[id]; ok {
			fn(env)
		}
	}
}
