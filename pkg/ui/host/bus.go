package host

import "github.com/axfoundry/axui/pkg/ui/runtime"

// Bus fans widget event envelopes out to host-level subscribers. Like
// the widget runtime it is driven from a single goroutine; it is not
// safe for concurrent use.
type Bus struct {
	subs    map[int]func(runtime.Envelope)
	ordered []int
	nextSub int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(runtime.Envelope))}
}

// Subscribe registers a listener for every envelope crossing the bus
// and returns its cancel function.
func (b *Bus) Subscribe(fn func(runtime.Envelope)) func() {
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn
	b.ordered = append(b.ordered, id)
	return func() {
		delete(b.subs, id)
		b.ordered = removeID(b.ordered, id)
	}
}

// removeID drops one id from an ordered registration list.
func removeID(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// publish delivers an envelope to every live subscriber in
// subscription order.
func (b *Bus) publish(env runtime.Envelope) {
	for _, id := range b.ordered {
		if fn, ok := b.subs[id]; ok {
			fn(env)
		}
	}
}

// Clear drops every subscription.
func (b *Bus) Clear() {
	b.subs = make(map[int]func(runtime.Envelope))
	b.ordered = nil
	b.nextSub = 0
}
