package runtime

import "time"

// Message represents a user or host interaction flowing into a widget.
// The host translates pointer/keyboard activity on the mounted markup
// into semantic messages keyed by the data-target ids widgets emit in
// their render output.
type Message interface {
	isMessage()
}

// ClickMsg is an activation of a sub-element (option, cell, day, header).
type ClickMsg struct {
	Target string
}

func (ClickMsg) isMessage() {}

// KeyMsg is a keyboard input event.
type KeyMsg struct {
	Key   string
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// DragMsg is a completed drag gesture: item dropped on target. The host
// resolves pointer coordinates to target ids before dispatch; drops on
// free 2D space carry the position instead of a target.
type DragMsg struct {
	ItemID   string
	TargetID string
	X, Y     float64
}

func (DragMsg) isMessage() {}

// InputMsg carries free text typed into a sub-element.
type InputMsg struct {
	Target string
	Text   string
}

func (InputMsg) isMessage() {}

// TickMsg is delivered by the host scheduler to TickHandler widgets.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// HandleResult is returned from HandleMessage.
type HandleResult struct {
	Handled bool    // was the message consumed?
	Events  []Event // notifications to dispatch outward
}

// Handled returns a result indicating the message was consumed.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled returns a result indicating the message was not consumed.
func Unhandled() HandleResult {
	return HandleResult{Handled: false}
}

// WithEvents returns a handled result carrying outward events.
func WithEvents(events ...Event) HandleResult {
	return HandleResult{Handled: true, Events: events}
}
