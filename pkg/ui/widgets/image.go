package widgets

import (
	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// loadStatus tracks the embedded resource's lifecycle.
type loadStatus int

const (
	loadPending loadStatus = iota
	loadDone
	loadFailed
)

// Image is the ax-image element. Loading is owned by a host collaborator:
// the widget renders a placeholder, the host fetches and reports the
// outcome through CompleteLoad/FailLoad, and a user-initiated retry
// resets the cycle.
//
// Attributes:
//
//	src  resource URL
//	alt  alternative text
type Image struct {
	src    string
	alt    string
	status loadStatus
	reason string

	pending []runtime.Event
}

// NewImage creates an unconfigured image widget.
func NewImage() *Image {
	return &Image{}
}

// Kind implements runtime.Widget.
func (i *Image) Kind() string { return "ax-image" }

// Configure implements runtime.Widget. A changed src restarts the load
// cycle.
func (i *Image) Configure(attrs attr.View) {
	src := attrs.String("src", "")
	if src != i.src {
		i.src = src
		i.status = loadPending
		i.reason = ""
	}
	i.alt = attrs.String("alt", "")
}

// CompleteLoad is called by the host's loader when the resource arrived.
// It flips presentation state only — no configuration is re-derived, so
// completion handling cannot re-trigger a load.
func (i *Image) CompleteLoad() {
	i.status = loadDone
	i.reason = ""
}

// FailLoad is called by the host's loader on failure. The widget moves
// to its failed presentation and queues the structural LoadError event.
func (i *Image) FailLoad(reason string) {
	i.status = loadFailed
	i.reason = reason
	i.pending = append(i.pending, runtime.LoadError{Reason: reason})
}

// DrainEvents implements runtime.EventSource.
func (i *Image) DrainEvents() []runtime.Event {
	out := i.pending
	i.pending = nil
	return out
}

// Value implements runtime.Widget. Display-only: the committed value is
// always nil.
func (i *Image) Value() any { return nil }

// SetValue implements runtime.Widget.
func (i *Image) SetValue(v any) {}

// Validate implements runtime.Widget.
func (i *Image) Validate() runtime.ValidationResult {
	return runtime.OK()
}

// HandleMessage implements runtime.MessageHandler. ClickMsg "retry"
// resets a failed load and asks the host to refetch.
func (i *Image) HandleMessage(msg runtime.Message) runtime.HandleResult {
	click, ok := msg.(runtime.ClickMsg)
	if !ok || click.Target != "retry" || i.status != loadFailed {
		return runtime.Unhandled()
	}
	i.status = loadPending
	i.reason = ""
	return runtime.WithEvents(runtime.Retry{})
}

// Render implements runtime.Widget.
func (i *Image) Render(ctx runtime.RenderContext) markup.Node {
	root := markup.El("figure").
		Class("ax-image").
		Data("state", ctx.State.String())
	switch i.status {
	case loadFailed:
		root = root.Append(
			markup.El("div", markup.Text("Failed to load")).Class("ax-image__error"),
			markup.El("button", markup.Text("Retry")).
				Class("ax-image__retry").
				Data("target", "retry"),
		)
	case loadPending:
		root = root.Append(
			markup.El("div").Class("ax-image__placeholder"),
		)
	default:
		root = root.Append(
			markup.El("img").
				Attr("src", i.src).
				Attr("alt", i.alt),
		)
	}
	return root
}
