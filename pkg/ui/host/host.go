// Package host orchestrates widget instances for an embedding
// application: a form registry with uniform value/validation access, a
// pub/sub bus replacing sibling-to-sibling side channels, and a tick
// scheduler for timer widgets. The host owns persistence of submitted
// values; widgets own nothing beyond their in-memory state.
package host

import (
	"context"

	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// Sanitizer cleans externally supplied HTML before it is mounted.
type Sanitizer interface {
	Sanitize(html string) string
}

// MarkdownRenderer is the markdown collaborator surface.
type MarkdownRenderer interface {
	RenderHTML(markdown string) string
}

// FetchClient is the transport used by host-side collaborators (file
// upload, image loading). Widgets never call it directly.
type FetchClient interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Form is a registry of mounted widgets with aggregate access to their
// values and validity. Events from every member flow into the form's
// bus; members never observe each other directly.
type Form struct {
	widgets map[string]*runtime.Lifecycle
	order   []string
	bus     *Bus
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{
		widgets: make(map[string]*runtime.Lifecycle),
		bus:     NewBus(),
	}
}

// Bus returns the form's event bus.
func (f *Form) Bus() *Bus { return f.bus }

// Add registers a widget lifecycle and forwards its events onto the
// form's bus. Adding an id twice replaces the earlier registration.
func (f *Form) Add(lc *runtime.Lifecycle) {
	id := lc.ID()
	if _, exists := f.widgets[id]; !exists {
		f.order = append(f.order, id)
	}
	f.widgets[id] = lc
	lc.Subscribe(f.bus.publish)
}

// Remove detaches and forgets a widget.
func (f *Form) Remove(id string) {
	lc, ok := f.widgets[id]
	if !ok {
		return
	}
	lc.Detach()
	delete(f.widgets, id)
	for i, other := range f.order {
		if other == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// Get returns a member lifecycle by id.
func (f *Form) Get(id string) (*runtime.Lifecycle, bool) {
	lc, ok := f.widgets[id]
	return lc, ok
}

// IDs returns the member ids in registration order.
func (f *Form) IDs() []string {
	return append([]string(nil), f.order...)
}

// Values aggregates every member's committed value by widget id.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.widgets))
	for id, lc := range f.widgets {
		out[id] = lc.Value()
	}
	return out
}

// ValidateAll validates every member, shows each failing widget its
// first error, and returns the merged result. Widgets are visited in
// registration order so error display is deterministic.
func (f *Form) ValidateAll() runtime.ValidationResult {
	merged := runtime.OK()
	for _, id := range f.order {
		lc := f.widgets[id]
		res := lc.Validate()
		if !res.Valid && len(res.Errors) > 0 {
			lc.ShowError(res.Errors[0])
		}
		merged = merged.Merge(res)
	}
	return merged
}

// Close detaches every member and drops all bus subscriptions.
func (f *Form) Close() {
	for _, id := range append([]string(nil), f.order...) {
		f.Remove(id)
	}
	f.bus.Clear()
}
