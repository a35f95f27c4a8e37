package runtime

import (
	"time"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/theme"
)

// RenderContext is everything a widget may consult during a render pass
// beyond its own state: the injected theme, the lifecycle state, and the
// currently displayed error message. Render is pure — it reads the
// context and the widget's state and returns markup, never mutating
// either.
type RenderContext struct {
	Theme        theme.Context
	State        WidgetState
	ErrorMessage string
}

// Widget is the contract every ax-* widget implements. The mandatory
// surface is deliberately small; richer behavior hangs off the optional
// capability interfaces below, composed by the Lifecycle in fixed order.
type Widget interface {
	// Kind returns the widget's element name, e.g. "ax-drag-drop".
	Kind() string

	// Configure re-derives the widget's typed configuration from the
	// attribute view. Called on attach and on every recognized attribute
	// change; configuration is never cached stale across changes.
	Configure(attrs attr.View)

	// Render produces the widget's markup from current state and config.
	Render(ctx RenderContext) markup.Node

	// Value returns the widget's committed value. It never panics; an
	// empty or unset widget returns a neutral value (nil, zero, or an
	// empty collection).
	Value() any

	// SetValue applies a value of the same shape Value returns.
	// Shapes the widget cannot interpret are silently ignored.
	SetValue(v any)

	// Validate recomputes the widget's validity. Pure: repeated calls
	// with no intervening mutation return identical results.
	Validate() ValidationResult
}

// Styler is implemented by widgets that ship scoped CSS. Styles are
// mounted once on attach, before the first render.
type Styler interface {
	Styles(ctx theme.Context) string
}

// MessageHandler is implemented by interactive widgets. Messages arrive
// only while the widget state is interactive; the lifecycle clears any
// displayed error before delivery.
type MessageHandler interface {
	HandleMessage(msg Message) HandleResult
}

// AttributeObserver lets a widget narrow its reaction to an attribute
// change. Returning true means the widget updated the relevant slice of
// derived state itself; returning false falls back to the blanket
// Configure-and-render path.
type AttributeObserver interface {
	ObserveAttribute(name, value string, attrs attr.View) bool
}

// Cleaner is implemented by widgets holding resources that must be
// released on detach (timers, subscriptions).
type Cleaner interface {
	Cleanup()
}

// TickHandler is implemented by widgets driven by the host scheduler
// (countdown/elapsed displays). Returned events are dispatched by the
// lifecycle; a nil slice means the tick was absorbed silently.
type TickHandler interface {
	Tick(now time.Time) []Event
}

// EventSource is implemented by widgets whose attribute-driven
// transitions produce notifications (e.g. a progress bar completing when
// the host raises its value). The lifecycle drains pending events after
// every configure pass and dispatches them.
type EventSource interface {
	DrainEvents() []Event
}

// RenderTarget mounts serialized markup in isolation. Style scoping is
// guaranteed by the host environment.
type RenderTarget interface {
	Mount(html string)
}

// StyleTarget is optionally implemented by render targets that accept
// scoped stylesheets.
type StyleTarget interface {
	MountStyles(css string)
}
