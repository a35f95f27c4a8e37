package runtime

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/theme"
)

// Lifecycle owns one widget instance: its attribute bag, state enum,
// error display, and dispatcher. The host talks to the lifecycle, never
// to the widget directly, so the attach → configure → render → bind →
// dispatch ordering is uniform across all widget kinds.
type Lifecycle struct {
	id     string
	widget Widget

	attrs  attr.Bag
	state  WidgetState
	errMsg string
	theme  theme.Context
	logger *slog.Logger

	target      RenderTarget
	dispatcher  *Dispatcher
	initialized bool
	cleanups    []func()
}

// Option configures a Lifecycle at construction.
type Option func(*Lifecycle)

// WithID sets the host-supplied widget id. Without it a random id is
// generated.
func WithID(id string) Option {
	return func(l *Lifecycle) { l.id = id }
}

// WithAttributes seeds the initial attribute bag.
func WithAttributes(bag attr.Bag) Option {
	return func(l *Lifecycle) { l.attrs = bag.Clone() }
}

// WithTheme sets the theme context injected into renders.
func WithTheme(t theme.Context) Option {
	return func(l *Lifecycle) { l.theme = t }
}

// WithLogger sets the diagnostics logger. Widgets log configuration
// fallbacks only; nothing user-facing goes through the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lifecycle) { l.logger = logger }
}

// New wraps a widget in a lifecycle. The widget is not configured or
// rendered until Attach.
func New(w Widget, opts ...Option) *Lifecycle {
	l := &Lifecycle{
		widget: w,
		attrs:  attr.Bag{},
		theme:  theme.Dark(),
		logger: slog.New(slog.DiscardHandler),
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.id == "" {
		l.id = uuid.NewString()
	}
	l.dispatcher = NewDispatcher(l.id)
	return l
}

// ID returns the widget instance id.
func (l *Lifecycle) ID() string { return l.id }

// Widget returns the wrapped widget.
func (l *Lifecycle) Widget() Widget { return l.widget }

// Subscribe registers an event listener and returns its cancel function.
// The cancel function is also run automatically on Detach.
func (l *Lifecycle) Subscribe(fn func(Envelope)) func() {
	cancel := l.dispatcher.Subscribe(fn)
	l.cleanups = append(l.cleanups, cancel)
	return cancel
}

// Attach mounts the widget: styles first, then configure, render, and
// mark initialized. Attribute changes before Attach are recorded in the
// bag but trigger no work — partial-render churn during construction is
// not possible.
func (l *Lifecycle) Attach(target RenderTarget) {
	l.target = target
	if styler, ok := l.widget.(Styler); ok {
		if st, ok := target.(StyleTarget); ok {
			st.MountStyles(styler.Styles(l.theme))
		}
	}
	l.widget.Configure(l.view())
	l.drainPending()
	l.render()
	l.initialized = true
}

// drainPending dispatches events queued by host-driven transitions
// (EventSource widgets): attribute changes, value writes, state moves.
func (l *Lifecycle) drainPending() {
	if src, ok := l.widget.(EventSource); ok {
		for _, e := range src.DrainEvents() {
			l.dispatcher.Emit(e)
		}
	}
}

// Detach tears the widget down: widget cleanup first, then every
// registration made during the widget's life. After Detach the lifecycle
// ignores input and attribute changes until re-attached.
func (l *Lifecycle) Detach() {
	if cleaner, ok := l.widget.(Cleaner); ok {
		cleaner.Cleanup()
	}
	for _, cancel := range l.cleanups {
		cancel()
	}
	l.cleanups = nil
	l.target = nil
	l.initialized = false
}

// SetAttribute records an attribute change and, once initialized, drives
// the change through the widget. The default policy is a blanket
// configure-and-render; AttributeObserver widgets may narrow that.
// Host-driven attribute changes do not clear a displayed error — only
// user interaction does.
func (l *Lifecycle) SetAttribute(name, value string) {
	l.attrs[name] = value
	l.attributeChanged(name, value)
}

// RemoveAttribute deletes an attribute and re-drives configuration.
func (l *Lifecycle) RemoveAttribute(name string) {
	delete(l.attrs, name)
	l.attributeChanged(name, "")
}

func (l *Lifecycle) attributeChanged(name, value string) {
	if !l.initialized {
		return
	}
	if obs, ok := l.widget.(AttributeObserver); ok {
		if obs.ObserveAttribute(name, value, l.view()) {
			l.drainPending()
			l.render()
			return
		}
	}
	l.widget.Configure(l.view())
	l.drainPending()
	l.render()
}

// Dispatch routes a message into the widget. Input is dropped silently
// while the state is non-interactive. A displayed error is cleared
// before a user message's own effect applies; scheduler ticks are not
// user interaction and leave it in place. Events are emitted and the
// widget re-renders if the message was consumed.
func (l *Lifecycle) Dispatch(msg Message) {
	if !l.initialized || !l.state.Interactive() {
		return
	}
	if tick, ok := msg.(TickMsg); ok {
		if handler, ok := l.widget.(TickHandler); ok {
			for _, e := range handler.Tick(tick.Time) {
				l.dispatcher.Emit(e)
			}
			l.render()
		}
		return
	}
	l.ClearError()

	handler, ok := l.widget.(MessageHandler)
	if !ok {
		return
	}
	res := handler.HandleMessage(msg)
	if !res.Handled {
		return
	}
	for _, e := range res.Events {
		l.dispatcher.Emit(e)
	}
	l.render()
}

// Emit dispatches an event on the widget's behalf. Used by host
// collaborators (e.g. resource loaders) reporting outcomes the widget
// itself did not initiate.
func (l *Lifecycle) Emit(e Event) {
	l.dispatcher.Emit(e)
}

// State returns the current widget state.
func (l *Lifecycle) State() WidgetState { return l.state }

// SetState transitions the widget state. A no-op set emits no event;
// a real change emits StateChange and re-renders.
func (l *Lifecycle) SetState(s WidgetState) {
	if s == l.state {
		return
	}
	old := l.state
	l.state = s
	l.dispatcher.Emit(StateChange{Old: old, New: s})
	l.drainPending()
	if l.initialized {
		l.render()
	}
}

// ShowError displays a validation message. Presentation-only: the
// widget's value is unaffected.
func (l *Lifecycle) ShowError(msg string) {
	if msg == l.errMsg {
		return
	}
	l.errMsg = msg
	if l.initialized {
		l.render()
	}
}

// ClearError removes any displayed error message.
func (l *Lifecycle) ClearError() {
	if l.errMsg == "" {
		return
	}
	l.errMsg = ""
	if l.initialized {
		l.render()
	}
}

// ErrorMessage returns the currently displayed error, "" when none.
func (l *Lifecycle) ErrorMessage() string { return l.errMsg }

// Value reads the widget's committed value through the uniform contract.
func (l *Lifecycle) Value() any { return l.widget.Value() }

// SetValue writes a value through the uniform contract and re-renders.
// Unrecognized shapes are ignored by the widget.
func (l *Lifecycle) SetValue(v any) {
	l.widget.SetValue(v)
	l.drainPending()
	if l.initialized {
		l.render()
	}
}

// Validate recomputes the widget's validity without side effects.
func (l *Lifecycle) Validate() ValidationResult {
	return l.widget.Validate()
}

// Theme returns the injected theme context.
func (l *Lifecycle) Theme() theme.Context { return l.theme }

// SetTheme swaps the theme and re-renders.
func (l *Lifecycle) SetTheme(t theme.Context) {
	l.theme = t
	if l.initialized {
		l.render()
	}
}

func (l *Lifecycle) view() attr.View {
	return attr.NewView(l.attrs, l.logger.With("widget", l.widget.Kind(), "id", l.id))
}

func (l *Lifecycle) render() {
	if l.target == nil {
		return
	}
	node := l.widget.Render(RenderContext{
		Theme:        l.theme,
		State:        l.state,
		ErrorMessage: l.errMsg,
	})
	l.target.Mount(node.HTML())
}
