// Package runtime implements the widget base contract: the capability
// interfaces every ax-* widget satisfies, the lifecycle orchestrator that
// drives attribute changes through configure → validate → render → bind,
// the owned value store, and the outward event taxonomy.
//
// The runtime is single-threaded by design. All widget logic runs on
// discrete callback invocations delivered by the host (attribute changes,
// input messages, ticks); nothing here blocks and nothing is shared
// across widget instances.
package runtime

// WidgetState is the lifecycle state of a widget instance. Exactly one
// state is active at a time; transitions go through the owning
// Lifecycle, never by external mutation.
type WidgetState int

const (
	StateIdle WidgetState = iota
	StateActive
	StateDisabled
	StateReadonly
	StateError
	StateSuccess
	StateLoading
)

// String returns the state name used in attributes and events.
func (s WidgetState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateDisabled:
		return "disabled"
	case StateReadonly:
		return "readonly"
	case StateError:
		return "error"
	case StateSuccess:
		return "success"
	case StateLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Interactive reports whether user input should reach the widget in this
// state. Input during disabled or readonly is silently dropped.
func (s WidgetState) Interactive() bool {
	switch s {
	case StateDisabled, StateReadonly, StateLoading:
		return false
	default:
		return true
	}
}

// ParseState maps a state attribute value back to a WidgetState.
// Unrecognized values resolve to StateIdle.
func ParseState(s string) WidgetState {
	switch s {
	case "active":
		return StateActive
	case "disabled":
		return StateDisabled
	case "readonly":
		return StateReadonly
	case "error":
		return StateError
	case "success":
		return StateSuccess
	case "loading":
		return StateLoading
	default:
		return StateIdle
	}
}
