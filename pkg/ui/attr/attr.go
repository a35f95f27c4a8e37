// Package attr resolves a widget's external key/value attributes into
// typed configuration. Attributes arrive as strings (the host's attribute
// surface); resolution is defensive — a malformed value falls back to its
// documented default and is logged at debug level, never surfaced.
package attr

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Bag is the raw attribute surface of one widget instance. A key that is
// present with an empty value still counts as present (boolean attributes
// are presence-based).
type Bag map[string]string

// Clone returns an independent copy of the bag.
func (b Bag) Clone() Bag {
	out := make(Bag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Has reports whether the attribute is present.
func (b Bag) Has(key string) bool {
	_, ok := b[key]
	return ok
}

// View is a read-only typed view over a Bag, bound to a logger for
// diagnostics. Widgets resolve their config through a View so fallback
// behavior is uniform.
type View struct {
	bag    Bag
	logger *slog.Logger
}

// NewView creates a view over the bag. A nil logger disables diagnostics.
func NewView(bag Bag, logger *slog.Logger) View {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return View{bag: bag, logger: logger}
}

// Has reports whether the attribute is present.
func (v View) Has(key string) bool {
	return v.bag.Has(key)
}

// String returns the attribute value, or def when absent.
func (v View) String(key, def string) string {
	if val, ok := v.bag[key]; ok {
		return val
	}
	return def
}

// Bool reports presence-based boolean attributes. An explicit "false"
// value turns the attribute off even when present.
func (v View) Bool(key string) bool {
	val, ok := v.bag[key]
	if !ok {
		return false
	}
	return !strings.EqualFold(val, "false")
}

// Int parses an integer attribute, falling back to def on absence or a
// malformed value.
func (v View) Int(key string, def int) int {
	val, ok := v.bag[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		v.logger.Debug("attribute fallback", "attr", key, "value", val, "default", def)
		return def
	}
	return n
}

// Float parses a float attribute, falling back to def on absence or a
// malformed value.
func (v View) Float(key string, def float64) float64 {
	val, ok := v.bag[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		v.logger.Debug("attribute fallback", "attr", key, "value", val, "default", def)
		return def
	}
	return f
}

// JSON unmarshals a JSON-encoded attribute into target. Returns false and
// leaves target untouched when the attribute is absent or malformed.
func (v View) JSON(key string, target any) bool {
	val, ok := v.bag[key]
	if !ok || strings.TrimSpace(val) == "" {
		return false
	}
	if err := json.Unmarshal([]byte(val), target); err != nil {
		v.logger.Debug("attribute fallback", "attr", key, "err", err)
		return false
	}
	return true
}

// StringList parses a JSON array attribute, or falls back to a
// comma-separated split for plain values. Absent attributes return def.
func (v View) StringList(key string, def []string) []string {
	val, ok := v.bag[key]
	if !ok || strings.TrimSpace(val) == "" {
		return def
	}
	var list []string
	if err := json.Unmarshal([]byte(val), &list); err == nil {
		return list
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// IntList parses a JSON array of integers. Absent or malformed attributes
// return def.
func (v View) IntList(key string, def []int) []int {
	val, ok := v.bag[key]
	if !ok || strings.TrimSpace(val) == "" {
		return def
	}
	var list []int
	if err := json.Unmarshal([]byte(val), &list); err != nil {
		v.logger.Debug("attribute fallback", "attr", key, "err", err)
		return def
	}
	return list
}

// validate is shared across all config checks; validator instances cache
// struct metadata and are safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Check runs struct-tag validation over a resolved config. A config that
// fails validation is reported via the view's logger; the caller decides
// which fields to reset to defaults.
func (v View) Check(cfg any) error {
	err := validate.Struct(cfg)
	if err != nil {
		v.logger.Warn("config validation fallback", "err", err)
	}
	return err
}
