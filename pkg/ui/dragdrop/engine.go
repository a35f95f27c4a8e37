// Package dragdrop implements the ax-drag-drop widget: placement of
// draggable items into category zones, ordered sequence slots, or 2D
// graphical placeholders. The three variants are mutually exclusive and
// selected at configuration time.
package dragdrop

import (
	"strconv"
	"strings"

	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// Variant selects the placement model.
type Variant int

const (
	// Category is many-to-one item→zone placement.
	Category Variant = iota
	// Sequence is a permutation of items into ordered slots.
	Sequence
	// Graphical is item→2D-placeholder placement.
	Graphical
)

// ParseVariant maps the variant attribute to a Variant. Unrecognized
// values resolve to Category.
func ParseVariant(s string) Variant {
	switch s {
	case "sequence":
		return Sequence
	case "graphical":
		return Graphical
	default:
		return Category
	}
}

// Item is a draggable element.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Zone is a drop destination: a category zone or, for the graphical
// variant, a placeholder with a position.
type Zone struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
}

// Config is the engine's immutable configuration.
type Config struct {
	Variant       Variant
	Items         []Item
	Zones         []Zone // category zones or graphical placeholders
	AllowMultiple bool   // multiple items per zone/placeholder
}

// Engine is the placement state machine. All mutating operations are
// best-effort: malformed item or target ids are silent no-ops, so raw
// pointer input can be forwarded without pre-validation.
type Engine struct {
	cfg   Config
	store *runtime.ValueStore
}

// NewEngine creates an engine with an empty placement state. The
// sequence variant gets one slot per item.
func NewEngine(cfg Config) *Engine {
	e := &Engine{cfg: cfg, store: runtime.NewValueStore()}
	if cfg.Variant == Sequence {
		e.store.SetSequence(make([]string, len(cfg.Items)))
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// hasItem reports whether the id names a configured item.
func (e *Engine) hasItem(id string) bool {
	for _, it := range e.cfg.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// hasZone reports whether the id names a configured zone/placeholder.
func (e *Engine) hasZone(id string) (Zone, bool) {
	for _, z := range e.cfg.Zones {
		if z.ID == id {
			return z, true
		}
	}
	return Zone{}, false
}

// SlotTarget encodes a sequence slot index as a drop target id.
func SlotTarget(i int) string {
	return "slot:" + strconv.Itoa(i)
}

// parseSlot decodes a slot target id. Returns -1 for anything else.
func parseSlot(target string) int {
	rest, ok := strings.CutPrefix(target, "slot:")
	if !ok {
		return -1
	}
	i, err := strconv.Atoi(rest)
	if err != nil {
		return -1
	}
	return i
}

// Drop places an item on a target: a zone id, a placeholder id, or a
// "slot:<i>" sequence target. Returns false — with no state change —
// when either id is unrecognized for the active variant.
func (e *Engine) Drop(itemID, targetID string) bool {
	if !e.hasItem(itemID) {
		return false
	}
	switch e.cfg.Variant {
	case Category:
		return e.dropCategory(itemID, targetID)
	case Sequence:
		return e.dropSequence(itemID, parseSlot(targetID))
	case Graphical:
		return e.dropGraphical(itemID, targetID, 0, 0, false)
	}
	return false
}

// DropAt places an item at free 2D coordinates (graphical variant only).
func (e *Engine) DropAt(itemID string, x, y float64) bool {
	if e.cfg.Variant != Graphical || !e.hasItem(itemID) {
		return false
	}
	return e.dropGraphical(itemID, "", x, y, true)
}

func (e *Engine) dropCategory(itemID, zoneID string) bool {
	if _, ok := e.hasZone(zoneID); !ok {
		return false
	}
	if !e.cfg.AllowMultiple {
		// Last writer wins: the previous occupant returns to the pool.
		for _, occupant := range e.store.OccupantsOf(zoneID) {
			if occupant != itemID {
				e.store.RemovePlacement(occupant)
			}
		}
	}
	e.store.SetPlacement(itemID, zoneID)
	return true
}

func (e *Engine) dropSequence(itemID string, slot int) bool {
	seq := e.store.Sequence()
	if slot < 0 || slot >= len(seq) {
		return false
	}
	// An item is unique across the sequence: vacate its old slot first.
	for i, occupant := range seq {
		if occupant == itemID {
			e.store.SetSlot(i, "")
		}
	}
	// The overwritten occupant becomes unplaced; it does not shift.
	e.store.SetSlot(slot, itemID)
	return true
}

func (e *Engine) dropGraphical(itemID, placeholderID string, x, y float64, free bool) bool {
	point := runtime.Point{X: x, Y: y}
	if !free {
		zone, ok := e.hasZone(placeholderID)
		if !ok {
			return false
		}
		point = runtime.Point{X: zone.X, Y: zone.Y, Placeholder: placeholderID}
		if !e.cfg.AllowMultiple {
			// Single occupancy: evict whoever holds this placeholder.
			for item, p := range e.store.Points() {
				if p.Placeholder == placeholderID && item != itemID {
					e.store.RemovePoint(item)
				}
			}
		}
	}
	// Single location: the item leaves wherever it was before.
	e.store.SetPoint(itemID, point)
	return true
}

// Remove returns an item to the unplaced pool. Unknown or already
// unplaced items are silent no-ops.
func (e *Engine) Remove(itemID string) bool {
	if !e.hasItem(itemID) {
		return false
	}
	switch e.cfg.Variant {
	case Category:
		if _, ok := e.store.Placement(itemID); !ok {
			return false
		}
		e.store.RemovePlacement(itemID)
	case Sequence:
		removed := false
		for i, occupant := range e.store.Sequence() {
			if occupant == itemID {
				e.store.SetSlot(i, "")
				removed = true
			}
		}
		if !removed {
			return false
		}
	case Graphical:
		if _, ok := e.store.PointOf(itemID); !ok {
			return false
		}
		e.store.RemovePoint(itemID)
	}
	return true
}

// Cycle advances an item to the next zone in declaration order, wrapping
// past the last zone back to the first. The keyboard alternative to
// pointer drags; category variant only.
func (e *Engine) Cycle(itemID string) (string, bool) {
	if e.cfg.Variant != Category || !e.hasItem(itemID) || len(e.cfg.Zones) == 0 {
		return "", false
	}
	next := 0
	if current, ok := e.store.Placement(itemID); ok {
		for i, z := range e.cfg.Zones {
			if z.ID == current {
				next = (i + 1) % len(e.cfg.Zones)
				break
			}
		}
	}
	zoneID := e.cfg.Zones[next].ID
	if !e.dropCategory(itemID, zoneID) {
		return "", false
	}
	return zoneID, true
}

// Unplaced returns the items with no current placement, in declaration
// order: all items minus the domain of the placement structure.
func (e *Engine) Unplaced() []string {
	placed := make(map[string]bool)
	switch e.cfg.Variant {
	case Category:
		for item := range e.store.Placements() {
			placed[item] = true
		}
	case Sequence:
		for _, occupant := range e.store.Sequence() {
			if occupant != "" {
				placed[occupant] = true
			}
		}
	case Graphical:
		for item := range e.store.Points() {
			placed[item] = true
		}
	}
	var out []string
	for _, it := range e.cfg.Items {
		if !placed[it.ID] {
			out = append(out, it.ID)
		}
	}
	return out
}

// PlacedCount returns the number of items currently placed.
func (e *Engine) PlacedCount() int {
	return len(e.cfg.Items) - len(e.Unplaced())
}

// Value returns the variant's value shape: item→zone map for category,
// the slot list for sequence, item→point map for graphical.
func (e *Engine) Value() any {
	switch e.cfg.Variant {
	case Sequence:
		return e.store.Sequence()
	case Graphical:
		return e.store.Points()
	default:
		return e.store.Placements()
	}
}

// SetValue applies a value of the shape Value returns, replacing the
// current placement state. Entries referencing unknown items or targets
// are dropped; a value of the wrong shape is ignored entirely.
func (e *Engine) SetValue(v any) bool {
	switch e.cfg.Variant {
	case Category:
		m, ok := v.(map[string]string)
		if !ok {
			return false
		}
		e.store.ClearPlacements()
		for _, it := range e.cfg.Items {
			if zoneID, ok := m[it.ID]; ok {
				e.dropCategory(it.ID, zoneID)
			}
		}
	case Sequence:
		slots, ok := v.([]string)
		if !ok {
			return false
		}
		e.store.SetSequence(make([]string, len(e.cfg.Items)))
		for i, itemID := range slots {
			if itemID != "" && e.hasItem(itemID) {
				e.dropSequence(itemID, i)
			}
		}
	case Graphical:
		points, ok := v.(map[string]runtime.Point)
		if !ok {
			return false
		}
		for item := range e.store.Points() {
			e.store.RemovePoint(item)
		}
		for _, it := range e.cfg.Items {
			p, ok := points[it.ID]
			if !ok {
				continue
			}
			if p.Placeholder != "" {
				e.dropGraphical(it.ID, p.Placeholder, 0, 0, false)
			} else {
				e.dropGraphical(it.ID, "", p.X, p.Y, true)
			}
		}
	}
	return true
}

// Placements exposes a copy of the category placement map for rendering.
func (e *Engine) Placements() map[string]string { return e.store.Placements() }

// Sequence exposes a copy of the slot list for rendering.
func (e *Engine) Sequence() []string { return e.store.Sequence() }

// Points exposes a copy of the graphical placement map for rendering.
func (e *Engine) Points() map[string]runtime.Point { return e.store.Points() }
