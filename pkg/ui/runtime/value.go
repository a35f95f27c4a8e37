package runtime

import "sort"

// Point is a 2D position for graphical placements, optionally snapped to
// a named placeholder.
type Point struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Placeholder string  `json:"placeholderId,omitempty"`
}

// ValueStore is the per-widget mutable state container. It is owned by
// exactly one widget and never handed out: every accessor that returns a
// collection returns a copy, and external code reaches the store only
// through the widget's Value/SetValue contract.
type ValueStore struct {
	scalar     any
	selected   map[string]struct{}
	selectRank map[string]int // insertion order for deterministic reads
	nextRank   int
	placements map[string]string
	sequence   []string
	points     map[string]Point
}

// NewValueStore creates an empty store.
func NewValueStore() *ValueStore {
	return &ValueStore{
		selected:   make(map[string]struct{}),
		selectRank: make(map[string]int),
		placements: make(map[string]string),
		points:     make(map[string]Point),
	}
}

// Scalar returns the single committed value, or nil when unset.
func (v *ValueStore) Scalar() any {
	return v.scalar
}

// SetScalar stores a single committed value.
func (v *ValueStore) SetScalar(val any) {
	v.scalar = val
}

// Select adds an id to the selection set.
func (v *ValueStore) Select(id string) {
	if _, ok := v.selected[id]; ok {
		return
	}
	v.selected[id] = struct{}{}
	v.selectRank[id] = v.nextRank
	v.nextRank++
}

// Deselect removes an id from the selection set.
func (v *ValueStore) Deselect(id string) {
	delete(v.selected, id)
	delete(v.selectRank, id)
}

// Toggle flips an id's membership and reports the new state.
func (v *ValueStore) Toggle(id string) bool {
	if _, ok := v.selected[id]; ok {
		v.Deselect(id)
		return false
	}
	v.Select(id)
	return true
}

// SelectOnly clears the selection set and selects a single id.
func (v *ValueStore) SelectOnly(id string) {
	v.ClearSelection()
	v.Select(id)
}

// IsSelected reports membership in the selection set.
func (v *ValueStore) IsSelected(id string) bool {
	_, ok := v.selected[id]
	return ok
}

// Selection returns the selected ids in selection order.
func (v *ValueStore) Selection() []string {
	out := make([]string, 0, len(v.selected))
	for id := range v.selected {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return v.selectRank[out[i]] < v.selectRank[out[j]]
	})
	return out
}

// SelectionSize returns the number of selected ids.
func (v *ValueStore) SelectionSize() int {
	return len(v.selected)
}

// ClearSelection empties the selection set.
func (v *ValueStore) ClearSelection() {
	v.selected = make(map[string]struct{})
	v.selectRank = make(map[string]int)
	v.nextRank = 0
}

// SetPlacement assigns an item to a destination.
func (v *ValueStore) SetPlacement(itemID, targetID string) {
	v.placements[itemID] = targetID
}

// Placement returns an item's destination, if placed.
func (v *ValueStore) Placement(itemID string) (string, bool) {
	t, ok := v.placements[itemID]
	return t, ok
}

// RemovePlacement unassigns an item.
func (v *ValueStore) RemovePlacement(itemID string) {
	delete(v.placements, itemID)
}

// Placements returns a copy of the placement map.
func (v *ValueStore) Placements() map[string]string {
	out := make(map[string]string, len(v.placements))
	for k, val := range v.placements {
		out[k] = val
	}
	return out
}

// OccupantsOf returns the items currently assigned to a destination,
// sorted for determinism.
func (v *ValueStore) OccupantsOf(targetID string) []string {
	var out []string
	for item, target := range v.placements {
		if target == targetID {
			out = append(out, item)
		}
	}
	sort.Strings(out)
	return out
}

// ClearPlacements unassigns every item.
func (v *ValueStore) ClearPlacements() {
	v.placements = make(map[string]string)
}

// SetSequence replaces the ordered slot assignment. Empty strings mark
// empty slots.
func (v *ValueStore) SetSequence(slots []string) {
	v.sequence = append([]string(nil), slots...)
}

// Sequence returns a copy of the ordered slot assignment.
func (v *ValueStore) Sequence() []string {
	return append([]string(nil), v.sequence...)
}

// SlotAt returns the occupant of slot i, or "" for an empty or
// out-of-range slot.
func (v *ValueStore) SlotAt(i int) string {
	if i < 0 || i >= len(v.sequence) {
		return ""
	}
	return v.sequence[i]
}

// SetSlot assigns slot i, returning the displaced occupant ("" if the
// slot was empty). Out-of-range assignments are ignored.
func (v *ValueStore) SetSlot(i int, itemID string) string {
	if i < 0 || i >= len(v.sequence) {
		return ""
	}
	prev := v.sequence[i]
	v.sequence[i] = itemID
	return prev
}

// SetPoint assigns a 2D position to an item.
func (v *ValueStore) SetPoint(itemID string, p Point) {
	v.points[itemID] = p
}

// PointOf returns an item's position, if placed.
func (v *ValueStore) PointOf(itemID string) (Point, bool) {
	p, ok := v.points[itemID]
	return p, ok
}

// RemovePoint unassigns an item's position.
func (v *ValueStore) RemovePoint(itemID string) {
	delete(v.points, itemID)
}

// Points returns a copy of the position map.
func (v *ValueStore) Points() map[string]Point {
	out := make(map[string]Point, len(v.points))
	for k, p := range v.points {
		out[k] = p
	}
	return out
}

// Reset discards all state, returning the store to its attached-empty
// shape.
func (v *ValueStore) Reset() {
	v.scalar = nil
	v.ClearSelection()
	v.placements = make(map[string]string)
	v.sequence = nil
	v.points = make(map[string]Point)
}
