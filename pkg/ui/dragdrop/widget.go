package dragdrop

import (
	"fmt"
	"strings"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// Widget is the ax-drag-drop element.
//
// Attributes:
//
//	variant         "category" | "sequence" | "graphical" (default category)
//	items           JSON [{"id","label"}] or comma-separated ids
//	zones           JSON [{"id","label","x","y"}] or comma-separated ids
//	allow-multiple  boolean, multiple occupants per zone/placeholder
//	required        boolean, all items must be placed to validate
type Widget struct {
	engine   *Engine
	required bool
}

// New creates an unconfigured drag-drop widget.
func New() *Widget {
	return &Widget{engine: NewEngine(Config{})}
}

// Kind implements runtime.Widget.
func (w *Widget) Kind() string { return "ax-drag-drop" }

// Configure implements runtime.Widget. The placement state of items that
// survive the reconfiguration is carried over; items or zones that
// disappeared drop out of the state.
func (w *Widget) Configure(attrs attr.View) {
	cfg := Config{
		Variant:       ParseVariant(attrs.String("variant", "category")),
		Items:         parseItems(attrs),
		Zones:         parseZones(attrs),
		AllowMultiple: attrs.Bool("allow-multiple"),
	}
	w.required = attrs.Bool("required")

	prev := w.engine
	w.engine = NewEngine(cfg)
	if prev != nil && prev.cfg.Variant == cfg.Variant {
		w.engine.SetValue(prev.Value())
	}
}

func parseItems(attrs attr.View) []Item {
	var items []Item
	if attrs.JSON("items", &items) {
		return items
	}
	var out []Item
	for _, id := range attrs.StringList("items", nil) {
		out = append(out, Item{ID: id, Label: id})
	}
	return out
}

func parseZones(attrs attr.View) []Zone {
	var zones []Zone
	if attrs.JSON("zones", &zones) {
		return zones
	}
	var out []Zone
	for _, id := range attrs.StringList("zones", nil) {
		out = append(out, Zone{ID: id, Label: id})
	}
	return out
}

// Value implements runtime.Widget.
func (w *Widget) Value() any { return w.engine.Value() }

// SetValue implements runtime.Widget.
func (w *Widget) SetValue(v any) { w.engine.SetValue(v) }

// Validate implements runtime.Widget. A required widget with unplaced
// items yields a single aggregate error naming the remaining count.
func (w *Widget) Validate() runtime.ValidationResult {
	if !w.required {
		return runtime.OK()
	}
	remaining := len(w.engine.Unplaced())
	if remaining == 0 {
		return runtime.OK()
	}
	noun := "items"
	if remaining == 1 {
		noun = "item"
	}
	return runtime.Invalid(fmt.Sprintf("%d %s not yet placed", remaining, noun))
}

// HandleMessage implements runtime.MessageHandler.
//
//	DragMsg item→target  places (target "" removes back to the pool)
//	ClickMsg on an item  cycles it to the next zone (category variant)
func (w *Widget) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.DragMsg:
		if m.TargetID == "" || m.TargetID == "pool" {
			if !w.engine.Remove(m.ItemID) {
				return runtime.Unhandled()
			}
			return runtime.WithEvents(runtime.Drop{ItemID: m.ItemID, Value: w.engine.Value()})
		}
		if w.engine.Config().Variant == Graphical && m.TargetID == "canvas" {
			if !w.engine.DropAt(m.ItemID, m.X, m.Y) {
				return runtime.Unhandled()
			}
			return runtime.WithEvents(runtime.Drop{ItemID: m.ItemID, TargetID: "canvas", Value: w.engine.Value()})
		}
		if !w.engine.Drop(m.ItemID, m.TargetID) {
			return runtime.Unhandled()
		}
		return runtime.WithEvents(runtime.Drop{ItemID: m.ItemID, TargetID: m.TargetID, Value: w.engine.Value()})
	case runtime.ClickMsg:
		itemID, ok := strings.CutPrefix(m.Target, "item:")
		if !ok {
			return runtime.Unhandled()
		}
		zoneID, ok := w.engine.Cycle(itemID)
		if !ok {
			return runtime.Unhandled()
		}
		return runtime.WithEvents(runtime.Drop{ItemID: itemID, TargetID: zoneID, Value: w.engine.Value()})
	}
	return runtime.Unhandled()
}

// Render implements runtime.Widget.
func (w *Widget) Render(ctx runtime.RenderContext) markup.Node {
	cfg := w.engine.Config()
	root := markup.El("div").
		Class("ax-drag-drop ax-drag-drop--"+variantName(cfg.Variant)).
		Data("state", ctx.State.String())

	root = root.Append(w.renderPool(cfg))
	switch cfg.Variant {
	case Sequence:
		root = root.Append(w.renderSlots(cfg))
	case Graphical:
		root = root.Append(w.renderCanvas(cfg))
	default:
		root = root.Append(w.renderZones(cfg))
	}
	if ctx.ErrorMessage != "" {
		root = root.Append(
			markup.El("div", markup.Text(ctx.ErrorMessage)).Class("ax-error"),
		)
	}
	return root
}

func (w *Widget) renderPool(cfg Config) markup.Node {
	pool := markup.El("div").Class("ax-drag-drop__pool").Data("target", "pool")
	labels := labelIndex(cfg.Items)
	for _, itemID := range w.engine.Unplaced() {
		pool = pool.Append(renderItem(itemID, labels[itemID]))
	}
	return pool
}

func (w *Widget) renderZones(cfg Config) markup.Node {
	zones := markup.El("div").Class("ax-drag-drop__zones")
	labels := labelIndex(cfg.Items)
	placements := w.engine.Placements()
	for _, z := range cfg.Zones {
		zone := markup.El("div").
			Class("ax-drag-drop__zone").
			Data("target", z.ID).
			Append(markup.El("span", markup.Text(z.Label)).Class("ax-drag-drop__zone-label"))
		for _, it := range cfg.Items {
			if placements[it.ID] == z.ID {
				zone = zone.Append(renderItem(it.ID, labels[it.ID]))
			}
		}
		zones = zones.Append(zone)
	}
	return zones
}

func (w *Widget) renderSlots(cfg Config) markup.Node {
	slots := markup.El("ol").Class("ax-drag-drop__slots")
	labels := labelIndex(cfg.Items)
	for i, occupant := range w.engine.Sequence() {
		slot := markup.El("li").
			Class("ax-drag-drop__slot").
			Data("target", SlotTarget(i))
		if occupant != "" {
			slot = slot.Append(renderItem(occupant, labels[occupant]))
		}
		slots = slots.Append(slot)
	}
	return slots
}

func (w *Widget) renderCanvas(cfg Config) markup.Node {
	canvas := markup.El("div").Class("ax-drag-drop__canvas").Data("target", "canvas")
	labels := labelIndex(cfg.Items)
	points := w.engine.Points()
	for _, z := range cfg.Zones {
		canvas = canvas.Append(
			markup.El("div").
				Class("ax-drag-drop__placeholder").
				Data("target", z.ID).
				Attr("style", fmt.Sprintf("left:%.0f%%;top:%.0f%%", z.X, z.Y)),
		)
	}
	for _, it := range cfg.Items {
		p, ok := points[it.ID]
		if !ok {
			continue
		}
		canvas = canvas.Append(
			renderItem(it.ID, labels[it.ID]).
				Attr("style", fmt.Sprintf("left:%.0f%%;top:%.0f%%", p.X, p.Y)),
		)
	}
	return canvas
}

func renderItem(id, label string) markup.Node {
	if label == "" {
		label = id
	}
	return markup.El("div", markup.Text(label)).
		Class("ax-drag-drop__item").
		Data("target", "item:"+id).
		Attr("draggable", "true").
		Attr("tabindex", "0")
}

func labelIndex(items []Item) map[string]string {
	out := make(map[string]string, len(items))
	for _, it := range items {
		out[it.ID] = it.Label
	}
	return out
}

func variantName(v Variant) string {
	switch v {
	case Sequence:
		return "sequence"
	case Graphical:
		return "graphical"
	default:
		return "category"
	}
}
