package dragdrop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/runtime"
)

func configuredWidget(t *testing.T, bag attr.Bag) *Widget {
	t.Helper()
	w := New()
	w.Configure(attr.NewView(bag, nil))
	return w
}

func TestConfigureParsesJSONItems(t *testing.T) {
	w := configuredWidget(t, attr.Bag{
		"items": `[{"id":"a","label":"Apple"},{"id":"b","label":"Banana"}]`,
		"zones": `[{"id":"x","label":"Crate"}]`,
	})

	cfg := w.engine.Config()
	require.Len(t, cfg.Items, 2)
	assert.Equal(t, "Apple", cfg.Items[0].Label)
	require.Len(t, cfg.Zones, 1)
}

func TestConfigureCommaListFallback(t *testing.T) {
	w := configuredWidget(t, attr.Bag{"items": "a, b", "zones": "x"})

	cfg := w.engine.Config()
	require.Len(t, cfg.Items, 2)
	assert.Equal(t, "a", cfg.Items[0].ID)
	assert.Equal(t, "a", cfg.Items[0].Label)
}

func TestReconfigureCarriesPlacements(t *testing.T) {
	w := configuredWidget(t, attr.Bag{"items": "a,b", "zones": "x,y"})
	res := w.HandleMessage(runtime.DragMsg{ItemID: "a", TargetID: "x"})
	require.True(t, res.Handled)

	// Same variant, new zone added: a's placement survives.
	w.Configure(attr.NewView(attr.Bag{"items": "a,b", "zones": "x,y,z"}, nil))
	assert.Equal(t, map[string]string{"a": "x"}, w.engine.Placements())

	// Variant switch resets state.
	w.Configure(attr.NewView(attr.Bag{"variant": "sequence", "items": "a,b"}, nil))
	assert.Equal(t, []string{"", ""}, w.engine.Sequence())
}

func TestValidateAggregateError(t *testing.T) {
	w := configuredWidget(t, attr.Bag{"items": "a,b,c", "zones": "x", "required": ""})

	res := w.Validate()
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "3 items not yet placed", res.Errors[0])

	w.HandleMessage(runtime.DragMsg{ItemID: "a", TargetID: "x"})
	res = w.Validate()
	assert.Equal(t, []string{"2 items not yet placed"}, res.Errors)
}

func TestValidateSingularNoun(t *testing.T) {
	w := configuredWidget(t, attr.Bag{"items": "a", "zones": "x", "required": ""})
	res := w.Validate()
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "1 item not yet placed", res.Errors[0])
}

func TestDragMessageEmitsDropWithFullValue(t *testing.T) {
	w := configuredWidget(t, attr.Bag{"items": "a,b", "zones": "x"})

	res := w.HandleMessage(runtime.DragMsg{ItemID: "a", TargetID: "x"})
	require.True(t, res.Handled)
	require.Len(t, res.Events, 1)

	drop, ok := res.Events[0].(runtime.Drop)
	require.True(t, ok)
	assert.Equal(t, "a", drop.ItemID)
	assert.Equal(t, "x", drop.TargetID)
	assert.Equal(t, map[string]string{"a": "x"}, drop.Value)
}

func TestDragToPoolRemoves(t *testing.T) {
	w := configuredWidget(t, attr.Bag{"items": "a", "zones": "x"})
	w.HandleMessage(runtime.DragMsg{ItemID: "a", TargetID: "x"})

	res := w.HandleMessage(runtime.DragMsg{ItemID: "a", TargetID: "pool"})
	require.True(t, res.Handled)
	drop := res.Events[0].(runtime.Drop)
	assert.Empty(t, drop.TargetID)
	assert.Empty(t, w.engine.Placements())
}

func TestUnknownDragUnhandled(t *testing.T) {
	w := configuredWidget(t, attr.Bag{"items": "a", "zones": "x"})

	res := w.HandleMessage(runtime.DragMsg{ItemID: "ghost", TargetID: "x"})
	assert.False(t, res.Handled)
	assert.Empty(t, res.Events)
}

func TestClickCyclesItem(t *testing.T) {
	w := configuredWidget(t, attr.Bag{"items": "a", "zones": "x,y"})

	res := w.HandleMessage(runtime.ClickMsg{Target: "item:a"})
	require.True(t, res.Handled)
	drop := res.Events[0].(runtime.Drop)
	assert.Equal(t, "x", drop.TargetID)

	res = w.HandleMessage(runtime.ClickMsg{Target: "item:a"})
	require.True(t, res.Handled)
	assert.Equal(t, "y", res.Events[0].(runtime.Drop).TargetID)
}

func TestCanvasDrop(t *testing.T) {
	w := configuredWidget(t, attr.Bag{
		"variant": "graphical",
		"items":   "pin",
		"zones":   `[{"id":"spot","x":30,"y":40}]`,
	})

	res := w.HandleMessage(runtime.DragMsg{ItemID: "pin", TargetID: "canvas", X: 12, Y: 34})
	require.True(t, res.Handled)

	points := w.engine.Points()
	require.Contains(t, points, "pin")
	assert.Equal(t, runtime.Point{X: 12, Y: 34}, points["pin"])
}

func TestRenderContainsPoolZonesAndItems(t *testing.T) {
	w := configuredWidget(t, attr.Bag{"items": "a,b", "zones": "x"})
	w.HandleMessage(runtime.DragMsg{ItemID: "a", TargetID: "x"})

	html := w.Render(runtime.RenderContext{}).HTML()
	assert.Contains(t, html, `data-target="pool"`)
	assert.Contains(t, html, `data-target="x"`)
	assert.Contains(t, html, `data-target="item:a"`)
	assert.Contains(t, html, `data-target="item:b"`)
}

func TestRenderShowsError(t *testing.T) {
	w := configuredWidget(t, attr.Bag{"items": "a", "zones": "x"})

	html := w.Render(runtime.RenderContext{ErrorMessage: "1 item not yet placed"}).HTML()
	assert.Contains(t, html, "1 item not yet placed")
	assert.Contains(t, html, "ax-error")
}
