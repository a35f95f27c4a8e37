package datepick

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/runtime"
)

func configuredPicker(t *testing.T, bag attr.Bag) *Widget {
	t.Helper()
	w := New()
	w.now = func() time.Time { return date(2026, time.March, 15) }
	w.Configure(attr.NewView(bag, nil))
	return w
}

func TestConfigureParsesPolicy(t *testing.T) {
	w := configuredPicker(t, attr.Bag{
		"min":               "2026-03-05",
		"max":               "2026-03-25",
		"disabled-dates":    `["2026-03-10"]`,
		"disabled-weekdays": "[0,6]",
		"week-start":        "1",
	})

	cfg := w.engine.Config()
	assert.Equal(t, time.Monday, cfg.WeekStart)
	assert.True(t, w.engine.Disabled(date(2026, time.March, 10)))
	assert.True(t, w.engine.Disabled(date(2026, time.March, 4)))
	assert.True(t, w.engine.Disabled(date(2026, time.March, 8))) // Sunday
}

func TestDayClickCommitsAndCloses(t *testing.T) {
	w := configuredPicker(t, attr.Bag{})
	w.HandleMessage(runtime.ClickMsg{Target: "toggle"})
	require.True(t, w.open)

	res := w.HandleMessage(runtime.ClickMsg{Target: "day:2026-03-09"})
	require.True(t, res.Handled)
	require.Len(t, res.Events, 2)
	if _, ok := res.Events[0].(runtime.DateChange); !ok {
		t.Fatalf("first event = %T", res.Events[0])
	}
	if _, ok := res.Events[1].(runtime.Response); !ok {
		t.Fatalf("second event = %T", res.Events[1])
	}
	assert.False(t, w.open)
	assert.Equal(t, date(2026, time.March, 9), w.Value())
}

func TestRangeFirstClickDoesNotCommit(t *testing.T) {
	w := configuredPicker(t, attr.Bag{"mode": "range"})
	w.HandleMessage(runtime.ClickMsg{Target: "toggle"})

	res := w.HandleMessage(runtime.ClickMsg{Target: "day:2026-03-10"})
	require.Len(t, res.Events, 1)
	assert.True(t, w.open, "popover stays open until the range completes")

	res = w.HandleMessage(runtime.ClickMsg{Target: "day:2026-03-05"})
	require.Len(t, res.Events, 2)
	assert.False(t, w.open)

	rng := w.Value().(Range)
	assert.Equal(t, date(2026, time.March, 5), rng.Start)
	assert.Equal(t, date(2026, time.March, 10), rng.End)
}

func TestDisabledDayClickUnhandled(t *testing.T) {
	w := configuredPicker(t, attr.Bag{"min": "2026-03-05"})

	res := w.HandleMessage(runtime.ClickMsg{Target: "day:2026-03-02"})
	assert.False(t, res.Handled)
	assert.Nil(t, w.Value())
}

func TestMonthNavigation(t *testing.T) {
	w := configuredPicker(t, attr.Bag{})

	require.True(t, w.HandleMessage(runtime.ClickMsg{Target: "next"}).Handled)
	assert.Equal(t, time.April, w.engine.ViewDate().Month())
	require.True(t, w.HandleMessage(runtime.ClickMsg{Target: "prev"}).Handled)
	assert.Equal(t, time.March, w.engine.ViewDate().Month())
}

func TestTimeInput(t *testing.T) {
	w := configuredPicker(t, attr.Bag{"mode": "time"})

	res := w.HandleMessage(runtime.InputMsg{Target: "time", Text: "09:30"})
	require.True(t, res.Handled)
	assert.Equal(t, TimeOfDay{Hours: 9, Minutes: 30}, w.Value())

	assert.False(t, w.HandleMessage(runtime.InputMsg{Target: "time", Text: "nonsense"}).Handled)
}

func TestValidateRequiredPerMode(t *testing.T) {
	tests := []struct {
		name string
		bag  attr.Bag
		fill func(w *Widget)
	}{
		{
			"date", attr.Bag{"required": ""},
			func(w *Widget) { w.HandleMessage(runtime.ClickMsg{Target: "day:2026-03-09"}) },
		},
		{
			"range", attr.Bag{"mode": "range", "required": ""},
			func(w *Widget) {
				w.HandleMessage(runtime.ClickMsg{Target: "day:2026-03-05"})
				w.HandleMessage(runtime.ClickMsg{Target: "day:2026-03-10"})
			},
		},
		{
			"time", attr.Bag{"mode": "time", "required": ""},
			func(w *Widget) { w.HandleMessage(runtime.InputMsg{Target: "time", Text: "08:00"}) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := configuredPicker(t, tt.bag)
			res := w.Validate()
			require.False(t, res.Valid)
			require.Len(t, res.Errors, 1)

			tt.fill(w)
			assert.True(t, w.Validate().Valid)
		})
	}
}

func TestRangeHalfOpenStillInvalid(t *testing.T) {
	w := configuredPicker(t, attr.Bag{"mode": "range", "required": ""})
	w.HandleMessage(runtime.ClickMsg{Target: "day:2026-03-05"})

	assert.False(t, w.Validate().Valid)
}

func TestReconfigurePreservesSelectionAndView(t *testing.T) {
	w := configuredPicker(t, attr.Bag{})
	w.HandleMessage(runtime.ClickMsg{Target: "day:2026-03-09"})
	w.HandleMessage(runtime.ClickMsg{Target: "next"})

	w.Configure(attr.NewView(attr.Bag{"format": "DD/MM/YYYY"}, nil))
	assert.Equal(t, date(2026, time.March, 9), w.Value())
	assert.Equal(t, time.April, w.engine.ViewDate().Month())

	// A mode switch resets the selection.
	w.Configure(attr.NewView(attr.Bag{"mode": "range"}, nil))
	assert.Equal(t, Range{}, w.Value())
}

func TestRenderFieldFormats(t *testing.T) {
	w := configuredPicker(t, attr.Bag{"format": "DD/MM/YYYY"})
	w.HandleMessage(runtime.ClickMsg{Target: "day:2026-03-09"})

	html := w.Render(runtime.RenderContext{}).HTML()
	assert.Contains(t, html, "09/03/2026")
	assert.Contains(t, html, "Monday, March 9, 2026")
}

func TestRenderPopoverGrid(t *testing.T) {
	w := configuredPicker(t, attr.Bag{})
	w.HandleMessage(runtime.ClickMsg{Target: "toggle"})

	html := w.Render(runtime.RenderContext{}).HTML()
	assert.Contains(t, html, "March 2026")
	assert.Contains(t, html, `data-target="day:2026-03-01"`)
	assert.Contains(t, html, `data-target="prev"`)
}

func TestInitialViewFollowsClock(t *testing.T) {
	w := configuredPicker(t, attr.Bag{})

	// The view month comes from the injected clock, not the wall clock.
	assert.Equal(t, 2026, w.engine.ViewDate().Year())
	assert.Equal(t, time.March, w.engine.ViewDate().Month())
}
