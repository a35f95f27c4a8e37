// Command axui-demo mounts a form of ax-* widgets, drives a scripted
// interaction sequence against them, and prints the rendered markup and
// event stream. It doubles as a smoke test of the widget contract
// without a browser host.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/datatable"
	"github.com/axfoundry/axui/pkg/ui/datepick"
	"github.com/axfoundry/axui/pkg/ui/dragdrop"
	"github.com/axfoundry/axui/pkg/ui/host"
	"github.com/axfoundry/axui/pkg/ui/runtime"
	"github.com/axfoundry/axui/pkg/ui/theme"
	"github.com/axfoundry/axui/pkg/ui/widgets"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	eventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	htmlStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// captureTarget is a render target that remembers the last mounted HTML.
type captureTarget struct {
	html string
	css  string
}

func (t *captureTarget) Mount(html string)      { t.html = html }
func (t *captureTarget) MountStyles(css string) { t.css = css }

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	form := host.NewForm()
	form.Bus().Subscribe(func(env runtime.Envelope) {
		fmt.Println(eventStyle.Render(fmt.Sprintf("  event %-12s %T %+v", env.WidgetID, env.Event, env.Event)))
	})

	targets := map[string]*captureTarget{}
	mount := func(id string, w runtime.Widget, attrs attr.Bag) *runtime.Lifecycle {
		lc := runtime.New(w,
			runtime.WithID(id),
			runtime.WithAttributes(attrs),
			runtime.WithTheme(theme.Dark()),
			runtime.WithLogger(logger),
		)
		form.Add(lc)
		target := &captureTarget{}
		targets[id] = target
		lc.Attach(target)
		return lc
	}

	fmt.Println(titleStyle.Render("ax-choice"))
	choice := mount("color", widgets.NewChoice(), attr.Bag{
		"options":  `[{"id":"red","label":"Red"},{"id":"green","label":"Green"},{"id":"blue","label":"Blue"}]`,
		"required": "",
	})
	choice.Dispatch(runtime.ClickMsg{Target: "opt:green"})

	fmt.Println(titleStyle.Render("ax-drag-drop (category)"))
	dd := mount("sorter", dragdrop.New(), attr.Bag{
		"items": `[{"id":"a","label":"Alpha"},{"id":"b","label":"Beta"}]`,
		"zones": `[{"id":"x","label":"Zone X"},{"id":"y","label":"Zone Y"}]`,
	})
	dd.Dispatch(runtime.DragMsg{ItemID: "a", TargetID: "x"})
	dd.Dispatch(runtime.DragMsg{ItemID: "b", TargetID: "x"}) // evicts a

	fmt.Println(titleStyle.Render("ax-date-picker (range)"))
	dp := mount("stay", datepick.New(), attr.Bag{"mode": "range"})
	dp.Dispatch(runtime.ClickMsg{Target: "toggle"})
	dp.Dispatch(runtime.ClickMsg{Target: "day:2026-03-10"})
	dp.Dispatch(runtime.ClickMsg{Target: "day:2026-03-05"}) // swaps to 05..10

	fmt.Println(titleStyle.Render("ax-data-table"))
	dt := mount("people", datatable.New(), attr.Bag{
		"columns":   `[{"key":"name","label":"Name"},{"key":"age","label":"Age","numeric":true}]`,
		"rows":      `[{"name":"Bob","age":25},{"name":"Alice","age":30}]`,
		"page-size": "10",
	})
	dt.Dispatch(runtime.ClickMsg{Target: "sort:name"})
	dt.Dispatch(runtime.ClickMsg{Target: "row:1"})

	fmt.Println(titleStyle.Render("ax-timer (3 scripted ticks)"))
	timer := mount("clock", widgets.NewTimer(), attr.Bag{"duration": "2"})
	sched := host.NewScheduler(time.Second)
	cancel := sched.Register(timer)
	defer cancel()
	base := time.Now()
	for i := 0; i <= 2; i++ {
		sched.Deliver(base.Add(time.Duration(i) * time.Second))
	}

	fmt.Println(titleStyle.Render("aggregate"))
	for id, value := range form.Values() {
		fmt.Printf("  %-8s %v\n", id, value)
	}
	if res := form.ValidateAll(); !res.Valid {
		fmt.Println(errStyle.Render(fmt.Sprintf("  invalid: %v", res.Errors)))
	} else {
		fmt.Println("  all valid")
	}

	for _, id := range form.IDs() {
		fmt.Println(titleStyle.Render("markup: " + id))
		fmt.Println(htmlStyle.Render("  " + targets[id].html))
	}

	form.Close()
	sched.Stop()
}
