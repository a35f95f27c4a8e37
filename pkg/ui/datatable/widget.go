package datatable

import (
	"io"
	"strconv"
	"strings"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// Widget is the ax-data-table element.
//
// Attributes:
//
//	columns         JSON [{"key","label","numeric","fuzzy"}]
//	rows            JSON [{"<key>": value, ...}]
//	page-size       rows per page (default 10)
//	multi-select    boolean
//	fuzzy-distance  max edit distance for fuzzy columns (default 0, off)
//	required        boolean, at least one row must be selected
type Widget struct {
	engine   *Engine
	required bool
}

// New creates an unconfigured data table.
func New() *Widget {
	return &Widget{engine: NewEngine(Config{})}
}

// Kind implements runtime.Widget.
func (w *Widget) Kind() string { return "ax-data-table" }

// Configure implements runtime.Widget. Filters, sort, page, and
// selection survive a reconfiguration; rows and columns are replaced.
func (w *Widget) Configure(attrs attr.View) {
	cfg := Config{
		PageSize:      attrs.Int("page-size", 10),
		MultiSelect:   attrs.Bool("multi-select"),
		FuzzyDistance: attrs.Int("fuzzy-distance", 0),
	}
	attrs.JSON("columns", &cfg.Columns)
	if attrs.Check(&cfg) != nil {
		if cfg.PageSize < 1 {
			cfg.PageSize = 10
		}
		if cfg.FuzzyDistance < 0 {
			cfg.FuzzyDistance = 0
		}
	}
	var rows []Row
	attrs.JSON("rows", &rows)

	prev := w.engine
	w.engine = NewEngine(cfg)
	w.engine.SetRows(rows)
	if prev != nil {
		for _, col := range cfg.Columns {
			if f := prev.Filter(col.Key); f != "" {
				w.engine.SetFilter(col.Key, f)
			}
		}
		if key, desc := prev.Sort(); key != "" {
			w.engine.ToggleSort(key)
			if desc {
				w.engine.ToggleSort(key)
			}
		}
		w.engine.SetSelection(prev.Selection())
		w.engine.SetPage(prev.Page())
	}
	w.required = attrs.Bool("required")
}

// ObserveAttribute implements runtime.AttributeObserver: a rows-only
// change swaps the source rows in place without resetting filters, sort,
// page, or selection.
func (w *Widget) ObserveAttribute(name, value string, attrs attr.View) bool {
	if name != "rows" {
		return false
	}
	var rows []Row
	if !attrs.JSON("rows", &rows) {
		rows = nil
	}
	w.engine.SetRows(rows)
	return true
}

// Value implements runtime.Widget: the selected source-row indices.
func (w *Widget) Value() any { return w.engine.Selection() }

// SetValue implements runtime.Widget.
func (w *Widget) SetValue(v any) {
	indices, ok := v.([]int)
	if !ok {
		return
	}
	w.engine.SetSelection(indices)
}

// Validate implements runtime.Widget.
func (w *Widget) Validate() runtime.ValidationResult {
	if w.required && len(w.engine.Selection()) == 0 {
		return runtime.Invalid("a row must be selected")
	}
	return runtime.OK()
}

// HandleMessage implements runtime.MessageHandler.
//
//	InputMsg "filter:<key>"  sets a column filter
//	ClickMsg "sort:<key>"    toggles the sort column/direction
//	ClickMsg "page:prev"/"page:next"/"page:<n>"
//	ClickMsg "row:<idx>"     selects by source index
//	ClickMsg "cell:<idx>:<key>"
func (w *Widget) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.InputMsg:
		key, ok := strings.CutPrefix(m.Target, "filter:")
		if !ok {
			return runtime.Unhandled()
		}
		w.engine.SetFilter(key, m.Text)
		return runtime.WithEvents(runtime.PageChange{Page: w.engine.Page()})
	case runtime.ClickMsg:
		switch {
		case strings.HasPrefix(m.Target, "sort:"):
			key := strings.TrimPrefix(m.Target, "sort:")
			if _, ok := w.engine.column(key); !ok {
				return runtime.Unhandled()
			}
			w.engine.ToggleSort(key)
			_, desc := w.engine.Sort()
			return runtime.WithEvents(runtime.SortChange{Column: key, Descending: desc})
		case strings.HasPrefix(m.Target, "page:"):
			return w.handlePage(strings.TrimPrefix(m.Target, "page:"))
		case strings.HasPrefix(m.Target, "row:"):
			idx, err := strconv.Atoi(strings.TrimPrefix(m.Target, "row:"))
			if err != nil || !w.engine.SelectRow(idx) {
				return runtime.Unhandled()
			}
			return runtime.WithEvents(runtime.RowSelect{Rows: w.engine.Selection()})
		case strings.HasPrefix(m.Target, "cell:"):
			parts := strings.SplitN(strings.TrimPrefix(m.Target, "cell:"), ":", 2)
			if len(parts) != 2 {
				return runtime.Unhandled()
			}
			idx, err := strconv.Atoi(parts[0])
			if err != nil {
				return runtime.Unhandled()
			}
			return runtime.WithEvents(runtime.CellClick{Row: idx, Column: parts[1]})
		}
	}
	return runtime.Unhandled()
}

func (w *Widget) handlePage(arg string) runtime.HandleResult {
	before := w.engine.Page()
	switch arg {
	case "prev":
		w.engine.SetPage(before - 1)
	case "next":
		w.engine.SetPage(before + 1)
	default:
		p, err := strconv.Atoi(arg)
		if err != nil {
			return runtime.Unhandled()
		}
		w.engine.SetPage(p)
	}
	if w.engine.Page() == before {
		return runtime.Handled()
	}
	return runtime.WithEvents(runtime.PageChange{Page: w.engine.Page()})
}

// Render implements runtime.Widget.
func (w *Widget) Render(ctx runtime.RenderContext) markup.Node {
	cfg := w.engine.Config()
	root := markup.El("div").
		Class("ax-data-table").
		Data("state", ctx.State.String())

	table := markup.El("table").Class("ax-data-table__table")
	table = table.Append(w.renderHead(cfg))
	table = table.Append(w.renderBody(cfg))
	root = root.Append(table, w.renderPager())
	if ctx.ErrorMessage != "" {
		root = root.Append(
			markup.El("div", markup.Text(ctx.ErrorMessage)).Class("ax-error"),
		)
	}
	return root
}

func (w *Widget) renderHead(cfg Config) markup.Node {
	sortKey, desc := w.engine.Sort()
	headerRow := markup.El("tr")
	for _, col := range cfg.Columns {
		label := col.Label
		if label == "" {
			label = col.Key
		}
		th := markup.El("th").Data("target", "sort:"+col.Key)
		th = th.Append(markup.Text(markup.Truncate(label, 40)))
		if col.Key == sortKey {
			arrow := "▲"
			if desc {
				arrow = "▼"
			}
			th = th.Append(markup.El("span", markup.Text(arrow)).Class("ax-data-table__sort"))
		}
		headerRow = headerRow.Append(th)
	}
	filterRow := markup.El("tr").Class("ax-data-table__filters")
	for _, col := range cfg.Columns {
		filterRow = filterRow.Append(
			markup.El("td").Append(
				markup.El("input").
					Data("target", "filter:"+col.Key).
					Attr("value", w.engine.Filter(col.Key)).
					Attr("placeholder", "Filter…"),
			),
		)
	}
	return markup.El("thead", headerRow, filterRow)
}

func (w *Widget) renderBody(cfg Config) markup.Node {
	body := markup.El("tbody")
	for _, rv := range w.engine.View() {
		tr := markup.El("tr").Data("target", "row:"+strconv.Itoa(rv.SourceIndex))
		if w.engine.IsSelected(rv.SourceIndex) {
			tr = tr.Class("ax-data-table__row--selected")
		}
		for _, col := range cfg.Columns {
			tr = tr.Append(
				markup.El("td", markup.Text(cellString(rv.Cells[col.Key]))).
					Data("target", "cell:"+strconv.Itoa(rv.SourceIndex)+":"+col.Key),
			)
		}
		body = body.Append(tr)
	}
	return body
}

func (w *Widget) renderPager() markup.Node {
	return markup.El("div").Class("ax-data-table__pager").Append(
		markup.El("button", markup.Text("‹")).Data("target", "page:prev"),
		markup.Textf("%d / %d", w.engine.Page(), w.engine.PageCount()),
		markup.El("button", markup.Text("›")).Data("target", "page:next"),
	)
}

// ExportXLSX writes the current derived view as a spreadsheet.
func (w *Widget) ExportXLSX(out io.Writer) error {
	return w.engine.ExportXLSX(out)
}
