// Package datatable implements the ax-data-table widget: a pure
// filter → sort → paginate pipeline over source rows, with selection
// tracked against the unfiltered source so view changes never invalidate
// it.
package datatable

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xuri/excelize/v2"
)

// Column describes one table column.
type Column struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Numeric bool   `json:"numeric"` // compare numerically when sorting
	Fuzzy   bool   `json:"fuzzy"`   // fuzzy filter matching for this column
}

// Config is the engine's immutable configuration.
type Config struct {
	Columns     []Column
	PageSize    int  `validate:"gte=1"` // rows per page
	MultiSelect bool // toggle membership instead of single selection
	// FuzzyDistance is the maximum edit distance for fuzzy-filter
	// columns. 0 disables fuzzy matching even on Fuzzy columns.
	FuzzyDistance int `validate:"gte=0"`
}

// Row is one source row: column key → cell value.
type Row map[string]any

// RowView is a visible row paired with its index into the unfiltered
// source, which is what selection refers to.
type RowView struct {
	SourceIndex int
	Cells       Row
}

// Engine derives the visible view from the full source on every change.
// Filtering and sorting always start from the unmodified source row
// collection, so removing a filter restores rows.
type Engine struct {
	cfg     Config
	rows    []Row
	filters map[string]string
	sortKey string
	sortDsc bool
	page    int // 1-based
	selects map[int]struct{}
}

// NewEngine creates an engine with no rows.
func NewEngine(cfg Config) *Engine {
	if cfg.PageSize < 1 {
		cfg.PageSize = 10
	}
	return &Engine{
		cfg:     cfg,
		filters: make(map[string]string),
		page:    1,
		selects: make(map[int]struct{}),
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetRows replaces the source rows. Selection is preserved for indices
// that still exist; the page clamps to the recomputed count.
func (e *Engine) SetRows(rows []Row) {
	e.rows = rows
	for idx := range e.selects {
		if idx < 0 || idx >= len(rows) {
			delete(e.selects, idx)
		}
	}
	e.clampPage()
}

// SetFilter sets a column's filter text. An empty string removes the
// filter; the page clamps to the new filtered count.
func (e *Engine) SetFilter(columnKey, text string) {
	if strings.TrimSpace(text) == "" {
		delete(e.filters, columnKey)
	} else {
		e.filters[columnKey] = text
	}
	e.clampPage()
}

// Filter returns the active filter text for a column.
func (e *Engine) Filter(columnKey string) string {
	return e.filters[columnKey]
}

// ToggleSort applies a header click: repeated clicks on the active
// column flip ascending↔descending; a different column resets to
// ascending on that column.
func (e *Engine) ToggleSort(columnKey string) {
	if e.sortKey == columnKey {
		e.sortDsc = !e.sortDsc
	} else {
		e.sortKey = columnKey
		e.sortDsc = false
	}
	e.clampPage()
}

// Sort returns the active sort column ("" when unsorted) and direction.
func (e *Engine) Sort() (columnKey string, descending bool) {
	return e.sortKey, e.sortDsc
}

// Page returns the current 1-based page index.
func (e *Engine) Page() int { return e.page }

// PageCount returns the number of pages over the filtered row count,
// never less than 1.
func (e *Engine) PageCount() int {
	n := len(e.filteredSorted())
	pages := (n + e.cfg.PageSize - 1) / e.cfg.PageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// SetPage moves to a page, clamped into [1, PageCount].
func (e *Engine) SetPage(p int) {
	e.page = p
	e.clampPage()
}

func (e *Engine) clampPage() {
	if max := e.PageCount(); e.page > max {
		e.page = max
	}
	if e.page < 1 {
		e.page = 1
	}
}

// column looks up a column by key.
func (e *Engine) column(key string) (Column, bool) {
	for _, c := range e.cfg.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// cellString stringifies a cell for filtering and string comparison.
func cellString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// matches applies one column filter to one row. Substring match is
// case-insensitive; fuzzy columns additionally accept a bounded edit
// distance against the whole cell.
func (e *Engine) matches(row Row, col Column, filter string) bool {
	cell := strings.ToLower(cellString(row[col.Key]))
	needle := strings.ToLower(filter)
	if strings.Contains(cell, needle) {
		return true
	}
	if col.Fuzzy && e.cfg.FuzzyDistance > 0 {
		return levenshtein.ComputeDistance(cell, needle) <= e.cfg.FuzzyDistance
	}
	return false
}

// filteredSorted computes the derived order: source indices surviving
// every active filter (AND), then sorted by the active column. Always
// recomputed from the full source — never from a previous derived view.
func (e *Engine) filteredSorted() []int {
	indices := make([]int, 0, len(e.rows))
	for i, row := range e.rows {
		keep := true
		for key, filter := range e.filters {
			col, ok := e.column(key)
			if !ok {
				continue
			}
			if !e.matches(row, col, filter) {
				keep = false
				break
			}
		}
		if keep {
			indices = append(indices, i)
		}
	}

	if col, ok := e.column(e.sortKey); ok {
		sort.SliceStable(indices, func(a, b int) bool {
			av := e.rows[indices[a]][col.Key]
			bv := e.rows[indices[b]][col.Key]
			if e.sortDsc {
				av, bv = bv, av
			}
			return e.less(av, bv, col)
		})
	}
	return indices
}

// less orders two cell values: nil sorts before everything (so nils lead
// in ascending and trail in descending), numeric columns compare
// numerically, everything else as case-insensitive strings.
func (e *Engine) less(a, b any, col Column) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	if col.Numeric {
		fa, aok := toFloat(a)
		fb, bok := toFloat(b)
		if aok && bok {
			return fa < fb
		}
	}
	return strings.ToLower(cellString(a)) < strings.ToLower(cellString(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// View returns the visible page of the derived view.
func (e *Engine) View() []RowView {
	indices := e.filteredSorted()
	start := (e.page - 1) * e.cfg.PageSize
	if start >= len(indices) {
		return nil
	}
	end := start + e.cfg.PageSize
	if end > len(indices) {
		end = len(indices)
	}
	out := make([]RowView, 0, end-start)
	for _, idx := range indices[start:end] {
		out = append(out, RowView{SourceIndex: idx, Cells: e.rows[idx]})
	}
	return out
}

// FilteredCount returns the row count after filtering.
func (e *Engine) FilteredCount() int {
	return len(e.filteredSorted())
}

// SelectRow applies a row click by source index. Single-select replaces
// the selection; multi-select toggles membership. Unknown indices are
// silent no-ops. Indices refer to the unfiltered source, so filter and
// sort changes never invalidate a selection.
func (e *Engine) SelectRow(sourceIndex int) bool {
	if sourceIndex < 0 || sourceIndex >= len(e.rows) {
		return false
	}
	if e.cfg.MultiSelect {
		if _, ok := e.selects[sourceIndex]; ok {
			delete(e.selects, sourceIndex)
		} else {
			e.selects[sourceIndex] = struct{}{}
		}
		return true
	}
	e.selects = map[int]struct{}{sourceIndex: {}}
	return true
}

// Deselect removes a source index from the selection.
func (e *Engine) Deselect(sourceIndex int) {
	delete(e.selects, sourceIndex)
}

// Selection returns the selected source indices in ascending order.
func (e *Engine) Selection() []int {
	out := make([]int, 0, len(e.selects))
	for idx := range e.selects {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// SetSelection replaces the selection with the given source indices;
// out-of-range indices are dropped.
func (e *Engine) SetSelection(indices []int) {
	e.selects = make(map[int]struct{})
	for _, idx := range indices {
		if idx >= 0 && idx < len(e.rows) {
			e.selects[idx] = struct{}{}
			if !e.cfg.MultiSelect && len(e.selects) == 1 {
				break
			}
		}
	}
}

// IsSelected reports selection membership for a source index.
func (e *Engine) IsSelected(sourceIndex int) bool {
	_, ok := e.selects[sourceIndex]
	return ok
}

// ExportXLSX writes the full derived view (all pages, current filter and
// sort order) as an XLSX sheet: header row, then one row per visible
// source row.
func (e *Engine) ExportXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for c, col := range e.cfg.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		label := col.Label
		if label == "" {
			label = col.Key
		}
		if err := f.SetCellValue(sheet, cell, label); err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
	}
	for r, idx := range e.filteredSorted() {
		for c, col := range e.cfg.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, e.rows[idx][col.Key]); err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
