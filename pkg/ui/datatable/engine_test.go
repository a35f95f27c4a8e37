package datatable

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func peopleEngine(cfg Config) *Engine {
	if cfg.Columns == nil {
		cfg.Columns = []Column{
			{Key: "name", Label: "Name"},
			{Key: "age", Label: "Age", Numeric: true},
		}
	}
	e := NewEngine(cfg)
	e.SetRows([]Row{
		{"name": "Bob", "age": 34},
		{"name": "Alice", "age": 29},
		{"name": "Carol", "age": nil},
		{"name": "dave", "age": 41},
	})
	return e
}

func names(views []RowView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, cellString(v.Cells["name"]))
	}
	return out
}

func TestSortToggle(t *testing.T) {
	e := peopleEngine(Config{})

	e.ToggleSort("name")
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "dave"}, names(e.View()))

	e.ToggleSort("name")
	key, desc := e.Sort()
	assert.Equal(t, "name", key)
	assert.True(t, desc)
	assert.Equal(t, []string{"dave", "Carol", "Bob", "Alice"}, names(e.View()))

	// A different column resets to ascending.
	e.ToggleSort("age")
	_, desc = e.Sort()
	assert.False(t, desc)
}

func TestSortNumericAndNils(t *testing.T) {
	e := peopleEngine(Config{})

	e.ToggleSort("age")
	// Nil leads ascending; numeric column compares numerically (29 < 34).
	assert.Equal(t, []string{"Carol", "Alice", "Bob", "dave"}, names(e.View()))

	e.ToggleSort("age")
	assert.Equal(t, []string{"dave", "Bob", "Alice", "Carol"}, names(e.View()))
}

func TestFilterCaseInsensitiveSubstring(t *testing.T) {
	e := peopleEngine(Config{})

	e.SetFilter("name", "ALI")
	assert.Equal(t, []string{"Alice"}, names(e.View()))
	assert.Equal(t, 1, e.FilteredCount())

	// Removing the filter restores the full source.
	e.SetFilter("name", "")
	assert.Equal(t, 4, e.FilteredCount())
}

func TestFiltersCombineWithAnd(t *testing.T) {
	e := peopleEngine(Config{})

	e.SetFilter("name", "a") // Carol, dave, Alice
	e.SetFilter("age", "4")  // 34, 41
	assert.Equal(t, []string{"dave"}, names(e.View()))
}

func TestFuzzyFilter(t *testing.T) {
	e := NewEngine(Config{
		Columns:       []Column{{Key: "name", Fuzzy: true}},
		FuzzyDistance: 2,
	})
	e.SetRows([]Row{{"name": "Alice"}, {"name": "Bob"}})

	e.SetFilter("name", "alce") // one deletion away from "alice"
	assert.Equal(t, []string{"Alice"}, names(e.View()))

	// Distance 0 disables fuzzy even on fuzzy columns.
	e2 := NewEngine(Config{Columns: []Column{{Key: "name", Fuzzy: true}}})
	e2.SetRows([]Row{{"name": "Alice"}})
	e2.SetFilter("name", "alce")
	assert.Zero(t, e2.FilteredCount())
}

func TestPaginationClampOnFilter(t *testing.T) {
	e := NewEngine(Config{
		Columns:  []Column{{Key: "n"}, {Key: "tag"}},
		PageSize: 10,
	})
	rows := make([]Row, 20)
	for i := range rows {
		rows[i] = Row{"n": i}
	}
	// Rows 0..4 get a marker so a filter can narrow to five rows.
	for i := 0; i < 5; i++ {
		rows[i]["tag"] = "keep"
	}
	e.SetRows(rows)
	e.SetPage(2)
	require.Equal(t, 2, e.Page())

	// Narrowing to one page snaps the current page back to 1.
	e.SetFilter("tag", "keep")
	assert.Equal(t, 1, e.Page())
	assert.Equal(t, 1, e.PageCount())
}

func TestSetPageClamped(t *testing.T) {
	e := peopleEngine(Config{PageSize: 2})

	e.SetPage(99)
	assert.Equal(t, 2, e.Page())
	e.SetPage(-3)
	assert.Equal(t, 1, e.Page())
	assert.Equal(t, 2, e.PageCount())
}

func TestViewPaged(t *testing.T) {
	e := peopleEngine(Config{PageSize: 3})

	require.Len(t, e.View(), 3)
	e.SetPage(2)
	assert.Len(t, e.View(), 1)
}

func TestSelectionBySourceIndexSurvivesViewChanges(t *testing.T) {
	e := peopleEngine(Config{})
	require.True(t, e.SelectRow(1)) // Alice

	e.SetFilter("name", "bob") // Alice filtered out of view
	assert.Equal(t, []int{1}, e.Selection())

	e.SetFilter("name", "")
	e.ToggleSort("name")
	assert.True(t, e.IsSelected(1))
}

func TestSingleSelectReplaces(t *testing.T) {
	e := peopleEngine(Config{})
	e.SelectRow(0)
	e.SelectRow(2)
	assert.Equal(t, []int{2}, e.Selection())
}

func TestMultiSelectToggles(t *testing.T) {
	e := peopleEngine(Config{MultiSelect: true})
	e.SelectRow(0)
	e.SelectRow(2)
	assert.Equal(t, []int{0, 2}, e.Selection())

	e.SelectRow(0)
	assert.Equal(t, []int{2}, e.Selection())
}

func TestSelectOutOfRangeIgnored(t *testing.T) {
	e := peopleEngine(Config{})
	assert.False(t, e.SelectRow(-1))
	assert.False(t, e.SelectRow(99))
	assert.Empty(t, e.Selection())
}

func TestSetRowsPrunesSelection(t *testing.T) {
	e := peopleEngine(Config{MultiSelect: true})
	e.SelectRow(0)
	e.SelectRow(3)

	e.SetRows([]Row{{"name": "Only"}})
	assert.Equal(t, []int{0}, e.Selection())
}

func TestExportXLSX(t *testing.T) {
	e := peopleEngine(Config{})
	e.ToggleSort("name")
	e.SetFilter("name", "a") // Alice, Carol, dave

	var buf bytes.Buffer
	require.NoError(t, e.ExportXLSX(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + three filtered rows

	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Age", rows[0][1])
	// Sorted ascending by name; all pages exported, not just the current.
	assert.Equal(t, "Alice", rows[1][0])
	assert.Equal(t, "Carol", rows[2][0])
	assert.Equal(t, "dave", rows[3][0])
}
