// Package widgets provides the peripheral ax-* widgets: input and
// display elements that follow the base contract without a dedicated
// state machine package.
package widgets

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/axfoundry/axui/pkg/ui/attr"
	"github.com/axfoundry/axui/pkg/ui/markup"
	"github.com/axfoundry/axui/pkg/ui/runtime"
)

// Option is one selectable entry of a choice widget.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Choice is the ax-choice element: single or multiple selection over a
// flat option list, or a matrix of prompt rows each requiring one
// selection.
//
// Attributes:
//
//	options   JSON [{"id","label"}] or comma-separated ids
//	rows      JSON [{"id","label"}] — enables matrix mode
//	multiple  boolean, toggle membership instead of replacing
//	shuffle   boolean, randomize display order
//	required  boolean
type Choice struct {
	options  []Option
	rows     []Option
	multiple bool
	required bool
	shuffle  bool

	display []int // indices into options, in display order
	store   *runtime.ValueStore
	matrix  map[string]string // rowID → optionID in matrix mode

	rand *rand.Rand // shuffle source, injectable for tests
}

// NewChoice creates an unconfigured choice widget.
func NewChoice() *Choice {
	return &Choice{
		store:  runtime.NewValueStore(),
		matrix: make(map[string]string),
		rand:   rand.New(rand.NewSource(rand.Int63())),
	}
}

// Kind implements runtime.Widget.
func (c *Choice) Kind() string { return "ax-choice" }

// Configure implements runtime.Widget.
func (c *Choice) Configure(attrs attr.View) {
	c.options = parseOptions(attrs, "options")
	c.rows = parseOptions(attrs, "rows")
	c.multiple = attrs.Bool("multiple")
	c.required = attrs.Bool("required")
	c.shuffle = attrs.Bool("shuffle")
	c.reshuffle()
	c.pruneSelection()
}

// ObserveAttribute implements runtime.AttributeObserver: the shuffled
// display order is re-derived only when the option list itself changes,
// not on cosmetic flag flips.
func (c *Choice) ObserveAttribute(name, value string, attrs attr.View) bool {
	switch name {
	case "options", "rows":
		return false // full reconfigure, including a reshuffle
	case "multiple":
		c.multiple = attrs.Bool("multiple")
		c.pruneSelection()
		return true
	case "required":
		c.required = attrs.Bool("required")
		return true
	default:
		return false
	}
}

func parseOptions(attrs attr.View, key string) []Option {
	var opts []Option
	if attrs.JSON(key, &opts) {
		return opts
	}
	var out []Option
	for _, id := range attrs.StringList(key, nil) {
		out = append(out, Option{ID: id, Label: id})
	}
	return out
}

func (c *Choice) reshuffle() {
	c.display = make([]int, len(c.options))
	for i := range c.display {
		c.display[i] = i
	}
	if c.shuffle {
		c.rand.Shuffle(len(c.display), func(i, j int) {
			c.display[i], c.display[j] = c.display[j], c.display[i]
		})
	}
}

// pruneSelection drops selections referencing options that no longer
// exist, and trims a multi-selection down to one when multiple is off.
func (c *Choice) pruneSelection() {
	known := make(map[string]bool, len(c.options))
	for _, o := range c.options {
		known[o.ID] = true
	}
	for _, id := range c.store.Selection() {
		if !known[id] {
			c.store.Deselect(id)
		}
	}
	if !c.multiple {
		if sel := c.store.Selection(); len(sel) > 1 {
			for _, id := range sel[1:] {
				c.store.Deselect(id)
			}
		}
	}
	knownRows := make(map[string]bool, len(c.rows))
	for _, r := range c.rows {
		knownRows[r.ID] = true
	}
	for rowID, optID := range c.matrix {
		if !knownRows[rowID] || !known[optID] {
			delete(c.matrix, rowID)
		}
	}
}

func (c *Choice) matrixMode() bool { return len(c.rows) > 0 }

// Value implements runtime.Widget: a row→option map in matrix mode, the
// selected id list when multiple, the single selected id or "" otherwise.
func (c *Choice) Value() any {
	if c.matrixMode() {
		out := make(map[string]string, len(c.matrix))
		for k, v := range c.matrix {
			out[k] = v
		}
		return out
	}
	if c.multiple {
		return c.store.Selection()
	}
	if sel := c.store.Selection(); len(sel) > 0 {
		return sel[0]
	}
	return ""
}

// SetValue implements runtime.Widget.
func (c *Choice) SetValue(v any) {
	if c.matrixMode() {
		m, ok := v.(map[string]string)
		if !ok {
			return
		}
		c.matrix = make(map[string]string, len(m))
		for k, val := range m {
			c.matrix[k] = val
		}
		c.pruneSelection()
		return
	}
	switch val := v.(type) {
	case string:
		c.store.ClearSelection()
		if val != "" {
			c.store.Select(val)
		}
	case []string:
		c.store.ClearSelection()
		for _, id := range val {
			c.store.Select(id)
		}
	default:
		return
	}
	c.pruneSelection()
}

// Validate implements runtime.Widget. Matrix mode reports a single
// aggregate error naming the remaining-incomplete row count.
func (c *Choice) Validate() runtime.ValidationResult {
	if !c.required {
		return runtime.OK()
	}
	if c.matrixMode() {
		remaining := 0
		for _, row := range c.rows {
			if _, ok := c.matrix[row.ID]; !ok {
				remaining++
			}
		}
		if remaining == 0 {
			return runtime.OK()
		}
		if remaining == 1 {
			return runtime.Invalid("1 row still needs a selection")
		}
		return runtime.Invalid(fmt.Sprintf("%d rows still need a selection", remaining))
	}
	if c.store.SelectionSize() == 0 {
		return runtime.Invalid("a selection is required")
	}
	return runtime.OK()
}

// HandleMessage implements runtime.MessageHandler.
//
//	ClickMsg "opt:<id>"        toggles/replaces the flat selection
//	ClickMsg "opt:<row>:<id>"  sets a matrix row's selection
func (c *Choice) HandleMessage(msg runtime.Message) runtime.HandleResult {
	click, ok := msg.(runtime.ClickMsg)
	if !ok {
		return runtime.Unhandled()
	}
	target, ok := strings.CutPrefix(click.Target, "opt:")
	if !ok {
		return runtime.Unhandled()
	}
	if c.matrixMode() {
		rowID, optID, ok := cutColon(target)
		if !ok || !c.knownRow(rowID) || !c.knownOption(optID) {
			return runtime.Unhandled()
		}
		c.matrix[rowID] = optID
	} else {
		if !c.knownOption(target) {
			return runtime.Unhandled()
		}
		if c.multiple {
			c.store.Toggle(target)
		} else {
			c.store.SelectOnly(target)
		}
	}
	return runtime.WithEvents(
		runtime.Change{Value: c.Value()},
		runtime.Response{ItemID: target, Value: c.Value()},
	)
}

func (c *Choice) knownOption(id string) bool {
	for _, o := range c.options {
		if o.ID == id {
			return true
		}
	}
	return false
}

func (c *Choice) knownRow(id string) bool {
	for _, r := range c.rows {
		if r.ID == id {
			return true
		}
	}
	return false
}

// Render implements runtime.Widget.
func (c *Choice) Render(ctx runtime.RenderContext) markup.Node {
	root := markup.El("div").
		Class("ax-choice").
		Data("state", ctx.State.String())
	if c.matrixMode() {
		root = root.Append(c.renderMatrix())
	} else {
		root = root.Append(c.renderFlat())
	}
	if ctx.ErrorMessage != "" {
		root = root.Append(
			markup.El("div", markup.Text(ctx.ErrorMessage)).Class("ax-error"),
		)
	}
	return root
}

func (c *Choice) renderFlat() markup.Node {
	list := markup.El("ul").Class("ax-choice__options")
	for _, idx := range c.display {
		opt := c.options[idx]
		classes := "ax-choice__option"
		if c.store.IsSelected(opt.ID) {
			classes += " ax-choice__option--selected"
		}
		list = list.Append(
			markup.El("li", markup.Text(opt.Label)).
				Class(classes).
				Data("target", "opt:"+opt.ID).
				Attr("tabindex", "0"),
		)
	}
	return list
}

func (c *Choice) renderMatrix() markup.Node {
	table := markup.El("table").Class("ax-choice__matrix")
	header := markup.El("tr", markup.El("th"))
	for _, idx := range c.display {
		header = header.Append(markup.El("th", markup.Text(c.options[idx].Label)))
	}
	table = table.Append(header)
	for _, row := range c.rows {
		tr := markup.El("tr", markup.El("td", markup.Text(row.Label)))
		for _, idx := range c.display {
			opt := c.options[idx]
			classes := "ax-choice__cell"
			if c.matrix[row.ID] == opt.ID {
				classes += " ax-choice__cell--selected"
			}
			tr = tr.Append(
				markup.El("td").
					Class(classes).
					Data("target", "opt:"+row.ID+":"+opt.ID),
			)
		}
		table = table.Append(tr)
	}
	return table
}
