package tablefilter

import (
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/formspec"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Table is a filter spec bound to a document.
type Table struct {
	doc  *dom.Document
	spec formspec.Table
	root *dom.Element
	log  *slog.Logger
	fold cases.Caser

	rows     []*dom.Element
	controls []*control
	byID     map[string]*control
	reset    *dom.Element

	applyHooks []func(ApplyResult)
}

type control struct {
	spec formspec.Control
	el   *dom.Element
	// options hidden by a dependency, re-enabled on the next pass
	suppressed []*dom.Element
}

// Attach binds spec to the table with id spec.ID. Rows are read once; when
// the definition asks for it they are sorted once. Dependent options are suppressed
// and the filters applied before Attach returns. If the table is absent the
// returned Table is detached and every method is a no-op.
func Attach(doc *dom.Document, spec formspec.Table, opts ...Option) *Table {
	t := &Table{
		doc:  doc,
		spec: spec,
		log:  logger.Nop(),
		fold: cases.Fold(),
		byID: make(map[string]*control, len(spec.Controls)),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With(logger.Component("tablefilter"), logger.Table(spec.ID))

	if doc == nil {
		return t
	}
	t.root = doc.GetElementByID(spec.ID)
	if t.root == nil {
		t.log.Debug("table not found, skipping")
		return t
	}

	t.rows = t.root.QuerySelectorAll("tbody tr")
	if spec.Sort != nil {
		t.rows = sortRows(t.rows, spec.Sort.Attribute)
	}

	for _, cs := range spec.Controls {
		c := &control{spec: cs, el: doc.GetElementByID(cs.ID)}
		if c.el == nil {
			t.log.Debug("control not found, treating as all", logger.Control(cs.ID))
		}
		t.controls = append(t.controls, c)
		t.byID[cs.ID] = c
	}

	// dependency listeners go first so filters see the corrected selection
	for _, c := range t.controls {
		if c.el == nil || c.spec.DependsOn == nil {
			continue
		}
		gov := t.byID[c.spec.DependsOn.Control]
		if gov == nil || gov.el == nil {
			continue
		}
		dep := c
		gov.el.AddEventListener(dom.EventChange, func(*dom.Event) { t.suppress(dep) })
	}
	for _, c := range t.controls {
		if c.el != nil {
			c.el.AddEventListener(dom.EventChange, func(*dom.Event) { t.ApplyFilters() })
		}
	}

	if spec.Reset != "" {
		t.reset = doc.GetElementByID(spec.Reset)
		if t.reset != nil {
			t.reset.AddEventListener(dom.EventClick, func(*dom.Event) { t.Reset() })
		} else {
			t.log.Debug("reset control not found", logger.Control(spec.Reset))
		}
	}

	t.suppressAll()
	t.ApplyFilters()
	return t
}

// AttachAll attaches every table of the list and returns the ones present in
// the document.
func AttachAll(doc *dom.Document, specs []formspec.Table, opts ...Option) []*Table {
	var out []*Table
	for _, spec := range specs {
		if t := Attach(doc, spec, opts...); t.Attached() {
			out = append(out, t)
		}
	}
	return out
}

// Attached reports whether the table element was found.
func (t *Table) Attached() bool { return t.root != nil }

// Spec returns the table definition Attach was given.
func (t *Table) Spec() formspec.Table { return t.spec }

// Rows returns every body row in its current order.
func (t *Table) Rows() []*dom.Element { return slices.Clone(t.rows) }

// VisibleRows returns the rows not hidden by the filters.
func (t *Table) VisibleRows() []*dom.Element {
	var out []*dom.Element
	for _, r := range t.rows {
		if !r.Hidden() {
			out = append(out, r)
		}
	}
	return out
}

// Control returns the element of a control, nil when missing.
func (t *Table) Control(id string) *dom.Element {
	if c, ok := t.byID[id]; ok {
		return c.el
	}
	return nil
}

// Values returns the effective value of every control.
func (t *Table) Values() map[string]string {
	out := make(map[string]string, len(t.controls))
	for _, c := range t.controls {
		out[c.spec.ID] = t.value(c)
	}
	return out
}

// value is the folded control value; missing controls and empty values are "all".
func (t *Table) value(c *control) string {
	if c.el == nil {
		return formspec.AllValue
	}
	v := t.fold.String(strings.TrimSpace(c.el.Value()))
	if v == "" {
		return formspec.AllValue
	}
	return v
}

// ApplyFilters shows a row iff it matches every control.
func (t *Table) ApplyFilters() {
	if !t.Attached() {
		return
	}

	values := t.Values()
	visible := 0
	for _, row := range t.rows {
		show := true
		for _, c := range t.controls {
			if !t.matches(row, c, values[c.spec.ID]) {
				show = false
				break
			}
		}
		row.SetHidden(!show)
		if show {
			visible++
		}
	}

	res := ApplyResult{Table: t.spec.ID, Total: len(t.rows), Visible: visible, Values: values}
	t.log.Debug("filters applied", slog.Int("visible", visible), slog.Int("total", len(t.rows)))
	for _, h := range t.applyHooks {
		h(res)
	}
}

func (t *Table) matches(row *dom.Element, c *control, value string) bool {
	if value == formspec.AllValue {
		return true
	}
	tag := t.fold.String(row.Data(c.spec.Attribute))
	if c.spec.Mode() == formspec.MatchContains {
		return strings.Contains(tag, value)
	}
	return tag == value
}

// Reset sets every control to "all" and re-applies the filters.
func (t *Table) Reset() {
	if !t.Attached() {
		return
	}
	for _, c := range t.controls {
		t.restore(c)
		if c.el != nil {
			c.el.SetValue(formspec.AllValue)
		}
	}
	t.suppressAll()
	t.ApplyFilters()
}

func (t *Table) suppressAll() {
	for _, c := range t.controls {
		if c.spec.DependsOn != nil {
			t.suppress(c)
		}
	}
}

// suppress disables and hides the options of c that its governor's current
// value disallows. A selection that became invalid falls back to "all".
func (t *Table) suppress(c *control) {
	if c.el == nil || c.spec.DependsOn == nil {
		return
	}
	t.restore(c)

	gov := t.byID[c.spec.DependsOn.Control]
	if gov == nil {
		return
	}
	govValue := t.value(gov)

	var disallowed []string
	for k, opts := range c.spec.DependsOn.Disallow {
		if t.fold.String(k) == govValue {
			disallowed = append(disallowed, opts...)
		}
	}
	if len(disallowed) == 0 {
		return
	}

	current := t.value(c)
	reset := false
	for _, opt := range c.el.Options() {
		v := t.fold.String(opt.Value())
		if !slices.ContainsFunc(disallowed, func(d string) bool { return t.fold.String(d) == v }) {
			continue
		}
		opt.SetDisabled(true)
		opt.SetAttr("hidden", "")
		c.suppressed = append(c.suppressed, opt)
		if v == current {
			reset = true
		}
	}
	if reset {
		c.el.SetValue(formspec.AllValue)
		t.log.Debug("selection no longer allowed, reset to all",
			logger.Control(c.spec.ID), slog.String("governor", gov.spec.ID))
	}
}

func (t *Table) restore(c *control) {
	for _, opt := range c.suppressed {
		opt.SetDisabled(false)
		opt.RemoveAttr("hidden")
	}
	c.suppressed = nil
}
