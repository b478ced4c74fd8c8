package formvalidate

import (
	"github.com/dmitrymomot/formkit/pkg/dom"
)

// ShowError marks el invalid and sets the text of its feedback node, reusing
// an existing node so a field never carries more than one.
func (f *Form) ShowError(el *dom.Element, msg string) {
	if el == nil || !f.Attached() {
		return
	}
	el.AddClass(f.spec.InvalidClassName())

	fb := f.feedback(el)
	if fb == nil {
		fb = f.doc.CreateElement("div")
		fb.AddClass(f.spec.FeedbackClassName())
	}
	if next := el.NextElementSibling(); next == nil || !next.Is(fb) {
		el.InsertAfter(fb)
	}
	fb.SetText(msg)
}

// ClearError removes the invalid mark, the feedback node and any custom
// validity message from el. Clearing a valid element changes nothing.
func (f *Form) ClearError(el *dom.Element) {
	if el == nil || !f.Attached() {
		return
	}
	el.RemoveClass(f.spec.InvalidClassName())
	if fb := f.feedback(el); fb != nil {
		fb.Remove()
	}
	el.SetCustomValidity("")
}

// feedback finds the feedback node of el: its next sibling, else the first
// one inside its parent.
func (f *Form) feedback(el *dom.Element) *dom.Element {
	class := f.spec.FeedbackClassName()
	if next := el.NextElementSibling(); next != nil && next.HasClass(class) {
		return next
	}
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	for _, c := range parent.QuerySelectorAll("*") {
		if c.HasClass(class) {
			return c
		}
	}
	return nil
}
