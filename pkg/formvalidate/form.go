package formvalidate

import (
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/formspec"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Form is a form spec bound to a document.
type Form struct {
	doc  *dom.Document
	spec formspec.Form
	root *dom.Element
	log  *slog.Logger

	fields []*field
	byID   map[string]*field

	submitHooks []func(SubmitResult)
	fieldHooks  []func(FieldResult)
}

type field struct {
	rule formspec.Field
	el   *dom.Element
}

// Attach binds spec to the form element with id spec.ID and registers the
// submit, live and slot listeners. If the form is absent the returned Form is
// detached and every method is a no-op. Fields whose element cannot be found,
// or whose checks do not compile, are skipped.
func Attach(doc *dom.Document, spec formspec.Form, opts ...Option) *Form {
	f := &Form{
		doc:  doc,
		spec: spec,
		log:  logger.Nop(),
		byID: make(map[string]*field, len(spec.Fields)),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.With(logger.Component("formvalidate"), logger.Form(spec.ID))

	if doc == nil {
		return f
	}
	f.root = doc.GetElementByID(spec.ID)
	if f.root == nil {
		f.log.Debug("form not found, skipping")
		return f
	}

	f.spec.Fields = append([]formspec.Field(nil), spec.Fields...)
	for i := range f.spec.Fields {
		rule, err := f.spec.CompileField(i)
		if err != nil {
			f.log.Debug("field checks invalid, skipping", logger.Field(f.spec.Fields[i].ID), logger.Error(err))
			continue
		}
		f.spec.Fields[i] = rule
		el := f.resolve(rule)
		if el == nil {
			f.log.Debug("field element not found, skipping", logger.Field(rule.ID))
			continue
		}
		fld := &field{rule: rule, el: el}
		f.fields = append(f.fields, fld)
		f.byID[rule.ID] = fld
	}

	f.root.AddEventListener(dom.EventSubmit, f.onSubmit)
	for _, fld := range f.fields {
		f.bindField(fld)
	}

	return f
}

// AttachAll attaches every form of the list and returns the ones present in
// the document.
func AttachAll(doc *dom.Document, specs []formspec.Form, opts ...Option) []*Form {
	var out []*Form
	for _, spec := range specs {
		if f := Attach(doc, spec, opts...); f.Attached() {
			out = append(out, f)
		}
	}
	return out
}

func (f *Form) resolve(rule formspec.Field) *dom.Element {
	scope := f.root
	if id := rule.ContainerID(); id != "" {
		scope = f.root.ElementByID(id)
		if scope == nil {
			return nil
		}
		if rule.Input == "" {
			return scope.QuerySelector("input, select, textarea")
		}
	}
	return scope.ElementByID(rule.Input)
}

func (f *Form) bindField(fld *field) {
	event := liveEvent(fld)

	if fld.rule.Slot != nil {
		if end, ok := f.byID[fld.rule.Slot.End]; ok {
			slot := *fld.rule.Slot
			fld.el.AddEventListener(event, func(*dom.Event) { f.applySlot(fld, end, slot) })
		} else {
			f.log.Debug("slot end field not found, skipping",
				logger.Field(fld.rule.ID), slog.String("end", fld.rule.Slot.End))
		}
	}

	fld.el.AddEventListener(event, func(e *dom.Event) { f.revalidate(fld, e.Type) })

	for _, chk := range fld.rule.Checks {
		if chk.Kind != formspec.CheckMatches {
			continue
		}
		other, ok := f.byID[chk.Field]
		if !ok {
			continue
		}
		msg := chk.Message
		other.el.AddEventListener(liveEvent(other), func(e *dom.Event) { f.syncPair(fld, other, msg, e.Type) })
	}
}

// liveEvent picks the event a field is re-validated on.
func liveEvent(fld *field) string {
	if fld.rule.Event != "" {
		return fld.rule.Event
	}
	switch fld.el.Type() {
	case "select", "date", "datetime-local", "time", "month", "week", "checkbox", "radio":
		return dom.EventChange
	}
	return dom.EventInput
}

// Attached reports whether the form element was found.
func (f *Form) Attached() bool { return f.root != nil }

// Spec returns the form definition Attach was given.
func (f *Form) Spec() formspec.Form { return f.spec }

// Element returns the resolved element of a field, nil when unresolved.
func (f *Form) Element(id string) *dom.Element {
	if fld, ok := f.byID[id]; ok {
		return fld.el
	}
	return nil
}

// Fill sets the value of a field and dispatches its live event, as if the
// user had typed or picked it. It reports false when the field is unresolved.
func (f *Form) Fill(id, value string) bool {
	fld, ok := f.byID[id]
	if !ok {
		return false
	}
	fld.el.SetValue(value)
	f.doc.Dispatch(fld.el, liveEvent(fld))
	return true
}

// ValidateField runs the field's checks in order and returns the first
// failure as a validator.ValidationError. It does not touch the document.
func (f *Form) ValidateField(id string) error {
	fld, ok := f.byID[id]
	if !ok {
		return nil
	}
	if ve, _ := f.check(fld); ve != nil {
		return *ve
	}
	return nil
}

// check returns the first failing check of fld.
func (f *Form) check(fld *field) (*validator.ValidationError, formspec.Check) {
	value := fld.el.Value()
	for _, chk := range fld.rule.Checks {
		rule, ok := f.rule(fld.rule.ID, value, chk)
		if !ok {
			continue
		}
		if ve := validator.First(rule.WithMessage(chk.Message)); ve != nil {
			return ve, chk
		}
	}
	return nil, formspec.Check{}
}

func (f *Form) rule(id, value string, chk formspec.Check) (validator.Rule, bool) {
	switch chk.Kind {
	case formspec.CheckRequired:
		return validator.RequiredString(id, value), true
	case formspec.CheckPattern:
		return validator.MatchesPattern(id, value, chk.Regexp()), true
	case formspec.CheckNotPattern:
		return validator.DoesNotMatchPattern(id, value, chk.Regexp()), true
	case formspec.CheckMinLength:
		return validator.MinLenString(id, value, chk.Limit), true
	case formspec.CheckMaxLength:
		return validator.MaxLenString(id, value, chk.Limit), true
	case formspec.CheckMatches:
		other, ok := f.byID[chk.Field]
		if !ok {
			return validator.Rule{}, false
		}
		return validator.EqualStrings(id, value, chk.Field, other.el.Value()), true
	}
	return validator.Rule{}, false
}

// Validate runs the submit path without an event: every field is cleared,
// validated and, on failure, marked. It returns validator.ValidationErrors or
// nil.
func (f *Form) Validate() error {
	res := f.submit()
	if res.Allowed {
		return nil
	}
	return res.Errors
}

func (f *Form) onSubmit(e *dom.Event) {
	if !f.submit().Allowed {
		e.PreventDefault()
	}
}

func (f *Form) submit() SubmitResult {
	res := SubmitResult{Form: f.spec.ID, Allowed: true}
	if !f.Attached() {
		return res
	}

	for _, fld := range f.fields {
		f.ClearError(fld.el)
		ve, chk := f.check(fld)
		if ve == nil {
			continue
		}
		f.mark(fld, *ve, chk)
		res.Errors.Add(*ve)
	}
	res.Allowed = res.Errors.IsEmpty()

	if res.Allowed {
		f.log.Debug("submit allowed", logger.Outcome("allowed"))
	} else {
		f.log.Debug("submit blocked", logger.Outcome("blocked"),
			slog.Any("fields", res.Errors.Fields()))
	}
	for _, h := range f.submitHooks {
		h(res)
	}
	return res
}

func (f *Form) revalidate(fld *field, event string) {
	f.ClearError(fld.el)
	ve, chk := f.check(fld)
	if ve != nil {
		f.mark(fld, *ve, chk)
	}
	f.reportField(fld, event, ve)
}

// syncPair re-checks a matches pair when the other side changes. Only the
// mismatch is shown; other checks of fld wait for its own event.
func (f *Form) syncPair(fld, other *field, msg, event string) {
	f.ClearError(fld.el)
	a, b := fld.el.Value(), other.el.Value()
	var ve *validator.ValidationError
	if a != "" && b != "" && a != b {
		ve = validator.First(validator.EqualStrings(fld.rule.ID, a, other.rule.ID, b).WithMessage(msg))
		f.ShowError(fld.el, ve.Message)
		fld.el.SetCustomValidity(ve.Message)
	}
	f.reportField(fld, event, ve)
}

func (f *Form) mark(fld *field, ve validator.ValidationError, chk formspec.Check) {
	f.ShowError(fld.el, ve.Message)
	if chk.Kind == formspec.CheckMatches {
		fld.el.SetCustomValidity(ve.Message)
	}
}

func (f *Form) reportField(fld *field, event string, ve *validator.ValidationError) {
	if len(f.fieldHooks) == 0 {
		return
	}
	res := FieldResult{Form: f.spec.ID, Field: fld.rule.ID, Event: event, Err: ve}
	for _, h := range f.fieldHooks {
		h(res)
	}
}

// Errors reads the visible error state back from the document: one entry per
// field currently marked invalid, carrying its feedback text.
func (f *Form) Errors() validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, fld := range f.fields {
		if !fld.el.HasClass(f.spec.InvalidClassName()) {
			continue
		}
		msg := ""
		if fb := f.feedback(fld.el); fb != nil {
			msg = fb.Text()
		}
		errs.Add(validator.ValidationError{Field: fld.rule.ID, Message: msg})
	}
	return errs
}
