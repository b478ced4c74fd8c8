// Package formvalidate attaches declarative form specs to a dom.Document and
// keeps the inline validation state of their fields up to date.
//
// Attach registers three kinds of listeners:
//
//   - a submit listener on the form that clears and re-checks every field and
//     cancels the submission when any of them fails;
//   - a live listener per field (change for selects and date/time pickers,
//     input otherwise) that re-checks only that field;
//   - for slot fields, a listener that rounds the start time down to the hour
//     and writes the end time, registered before the live listener.
//
// Checks run in declared order and the first failure of a field is shown.
// A failure marks the control with the invalid class and places exactly one
// feedback node right after it:
//
//	<input id="id_username" class="is-invalid" value="ab cd">
//	<div class="invalid-feedback">Username must be 150 characters or fewer. ...</div>
//
// Missing forms and fields are skipped and logged at debug level; nothing in
// this package panics or returns an error to the page.
//
// # Usage
//
//	doc, _ := dom.ParseString(page)
//	spec, _ := formspec.Default().Form("register_form")
//	formvalidate.Attach(doc, spec, formvalidate.WithLogger(log))
//
//	doc.Input(doc.GetElementByID("id_username"), "ab cd")
//	allowed := doc.Submit(doc.GetElementByID("register_form"))
//
// Validate runs the submit path directly and returns validator.ValidationErrors.
package formvalidate
