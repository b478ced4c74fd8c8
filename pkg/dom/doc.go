// Package dom provides a small, browser-like document model on top of
// golang.org/x/net/html so that form and table behaviour written against the
// DOM can run (and be tested) without a browser.
//
// A Document owns a parsed HTML tree and an event listener registry. Elements
// are thin handles around *html.Node values; two handles referring to the same
// node are interchangeable. Selector queries are delegated to goquery.
//
// # Architecture
//
// The model mirrors only what form enhancement scripts need:
//
//   - Element values for input, select and textarea
//   - class list manipulation and attribute access
//   - sibling navigation, insertion, removal and re-parenting
//   - inline display suppression (style="display: none")
//   - a custom validity message per element
//   - listeners keyed by element and event type, dispatched synchronously
//     in registration order with PreventDefault support
//
// Nothing here is safe for concurrent use. A Document is meant to be owned by
// a single goroutine (one page, one user), exactly like a browser document.
//
// # Usage
//
//	doc, err := dom.ParseString(page)
//	if err != nil {
//		return err
//	}
//	form := doc.GetElementByID("register_form")
//	doc.AddEventListener(form, dom.EventSubmit, func(e *dom.Event) {
//		e.PreventDefault()
//	})
//	proceed := doc.Submit(form) // false
//
// # Error Handling
//
// Only Parse and rendering can fail. Lookups return nil when nothing matches
// and invalid selectors simply match nothing.
package dom
