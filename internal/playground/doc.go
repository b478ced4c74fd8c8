// Package playground serves the catalog pages with their forms and tables
// live in a browser.
//
// Every GET /pages/{name} parses a fresh copy of the page, attaches all
// catalog forms and tables found on it and stores the document as a session.
// Each registered listener is mirrored as a datastar data-on attribute that
// posts the event to /sessions/{id}/events. The handler replays the event on
// the session document and patches the changed form or table, plus a status
// line, back over server-sent events.
//
// Sessions expire after FORMKIT_SESSION_TTL without events. With
// FORMKIT_WATCH_CATALOG set, edits to FORMKIT_CATALOG are picked up without a
// restart; open sessions keep the rules they were built with.
package playground
