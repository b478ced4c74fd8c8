package playground

import "errors"

var (
	// ErrPageNotFound is returned when a page name has no HTML file.
	ErrPageNotFound = errors.New("playground: page not found")

	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("playground: session not found")

	// ErrUnknownTarget is returned when an event names an element the
	// session's page does not contain.
	ErrUnknownTarget = errors.New("playground: unknown event target")

	// ErrUnsupportedEvent is returned for event types other than input,
	// change, submit and click.
	ErrUnsupportedEvent = errors.New("playground: unsupported event type")

	// ErrCatalogReload is returned when a changed catalog file fails to load.
	// The previous catalog stays in use.
	ErrCatalogReload = errors.New("playground: catalog reload failed")

	// ErrNoCatalog is reported by the readiness probe before a catalog is loaded.
	ErrNoCatalog = errors.New("playground: no catalog loaded")
)
