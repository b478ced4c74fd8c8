package dom

import "errors"

var (
	// ErrParse is returned when the HTML input cannot be parsed.
	ErrParse = errors.New("dom: failed to parse html")

	// ErrRender is returned when the tree cannot be serialised back to HTML.
	ErrRender = errors.New("dom: failed to render html")
)
