package dom

// Event types dispatched by the helpers on Document.
const (
	EventInput  = "input"
	EventChange = "change"
	EventSubmit = "submit"
	EventClick  = "click"
)

// Listener handles a dispatched event.
type Listener func(e *Event)

// Event is passed to every listener registered for its type on its target.
type Event struct {
	Type   string
	Target *Element

	prevented bool
}

// PreventDefault cancels the default action (for submit: sending the form).
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether any listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// Binding describes one (element, event type) pair that has listeners.
type Binding struct {
	Element *Element
	Type    string
}

type registration struct {
	typ string
	fn  Listener
}
