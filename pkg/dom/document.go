package dom

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML tree plus the listeners attached to its elements.
type Document struct {
	root      *html.Node
	listeners map[*html.Node][]registration
	bindings  []Binding
	validity  map[*html.Node]string
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	return NewDocument(root), nil
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// NewDocument wraps an existing node tree.
func NewDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		listeners: make(map[*html.Node][]registration),
		validity:  make(map[*html.Node]string),
	}
}

// Root returns the underlying document node.
func (d *Document) Root() *html.Node { return d.root }

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

// GetElementByID returns the first element whose id attribute equals id.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.wrap(findNode(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	}))
}

// QuerySelector returns the first element matching a CSS selector.
func (d *Document) QuerySelector(selector string) *Element {
	return first(d, d.root, selector)
}

// QuerySelectorAll returns every element matching a CSS selector in document order.
func (d *Document) QuerySelectorAll(selector string) []*Element {
	return all(d, d.root, selector)
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) *Element {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// AddEventListener registers fn for events of type typ on el.
// Listeners for the same element fire in registration order.
func (d *Document) AddEventListener(el *Element, typ string, fn Listener) {
	if el == nil || fn == nil {
		return
	}
	regs := d.listeners[el.node]
	seen := false
	for _, r := range regs {
		if r.typ == typ {
			seen = true
			break
		}
	}
	if !seen {
		d.bindings = append(d.bindings, Binding{Element: d.wrap(el.node), Type: typ})
	}
	d.listeners[el.node] = append(regs, registration{typ: typ, fn: fn})
}

// Bindings lists every (element, event type) pair with at least one listener,
// in the order the first listener for the pair was registered.
func (d *Document) Bindings() []Binding {
	out := make([]Binding, len(d.bindings))
	copy(out, d.bindings)
	return out
}

// Dispatch fires an event of type typ at el and reports whether the default
// action should proceed. Listeners added while dispatching are not invoked
// for the current event.
func (d *Document) Dispatch(el *Element, typ string) bool {
	if el == nil {
		return true
	}
	regs := append([]registration(nil), d.listeners[el.node]...)
	ev := &Event{Type: typ, Target: el}
	for _, r := range regs {
		if r.typ == typ {
			r.fn(ev)
		}
	}
	return !ev.DefaultPrevented()
}

// Input sets the element's value and dispatches an input event, like typing.
func (d *Document) Input(el *Element, value string) {
	if el == nil {
		return
	}
	el.SetValue(value)
	d.Dispatch(el, EventInput)
}

// Change sets the element's value and dispatches a change event, like picking
// an option or committing a date.
func (d *Document) Change(el *Element, value string) {
	if el == nil {
		return
	}
	el.SetValue(value)
	d.Dispatch(el, EventChange)
}

// Submit dispatches a submit event at form and reports whether the form
// would be sent.
func (d *Document) Submit(form *Element) bool {
	return d.Dispatch(form, EventSubmit)
}

// Click dispatches a click event at el.
func (d *Document) Click(el *Element) {
	d.Dispatch(el, EventClick)
}

// Render serialises the whole document.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return errors.Join(ErrRender, err)
	}
	return nil
}

// HTML returns the serialised document.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func first(d *Document, scope *html.Node, selector string) *Element {
	sel := goquery.NewDocumentFromNode(scope).Find(selector)
	if sel.Length() == 0 {
		return nil
	}
	return d.wrap(sel.Get(0))
}

func all(d *Document, scope *html.Node, selector string) []*Element {
	nodes := goquery.NewDocumentFromNode(scope).Find(selector).Nodes
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.wrap(n))
	}
	return out
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
