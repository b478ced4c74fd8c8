package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is a handle to an element node of a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Is reports whether both handles refer to the same node.
func (e *Element) Is(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.node == other.node
}

// TagName returns the lower-case tag name.
func (e *Element) TagName() string { return e.node.Data }

// ID returns the id attribute.
func (e *Element) ID() string { return e.GetAttr("id") }

// Attr returns an attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// GetAttr returns an attribute value or "".
func (e *Element) GetAttr(name string) string {
	v, _ := e.Attr(name)
	return v
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

// Data returns the value of the data-<key> attribute.
func (e *Element) Data(key string) string { return e.GetAttr("data-" + key) }

// Classes returns the class list.
func (e *Element) Classes() []string { return strings.Fields(e.GetAttr("class")) }

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class list unless already present.
func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	e.SetAttr("class", strings.TrimSpace(e.GetAttr("class")+" "+name))
}

// RemoveClass removes every occurrence of name from the class list.
func (e *Element) RemoveClass(name string) {
	if !e.HasAttr("class") {
		return
	}
	kept := make([]string, 0, 4)
	for _, c := range e.Classes() {
		if c != name {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

// Type returns the lower-cased input type, "text" when absent.
// For non-input elements it returns the tag name.
func (e *Element) Type() string {
	if e.TagName() != "input" {
		return e.TagName()
	}
	t := strings.ToLower(strings.TrimSpace(e.GetAttr("type")))
	if t == "" {
		return "text"
	}
	return t
}

// Value returns the current control value.
//
// Selects report the first option carrying the selected attribute, or the
// first enabled option when none is selected. Textareas report their text.
func (e *Element) Value() string {
	switch e.TagName() {
	case "select":
		opts := e.Options()
		for _, o := range opts {
			if o.HasAttr("selected") {
				return o.optionValue()
			}
		}
		for _, o := range opts {
			if !o.HasAttr("disabled") {
				return o.optionValue()
			}
		}
		return ""
	case "textarea":
		return e.Text()
	case "option":
		return e.optionValue()
	default:
		return e.GetAttr("value")
	}
}

// SetValue replaces the control value. For selects the first option with a
// matching value becomes the only selected option.
func (e *Element) SetValue(v string) {
	switch e.TagName() {
	case "select":
		matched := false
		for _, o := range e.Options() {
			if !matched && o.optionValue() == v {
				o.SetAttr("selected", "")
				matched = true
				continue
			}
			o.RemoveAttr("selected")
		}
	case "textarea":
		e.SetText(v)
	default:
		e.SetAttr("value", v)
	}
}

// Options returns the option elements of a select, optgroups included.
func (e *Element) Options() []*Element {
	return e.QuerySelectorAll("option")
}

func (e *Element) optionValue() string {
	if v, ok := e.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(e.Text())
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(s string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	if s != "" {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	}
}

// Parent returns the parent element, nil at the top or when detached.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// NextElementSibling skips text and comment nodes.
func (e *Element) NextElementSibling() *Element {
	for s := e.node.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return e.doc.wrap(s)
		}
	}
	return nil
}

// Children returns the element children.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// InsertAfter places other immediately after e, detaching it first.
func (e *Element) InsertAfter(other *Element) {
	parent := e.node.Parent
	if parent == nil || other == nil || other.node == e.node {
		return
	}
	other.detach()
	parent.InsertBefore(other.node, e.node.NextSibling)
}

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child.node == e.node {
		return
	}
	child.detach()
	e.node.AppendChild(child.node)
}

// Remove detaches the element from the tree.
func (e *Element) Remove() { e.detach() }

// Attached reports whether the element still has a parent.
func (e *Element) Attached() bool { return e.node.Parent != nil }

func (e *Element) detach() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

// ElementByID returns the first descendant whose id attribute equals id.
func (e *Element) ElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		n := findNode(c, func(n *html.Node) bool {
			return n.Type == html.ElementNode && attr(n, "id") == id
		})
		if n != nil {
			return e.doc.wrap(n)
		}
	}
	return nil
}

// QuerySelector returns the first descendant matching selector.
func (e *Element) QuerySelector(selector string) *Element {
	return first(e.doc, e.node, selector)
}

// QuerySelectorAll returns every descendant matching selector.
func (e *Element) QuerySelectorAll(selector string) []*Element {
	return all(e.doc, e.node, selector)
}

// Hidden reports whether the inline style suppresses display.
func (e *Element) Hidden() bool {
	for _, decl := range styleDecls(e.GetAttr("style")) {
		if decl[0] == "display" && decl[1] == "none" {
			return true
		}
	}
	return false
}

// SetHidden toggles display suppression through the inline style, leaving
// any other declarations alone.
func (e *Element) SetHidden(hidden bool) {
	decls := styleDecls(e.GetAttr("style"))
	kept := decls[:0]
	for _, d := range decls {
		if d[0] != "display" {
			kept = append(kept, d)
		}
	}
	if hidden {
		kept = append(kept, [2]string{"display", "none"})
	}
	if len(kept) == 0 {
		e.RemoveAttr("style")
		return
	}
	parts := make([]string, 0, len(kept))
	for _, d := range kept {
		parts = append(parts, d[0]+": "+d[1])
	}
	e.SetAttr("style", strings.Join(parts, "; ")+";")
}

func styleDecls(style string) [][2]string {
	var out [][2]string
	for _, part := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		out = append(out, [2]string{k, strings.TrimSpace(v)})
	}
	return out
}

// Disabled reports the disabled attribute.
func (e *Element) Disabled() bool { return e.HasAttr("disabled") }

// SetDisabled toggles the disabled attribute.
func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		e.SetAttr("disabled", "")
		return
	}
	e.RemoveAttr("disabled")
}

// SetCustomValidity stores the element's custom validity message; "" clears it.
func (e *Element) SetCustomValidity(msg string) {
	if msg == "" {
		delete(e.doc.validity, e.node)
		return
	}
	e.doc.validity[e.node] = msg
}

// ValidationMessage returns the custom validity message, "" when valid.
func (e *Element) ValidationMessage() string { return e.doc.validity[e.node] }

// AddEventListener is shorthand for Document.AddEventListener.
func (e *Element) AddEventListener(typ string, fn Listener) {
	e.doc.AddEventListener(e, typ, fn)
}

// OuterHTML serialises the element itself.
func (e *Element) OuterHTML() (string, error) {
	return goquery.OuterHtml(goquery.NewDocumentFromNode(e.node).Selection)
}
