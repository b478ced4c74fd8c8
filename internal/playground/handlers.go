package playground

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formkit/pkg/dom"
	"github.com/dmitrymomot/formkit/pkg/formvalidate"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/tablefilter"
)

// maxFormMemory bounds multipart submit bodies held in memory.
const maxFormMemory = 1 << 20

var errBadForm = errors.New("playground: malformed form body")

func (a *App) index(*http.Request) (Response, error) {
	names, err := PageNames(a.pages)
	if err != nil {
		return nil, err
	}
	return componentResponse{component: indexPage(a.cfg.AppName, names, a.catalog.Catalog())}, nil
}

// page renders a fresh page session: every catalog form and table present
// on the page is attached and its listeners are exposed to the browser.
func (a *App) page(r *http.Request) (Response, error) {
	name := chi.URLParam(r, "name")
	doc, err := LoadPage(a.pages, name)
	if err != nil {
		return nil, err
	}

	catalog := a.catalog.Catalog()
	log := a.log.With(slog.String("page", name))
	forms := formvalidate.AttachAll(doc, catalog.Forms,
		append(a.metrics.FormOptions(), formvalidate.WithLogger(log))...)
	tables := tablefilter.AttachAll(doc, catalog.Tables,
		append(a.metrics.TableOptions(), tablefilter.WithLogger(log))...)

	sess := a.sessions.Create(name, doc, forms, tables)
	annotate(doc, sess.ID)
	log.InfoContext(r.Context(), "page session created",
		logger.Session(sess.ID),
		slog.Int("forms", len(forms)),
		slog.Int("tables", len(tables)))

	return componentResponse{component: documentComponent(doc.Render)}, nil
}

// event applies one browser event to a session and patches back what changed.
func (a *App) event(r *http.Request) (Response, error) {
	sess, err := a.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	typ, target := q.Get("type"), q.Get("target")

	if typ == dom.EventSubmit {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, errors.Join(errBadForm, err)
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	frags, err := a.dispatch(sess, typ, target, q.Get("value"), r.PostForm)
	if err != nil {
		return nil, err
	}
	a.metrics.Event(typ)
	a.log.DebugContext(r.Context(), "event dispatched",
		logger.Session(sess.ID),
		logger.Event(typ),
		slog.String("target", target))
	return patchResponse{fragments: frags}, nil
}

// dispatch must be called with sess.mu held.
func (a *App) dispatch(sess *Session, typ, target, value string, values url.Values) ([]fragment, error) {
	doc := sess.doc
	el := doc.GetElementByID(target)
	if el == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}

	status := ""
	switch typ {
	case dom.EventInput, dom.EventChange:
		el.SetValue(value)
		doc.Dispatch(el, typ)
	case dom.EventClick:
		doc.Click(el)
	case dom.EventSubmit:
		fillForm(el, values)
		if doc.Submit(el) {
			status = target + ": submission proceeds"
		} else {
			status = target + ": submission blocked"
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEvent, typ)
	}

	var frags []fragment
	for _, f := range sess.forms {
		root := doc.GetElementByID(f.Spec().ID)
		if !contains(root, el) {
			continue
		}
		frag, err := outer(root)
		if err != nil {
			return nil, err
		}
		frags = append(frags, frag)
	}
	for _, t := range sess.tables {
		if !tableTarget(t, el) {
			continue
		}
		ids := []string{t.Spec().ID}
		for _, c := range t.Spec().Controls {
			ids = append(ids, c.ID)
		}
		for _, id := range ids {
			node := doc.GetElementByID(id)
			if node == nil {
				continue
			}
			frag, err := outer(node)
			if err != nil {
				return nil, err
			}
			frags = append(frags, frag)
		}
		status = fmt.Sprintf("%s: %d of %d rows visible", t.Spec().ID, len(t.VisibleRows()), len(t.Rows()))
	}

	return append(frags, statusFragment(status)), nil
}

// fillForm copies submitted values into the form's named controls.
func fillForm(form *dom.Element, values url.Values) {
	for _, ctl := range form.QuerySelectorAll("input[name], select[name], textarea[name]") {
		if v, ok := values[ctl.GetAttr("name")]; ok && len(v) > 0 {
			ctl.SetValue(v[0])
		}
	}
}

func contains(root, el *dom.Element) bool {
	if root == nil {
		return false
	}
	for e := el; e != nil; e = e.Parent() {
		if e.Is(root) {
			return true
		}
	}
	return false
}

func tableTarget(t *tablefilter.Table, el *dom.Element) bool {
	spec := t.Spec()
	if spec.Reset != "" && el.ID() == spec.Reset {
		return true
	}
	for _, c := range spec.Controls {
		if ctl := t.Control(c.ID); ctl != nil && ctl.Is(el) {
			return true
		}
	}
	return false
}

func outer(el *dom.Element) (fragment, error) {
	html, err := el.OuterHTML()
	if err != nil {
		return fragment{}, err
	}
	return rawFragment(el.ID(), html), nil
}

func statusFragment(text string) fragment {
	return rawFragment(StatusID, fmt.Sprintf(`<div id="%s" role="status">%s</div>`, StatusID, templ.EscapeString(text)))
}
