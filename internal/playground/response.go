package playground

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// IsDataStar reports whether r was sent by the datastar client: it accepts
// an event stream, carries the datastar query parameter or posts a datastar
// content type.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	if r.URL.Query().Has("datastar") {
		return true
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/x-datastar")
}

// fragment is one element patched into the page by id.
type fragment struct {
	id        string
	component templ.Component
}

// rawFragment patches already serialised HTML.
func rawFragment(id, html string) fragment {
	return fragment{id: id, component: templ.Raw(html)}
}

// patchResponse sends fragments as datastar element patches, or as plain
// concatenated HTML to other clients.
type patchResponse struct {
	fragments []fragment
}

func (p patchResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		for _, f := range p.fragments {
			if err := sse.PatchElementTempl(f.component,
				datastar.WithSelector("#"+f.id),
				datastar.WithMode(datastar.ElementPatchModeOuter),
			); err != nil {
				return err
			}
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for _, f := range p.fragments {
		if err := f.component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// componentResponse renders a full templ component as an HTML page.
type componentResponse struct {
	status    int
	component templ.Component
}

func (c componentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if c.status != 0 {
		w.WriteHeader(c.status)
	}
	return c.component.Render(r.Context(), w)
}

// documentComponent renders a whole page document.
func documentComponent(render func(io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return render(w)
	})
}
