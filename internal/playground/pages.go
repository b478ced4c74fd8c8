package playground

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/dom"
)

//go:embed pages/*.html
var embeddedPages embed.FS

// datastarScript is the client runtime loaded by every rendered page.
const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// StatusID is the element the event endpoint reports outcomes into.
const StatusID = "formkit-status"

// SessionAttr carries the session id on the rendered <body>.
const SessionAttr = "data-formkit-session"

// Pages returns the page set: HTML files in dir, or the built-in pages when
// dir is empty.
func Pages(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("pages dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("pages dir %s: not a directory", dir)
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(embeddedPages, "pages")
}

// PageNames lists the pages in fsys, sorted, without the .html suffix.
func PageNames(fsys fs.FS) ([]string, error) {
	matches, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, ".html"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadPage parses the named page.
func LoadPage(fsys fs.FS, name string) (*dom.Document, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name != path.Clean(name) {
		return nil, fmt.Errorf("%w: %q", ErrPageNotFound, name)
	}
	f, err := fsys.Open(name + ".html")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPageNotFound, name)
		}
		return nil, err
	}
	defer f.Close()
	return dom.Parse(f)
}

// annotate wires every listener of doc to the session's event endpoint with
// datastar attributes, and adds the client script and the status element.
func annotate(doc *dom.Document, sessionID string) {
	base := "/sessions/" + url.PathEscape(sessionID) + "/events"

	for _, b := range doc.Bindings() {
		id := b.Element.ID()
		if id == "" {
			continue
		}
		endpoint := base + "?type=" + url.QueryEscape(b.Type) + "&target=" + url.QueryEscape(id)
		switch b.Type {
		case dom.EventSubmit:
			b.Element.SetAttr("data-on:submit__prevent", "@post('"+endpoint+"', {contentType: 'form'})")
		case dom.EventInput, dom.EventChange:
			b.Element.SetAttr("data-on:"+b.Type, "@post('"+endpoint+"&value=' + encodeURIComponent(el.value))")
		default:
			b.Element.SetAttr("data-on:"+b.Type, "@post('"+endpoint+"')")
		}
	}

	if head := doc.QuerySelector("head"); head != nil {
		script := doc.CreateElement("script")
		script.SetAttr("type", "module")
		script.SetAttr("src", datastarScript)
		head.AppendChild(script)
	}
	if body := doc.QuerySelector("body"); body != nil {
		body.SetAttr(SessionAttr, sessionID)
		status := doc.CreateElement("div")
		status.SetAttr("id", StatusID)
		status.SetAttr("role", "status")
		body.AppendChild(status)
	}
}
