package playground

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formkit/pkg/formspec"
)

// indexPage lists the available pages and the rules the catalog holds.
func indexPage(title string, pages []string, catalog *formspec.Catalog) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		esc := templ.EscapeString[string]
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title>`+
			`<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">`+
			`</head><body class="container py-4"><h1 class="h3 mb-4">%s</h1>`, esc(title), esc(title)); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<h2 class="h5">Pages</h2><ul id="pages" class="list-unstyled">`); err != nil {
			return err
		}
		for _, p := range pages {
			if _, err := fmt.Fprintf(w, `<li><a href="/pages/%s">%s</a></li>`, esc(p), esc(p)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</ul>`); err != nil {
			return err
		}

		if catalog != nil {
			if _, err := io.WriteString(w, `<h2 class="h5">Rules</h2><ul id="rules" class="list-unstyled">`); err != nil {
				return err
			}
			for _, f := range catalog.Forms {
				if _, err := fmt.Fprintf(w, `<li>form <code>%s</code>: %d fields</li>`, esc(f.ID), len(f.Fields)); err != nil {
					return err
				}
			}
			for _, t := range catalog.Tables {
				if _, err := fmt.Fprintf(w, `<li>table <code>%s</code>: %d controls</li>`, esc(t.ID), len(t.Controls)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</ul>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
