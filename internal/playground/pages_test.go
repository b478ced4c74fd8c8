package playground_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/internal/playground"
	"github.com/dmitrymomot/formkit/pkg/formspec"
	"github.com/dmitrymomot/formkit/pkg/formvalidate"
	"github.com/dmitrymomot/formkit/pkg/tablefilter"
)

func TestPages(t *testing.T) {
	t.Parallel()

	t.Run("built-in pages cover the catalog", func(t *testing.T) {
		t.Parallel()
		pages, err := playground.Pages("")
		require.NoError(t, err)
		names, err := playground.PageNames(pages)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"booking", "bookings", "create_team", "login", "password_reset",
			"password_reset_confirm", "register", "teams", "user_update",
		}, names)

		catalog := formspec.Default()
		formsSeen := map[string]bool{}
		tablesSeen := map[string]bool{}
		for _, name := range names {
			doc, err := playground.LoadPage(pages, name)
			require.NoError(t, err, name)
			for _, f := range formvalidate.AttachAll(doc, catalog.Forms) {
				formsSeen[f.Spec().ID] = true
				for _, fld := range f.Spec().Fields {
					assert.NotNil(t, f.Element(fld.ID), "%s: %s", name, fld.ID)
				}
			}
			for _, tbl := range tablefilter.AttachAll(doc, catalog.Tables) {
				tablesSeen[tbl.Spec().ID] = true
				assert.NotEmpty(t, tbl.Rows(), name)
				for _, c := range tbl.Spec().Controls {
					assert.NotNil(t, tbl.Control(c.ID), "%s: %s", name, c.ID)
				}
			}
		}
		assert.Len(t, formsSeen, len(catalog.Forms))
		assert.Len(t, tablesSeen, len(catalog.Tables))
	})

	t.Run("rejects bad names", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{"a.html": {Data: []byte("<p>a</p>")}}
		for _, name := range []string{"", "../a", "x/a", "missing", "."} {
			_, err := playground.LoadPage(fsys, name)
			assert.ErrorIs(t, err, playground.ErrPageNotFound, name)
		}
		_, err := playground.LoadPage(fsys, "a")
		assert.NoError(t, err)
	})

	t.Run("pages from a directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.html"), []byte("<form id=login_form></form>"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

		pages, err := playground.Pages(dir)
		require.NoError(t, err)
		names, err := playground.PageNames(pages)
		require.NoError(t, err)
		assert.Equal(t, []string{"custom"}, names)

		_, err = playground.Pages(filepath.Join(dir, "notes.txt"))
		assert.Error(t, err)
	})
}
