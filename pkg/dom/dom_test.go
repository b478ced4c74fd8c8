package dom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/dom"
)

const page = `<!DOCTYPE html>
<html><body>
<form id="f">
  <div id="div_id_name" class="mb-3"><input type="text" id="id_name" name="name" value="Ann"></div>
  <div id="div_id_bio"><textarea id="id_bio">hello</textarea></div>
  <div id="div_id_pitch">
    <select id="id_pitch">
      <option value="">---------</option>
      <option value="1">Astro</option>
      <option value="2" selected>Main</option>
    </select>
  </div>
</form>
<table id="t"><tbody><tr id="r1" data-pitch="Astro"><td>a</td></tr><tr id="r2"><td>b</td></tr></tbody></table>
</body></html>`

func mustParse(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	return doc
}

func TestQueries(t *testing.T) {
	t.Parallel()
	doc := mustParse(t)

	t.Run("get element by id", func(t *testing.T) {
		el := doc.GetElementByID("id_name")
		require.NotNil(t, el)
		assert.Equal(t, "input", el.TagName())
		assert.Nil(t, doc.GetElementByID("missing"))
		assert.Nil(t, doc.GetElementByID(""))
	})

	t.Run("scoped selector", func(t *testing.T) {
		group := doc.QuerySelector("#div_id_name")
		require.NotNil(t, group)
		input := group.QuerySelector("input")
		require.NotNil(t, input)
		assert.True(t, input.Is(doc.GetElementByID("id_name")))
	})

	t.Run("element by id is scoped", func(t *testing.T) {
		group := doc.GetElementByID("div_id_pitch")
		require.NotNil(t, group)
		assert.Equal(t, "select", group.ElementByID("id_pitch").TagName())
		assert.Nil(t, group.ElementByID("id_name"))
		assert.Nil(t, group.ElementByID("div_id_pitch"))
		assert.Nil(t, group.ElementByID(""))
	})

	t.Run("invalid selector matches nothing", func(t *testing.T) {
		assert.Nil(t, doc.QuerySelector("[[["))
		assert.Empty(t, doc.QuerySelectorAll("[[["))
	})

	t.Run("rows in order", func(t *testing.T) {
		rows := doc.QuerySelectorAll("#t tbody tr")
		require.Len(t, rows, 2)
		assert.Equal(t, "r1", rows[0].ID())
		assert.Equal(t, "Astro", rows[0].Data("pitch"))
		assert.Equal(t, "", rows[1].Data("pitch"))
	})
}

func TestValues(t *testing.T) {
	t.Parallel()

	t.Run("input", func(t *testing.T) {
		doc := mustParse(t)
		el := doc.GetElementByID("id_name")
		assert.Equal(t, "Ann", el.Value())
		el.SetValue("Bob")
		assert.Equal(t, "Bob", el.Value())
		assert.Equal(t, "text", el.Type())
	})

	t.Run("textarea", func(t *testing.T) {
		doc := mustParse(t)
		el := doc.GetElementByID("id_bio")
		assert.Equal(t, "hello", el.Value())
		el.SetValue("bye")
		assert.Equal(t, "bye", el.Value())
	})

	t.Run("select", func(t *testing.T) {
		doc := mustParse(t)
		el := doc.GetElementByID("id_pitch")
		assert.Equal(t, "2", el.Value())
		el.SetValue("1")
		assert.Equal(t, "1", el.Value())
		assert.Len(t, el.QuerySelectorAll("option[selected]"), 1)
		el.SetValue("")
		assert.Equal(t, "", el.Value())
	})

	t.Run("select without selection reports first enabled option", func(t *testing.T) {
		doc, err := dom.ParseString(`<select id="s"><option value="x" disabled>x</option><option>all</option></select>`)
		require.NoError(t, err)
		assert.Equal(t, "all", doc.GetElementByID("s").Value())
	})
}

func TestClassesAndStyle(t *testing.T) {
	t.Parallel()
	doc := mustParse(t)
	group := doc.GetElementByID("div_id_name")

	group.AddClass("is-invalid")
	group.AddClass("is-invalid")
	assert.Equal(t, []string{"mb-3", "is-invalid"}, group.Classes())

	group.RemoveClass("is-invalid")
	assert.Equal(t, []string{"mb-3"}, group.Classes())
	group.RemoveClass("mb-3")
	assert.False(t, group.HasAttr("class"))

	row := doc.GetElementByID("r1")
	row.SetAttr("style", "color: red")
	row.SetHidden(true)
	assert.True(t, row.Hidden())
	assert.Equal(t, "color: red; display: none;", row.GetAttr("style"))
	row.SetHidden(false)
	assert.False(t, row.Hidden())
	assert.Equal(t, "color: red;", row.GetAttr("style"))

	other := doc.GetElementByID("r2")
	other.SetHidden(true)
	other.SetHidden(false)
	assert.False(t, other.HasAttr("style"))
}

func TestTreeMutation(t *testing.T) {
	t.Parallel()
	doc := mustParse(t)
	input := doc.GetElementByID("id_name")

	fb := doc.CreateElement("div")
	fb.AddClass("invalid-feedback")
	fb.SetText("Name is required.")
	input.InsertAfter(fb)

	next := input.NextElementSibling()
	require.NotNil(t, next)
	assert.True(t, next.Is(fb))
	assert.Equal(t, "Name is required.", next.Text())

	fb.Remove()
	assert.Nil(t, input.NextElementSibling())
	assert.False(t, fb.Attached())

	tbody := doc.QuerySelector("#t tbody")
	first := doc.GetElementByID("r1")
	tbody.AppendChild(first)
	rows := tbody.Children()
	require.Len(t, rows, 2)
	assert.Equal(t, "r2", rows[0].ID())
	assert.Equal(t, "r1", rows[1].ID())
}

func TestCustomValidity(t *testing.T) {
	t.Parallel()
	doc := mustParse(t)
	el := doc.GetElementByID("id_name")
	el.SetCustomValidity("Passwords do not match.")
	assert.Equal(t, "Passwords do not match.", el.ValidationMessage())
	el.SetCustomValidity("")
	assert.Empty(t, el.ValidationMessage())
}

func TestEvents(t *testing.T) {
	t.Parallel()

	t.Run("listeners fire in registration order", func(t *testing.T) {
		doc := mustParse(t)
		el := doc.GetElementByID("id_name")
		var calls []string
		el.AddEventListener(dom.EventInput, func(e *dom.Event) {
			calls = append(calls, "first:"+e.Target.Value())
		})
		doc.AddEventListener(el, dom.EventChange, func(*dom.Event) { calls = append(calls, "change") })
		el.AddEventListener(dom.EventInput, func(*dom.Event) { calls = append(calls, "second") })

		doc.Input(el, "Zed")
		assert.Equal(t, []string{"first:Zed", "second"}, calls)
	})

	t.Run("submit reports prevent default", func(t *testing.T) {
		doc := mustParse(t)
		form := doc.GetElementByID("f")
		assert.True(t, doc.Submit(form))

		form.AddEventListener(dom.EventSubmit, func(e *dom.Event) { e.PreventDefault() })
		assert.False(t, doc.Submit(form))
	})

	t.Run("nil targets are ignored", func(t *testing.T) {
		doc := mustParse(t)
		assert.True(t, doc.Submit(nil))
		doc.Input(nil, "x")
		doc.Click(nil)
		doc.AddEventListener(nil, dom.EventClick, func(*dom.Event) {})
		assert.Empty(t, doc.Bindings())
	})

	t.Run("bindings are unique per element and type", func(t *testing.T) {
		doc := mustParse(t)
		el := doc.GetElementByID("id_name")
		noop := func(*dom.Event) {}
		el.AddEventListener(dom.EventInput, noop)
		el.AddEventListener(dom.EventInput, noop)
		el.AddEventListener(dom.EventChange, noop)

		b := doc.Bindings()
		require.Len(t, b, 2)
		assert.Equal(t, dom.EventInput, b[0].Type)
		assert.Equal(t, dom.EventChange, b[1].Type)
		assert.True(t, b[0].Element.Is(el))
	})
}

func TestRender(t *testing.T) {
	t.Parallel()
	doc := mustParse(t)
	doc.GetElementByID("id_name").SetValue("Q")

	out, err := doc.HTML()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `value="Q"`)

	outer, err := doc.GetElementByID("div_id_name").OuterHTML()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(outer, `<div id="div_id_name"`))
}

func TestParseReaderError(t *testing.T) {
	t.Parallel()
	_, err := dom.Parse(failingReader{})
	require.Error(t, err)
	assert.ErrorIs(t, err, dom.ErrParse)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, assert.AnError }
