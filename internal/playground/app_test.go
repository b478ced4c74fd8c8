package playground_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/internal/playground"
)

var sessionRe = regexp.MustCompile(`data-formkit-session="([^"]+)"`)

func newApp(t *testing.T) http.Handler {
	t.Helper()
	app, err := playground.New(playground.Config{AppName: "formkit"}, nil)
	require.NoError(t, err)
	return app.Router()
}

func openPage(t *testing.T, h http.Handler, name string) (string, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pages/"+name, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	m := sessionRe.FindStringSubmatch(body)
	require.Len(t, m, 2, "session id missing from page")
	return m[1], body
}

func sendEvent(h http.Handler, session string, params url.Values, form url.Values, sse bool) *httptest.ResponseRecorder {
	var req *http.Request
	target := "/sessions/" + session + "/events?" + params.Encode()
	if form != nil {
		req = httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(http.MethodPost, target, nil)
	}
	if sse {
		req.Header.Set("Accept", "text/event-stream")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	t.Parallel()
	h := newApp(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, page := range []string{"register", "login", "user_update", "password_reset", "password_reset_confirm", "booking", "create_team", "bookings", "teams"} {
		assert.Contains(t, body, `href="/pages/`+page+`"`)
	}
	assert.Contains(t, body, "form <code>booking_form</code>: 6 fields")
	assert.Contains(t, body, "table <code>teams_table</code>: 3 controls")
}

func TestPage(t *testing.T) {
	t.Parallel()

	t.Run("annotates listeners", func(t *testing.T) {
		t.Parallel()
		h := newApp(t)
		session, body := openPage(t, h, "register")

		_, err := uuid.Parse(session)
		require.NoError(t, err)
		assert.Contains(t, body, `data-on:submit__prevent=`)
		assert.Contains(t, body, `/sessions/`+session+`/events?type=input&amp;target=id_username`)
		assert.Contains(t, body, `id="formkit-status"`)
		assert.Contains(t, body, "datastar.js")
	})

	t.Run("bookings are sorted on render", func(t *testing.T) {
		t.Parallel()
		h := newApp(t)
		_, body := openPage(t, h, "bookings")

		order := []string{"booking-11", "booking-12", "booking-13", "booking-15", "booking-14"}
		last := -1
		for _, id := range order {
			idx := strings.Index(body, `id="`+id+`"`)
			require.Greater(t, idx, last, id)
			last = idx
		}
	})

	t.Run("unknown page", func(t *testing.T) {
		t.Parallel()
		h := newApp(t)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pages/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEvents(t *testing.T) {
	t.Parallel()

	t.Run("live input patches the form with the error", func(t *testing.T) {
		t.Parallel()
		h := newApp(t)
		session, _ := openPage(t, h, "register")

		rec := sendEvent(h, session, url.Values{
			"type": {"input"}, "target": {"id_username"}, "value": {"ab cd"},
		}, nil, true)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, "#register_form")
		assert.Contains(t, body, "is-invalid")
		assert.Contains(t, body, `<div class="invalid-feedback">Username must be 150 characters or fewer. Letters, digits and @/./+/-/_ only.</div>`)
	})

	t.Run("state persists across events", func(t *testing.T) {
		t.Parallel()
		h := newApp(t)
		session, _ := openPage(t, h, "register")

		sendEvent(h, session, url.Values{"type": {"input"}, "target": {"id_username"}, "value": {"ab cd"}}, nil, true)
		rec := sendEvent(h, session, url.Values{"type": {"input"}, "target": {"id_username"}, "value": {"ab_cd"}}, nil, true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "invalid-feedback")
	})

	t.Run("submit is blocked", func(t *testing.T) {
		t.Parallel()
		h := newApp(t)
		session, _ := openPage(t, h, "register")

		rec := sendEvent(h, session,
			url.Values{"type": {"submit"}, "target": {"register_form"}},
			url.Values{"username": {"ann"}, "email": {""}, "password1": {"12345678"}, "password2": {"x"}},
			true)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "register_form: submission blocked")
		assert.Contains(t, body, "Email is required.")
		assert.Contains(t, body, "Password cannot be entirely numeric.")
		assert.Contains(t, body, "Passwords do not match.")
	})

	t.Run("submit proceeds", func(t *testing.T) {
		t.Parallel()
		h := newApp(t)
		session, _ := openPage(t, h, "register")

		rec := sendEvent(h, session,
			url.Values{"type": {"submit"}, "target": {"register_form"}},
			url.Values{"username": {"ann"}, "email": {"ann@example.com"}, "password1": {"s3cret-pass"}, "password2": {"s3cret-pass"}},
			true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "register_form: submission proceeds")
		assert.NotContains(t, rec.Body.String(), "invalid-feedback")
	})

	t.Run("filter change patches table and controls", func(t *testing.T) {
		t.Parallel()
		h := newApp(t)
		session, _ := openPage(t, h, "teams")

		rec := sendEvent(h, session, url.Values{
			"type": {"change"}, "target": {"gender_filter"}, "value": {"boys"},
		}, nil, true)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "#teams_table")
		assert.Contains(t, body, "#sport_filter")
		assert.Contains(t, body, "teams_table: 3 of 8 rows visible")
		assert.Regexp(t, `<option value="camogie"[^>]*disabled`, body)
	})

	t.Run("reset click", func(t *testing.T) {
		t.Parallel()
		h := newApp(t)
		session, _ := openPage(t, h, "bookings")

		sendEvent(h, session, url.Values{"type": {"change"}, "target": {"pitch_filter"}, "value": {"astro"}}, nil, true)
		rec := sendEvent(h, session, url.Values{"type": {"click"}, "target": {"reset_filters"}}, nil, true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "bookings_table: 5 of 5 rows visible")
	})

	t.Run("plain clients get html", func(t *testing.T) {
		t.Parallel()
		h := newApp(t)
		session, _ := openPage(t, h, "login")

		rec := sendEvent(h, session, url.Values{"type": {"input"}, "target": {"id_password"}, "value": {"short"}}, nil, false)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.True(t, strings.HasPrefix(rec.Body.String(), `<form id="login_form"`))
		assert.Contains(t, rec.Body.String(), "Password must be at least 8 characters and cannot be entirely numeric.")
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		h := newApp(t)
		session, _ := openPage(t, h, "login")

		rec := sendEvent(h, uuid.NewString(), url.Values{"type": {"input"}, "target": {"id_username"}}, nil, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = sendEvent(h, "not-a-uuid", url.Values{"type": {"input"}, "target": {"id_username"}}, nil, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = sendEvent(h, session, url.Values{"type": {"input"}, "target": {"id_missing"}}, nil, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = sendEvent(h, session, url.Values{"type": {"keyup"}, "target": {"id_username"}}, nil, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProbesAndMetrics(t *testing.T) {
	t.Parallel()
	h := newApp(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, "ALIVE", rec.Body.String())

	session, _ := openPage(t, h, "register")
	sendEvent(h, session, url.Values{"type": {"submit"}, "target": {"register_form"}}, url.Values{}, true)
	sendEvent(h, session, url.Values{"type": {"input"}, "target": {"id_email"}, "value": {"nope"}}, nil, true)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `formkit_submits_total{form="register_form",outcome="blocked"} 1`)
	assert.Contains(t, body, `formkit_field_validations_total{field="email",form="register_form",result="invalid"} 1`)
	assert.Contains(t, body, `formkit_events_total{type="submit"} 1`)
	assert.Contains(t, body, `formkit_sessions_active 1`)
}
