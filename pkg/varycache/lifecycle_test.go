package varycache_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/varycache/pkg/varycache"
)

func TestSendHeaders(t *testing.T) {
	t.Parallel()

	t.Run("no groups no nocache emits nothing", func(t *testing.T) {
		t.Parallel()
		c := newController(t)
		w := httptest.NewRecorder()

		var got varycache.Emission
		c.OnEmit(func(e varycache.Emission) { got = e })
		c.SendHeaders(w)

		assert.Empty(t, w.Header().Get("Vary"))
		assert.Empty(t, w.Result().Cookies())
		assert.False(t, got.VarySent)
		assert.False(t, got.CookieSent)
		assert.NotEmpty(t, got.ID)
	})

	t.Run("registered group emits vary without cookie", func(t *testing.T) {
		t.Parallel()
		c := newController(t)
		require.NoError(t, c.RegisterGroup("dev-group"))
		w := httptest.NewRecorder()

		var got varycache.Emission
		c.OnEmit(func(e varycache.Emission) { got = e })
		c.SendHeaders(w)

		assert.Equal(t, varycache.DefaultSegmentHeader, w.Header().Get("Vary"))
		assert.Empty(t, w.Result().Cookies(), "nothing pending, cookie untouched")
		assert.True(t, got.VarySent)
		assert.False(t, got.CookieSent)
	})

	t.Run("assignment rewrites the cookie", func(t *testing.T) {
		t.Parallel()
		c := newController(t)
		require.NoError(t, c.SetGroupForUser("dev-group", "yep"))
		w := httptest.NewRecorder()

		var got varycache.Emission
		c.OnEmit(func(e varycache.Emission) { got = e })
		c.SendHeaders(w)

		assert.Equal(t, varycache.DefaultSegmentHeader, w.Header().Get("Vary"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, varycache.DefaultCookieName, cookies[0].Name)
		assert.Equal(t, "dev-group--yep", cookies[0].Value)
		assert.Equal(t, "/", cookies[0].Path)
		assert.True(t, cookies[0].HttpOnly)

		assert.True(t, got.VarySent)
		assert.True(t, got.CookieSent)
	})

	t.Run("nocache alone rewrites cookie but emits no vary", func(t *testing.T) {
		t.Parallel()
		c := newController(t)
		require.NoError(t, c.SetNoCacheForUser())
		w := httptest.NewRecorder()

		var got varycache.Emission
		c.OnEmit(func(e varycache.Emission) { got = e })
		c.SendHeaders(w)

		assert.Empty(t, w.Header().Get("Vary"), "no-cache does not trigger the segmentation token")
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "nocache", cookies[0].Value)
		assert.False(t, got.VarySent)
		assert.True(t, got.CookieSent)
	})

	t.Run("cookie attributes follow configuration", func(t *testing.T) {
		t.Parallel()
		m := varycache.New(
			varycache.WithCookieName("segments"),
			varycache.WithCookieOptions(varycache.CookieOptions{
				Path:   "/app",
				MaxAge: 3600,
				Secure: true,
			}),
		)
		c := m.NewController(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, c.SetGroupForUser("beta", "on"))

		w := httptest.NewRecorder()
		c.SendHeaders(w)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "segments", cookies[0].Name)
		assert.Equal(t, "/app", cookies[0].Path)
		assert.Equal(t, 3600, cookies[0].MaxAge)
		assert.True(t, cookies[0].Secure)
	})
}

func TestLifecycleGuard(t *testing.T) {
	t.Parallel()

	t.Run("mutations fail after emission", func(t *testing.T) {
		t.Parallel()
		c := newController(t)
		require.NoError(t, c.SetGroupForUser("beta", "on"))
		c.SendHeaders(httptest.NewRecorder())
		require.True(t, c.HeadersSent())

		assert.ErrorIs(t, c.RegisterGroup("late"), varycache.ErrDidSendHeaders)
		assert.ErrorIs(t, c.RegisterGroups([]string{"late"}), varycache.ErrDidSendHeaders)
		assert.ErrorIs(t, c.SetGroupForUser("beta", "off"), varycache.ErrDidSendHeaders)
		assert.ErrorIs(t, c.SetNoCacheForUser(), varycache.ErrDidSendHeaders)
		assert.ErrorIs(t, c.RemoveNoCacheForUser(), varycache.ErrDidSendHeaders)

		assert.False(t, c.IsUserInGroup("late"), "state untouched after guard trips")
		assert.True(t, c.IsUserInGroupSegment("beta", "on"))
		assert.False(t, c.NoCache())
	})

	t.Run("reads still work after emission", func(t *testing.T) {
		t.Parallel()
		c := newController(t)
		require.NoError(t, c.SetGroupForUser("beta", "on"))
		c.SendHeaders(httptest.NewRecorder())

		assert.True(t, c.IsUserInGroup("beta"))
		assert.True(t, c.IsUserInGroupSegment("beta", "on"))
		assert.Equal(t, map[string]string{"beta": "on"}, c.Groups())
	})

	t.Run("second boundary event is a no-op", func(t *testing.T) {
		t.Parallel()
		c := newController(t)
		require.NoError(t, c.SetGroupForUser("beta", "on"))

		notifications := 0
		c.OnEmit(func(varycache.Emission) { notifications++ })

		w := httptest.NewRecorder()
		c.SendHeaders(w)
		c.SendHeaders(w)

		assert.Equal(t, 1, notifications)
		assert.Len(t, w.Header().Values("Vary"), 1)
		assert.Len(t, w.Result().Cookies(), 1)
	})

	t.Run("observer registered after emission is never called", func(t *testing.T) {
		t.Parallel()
		c := newController(t)
		c.SendHeaders(httptest.NewRecorder())

		called := false
		c.OnEmit(func(varycache.Emission) { called = true })
		c.SendHeaders(httptest.NewRecorder())

		assert.False(t, called)
	})
}
