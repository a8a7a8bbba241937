package varycache_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/varycache/pkg/varycache"
)

func newController(t *testing.T, opts ...varycache.Option) *varycache.Controller {
	t.Helper()
	return varycache.New(opts...).NewController(httptest.NewRequest(http.MethodGet, "/", nil))
}

func requestWithCookie(t *testing.T, name, value string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: name, Value: value})
	return r
}

func TestRegisterGroup(t *testing.T) {
	t.Parallel()

	t.Run("registers with empty segment", func(t *testing.T) {
		t.Parallel()
		c := newController(t)

		require.NoError(t, c.RegisterGroup("beta"))
		assert.True(t, c.IsUserInGroup("beta"))
		assert.True(t, c.IsUserInGroupSegment("beta", ""))
	})

	t.Run("idempotent for known group", func(t *testing.T) {
		t.Parallel()
		c := newController(t)

		require.NoError(t, c.SetGroupForUser("beta", "on"))
		require.NoError(t, c.RegisterGroup("beta"))
		assert.True(t, c.IsUserInGroupSegment("beta", "on"), "re-registration must not clear the segment")
	})

	t.Run("invalid name returns structured error", func(t *testing.T) {
		t.Parallel()
		c := newController(t)

		err := c.RegisterGroup("bad--name")
		require.ErrorIs(t, err, varycache.ErrInvalidGroupName)
		require.ErrorIs(t, err, varycache.ErrDelimiterInToken)
		assert.False(t, c.IsUserInGroup("bad--name"))

		err = c.RegisterGroup("bad name")
		require.ErrorIs(t, err, varycache.ErrInvalidGroupName)
		require.ErrorIs(t, err, varycache.ErrInvalidTokenChars)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		t.Parallel()
		c := newController(t)
		require.ErrorIs(t, c.RegisterGroup(""), varycache.ErrInvalidGroupName)
	})

	t.Run("invalid name logs warning", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		c := newController(t, varycache.WithLogger(log))

		require.Error(t, c.RegisterGroup("bad--name"))
		assert.Contains(t, buf.String(), "segmentation group rejected")
	})

	t.Run("registration does not mark cookie pending", func(t *testing.T) {
		t.Parallel()
		c := newController(t)

		require.NoError(t, c.RegisterGroup("beta"))
		groupsChanged, noCacheChanged := c.PendingFlags()
		assert.False(t, groupsChanged)
		assert.False(t, noCacheChanged)
	})
}

func TestRegisterGroups(t *testing.T) {
	t.Parallel()

	t.Run("registers all", func(t *testing.T) {
		t.Parallel()
		c := newController(t)

		require.NoError(t, c.RegisterGroups([]string{"beta", "pricing"}))
		assert.True(t, c.IsUserInGroup("beta"))
		assert.True(t, c.IsUserInGroup("pricing"))
		assert.Equal(t, []string{"beta", "pricing"}, c.GroupOrder())
	})

	t.Run("single invalid entry aborts the batch", func(t *testing.T) {
		t.Parallel()
		c := newController(t)
		require.NoError(t, c.RegisterGroup("existing"))

		err := c.RegisterGroups([]string{"beta", "bad--name", "pricing"})
		require.ErrorIs(t, err, varycache.ErrInvalidGroupName)

		assert.False(t, c.IsUserInGroup("beta"), "no partial registration")
		assert.False(t, c.IsUserInGroup("pricing"))
		assert.Equal(t, []string{"existing"}, c.GroupOrder())
	})
}

func TestSetGroupForUser(t *testing.T) {
	t.Parallel()

	t.Run("stores segment and marks cookie pending", func(t *testing.T) {
		t.Parallel()
		c := newController(t)

		require.NoError(t, c.SetGroupForUser("beta", "on"))
		assert.True(t, c.IsUserInGroupSegment("beta", "on"))

		groupsChanged, noCacheChanged := c.PendingFlags()
		assert.True(t, groupsChanged)
		assert.False(t, noCacheChanged)
	})

	t.Run("name violation", func(t *testing.T) {
		t.Parallel()
		c := newController(t)

		err := c.SetGroupForUser("bad--name", "on")
		require.ErrorIs(t, err, varycache.ErrInvalidGroupName)
		assert.NotErrorIs(t, err, varycache.ErrInvalidGroupSegment)
	})

	t.Run("segment violation", func(t *testing.T) {
		t.Parallel()
		c := newController(t)

		err := c.SetGroupForUser("beta", "bad___value")
		require.ErrorIs(t, err, varycache.ErrInvalidGroupSegment)
		assert.NotErrorIs(t, err, varycache.ErrInvalidGroupName)
		assert.False(t, c.IsUserInGroup("beta"), "failed assignment must not register the group")
	})

	t.Run("empty segment value is valid", func(t *testing.T) {
		t.Parallel()
		c := newController(t)
		require.NoError(t, c.SetGroupForUser("beta", ""))
		assert.True(t, c.IsUserInGroupSegment("beta", ""))
	})
}

func TestMembership(t *testing.T) {
	t.Parallel()

	t.Run("unknown group is never a member", func(t *testing.T) {
		t.Parallel()
		c := newController(t)

		assert.False(t, c.IsUserInGroup("ghost"))
		assert.False(t, c.IsUserInGroupSegment("ghost", ""))
		assert.False(t, c.IsUserInGroupSegment("ghost", "x"))
	})

	t.Run("empty string and zero are distinct segments", func(t *testing.T) {
		t.Parallel()
		c := newController(t)

		require.NoError(t, c.SetGroupForUser("beta", "0"))
		assert.True(t, c.IsUserInGroupSegment("beta", "0"))
		assert.False(t, c.IsUserInGroupSegment("beta", ""))

		require.NoError(t, c.SetGroupForUser("beta", ""))
		assert.True(t, c.IsUserInGroupSegment("beta", ""))
		assert.False(t, c.IsUserInGroupSegment("beta", "0"))
	})

	t.Run("groups snapshot is a copy", func(t *testing.T) {
		t.Parallel()
		c := newController(t)
		require.NoError(t, c.SetGroupForUser("beta", "on"))

		snapshot := c.Groups()
		snapshot["beta"] = "tampered"
		snapshot["new"] = "x"

		assert.True(t, c.IsUserInGroupSegment("beta", "on"))
		assert.False(t, c.IsUserInGroup("new"))
	})
}

func TestNoCache(t *testing.T) {
	t.Parallel()

	t.Run("toggle always marks cookie pending", func(t *testing.T) {
		t.Parallel()
		c := newController(t)

		require.NoError(t, c.SetNoCacheForUser())
		assert.True(t, c.NoCache())
		groupsChanged, noCacheChanged := c.PendingFlags()
		assert.False(t, groupsChanged)
		assert.True(t, noCacheChanged)

		require.NoError(t, c.RemoveNoCacheForUser())
		assert.False(t, c.NoCache())
	})

	t.Run("inbound nocache cookie sets the flag", func(t *testing.T) {
		t.Parallel()
		m := varycache.New()
		c := m.NewController(requestWithCookie(t, m.CookieName(), "nocache"))

		assert.True(t, c.NoCache())
		groupsChanged, noCacheChanged := c.PendingFlags()
		assert.False(t, groupsChanged, "parsed state is not pending state")
		assert.False(t, noCacheChanged)
	})
}

func TestInboundCookieState(t *testing.T) {
	t.Parallel()

	t.Run("segment survives registration", func(t *testing.T) {
		t.Parallel()
		m := varycache.New()
		c := m.NewController(requestWithCookie(t, m.CookieName(), "dev-group--yes"))

		require.NoError(t, c.RegisterGroups([]string{"dev-group"}))
		assert.True(t, c.IsUserInGroupSegment("dev-group", "yes"))
		assert.False(t, c.IsUserInGroupSegment("dev-group", "0"))
	})

	t.Run("foreign cookie name is ignored", func(t *testing.T) {
		t.Parallel()
		m := varycache.New(varycache.WithCookieName("segments"))
		c := m.NewController(requestWithCookie(t, "other", "dev-group--yes"))

		assert.False(t, c.IsUserInGroup("dev-group"))
	})
}
