package varycache

import (
	"net/http"

	"github.com/google/uuid"
)

// Emission is the audit record published once per request, right after the
// boundary event fired. ID correlates the record across log pipelines.
type Emission struct {
	ID         string
	VarySent   bool
	CookieSent bool
}

// OnEmit registers an observer invoked exactly once, after headers and
// cookie have been written and the lifecycle guard has flipped. Observers
// registered after emission are never called.
func (c *Controller) OnEmit(fn func(Emission)) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

// SendHeaders is the boundary event: it decides and writes the Vary header
// and the cookie, flips the lifecycle guard, and notifies observers. It
// must run before the response status is written. Calling it again is a
// no-op with no second write and no second notification.
//
// The Vary decision is asymmetric on purpose: in plaintext mode only group
// presence produces the segmentation token, and a lone no-cache flag emits
// no Vary at all. In encrypted mode the cookie also conveys auth-sensitive
// state, so either groups or no-cache produce the auth token instead.
func (c *Controller) SendHeaders(w http.ResponseWriter) {
	if c.headersSent {
		return
	}

	hasGroups := len(c.names) > 0

	varyToken := ""
	switch {
	case c.m.EncryptionEnabled() && (hasGroups || c.noCache):
		varyToken = c.m.authHeader
	case !c.m.EncryptionEnabled() && hasGroups:
		varyToken = c.m.segmentHeader
	}
	if varyToken != "" {
		w.Header().Add("Vary", varyToken)
	}

	cookieSent := false
	if c.groupsChanged || c.noCacheChanged {
		value, err := c.m.encode(c.names, c.segments, c.noCache)
		if err != nil {
			c.m.log.Error("segmentation cookie not written", "error", err)
		} else {
			http.SetCookie(w, c.m.buildCookie(value))
			cookieSent = true
		}
	}

	c.headersSent = true

	emission := Emission{
		ID:         uuid.NewString(),
		VarySent:   varyToken != "",
		CookieSent: cookieSent,
	}
	for _, fn := range c.observers {
		fn(emission)
	}
}
