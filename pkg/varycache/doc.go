// Package varycache decides, per request, which cache variant a page
// belongs to and emits the signal a front-line HTTP cache needs to serve
// group-specific variants safely: a Vary response header plus a
// segmentation cookie.
//
// The package does not implement an HTTP cache. It only produces the
// variant key inputs; an external cache (CDN, reverse proxy) combines the
// Vary token and cookie into its cache key.
//
// # Overview
//
// A long-lived Manager carries the configuration: cookie name and
// attributes, the two Vary tokens, and optional encryption secrets. Each
// request gets a Controller, built by parsing the inbound segmentation
// cookie. Request handlers register segmentation groups, assign the client
// to segments, or flag the client as no-cache. At the boundary event,
// the point after which response headers are immutable, the Controller
// writes the Vary header and, when state changed, re-issues the cookie,
// then notifies registered observers with an audit record.
//
// # Lifecycle
//
// The boundary event fires exactly once per request. The Middleware wires
// it to the first header flush of the response (or, for handlers that
// write nothing, to handler return). After it fires, every mutating
// operation returns ErrDidSendHeaders and leaves state untouched; firing
// it again is a no-op. Hosts that do not use the middleware call
// Controller.SendHeaders at their own boundary.
//
// # Cookie grammar
//
// The cookie value joins "name--segment" pairs with "___", with a leading
// "nocache" chunk carrying the no-cache flag:
//
//	nocache___beta-ui--on___pricing--b
//
// Group names and segment values are limited to [A-Za-z0-9_-] and may not
// contain either delimiter. Parsing is lenient: the cookie is untrusted
// client input, so malformed chunks are skipped and a tampered payload
// degrades to "no groups, no-cache off" rather than erroring.
//
// # Encryption
//
// When two secrets (key + IV) are configured, cookie payloads are sealed
// with AES-256-GCM; the secrets are stretched into the AES key via
// HKDF-SHA256. Requesting encryption with a missing secret panics at
// startup: that is a misconfiguration, not a runtime condition. With
// encryption on, the cookie also conveys auth-sensitive state, so the
// Vary token switches from the segmentation token to the auth token.
//
// # Usage
//
//	m := varycache.New(
//		varycache.WithEncryption(os.Getenv("VC_KEY"), os.Getenv("VC_IV")),
//	)
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/pricing", func(w http.ResponseWriter, r *http.Request) {
//		vc := varycache.FromContext(r.Context())
//		_ = vc.RegisterGroup("pricing")
//		if vc.IsUserInGroupSegment("pricing", "b") {
//			// render variant B
//		}
//	})
//
//	http.ListenAndServe(":8080", varycache.Middleware(m)(mux))
//
// # Error Handling
//
// Mutating operations return sentinel errors with stable codes
// (ErrInvalidGroupName, ErrInvalidGroupSegment, ErrDidSendHeaders, ...);
// callers branch with errors.Is. Validation failures on the registration
// path are additionally logged as warnings through the Manager logger so
// discarded return values still leave a trace.
package varycache
