package varycache

import (
	"net/http"
)

// Middleware builds the per-request Controller from the inbound cookie,
// installs it in the request context, and fires the boundary event exactly
// once, immediately before the first byte of the response goes out. If the
// handler never writes, the boundary fires when the handler returns, so
// implicit 200 responses still carry the Vary header and cookie.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := m.NewController(r)
			bw := &boundaryWriter{ResponseWriter: w, controller: c}

			next.ServeHTTP(bw, r.WithContext(WithContext(r.Context(), c)))

			// Handler finished without writing anything.
			c.SendHeaders(w)
		})
	}
}

// boundaryWriter intercepts the first header flush so the segmentation
// headers are written while the response is still mutable.
type boundaryWriter struct {
	http.ResponseWriter
	controller  *Controller
	wroteHeader bool
}

func (w *boundaryWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.controller.SendHeaders(w.ResponseWriter)
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *boundaryWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap supports http.ResponseController passthrough.
func (w *boundaryWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
