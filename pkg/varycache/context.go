package varycache

import "context"

type contextKey struct{}

// WithContext stores the Controller in the context.
func WithContext(ctx context.Context, c *Controller) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext extracts the Controller installed by the middleware.
// Returns nil when the request did not pass through Middleware.
func FromContext(ctx context.Context) *Controller {
	if ctx == nil {
		return nil
	}
	c, ok := ctx.Value(contextKey{}).(*Controller)
	if !ok {
		return nil
	}
	return c
}
