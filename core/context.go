package core

import "context"

// Context keys for execution options
type contextKey string

const suppressHeaderKey contextKey = "suppressHeader"

// WithSuppressHeader sets whether run banners should be suppressed in the context.
// Embedded callers like the MCP server and the web API use this to keep their
// output machine-clean.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether run banners should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show banners
	}
	suppress, ok := val.(bool)
	return ok && suppress
}
