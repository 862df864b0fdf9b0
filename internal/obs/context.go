package obs

import "context"

type routePatternKey struct{}

// WithRoutePattern attaches the matched route pattern to ctx. An empty
// pattern is dropped so readers can treat "" as "not matched".
func WithRoutePattern(ctx context.Context, pattern string) context.Context {
	if pattern == "" {
		return ctx
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, routePatternKey{}, pattern)
}

// RoutePatternFromContext returns the route pattern attached by
// WithRoutePattern, or "" when none was recorded.
func RoutePatternFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	pattern, _ := ctx.Value(routePatternKey{}).(string)
	return pattern
}
