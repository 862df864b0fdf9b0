package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// StatusRecorder captures the status code and body size of a response so the
// request logger and HTTP metrics can read them after the handler returns.
type StatusRecorder struct {
	http.ResponseWriter
	status     int
	written    int64
	headerSent bool
}

// NewStatusRecorder wraps w. Until the handler says otherwise the status
// reads as 200, matching what net/http sends on an implicit header.
func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code; repeat calls are passed through
// without overwriting it, mirroring net/http's first-write-wins rule.
func (sr *StatusRecorder) WriteHeader(code int) {
	if !sr.headerSent {
		sr.status = code
		sr.headerSent = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

// Write accumulates the body byte count across calls.
func (sr *StatusRecorder) Write(p []byte) (int, error) {
	sr.headerSent = true
	n, err := sr.ResponseWriter.Write(p)
	sr.written += int64(n)
	return n, err
}

// Status reports the recorded status code.
func (sr *StatusRecorder) Status() int { return sr.status }

// BytesWritten reports how many body bytes reached the client.
func (sr *StatusRecorder) BytesWritten() int64 { return sr.written }

// requestRoute resolves the matched route pattern for a request, preferring
// the pattern stashed by RoutePatternMiddleware over a live chi lookup. The
// fallback keeps labels bounded when neither source knows the route.
func requestRoute(r *http.Request, fallback string) string {
	if route := RoutePatternFromContext(r.Context()); route != "" {
		return route
	}
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if route := rc.RoutePattern(); route != "" {
			return route
		}
	}
	return fallback
}

// HTTPObs records request counts, latencies and the in-flight gauge per route.
type HTTPObs struct {
	Metrics *HTTPMetrics
}

// Middleware instruments the wrapped handler. A nil Metrics disables it.
func (o HTTPObs) Middleware(next http.Handler) http.Handler {
	if o.Metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := NewStatusRecorder(w)
		o.Metrics.InFlight.Inc()
		start := time.Now()
		next.ServeHTTP(recorder, r)
		o.Metrics.InFlight.Dec()

		route := requestRoute(r, "unknown")
		status := strconv.Itoa(recorder.Status())
		o.Metrics.ReqTotal.WithLabelValues(r.Method, route, status).Inc()
		o.Metrics.ReqDur.WithLabelValues(r.Method, route).Observe(DurationMillis(time.Since(start)))
	})
}

// RoutePatternMiddleware copies chi's matched route pattern onto the request
// context, where later middleware can read it without a router dependency.
func RoutePatternMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if rc := chi.RouteContext(ctx); rc != nil {
			ctx = WithRoutePattern(ctx, rc.RoutePattern())
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TracingMiddleware opens a server span per request, named after the method
// and matched route so span cardinality stays independent of path parameters.
func TracingMiddleware(next http.Handler) http.Handler {
	tracer := otel.Tracer("troli.http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := requestRoute(r, r.URL.Path)
		ctx, span := tracer.Start(r.Context(), r.Method+" "+route)
		defer span.End()

		recorder := NewStatusRecorder(w)
		next.ServeHTTP(recorder, r.WithContext(ctx))

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", route),
			attribute.String("http.target", r.URL.Path),
			attribute.Int("http.status_code", recorder.Status()),
		)
		if recorder.Status() >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(recorder.Status()))
		}
	})
}
