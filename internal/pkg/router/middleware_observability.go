package router

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/danukusuma/gatekeeper/internal/pkg/instrument"
)

// responseWriter captures the response status and any handler error for the
// surrounding span.
type responseWriter struct {
	http.ResponseWriter
	status int
	err    error
}

func (w *responseWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// SetError records the handler error so the middleware can mark the span.
func (w *responseWriter) SetError(err error) {
	w.err = err
}

func middlewareObservability(ins instrument.Instrumentation) Middleware {
	tracer := ins.Tracer("router")
	meter := ins.Meter("router")

	requestDuration, _ := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithUnit("s"),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			route := r.URL.Path
			if matched := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); matched != "" {
				route = matched
			}

			ctx, span := tracer.Start(r.Context(), r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.URLPath(r.URL.Path),
				),
			)
			defer span.End()

			rw := &responseWriter{ResponseWriter: w}
			next.ServeHTTP(rw, r.WithContext(ctx))

			if rw.status == 0 {
				rw.status = http.StatusOK
			}

			span.SetAttributes(semconv.HTTPResponseStatusCode(rw.status))
			if rw.err != nil {
				span.RecordError(rw.err)
				span.SetStatus(codes.Error, rw.err.Error())
			}

			if requestDuration != nil {
				requestDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
					attribute.String("http.route", route),
					attribute.String("http.request.method", r.Method),
					attribute.Int("http.response.status_code", rw.status),
				))
			}
		})
	}
}
