package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ecogai/pollution-backend/internal/api/middleware"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func TestObservabilityMiddleware_SpanNamedByRoutePattern(t *testing.T) {
	recorder := recordSpans(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /reports/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.ObservabilityMiddleware(nil)(mux)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/reports/abc123", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /reports/{id}", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("http.route", "GET /reports/{id}"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.status_code", http.StatusOK))
}

func TestObservabilityMiddleware_UnmatchedRouteFallsBackToPath(t *testing.T) {
	recorder := recordSpans(t)

	handler := middleware.ObservabilityMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/no/such/route", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "/no/such/route", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.status_code", http.StatusNotFound))
}
