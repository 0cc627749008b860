package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"game-history/internal/handler/http/requestid"
)

func withRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})
	return exporter
}

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestMiddleware_CreatesSpan(t *testing.T) {
	exporter := withRecorder(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /players/{playerID}/games", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	rr := httptest.NewRecorder()
	Middleware(mux).ServeHTTP(rr, httptest.NewRequest("GET", "/players/alice/games", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "GET /players/:id/games", span.Name)

	status, ok := attr(span.Attributes, "http.response.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(200), status.AsInt64())

	route, ok := attr(span.Attributes, "http.route")
	require.True(t, ok)
	assert.Equal(t, "/players/:id/games", route.AsString())

	path, ok := attr(span.Attributes, "url.path")
	require.True(t, ok)
	assert.Equal(t, "/players/alice/games", path.AsString())

	assert.Len(t, rr.Header().Get(TraceIDHeader), 32)
}

func TestMiddleware_RecordsRequestID(t *testing.T) {
	exporter := withRecorder(t)

	handler := requestid.Middleware(Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))
	req := httptest.NewRequest("POST", "/games", nil)
	req.Header.Set(requestid.RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	id, ok := attr(spans[0].Attributes, "http.request_id")
	require.True(t, ok)
	assert.Equal(t, "req-42", id.AsString())
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter := withRecorder(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/games/history", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext.TraceID().String())
}

func TestMiddleware_MarksErrorSpansFor5xx(t *testing.T) {
	exporter := withRecorder(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/games/history", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func TestEndSpan(t *testing.T) {
	exporter := withRecorder(t)

	_, ok := GetTracer().Start(context.Background(), "ok")
	EndSpan(ok, nil)
	_, failed := GetTracer().Start(context.Background(), "failed")
	EndSpan(failed, errors.New("store unavailable"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Len(t, spans[1].Events, 1, "error recorded as span event")
}

func TestInit_WithoutExporter(t *testing.T) {
	t.Cleanup(func() { otel.SetTracerProvider(sdktrace.NewTracerProvider()) })

	shutdown, err := Init(context.Background(), Config{ServiceName: "game-history", SamplingRate: 1})
	require.NoError(t, err)

	_, span := GetTracer().Start(context.Background(), "probe")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}
