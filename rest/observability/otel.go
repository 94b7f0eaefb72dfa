package observability

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/seb7887/simplerest/rest"
)

// Instrumenter provides OpenTelemetry instrumentation for REST calls.
// It creates client spans and injects trace context into outgoing headers.
type Instrumenter struct {
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// NewInstrumenter creates a new instrumenter with the given tracer provider.
// If provider is nil, uses the global tracer provider.
func NewInstrumenter(provider trace.TracerProvider) *Instrumenter {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}

	return &Instrumenter{
		tracer:     provider.Tracer(instrumentationName),
		propagator: otel.GetTextMapPropagator(),
	}
}

// WithPropagator replaces the propagator used for header injection.
func (o *Instrumenter) WithPropagator(p propagation.TextMapPropagator) *Instrumenter {
	return &Instrumenter{tracer: o.tracer, propagator: p}
}

// StartSpan creates a client span for req and injects its context into the
// request headers.
func (o *Instrumenter) StartSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("HTTP %s", req.Method)
	ctx, span := o.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
	)

	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.url", req.URL.String()),
		attribute.String("http.scheme", req.URL.Scheme),
		attribute.String("http.host", req.URL.Host),
		attribute.String("http.target", req.URL.Path),
	)

	if req.URL.RawQuery != "" {
		span.SetAttributes(attribute.String("http.query", req.URL.RawQuery))
	}

	o.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	return ctx, span
}

// EndSpan completes the span. A zero statusCode means no response was received.
func (o *Instrumenter) EndSpan(span trace.Span, statusCode int, err error) {
	if statusCode != 0 {
		span.SetAttributes(attribute.Int("http.status_code", statusCode))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}

// Inject writes the trace context carried by ctx into headers.
func (o *Instrumenter) Inject(ctx context.Context, headers map[string]string) {
	o.propagator.Inject(ctx, propagation.MapCarrier(headers))
}
