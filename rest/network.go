package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/seb7887/simplerest/rest/observability"
)

// NetworkTransport executes requests over an *http.Client.
// It holds no per-call state and is safe for concurrent use.
type NetworkTransport struct {
	Base

	client       *http.Client
	logger       zerolog.Logger
	metrics      *observability.MetricsCollector
	instrumenter *observability.Instrumenter
}

var _ Transport = (*NetworkTransport)(nil)

// NetworkOption configures a NetworkTransport.
type NetworkOption interface {
	apply(*NetworkTransport)
}

type networkOptionFunc func(*NetworkTransport)

func (f networkOptionFunc) apply(t *NetworkTransport) { f(t) }

// WithHTTPClient sets the client used to send requests. Redirects, timeouts and
// connection reuse are whatever that client does.
func WithHTTPClient(client *http.Client) NetworkOption {
	return networkOptionFunc(func(t *NetworkTransport) {
		t.client = client
	})
}

// WithProcessors appends request processors to the transport's chain.
func WithProcessors(processors ...RequestProcessor) NetworkOption {
	return networkOptionFunc(func(t *NetworkTransport) {
		t.Base = NewBase(t.environment, t, append(t.Processors(), processors...)...)
	})
}

// WithLogger sets the logger used to report executions.
func WithLogger(logger zerolog.Logger) NetworkOption {
	return networkOptionFunc(func(t *NetworkTransport) {
		t.logger = logger
	})
}

// WithMetrics records Prometheus metrics for every execution.
func WithMetrics(collector *observability.MetricsCollector) NetworkOption {
	return networkOptionFunc(func(t *NetworkTransport) {
		t.metrics = collector
	})
}

// WithTracerProvider wraps every execution in an OpenTelemetry client span.
func WithTracerProvider(provider trace.TracerProvider) NetworkOption {
	return networkOptionFunc(func(t *NetworkTransport) {
		t.instrumenter = observability.NewInstrumenter(provider)
	})
}

// WithInstrumenter is like WithTracerProvider but takes a configured instrumenter.
func WithInstrumenter(instrumenter *observability.Instrumenter) NetworkOption {
	return networkOptionFunc(func(t *NetworkTransport) {
		t.instrumenter = instrumenter
	})
}

// NewNetworkTransport creates a transport for env.
//
// Example:
//
//	transport := rest.NewNetworkTransport(
//	    rest.StaticEnvironment{Host: "api.example.com"},
//	    rest.WithProcessors(processor.Bearer(token)),
//	    rest.WithLogger(logger),
//	)
func NewNetworkTransport(env Environment, opts ...NetworkOption) *NetworkTransport {
	t := &NetworkTransport{
		client: http.DefaultClient,
		logger: zerolog.Nop(),
	}
	t.Base = NewBase(env, t)

	for _, opt := range opts {
		opt.apply(t)
	}

	return t
}

// Execute implements Transport. It sends req once and returns the body unchanged
// when the status code is in expectedStatusCodes.
func (t *NetworkTransport) Execute(ctx context.Context, req Request, expectedStatusCodes []int) ([]byte, error) {
	httpReq, err := req.toHTTPRequest(ctx)
	if err != nil {
		return nil, newRequestError(CauseTransport, &req, err)
	}

	host := observability.NormalizeHost(httpReq.URL.Host)
	if t.metrics != nil {
		t.metrics.IncrementActiveRequests(host)
		defer t.metrics.DecrementActiveRequests(host)
	}

	var span trace.Span
	if t.instrumenter != nil {
		ctx, span = t.instrumenter.StartSpan(ctx, httpReq)
		httpReq = httpReq.WithContext(ctx)
	}

	start := time.Now()
	body, statusCode, err := t.send(httpReq, expectedStatusCodes)
	duration := time.Since(start)

	if span != nil {
		t.instrumenter.EndSpan(span, statusCode, err)
	}
	t.record(req, host, statusCode, duration, err)

	if err != nil {
		return nil, err
	}
	return body, nil
}

func (t *NetworkTransport) send(httpReq *http.Request, expectedStatusCodes []int) ([]byte, int, error) {
	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, 0, &RequestError{
			Err:    err,
			Method: httpReq.Method,
			URL:    httpReq.URL.String(),
			Cause:  CauseTransport,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &RequestError{
			Err:    fmt.Errorf("read response body: %w", err),
			Method: httpReq.Method,
			URL:    httpReq.URL.String(),
			Cause:  CauseTransport,
		}
	}

	if !slices.Contains(expectedStatusCodes, resp.StatusCode) {
		return nil, resp.StatusCode, &HTTPError{Code: resp.StatusCode}
	}

	return body, resp.StatusCode, nil
}

func (t *NetworkTransport) record(req Request, host string, statusCode int, duration time.Duration, err error) {
	if t.metrics != nil {
		if statusCode != 0 {
			t.metrics.RecordRequestDuration(req.Method, host, statusCode, duration)
		}
		switch {
		case IsHTTPError(err):
			t.metrics.IncrementUnexpectedStatus(req.Method, host, statusCode)
		case err != nil:
			t.metrics.IncrementTransportErrors(req.Method, host)
		}
	}

	url := ""
	if req.URL != nil {
		url = req.URL.String()
	}

	if err != nil {
		t.logger.Warn().
			Err(err).
			Str("method", req.Method).
			Str("url", url).
			Int("status", statusCode).
			Dur("duration", duration).
			Msg("rest call failed")
		return
	}

	t.logger.Debug().
		Str("method", req.Method).
		Str("url", url).
		Int("status", statusCode).
		Dur("duration", duration).
		Msg("rest call")
}
