package rest

import (
	"context"
	"strconv"
)

// Transport builds requests for endpoints in a single Environment, runs them
// through its request processors and executes them.
//
// The verb helpers validate the response status against fixed sets:
// Get {200}, Put and Post {200, 201, 204}, Delete {200, 204}.
type Transport interface {
	// Environment is the environment in which calls are made.
	Environment() Environment

	// BuildRequest resolves endpoint, sets the JSON headers, method and body and
	// applies the processor chain.
	BuildRequest(ctx context.Context, endpoint Endpoint, method string, body []byte) (Request, error)

	// Execute performs req and returns the raw response body. It fails with an
	// *HTTPError when the response status is not in expectedStatusCodes.
	Execute(ctx context.Context, req Request, expectedStatusCodes []int) ([]byte, error)

	Get(ctx context.Context, endpoint Endpoint) ([]byte, error)
	Put(ctx context.Context, endpoint Endpoint, data []byte) ([]byte, error)
	Post(ctx context.Context, endpoint Endpoint, data []byte) ([]byte, error)
	Delete(ctx context.Context, endpoint Endpoint) ([]byte, error)
}

// Executor performs a built request. It is the only part a Transport
// implementation has to provide itself.
type Executor interface {
	Execute(ctx context.Context, req Request, expectedStatusCodes []int) ([]byte, error)
}

// Base implements every Transport method on top of an Executor. Concrete transports
// embed it and supply their own Execute.
// It is immutable after creation.
type Base struct {
	environment Environment
	processors  Chain
	executor    Executor
}

// NewBase creates a Base for env that executes through executor after applying
// processors in order.
func NewBase(env Environment, executor Executor, processors ...RequestProcessor) Base {
	chain := make(Chain, 0, len(processors))
	for _, p := range processors {
		if p != nil {
			chain = append(chain, p)
		}
	}

	return Base{
		environment: env,
		processors:  chain,
		executor:    executor,
	}
}

// Environment implements Transport.
func (b Base) Environment() Environment {
	return b.environment
}

// Processors returns a copy of the processor chain.
func (b Base) Processors() Chain {
	return append(Chain(nil), b.processors...)
}

// BuildRequest implements Transport.
func (b Base) BuildRequest(ctx context.Context, endpoint Endpoint, method string, body []byte) (Request, error) {
	u, err := endpoint.URL(ctx, b.environment)
	if err != nil {
		return Request{}, &RequestError{Err: err, Method: method, Cause: CauseResolve}
	}

	headers := Headers{
		HeaderAccept: ContentTypeJSON,
	}
	if len(body) > 0 {
		headers[HeaderContentType] = ContentTypeJSON
		headers[HeaderContentLength] = strconv.Itoa(len(body))
	}

	req := Request{
		URL:    u,
		Method: method,
		Header: headers,
		Body:   body,
	}

	processed, err := b.processors.Process(ctx, req)
	if err != nil {
		return Request{}, newRequestError(CauseProcess, &req, err)
	}

	return processed, nil
}

// Execute implements Transport by delegating to the executor.
func (b Base) Execute(ctx context.Context, req Request, expectedStatusCodes []int) ([]byte, error) {
	return b.executor.Execute(ctx, req, expectedStatusCodes)
}

// Get implements Transport.
func (b Base) Get(ctx context.Context, endpoint Endpoint) ([]byte, error) {
	return b.call(ctx, endpoint, MethodGet, nil, getStatusCodes)
}

// Put implements Transport.
func (b Base) Put(ctx context.Context, endpoint Endpoint, data []byte) ([]byte, error) {
	return b.call(ctx, endpoint, MethodPut, data, sendStatusCodes)
}

// Post implements Transport.
func (b Base) Post(ctx context.Context, endpoint Endpoint, data []byte) ([]byte, error) {
	return b.call(ctx, endpoint, MethodPost, data, sendStatusCodes)
}

// Delete implements Transport.
func (b Base) Delete(ctx context.Context, endpoint Endpoint) ([]byte, error) {
	return b.call(ctx, endpoint, MethodDelete, nil, deleteStatusCodes)
}

func (b Base) call(ctx context.Context, endpoint Endpoint, method string, data []byte, expected []int) ([]byte, error) {
	req, err := b.BuildRequest(ctx, endpoint, method, data)
	if err != nil {
		return nil, err
	}
	return b.executor.Execute(ctx, req, expected)
}
