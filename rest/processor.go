package rest

import "context"

// RequestProcessor transforms a request before it is executed, for instance to add
// authentication headers. Implementations must not mutate the request they receive;
// derive a new one with Request.WithHeaders and friends.
type RequestProcessor interface {
	Process(ctx context.Context, req Request) (Request, error)
}

// ProcessorFunc adapts a function to the RequestProcessor interface.
type ProcessorFunc func(ctx context.Context, req Request) (Request, error)

// Process implements RequestProcessor.
func (f ProcessorFunc) Process(ctx context.Context, req Request) (Request, error) {
	return f(ctx, req)
}

// Chain is an ordered list of processors that is itself a RequestProcessor.
// Processors are applied in list order, each one receiving the output of the
// previous one. An empty chain returns the request unchanged.
//
// Example:
//
//	chain := Chain{addAuth, addRequestID}
//	req, err := chain.Process(ctx, req) // addRequestID(addAuth(req))
type Chain []RequestProcessor

// Process applies every processor in order and stops at the first error.
func (c Chain) Process(ctx context.Context, req Request) (Request, error) {
	result := req
	for _, p := range c {
		next, err := p.Process(ctx, result)
		if err != nil {
			return req, err
		}
		result = next
	}
	return result, nil
}
