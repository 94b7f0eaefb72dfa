package rest

import (
	"context"
)

// APIClient is a typed layer over a Transport that encodes request values and
// decodes response bodies with a Coding.
// It is safe for concurrent use if its Transport is.
type APIClient struct {
	transport Transport
	coding    Coding
}

// ClientOption configures an APIClient.
type ClientOption func(*APIClient)

// WithCoding replaces the default JSONCoding.
func WithCoding(coding Coding) ClientOption {
	return func(c *APIClient) {
		c.coding = coding
	}
}

// NewAPIClient creates a client over transport.
//
// Example:
//
//	client := rest.NewAPIClient(transport)
//	users, err := rest.Get[UsersResponse](ctx, client, usersEndpoint)
func NewAPIClient(transport Transport, opts ...ClientOption) *APIClient {
	c := &APIClient{
		transport: transport,
		coding:    JSONCoding{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Transport returns the underlying transport.
func (c *APIClient) Transport() Transport {
	return c.transport
}

// Put encodes value and PUTs it to endpoint, discarding the response body.
func (c *APIClient) Put(ctx context.Context, endpoint Endpoint, value any) error {
	data, err := c.encode(value)
	if err != nil {
		return err
	}
	_, err = c.transport.Put(ctx, endpoint, data)
	return err
}

// Post encodes value and POSTs it to endpoint, discarding the response body.
func (c *APIClient) Post(ctx context.Context, endpoint Endpoint, value any) error {
	data, err := c.encode(value)
	if err != nil {
		return err
	}
	_, err = c.transport.Post(ctx, endpoint, data)
	return err
}

// Delete DELETEs endpoint, discarding the response body.
func (c *APIClient) Delete(ctx context.Context, endpoint Endpoint) error {
	_, err := c.transport.Delete(ctx, endpoint)
	return err
}

// Get GETs endpoint and decodes the response body into Resp.
func Get[Resp any](ctx context.Context, c *APIClient, endpoint Endpoint) (Resp, error) {
	body, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		var zero Resp
		return zero, err
	}
	return decode[Resp](c, body)
}

// Put encodes value, PUTs it to endpoint and decodes the response body into Resp.
func Put[Req, Resp any](ctx context.Context, c *APIClient, endpoint Endpoint, value Req) (Resp, error) {
	var zero Resp
	data, err := c.encode(value)
	if err != nil {
		return zero, err
	}
	body, err := c.transport.Put(ctx, endpoint, data)
	if err != nil {
		return zero, err
	}
	return decode[Resp](c, body)
}

// Post encodes value, POSTs it to endpoint and decodes the response body into Resp.
func Post[Req, Resp any](ctx context.Context, c *APIClient, endpoint Endpoint, value Req) (Resp, error) {
	var zero Resp
	data, err := c.encode(value)
	if err != nil {
		return zero, err
	}
	body, err := c.transport.Post(ctx, endpoint, data)
	if err != nil {
		return zero, err
	}
	return decode[Resp](c, body)
}

// Delete DELETEs endpoint and decodes the response body into Resp.
func Delete[Resp any](ctx context.Context, c *APIClient, endpoint Endpoint) (Resp, error) {
	body, err := c.transport.Delete(ctx, endpoint)
	if err != nil {
		var zero Resp
		return zero, err
	}
	return decode[Resp](c, body)
}

func (c *APIClient) encode(value any) ([]byte, error) {
	data, err := c.coding.Encode(value)
	if err != nil {
		return nil, &RequestError{Err: err, Cause: CauseEncode}
	}
	return data, nil
}

// decode fails on an empty body: a typed response requires one.
func decode[Resp any](c *APIClient, body []byte) (Resp, error) {
	var out Resp
	if err := c.coding.Decode(body, &out); err != nil {
		var zero Resp
		return zero, &RequestError{Err: err, Cause: CauseDecode}
	}
	return out, nil
}
