package processor

import (
	"context"

	"github.com/seb7887/simplerest/rest"
)

// Headers sets fixed headers on every request, overwriting existing values.
func Headers(headers rest.Headers) rest.RequestProcessor {
	fields := make(rest.Headers, len(headers))
	for k, v := range headers {
		fields[k] = v
	}

	return rest.ProcessorFunc(func(_ context.Context, req rest.Request) (rest.Request, error) {
		return req.WithHeaders(fields), nil
	})
}

// Header sets a single fixed header on every request.
func Header(key, value string) rest.RequestProcessor {
	return Headers(rest.Headers{key: value})
}
