package processor

import (
	"context"

	"github.com/seb7887/simplerest/rest"
	"github.com/seb7887/simplerest/rest/observability"
)

// TracePropagation injects the trace context found in the call's context into the
// request headers (traceparent and friends, depending on the propagator).
// Use it with transports that do not create spans themselves, such as the mock.
func TracePropagation(instrumenter *observability.Instrumenter) rest.RequestProcessor {
	if instrumenter == nil {
		instrumenter = observability.NewInstrumenter(nil)
	}

	return rest.ProcessorFunc(func(ctx context.Context, req rest.Request) (rest.Request, error) {
		carrier := map[string]string{}
		instrumenter.Inject(ctx, carrier)
		if len(carrier) == 0 {
			return req, nil
		}
		return req.WithHeaders(carrier), nil
	})
}
