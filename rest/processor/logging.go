package processor

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/seb7887/simplerest/rest"
)

// Logging logs every outgoing request at debug level and passes it on unchanged.
// Header values are not logged.
func Logging(logger zerolog.Logger) rest.RequestProcessor {
	return rest.ProcessorFunc(func(_ context.Context, req rest.Request) (rest.Request, error) {
		url := ""
		if req.URL != nil {
			url = req.URL.String()
		}

		headers := make([]string, 0, len(req.Header))
		for k := range req.Header {
			headers = append(headers, k)
		}
		slices.Sort(headers)

		logger.Debug().
			Str("method", req.Method).
			Str("url", url).
			Strs("headers", headers).
			Int("body_bytes", len(req.Body)).
			Msg("outgoing request")

		return req, nil
	})
}
