package processor

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/seb7887/simplerest/rest"
)

// HeaderRequestID is the header set by RequestID.
const HeaderRequestID = "X-Request-ID"

// IDGenerator produces request identifiers.
type IDGenerator func() string

// UUID generates random (v4) UUIDs.
func UUID() string {
	return uuid.New().String()
}

// ULID generates lexically sortable ULIDs.
func ULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// RequestID sets a fresh X-Request-ID on every request that does not carry one.
// A nil generator uses UUID.
func RequestID(gen IDGenerator) rest.RequestProcessor {
	if gen == nil {
		gen = UUID
	}

	return rest.ProcessorFunc(func(_ context.Context, req rest.Request) (rest.Request, error) {
		if _, ok := req.Header[HeaderRequestID]; ok {
			return req, nil
		}
		return req.WithHeader(HeaderRequestID, gen()), nil
	})
}
