package processor

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/seb7887/simplerest/rest"
)

// ErrMissingCredentials is returned by auth processors whose credential source
// has nothing to offer.
var ErrMissingCredentials = errors.New("missing credentials")

// TokenSource returns the token to send with a request.
type TokenSource func(ctx context.Context) (string, error)

// StaticToken is a TokenSource that always returns token.
func StaticToken(token string) TokenSource {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// Bearer sets "Authorization: Bearer <token>".
func Bearer(token string) rest.RequestProcessor {
	return BearerFrom(StaticToken(token))
}

// BearerFrom sets a bearer Authorization header with a token fetched per request.
// An empty token fails with ErrMissingCredentials.
func BearerFrom(source TokenSource) rest.RequestProcessor {
	return rest.ProcessorFunc(func(ctx context.Context, req rest.Request) (rest.Request, error) {
		token, err := source(ctx)
		if err != nil {
			return req, err
		}
		if token == "" {
			return req, ErrMissingCredentials
		}
		return req.WithHeader(rest.HeaderAuthorization, "Bearer "+token), nil
	})
}

// Basic sets HTTP basic authentication.
func Basic(username, password string) rest.RequestProcessor {
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return rest.ProcessorFunc(func(_ context.Context, req rest.Request) (rest.Request, error) {
		if username == "" {
			return req, ErrMissingCredentials
		}
		return req.WithHeader(rest.HeaderAuthorization, "Basic "+encoded), nil
	})
}

// APIKey sends key in the named header. An empty name defaults to "X-API-Key".
func APIKey(key, name string) rest.RequestProcessor {
	if name == "" {
		name = "X-API-Key"
	}
	return rest.ProcessorFunc(func(_ context.Context, req rest.Request) (rest.Request, error) {
		if key == "" {
			return req, ErrMissingCredentials
		}
		return req.WithHeader(name, key), nil
	})
}
