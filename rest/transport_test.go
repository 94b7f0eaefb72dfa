package rest_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seb7887/simplerest/rest"
	"github.com/seb7887/simplerest/rest/resttest"
)

var testEnv = rest.StaticEnvironment{Host: "api.example.com"}

func TestBuildRequest_Headers(t *testing.T) {
	transport := resttest.NewMockTransport(testEnv)
	ctx := context.Background()

	t.Run("without body", func(t *testing.T) {
		req, err := transport.BuildRequest(ctx, rest.Route{Path: "/items/"}, rest.MethodGet, nil)
		require.NoError(t, err)

		assert.Equal(t, "https://api.example.com/items/", req.URL.String())
		assert.Equal(t, rest.MethodGet, req.Method)
		assert.Equal(t, rest.Headers{"Accept": "application/json"}, req.Header)
		assert.Empty(t, req.Body)
	})

	t.Run("with body", func(t *testing.T) {
		body := []byte(`{"name":"morpheus"}`)

		req, err := transport.BuildRequest(ctx, rest.Route{Path: "/items/"}, rest.MethodPost, body)
		require.NoError(t, err)

		assert.Equal(t, rest.Headers{
			"Accept":         "application/json",
			"Content-Type":   "application/json",
			"Content-Length": "19",
		}, req.Header)
		assert.Equal(t, body, req.Body)
	})
}

func TestBuildRequest_ResolveFailure(t *testing.T) {
	transport := resttest.NewMockTransport(rest.StaticEnvironment{})

	_, err := transport.BuildRequest(context.Background(), rest.Route{Path: "/items/"}, rest.MethodGet, nil)

	assert.True(t, rest.IsResolveError(err))
	assert.ErrorIs(t, err, rest.ErrUnsupportedURL)
}

func TestBuildRequest_RunsProcessors(t *testing.T) {
	tag := rest.ProcessorFunc(func(_ context.Context, req rest.Request) (rest.Request, error) {
		return req.WithHeader("Authorization", "Bearer abc"), nil
	})
	transport := resttest.NewMockTransport(testEnv, tag)

	req, err := transport.BuildRequest(context.Background(), rest.Route{Path: "/items/"}, rest.MethodGet, nil)

	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", req.Header["Authorization"])
	assert.Equal(t, "application/json", req.Header["Accept"])
}

func TestBuildRequest_ProcessorMayRewriteURL(t *testing.T) {
	mirror, _ := url.Parse("https://mirror.example.com/items/")
	rewrite := rest.ProcessorFunc(func(_ context.Context, req rest.Request) (rest.Request, error) {
		return req.WithURL(mirror), nil
	})
	transport := resttest.NewMockTransport(testEnv, rewrite)
	transport.Expect(resttest.ExpectedRequest{
		URL:      "https://mirror.example.com/items/",
		Method:   rest.MethodGet,
		Response: resttest.NewMockResponse(200, []byte(`[]`)),
	})

	body, err := transport.Get(context.Background(), rest.Route{Path: "/items/"})

	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), body)
	assert.True(t, transport.AllExpectedRequestsReceived())
}

func TestVerbs_ProcessorFailureSkipsExecution(t *testing.T) {
	boom := errors.New("token expired")
	failing := rest.ProcessorFunc(func(_ context.Context, req rest.Request) (rest.Request, error) {
		return req, boom
	})
	transport := resttest.NewMockTransport(testEnv, failing)

	_, err := transport.Get(context.Background(), rest.Route{Path: "/items/"})

	assert.ErrorIs(t, err, boom)
	assert.True(t, rest.IsProcessError(err))
	assert.Empty(t, transport.ReceivedRequests())
}

func TestVerbs_StatusSets(t *testing.T) {
	ctx := context.Background()
	endpoint := rest.Route{Path: "/items/"}
	const target = "https://api.example.com/items/"

	type verb func(rest.Transport) ([]byte, error)
	get := func(tr rest.Transport) ([]byte, error) { return tr.Get(ctx, endpoint) }
	put := func(tr rest.Transport) ([]byte, error) { return tr.Put(ctx, endpoint, []byte(`{}`)) }
	post := func(tr rest.Transport) ([]byte, error) { return tr.Post(ctx, endpoint, []byte(`{}`)) }
	del := func(tr rest.Transport) ([]byte, error) { return tr.Delete(ctx, endpoint) }

	tests := []struct {
		name     string
		method   string
		call     verb
		status   int
		accepted bool
	}{
		{"get 200", rest.MethodGet, get, 200, true},
		{"get 201", rest.MethodGet, get, 201, false},
		{"get 204", rest.MethodGet, get, 204, false},
		{"put 200", rest.MethodPut, put, 200, true},
		{"put 201", rest.MethodPut, put, 201, true},
		{"put 204", rest.MethodPut, put, 204, true},
		{"post 201", rest.MethodPost, post, 201, true},
		{"post 204", rest.MethodPost, post, 204, true},
		{"post 202", rest.MethodPost, post, 202, false},
		{"delete 200", rest.MethodDelete, del, 200, true},
		{"delete 204", rest.MethodDelete, del, 204, true},
		{"delete 201", rest.MethodDelete, del, 201, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			transport := resttest.NewMockTransport(testEnv)
			transport.Expect(resttest.ExpectedRequest{
				URL:      target,
				Method:   tc.method,
				Response: resttest.NewMockResponse(tc.status, []byte(`{"ok":true}`)),
			})

			body, err := tc.call(transport)

			if tc.accepted {
				require.NoError(t, err)
				assert.Equal(t, []byte(`{"ok":true}`), body)
			} else {
				resttest.AssertHTTPError(t, err, tc.status)
			}
			assert.True(t, transport.AllExpectedRequestsReceived())
		})
	}
}

func TestNewBase_SkipsNilProcessors(t *testing.T) {
	base := rest.NewBase(testEnv, nil, nil, rest.Chain{})

	assert.Len(t, base.Processors(), 1)
	assert.Equal(t, testEnv, base.Environment())
}
