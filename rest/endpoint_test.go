package rest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seb7887/simplerest/rest"
)

func intPtr(i int) *int { return &i }

func TestRoute_URL(t *testing.T) {
	env := rest.StaticEnvironment{Host: "reqres.in"}

	tests := []struct {
		name  string
		route rest.Route
		env   rest.Environment
		want  string
	}{
		{"collection", rest.Route{Path: "/api/users/"}, env, "https://reqres.in/api/users/"},
		{"item", rest.Route{Path: "/api/users/", ID: intPtr(2)}, env, "https://reqres.in/api/users/2"},
		{"page present", rest.Route{Path: "/api/users/", Query: []rest.Param{rest.IntParam("page", intPtr(1))}}, env, "https://reqres.in/api/users/?page=1"},
		{"page absent", rest.Route{Path: "/api/users/", Query: []rest.Param{rest.IntParam("page", nil)}}, env, "https://reqres.in/api/users/"},
		{"static", rest.Route{Path: "/api/login"}, env, "https://reqres.in/api/login"},
		{"relative path", rest.Route{Path: "api/login"}, env, "https://reqres.in/api/login"},
		{"port", rest.Route{Path: "/items/"}, rest.StaticEnvironment{Host: "api.example.com", Port: 8443}, "https://api.example.com:8443/items/"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, err := tc.route.URL(context.Background(), tc.env)
			require.NoError(t, err)
			assert.Equal(t, tc.want, u.String())
		})
	}
}

func TestBaseURL_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  rest.Environment
	}{
		{"nil", nil},
		{"empty host", rest.StaticEnvironment{}},
		{"host with path", rest.StaticEnvironment{Host: "example.com/api"}},
		{"host with space", rest.StaticEnvironment{Host: "exa mple.com"}},
		{"negative port", rest.StaticEnvironment{Host: "example.com", Port: -1}},
		{"port too large", rest.StaticEnvironment{Host: "example.com", Port: 70000}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rest.BaseURL(tc.env)
			assert.ErrorIs(t, err, rest.ErrUnsupportedURL)
		})
	}
}

func TestURLString(t *testing.T) {
	u, err := rest.URLString("https://www.google.com").URL(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "https://www.google.com", u.String())

	_, err = rest.URLString("/relative").URL(context.Background(), nil)
	assert.ErrorIs(t, err, rest.ErrUnsupportedURL)
}
