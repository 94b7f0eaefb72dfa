package processor

import (
	"context"
	"strings"

	"github.com/seb7887/simplerest/rest"
)

// Predicate decides whether a processor applies to a request.
type Predicate func(req rest.Request) bool

// When applies p only to requests matching pred; other requests pass unchanged.
func When(pred Predicate, p rest.RequestProcessor) rest.RequestProcessor {
	return rest.ProcessorFunc(func(ctx context.Context, req rest.Request) (rest.Request, error) {
		if !pred(req) {
			return req, nil
		}
		return p.Process(ctx, req)
	})
}

// UnlessPath applies p to every request except those whose URL path is one of
// paths. Trailing slashes are ignored when comparing.
//
//	processor.UnlessPath(processor.Bearer(token), "/api/login")
func UnlessPath(p rest.RequestProcessor, paths ...string) rest.RequestProcessor {
	skip := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		skip[normalizePath(path)] = struct{}{}
	}

	return When(func(req rest.Request) bool {
		if req.URL == nil {
			return true
		}
		_, ok := skip[normalizePath(req.URL.Path)]
		return !ok
	}, p)
}

// MethodIn matches requests using one of methods.
func MethodIn(methods ...string) Predicate {
	return func(req rest.Request) bool {
		for _, m := range methods {
			if strings.EqualFold(m, req.Method) {
				return true
			}
		}
		return false
	}
}

func normalizePath(p string) string {
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/"
	}
	return p
}
