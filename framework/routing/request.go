package routing

import (
	"context"
	"net/http"
	"slices"
	"strings"
)

// Request is what the router reads from an incoming request.
// framework/http.Request implements it.
type Request interface {
	Method() string
	Path() string
	Host() string
	IP() string
	Scheme() string
	Header(key string) string
}

// MethodOverrideHeader lets a POST form tunnel PUT, PATCH or DELETE.
const MethodOverrideHeader = "X-HTTP-Method-Override"

var overridable = []string{http.MethodPut, http.MethodDelete, http.MethodPatch}

// effectiveMethod maps HEAD to GET and applies a POST method override.
// Override values other than PUT, DELETE and PATCH are ignored.
func effectiveMethod(req Request) string {
	method := req.Method()
	switch method {
	case http.MethodHead:
		return http.MethodGet
	case http.MethodPost:
		if o := req.Header(MethodOverrideHeader); slices.Contains(overridable, o) {
			return o
		}
	}
	return method
}

// normalizePath strips base and the query string and returns a path with a
// single leading slash and no trailing slash.
func normalizePath(base, uri string) string {
	if base = strings.TrimRight(base, "/"); base != "" {
		uri = strings.TrimPrefix(uri, base)
	}
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		uri = uri[:i]
	}
	return "/" + strings.Trim(uri, "/")
}

// ── Request context ──────────────────────────────────────────────────────────

type ctxKey struct{}

type matched struct {
	route  *Route
	params []string
}

func withMatch(r *http.Request, route *Route, params []string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, &matched{route: route, params: params}))
}

// Params returns the captured placeholder values of the matched route.
func Params(r *http.Request) []string {
	if m, ok := r.Context().Value(ctxKey{}).(*matched); ok {
		return slices.Clone(m.params)
	}
	return nil
}

// Param returns the value captured for the named placeholder, or "".
//
//	id := routing.Param(r, "id")
func Param(r *http.Request, name string) string {
	m, ok := r.Context().Value(ctxKey{}).(*matched)
	if !ok {
		return ""
	}
	for i, n := range placeholders(m.route.uri) {
		if n == name && i < len(m.params) {
			return m.params[i]
		}
	}
	return ""
}

// CurrentRoute returns the route matched for r, or nil.
func CurrentRoute(r *http.Request) *Route {
	if m, ok := r.Context().Value(ctxKey{}).(*matched); ok {
		return m.route
	}
	return nil
}
