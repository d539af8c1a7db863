package routing

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"

	gohttp "github.com/km-arc/go-starter/framework/http"
)

// Resolver builds controller and middleware instances by type name.
// *container.Container implements it.
type Resolver interface {
	Resolve(typ string) (any, error)
}

// ErrorHandler handles requests that match no route. path is the
// normalised request path.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, path string) error

// Router keeps the ordered route table, the group scope used while routes
// are registered and the name index used by URL.
//
// Routes are registered at startup from a single goroutine; afterwards the
// Router is read-only and safe to serve concurrently.
type Router struct {
	resolver Resolver
	logger   *slog.Logger

	routes []*Route
	names  map[string]string

	frame frame
	stack []frame

	errorHandler ErrorHandler
	defaults     []string
	aliases      map[string]string
	strict       bool
	basePath     string
}

// Option configures a Router.
type Option func(*Router)

// WithDefaultMiddleware sets middleware names applied before every route's
// own middlewares.
func WithDefaultMiddleware(names ...string) Option {
	return func(r *Router) { r.defaults = slices.Clone(names) }
}

// WithMiddlewareAliases maps short middleware names to container type names.
func WithMiddlewareAliases(aliases map[string]string) Option {
	return func(r *Router) { r.aliases = maps.Clone(aliases) }
}

// WithStrictMiddleware makes an unresolvable middleware fail the request
// instead of being skipped.
func WithStrictMiddleware(strict bool) Option {
	return func(r *Router) { r.strict = strict }
}

// WithBasePath sets the path the application is mounted under; it is
// stripped before matching.
func WithBasePath(base string) Option {
	return func(r *Router) { r.basePath = base }
}

// WithLogger sets the router logger. If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Router that builds controllers and middlewares with res.
func New(res Resolver, opts ...Option) *Router {
	r := &Router{
		resolver: res,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		names:    make(map[string]string),
		aliases:  make(map[string]string),
		frame:    rootFrame(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ── HTTP verbs ───────────────────────────────────────────────────────────────

func (r *Router) Get(pattern string, cb Callback) *Route    { return r.add(http.MethodGet, pattern, cb) }
func (r *Router) Post(pattern string, cb Callback) *Route   { return r.add(http.MethodPost, pattern, cb) }
func (r *Router) Put(pattern string, cb Callback) *Route    { return r.add(http.MethodPut, pattern, cb) }
func (r *Router) Patch(pattern string, cb Callback) *Route  { return r.add(http.MethodPatch, pattern, cb) }
func (r *Router) Delete(pattern string, cb Callback) *Route { return r.add(http.MethodDelete, pattern, cb) }

func (r *Router) Options(pattern string, cb Callback) *Route {
	return r.add(http.MethodOptions, pattern, cb)
}

// Match registers the same route once per method.
func (r *Router) Match(methods []string, pattern string, cb Callback) []*Route {
	out := make([]*Route, 0, len(methods))
	for _, m := range methods {
		out = append(out, r.add(strings.ToUpper(m), pattern, cb))
	}
	return out
}

// Any registers a route for every supported method.
func (r *Router) Any(pattern string, cb Callback) []*Route {
	return r.Match([]string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}, pattern, cb)
}

// ── Resource routes ──────────────────────────────────────────────────────────

// Resource registers the RESTful actions of a controller type:
//
//	GET    /photos       → Index
//	POST   /photos       → Store
//	GET    /photos/{id}  → Show
//	PUT    /photos/{id}  → Update
//	PATCH  /photos/{id}  → Update
//	DELETE /photos/{id}  → Destroy
//
// Routes are named "<as>.index", "<as>.store" and so on.
func (r *Router) Resource(pattern, controller, as string) {
	item := strings.TrimRight(pattern, "/") + "/{id}"
	action := func(m string) Action { return Action{Controller: controller, Method: m} }

	r.Get(pattern, action("Index")).Name(as + ".index")
	r.Post(pattern, action("Store")).Name(as + ".store")
	r.Get(item, action("Show")).Name(as + ".show")
	r.Put(item, action("Update")).Name(as + ".update")
	r.Patch(item, action("Update"))
	r.Delete(item, action("Destroy")).Name(as + ".destroy")
}

// add appends a route under the active scope.
func (r *Router) add(method, pattern string, cb Callback) *Route {
	uri := r.join(pattern)
	m, err := compile(uri, nil)
	if err != nil {
		panic(fmt.Sprintf("routing: invalid pattern [%s]: %v", uri, err))
	}
	rt := &Route{
		router:      r,
		uri:         uri,
		method:      method,
		matcher:     m,
		callback:    cb,
		middlewares: slices.Clone(r.frame.middlewares),
		domains:     slices.Clone(r.frame.domains),
		ips:         slices.Clone(r.frame.ips),
		ssl:         r.frame.ssl,
	}
	r.routes = append(r.routes, rt)
	return rt
}

// join applies the active prefix without doubling the separator.
func (r *Router) join(pattern string) string {
	prefix := r.frame.prefix
	switch {
	case pattern == "/":
		if prefix == "/" {
			return "/"
		}
		return prefix
	case prefix == "/":
		return "/" + strings.Trim(pattern, "/")
	case !strings.HasPrefix(pattern, "/"):
		return prefix + "/" + pattern
	default:
		return prefix + pattern
	}
}

// Error registers the handler used when no route matches.
func (r *Router) Error(h ErrorHandler) {
	r.errorHandler = h
}

// ── Matching ─────────────────────────────────────────────────────────────────

// Find returns the first route, in registration order, that matches the
// request path and whose ip, domain, ssl and method constraints hold,
// together with the captured params.
func (r *Router) Find(req Request) (*Route, []string, error) {
	path := normalizePath(r.basePath, req.Path())
	method := effectiveMethod(req)

	for _, rt := range r.routes {
		params, ok := rt.match(path)
		if !ok {
			continue
		}
		if len(rt.ips) > 0 && !slices.Contains(rt.ips, req.IP()) {
			continue
		}
		if len(rt.domains) > 0 && !slices.Contains(rt.domains, req.Host()) {
			continue
		}
		if rt.ssl && req.Scheme() != "https" {
			continue
		}
		if rt.method != method {
			continue
		}
		return rt, params, nil
	}
	return nil, nil, fmt.Errorf("%w [%s %s]", ErrRouteNotFound, method, path)
}

// ── Dispatch ─────────────────────────────────────────────────────────────────

// Dispatch matches req and runs the middleware chain and route target.
// With no matching route the error handler runs; without one Dispatch
// returns ErrRouteNotFound.
func (r *Router) Dispatch(w http.ResponseWriter, req *http.Request) error {
	in := gohttp.NewRequest(req)
	route, params, err := r.Find(in)
	if err != nil {
		if r.errorHandler != nil {
			return r.errorHandler(w, req, normalizePath(r.basePath, in.Path()))
		}
		return err
	}

	next, err := r.chain(req.Context(), route, params)
	if err != nil {
		return err
	}
	return next(w, withMatch(req, route, params))
}

// ServeHTTP implements http.Handler. Dispatch errors are logged and
// rendered as JSON: 404 for unmatched routes, 500 otherwise.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	err := r.Dispatch(w, req)
	if err == nil {
		return
	}

	status := StatusCode(err)
	res := gohttp.NewResponse(w)
	if status == http.StatusNotFound {
		r.logger.DebugContext(req.Context(), "route not found", slog.String("path", req.URL.Path))
		res.NotFound()
		return
	}
	r.logger.ErrorContext(req.Context(), "dispatch failed",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Any("error", err))
	res.ServerError()
}

// ── Reverse routing ──────────────────────────────────────────────────────────

// URL builds the path of a named route. Placeholders missing from params
// are left as written.
//
//	r.URL("users.show", map[string]string{"id": "7"})  // "/users/7", true
func (r *Router) URL(name string, params map[string]string) (string, bool) {
	uri, ok := r.names[name]
	if !ok {
		return "", false
	}
	return substitute(uri, params), true
}

// Routes returns the route table in registration order.
func (r *Router) Routes() []*Route { return slices.Clone(r.routes) }

// Names returns a copy of the name → URI template index.
func (r *Router) Names() map[string]string { return maps.Clone(r.names) }
