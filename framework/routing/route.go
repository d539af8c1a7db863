package routing

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// ── Callbacks ────────────────────────────────────────────────────────────────

// Callback is the dispatch target of a route: either a HandlerFunc or an
// Action naming a controller type and method.
type Callback interface {
	callback()
}

// HandlerFunc is a plain function target. params holds the captured
// placeholder values in pattern order.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, params ...string) error

func (HandlerFunc) callback() {}

// Action targets a controller method. Controller is a container type name
// ("controllers.UserController"); the controller is built through the
// container for every request.
type Action struct {
	Controller string
	Method     string
}

func (Action) callback() {}

func (a Action) String() string { return a.Controller + "@" + a.Method }

// ── Route ────────────────────────────────────────────────────────────────────

// Route is one registered endpoint. Routes are built at startup and are
// read-only while requests are dispatched.
type Route struct {
	router      *Router
	uri         string
	method      string
	matcher     matcher
	callback    Callback
	middlewares []string
	domains     []string
	ips         []string
	ssl         bool
	name        string
}

// URI returns the template the route was registered with, prefix included.
func (rt *Route) URI() string { return rt.uri }

// Method returns the HTTP verb.
func (rt *Route) Method() string { return rt.method }

// Pattern returns the compiled matcher source.
func (rt *Route) Pattern() string { return rt.matcher.re.String() }

// Callback returns the dispatch target.
func (rt *Route) Callback() Callback { return rt.callback }

// Middlewares returns the route's middleware names (defaults excluded).
func (rt *Route) Middlewares() []string { return slices.Clone(rt.middlewares) }

// Domains returns the host allowlist.
func (rt *Route) Domains() []string { return slices.Clone(rt.domains) }

// IPs returns the client address allowlist.
func (rt *Route) IPs() []string { return slices.Clone(rt.ips) }

// SSL reports whether the route requires https.
func (rt *Route) SSL() bool { return rt.ssl }

// RouteName returns the route name, prefix included, or "".
func (rt *Route) RouteName() string { return rt.name }

// Where replaces the matcher so that each placeholder named in constraints
// only matches the given expression. Placeholders left out match any
// non-slash sequence. It must be called right after registration.
//
//	r.Get("/users/{id}", h).Where(map[string]string{"id": "[0-9]+"})
func (rt *Route) Where(constraints map[string]string) *Route {
	m, err := compile(rt.uri, constraints)
	if err != nil {
		panic(fmt.Sprintf("routing: invalid constraint for [%s]: %v", rt.uri, err))
	}
	rt.matcher = m
	return rt
}

// Name attaches id to the route, prefixed by the active As() value, and
// records the URI template for URL generation. A later route with the same
// name replaces the earlier entry.
func (rt *Route) Name(id string) *Route {
	if as := rt.router.frame.as; as != "" {
		id = as + "." + id
	}
	rt.name = id
	rt.router.names[id] = rt.uri
	return rt
}

// match reports whether the escaped path matches and returns the unescaped
// placeholder values. Groups inside a constraint are not reported.
func (rt *Route) match(path string) ([]string, bool) {
	m := rt.matcher.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	params := make([]string, len(rt.matcher.groups))
	for i, g := range rt.matcher.groups {
		v, err := url.PathUnescape(m[g])
		if err != nil {
			return nil, false
		}
		params[i] = v
	}
	return params, true
}

// ── Pattern compilation ──────────────────────────────────────────────────────

// placeholder matches {name}, [name] or (name) inside one path segment.
var placeholder = regexp.MustCompile(`[\[{(]([^/]*?)[\]})]`)

const anySegment = `[^/]+`

// matcher is a compiled URI template. groups holds the submatch index of
// each placeholder in pattern order.
type matcher struct {
	re     *regexp.Regexp
	groups []int
}

// compile turns a URI template into an anchored matcher over escaped paths.
// Every placeholder becomes a capture group, constrained by
// constraints[name] when present. Literal text is matched verbatim.
func compile(uri string, constraints map[string]string) (matcher, error) {
	var (
		b      strings.Builder
		groups []int
	)
	b.WriteString("^")
	last, group := 0, 1
	for _, loc := range placeholder.FindAllStringSubmatchIndex(uri, -1) {
		b.WriteString(regexp.QuoteMeta(escapeLiteral(uri[last:loc[0]])))
		expr := anySegment
		if c, ok := constraints[uri[loc[2]:loc[3]]]; ok && c != "" {
			expr = c
		}
		inner, err := regexp.Compile(expr)
		if err != nil {
			return matcher{}, err
		}
		b.WriteString("(" + expr + ")")
		groups = append(groups, group)
		group += 1 + inner.NumSubexp()
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(escapeLiteral(uri[last:])))
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return matcher{}, err
	}
	return matcher{re: re, groups: groups}, nil
}

// escapeLiteral escapes literal template text the way a request path is
// escaped on the wire. Slashes are kept.
func escapeLiteral(s string) string {
	return (&url.URL{Path: s}).EscapedPath()
}

// placeholders returns the placeholder names of uri in order.
func placeholders(uri string) []string {
	var out []string
	for _, m := range placeholder.FindAllStringSubmatch(uri, -1) {
		out = append(out, m[1])
	}
	return out
}

// substitute replaces every placeholder whose name is in params with the
// escaped value. Others are left as written.
func substitute(uri string, params map[string]string) string {
	return placeholder.ReplaceAllStringFunc(uri, func(ph string) string {
		name := ph[1 : len(ph)-1]
		if v, ok := params[name]; ok {
			return url.PathEscape(v)
		}
		return ph
	})
}
