package routing

import (
	"slices"
	"strings"
)

// frame is the scoping context applied to routes as they are registered.
type frame struct {
	prefix      string
	middlewares []string
	domains     []string
	ips         []string
	ssl         bool
	as          string
}

func rootFrame() frame {
	return frame{prefix: "/"}
}

// clone copies the slices so a saved frame never aliases the live one.
func (f frame) clone() frame {
	f.middlewares = slices.Clone(f.middlewares)
	f.domains = slices.Clone(f.domains)
	f.ips = slices.Clone(f.ips)
	return f
}

// ── Group ────────────────────────────────────────────────────────────────────

// Group runs fn with the current scope saved. Scope changes made inside fn
// apply to the routes fn registers afterwards and are discarded when fn
// returns: the scope saved on entry is restored, and leaving the outermost
// group resets everything to the defaults.
//
//	r.Prefix("api").Middleware("auth").Group(func(r *routing.Router) {
//	    r.Get("/users", listUsers)          // GET /api/users, [auth]
//	})
//	r.Get("/health", health)                 // GET /health, no middleware
func (r *Router) Group(fn func(r *Router)) {
	r.stack = append(r.stack, r.frame.clone())

	defer func() {
		r.frame = r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
		if len(r.stack) == 0 {
			r.frame = rootFrame()
		}
	}()

	fn(r)
}

// Prefix sets the path prefix for routes registered from now on. It replaces
// (not extends) the active prefix.
func (r *Router) Prefix(prefix string) *Router {
	r.frame.prefix = "/" + strings.Trim(prefix, "/")
	return r
}

// Middleware appends middleware names to the active list.
func (r *Router) Middleware(names ...string) *Router {
	r.frame.middlewares = append(slices.Clone(r.frame.middlewares), names...)
	return r
}

// Domain restricts routes to the given hosts.
func (r *Router) Domain(hosts ...string) *Router {
	r.frame.domains = slices.Clone(hosts)
	return r
}

// IP restricts routes to the given client addresses.
func (r *Router) IP(addrs ...string) *Router {
	r.frame.ips = slices.Clone(addrs)
	return r
}

// SSL requires https for routes registered from now on.
func (r *Router) SSL() *Router {
	r.frame.ssl = true
	return r
}

// As sets the route-name prefix: Name("show") becomes "<as>.show".
func (r *Router) As(as string) *Router {
	r.frame.as = as
	return r
}

// Depth returns the current group nesting depth.
func (r *Router) Depth() int { return len(r.stack) }
