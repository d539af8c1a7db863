package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"slices"

	"github.com/km-arc/go-starter/framework/container"
)

// Next continues the middleware chain.
type Next func(w http.ResponseWriter, r *http.Request) error

// Middleware wraps the rest of the chain. Returning without calling next
// short-circuits the request.
type Middleware interface {
	Handle(w http.ResponseWriter, r *http.Request, next Next) error
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(w http.ResponseWriter, r *http.Request, next Next) error

func (f MiddlewareFunc) Handle(w http.ResponseWriter, r *http.Request, next Next) error {
	return f(w, r, next)
}

// chain composes the default and route middlewares around the route target.
// The list is folded from the end, so the first name is the outermost layer.
func (r *Router) chain(ctx context.Context, route *Route, params []string) (Next, error) {
	names := slices.Concat(r.defaults, route.middlewares)
	next := r.terminal(route, params)

	for i := len(names) - 1; i >= 0; i-- {
		mw, err := r.middleware(names[i])
		if err != nil {
			if r.strict {
				return nil, err
			}
			r.logger.WarnContext(ctx, "skipping unresolvable middleware",
				slog.String("middleware", names[i]),
				slog.String("route", route.uri),
				slog.Any("error", err))
			continue
		}
		inner := next
		next = func(w http.ResponseWriter, req *http.Request) error {
			return mw.Handle(w, req, inner)
		}
	}
	return next, nil
}

// middleware resolves a middleware name (or its configured alias) through
// the container.
func (r *Router) middleware(name string) (Middleware, error) {
	typ := name
	if alias, ok := r.aliases[name]; ok {
		typ = alias
	}
	inst, err := r.resolver.Resolve(typ)
	if err != nil {
		return nil, fmt.Errorf("%w [%s]: %w", ErrMiddlewareNotFound, name, err)
	}
	mw, ok := inst.(Middleware)
	if !ok {
		return nil, fmt.Errorf("%w [%s]: %T does not implement Middleware", ErrMiddlewareNotFound, name, inst)
	}
	return mw, nil
}

// terminal returns the innermost step of the chain: the route target.
func (r *Router) terminal(route *Route, params []string) Next {
	return func(w http.ResponseWriter, req *http.Request) error {
		switch cb := route.callback.(type) {
		case HandlerFunc:
			if cb == nil {
				return fmt.Errorf("%w [%s %s]", ErrInvalidCallback, route.method, route.uri)
			}
			return cb(w, req, params...)
		case Action:
			return r.callAction(cb, w, req, params)
		default:
			return fmt.Errorf("%w [%s %s]", ErrInvalidCallback, route.method, route.uri)
		}
	}
}

var (
	responseWriterType = reflect.TypeOf((*http.ResponseWriter)(nil)).Elem()
	requestType        = reflect.TypeOf((*http.Request)(nil))
	stringType         = reflect.TypeOf("")
)

// callAction builds the controller through the container and invokes the
// action method. Method parameters may be http.ResponseWriter, *http.Request
// and strings; the strings receive the captured params in order.
func (r *Router) callAction(a Action, w http.ResponseWriter, req *http.Request, params []string) error {
	inst, err := r.resolver.Resolve(a.Controller)
	if err != nil {
		if errors.Is(err, container.ErrUnknownType) {
			return fmt.Errorf("%w: controller [%s]", ErrHandlerNotFound, a)
		}
		return fmt.Errorf("routing: resolving controller [%s]: %w", a, err)
	}

	method := reflect.ValueOf(inst).MethodByName(a.Method)
	if !method.IsValid() {
		return fmt.Errorf("%w: method [%s]", ErrHandlerNotFound, a)
	}

	args, err := bindArgs(method.Type(), w, req, params)
	if err != nil {
		return fmt.Errorf("%w [%s]: %w", ErrInvalidCallback, a, err)
	}

	var out []reflect.Value
	if method.Type().IsVariadic() {
		out = method.CallSlice(args)
	} else {
		out = method.Call(args)
	}
	if len(out) > 0 {
		if err, ok := out[len(out)-1].Interface().(error); ok && err != nil {
			return err
		}
	}
	return nil
}

func bindArgs(mt reflect.Type, w http.ResponseWriter, req *http.Request, params []string) ([]reflect.Value, error) {
	args := make([]reflect.Value, 0, mt.NumIn())
	rest := params
	for i := range mt.NumIn() {
		in := mt.In(i)
		switch {
		case mt.IsVariadic() && i == mt.NumIn()-1:
			if in.Elem() != stringType {
				return nil, fmt.Errorf("unsupported variadic parameter %s", in)
			}
			args = append(args, reflect.ValueOf(rest))
			rest = nil
		case in == responseWriterType:
			args = append(args, reflect.ValueOf(w))
		case in == requestType:
			args = append(args, reflect.ValueOf(req))
		case in == stringType:
			if len(rest) == 0 {
				return nil, fmt.Errorf("parameter %d expects a route parameter, %d captured", i, len(params))
			}
			args = append(args, reflect.ValueOf(rest[0]))
			rest = rest[1:]
		default:
			return nil, fmt.Errorf("unsupported parameter type %s", in)
		}
	}
	return args, nil
}
