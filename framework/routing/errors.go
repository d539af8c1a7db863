package routing

import (
	"errors"
	"net/http"
)

var (
	// ErrRouteNotFound means no route matched the path, method and scope of
	// the request and no error handler is registered.
	ErrRouteNotFound = errors.New("routing: route not found")

	// ErrHandlerNotFound means the controller type or method of an Action
	// does not exist.
	ErrHandlerNotFound = errors.New("routing: handler not found")

	// ErrInvalidCallback means a dispatch target cannot be invoked: a nil
	// callback or a controller method with an unsupported signature.
	ErrInvalidCallback = errors.New("routing: invalid route callback")

	// ErrMiddlewareNotFound is returned in strict mode for a middleware name
	// that does not resolve to a Middleware.
	ErrMiddlewareNotFound = errors.New("routing: middleware not found")
)

// StatusCode maps a dispatch error to the HTTP status it represents.
func StatusCode(err error) int {
	if errors.Is(err, ErrRouteNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
