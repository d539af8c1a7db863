// Package routing maps requests to handlers and controller actions.
//
// Routes are matched in registration order against the normalised request
// path. A pattern may contain placeholders written as {name}, [name] or
// (name); each captures one path segment unless Where narrows it.
//
//	r := routing.New(c) // c is the service container
//
//	r.Get("/", routing.Action{Controller: "controllers.HomeController", Method: "Index"})
//
//	r.Prefix("api").Middleware("auth").As("api").Group(func(r *routing.Router) {
//	    r.Get("/users/{id}", routing.Action{Controller: "controllers.UserController", Method: "Show"}).
//	        Where(map[string]string{"id": "[0-9]+"}).
//	        Name("users.show")
//	})
//
//	url, _ := r.URL("api.users.show", map[string]string{"id": "7"}) // "/api/users/7"
//
// # Middleware
//
// Middleware names are resolved through the container for each request and
// wrap the route target like an onion: the first listed runs outermost.
// A middleware that returns without calling next ends the request.
//
// # Actions
//
// An Action names a controller type and one of its methods. The controller
// is built by the container on every dispatch. Its method may take
// http.ResponseWriter, *http.Request and string parameters; the strings
// receive the captured route parameters in order. A trailing error result
// is returned from Dispatch.
package routing
