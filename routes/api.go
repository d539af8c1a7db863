package routes

import (
	"net/http"

	gohttp "github.com/km-arc/go-starter/framework/http"
	"github.com/km-arc/go-starter/framework/routing"
)

func action(controller, method string) routing.Action {
	return routing.Action{Controller: "controllers." + controller, Method: method}
}

// API registers the application routes.
func API(r *routing.Router) {
	r.Get("/", action("HomeController", "Index")).Name("home")

	r.Get("/health", routing.HandlerFunc(func(w http.ResponseWriter, _ *http.Request, _ ...string) error {
		gohttp.NewResponse(w).Success(map[string]string{"status": "ok"})
		return nil
	})).Name("health")

	r.Prefix("api").As("api").Group(func(r *routing.Router) {
		r.Get("/users", action("UserController", "Index")).Name("users.index")
		r.Get("/users/{id}", action("UserController", "Show")).
			Where(map[string]string{"id": "[0-9]+"}).
			Name("users.show")

		r.Group(func(r *routing.Router) {
			r.Middleware("auth")
			r.Post("/users", action("UserController", "Store")).Name("users.store")
		})
	})

	r.Error(func(w http.ResponseWriter, _ *http.Request, path string) error {
		gohttp.NewResponse(w).NotFound("No route for " + path + ".")
		return nil
	})
}
