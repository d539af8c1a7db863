package providers

import (
	"log/slog"

	"github.com/km-arc/go-starter/app/controllers"
	"github.com/km-arc/go-starter/app/middleware"
	"github.com/km-arc/go-starter/app/services"
	"github.com/km-arc/go-starter/framework/config"
	"github.com/km-arc/go-starter/framework/container"
	"github.com/km-arc/go-starter/framework/routing"
	"github.com/km-arc/go-starter/routes"
)

// AppServiceProvider declares the application's types and registers its
// routes. Names such as "users" and "mailer" are bound by the services file.
type AppServiceProvider struct {
	container.BaseProvider
}

func (p *AppServiceProvider) Register(app *container.Container) error {
	ctors := []struct {
		fn   any
		opts []container.ProvideOption
	}{
		// Framework services, exposed by type for constructor injection.
		{fn: func(c *container.Container) (*config.Config, error) {
			return container.Resolve[*config.Config](c, "config")
		}},
		{fn: func(c *container.Container) (*slog.Logger, error) {
			return container.Resolve[*slog.Logger](c, "logger")
		}},

		{fn: services.NewUserStore},
		{fn: services.NewMailer, opts: []container.ProvideOption{
			container.WithParams("logger", "from"),
			container.WithDefault("from", config.Get("MAIL_FROM_ADDRESS", "noreply@example.com")),
		}},

		{fn: controllers.NewHomeController},
		{fn: controllers.NewUserController},

		{fn: middleware.NewAuth},
		{fn: middleware.NewRequestLog},
	}
	for _, ctor := range ctors {
		if err := app.Provide(ctor.fn, ctor.opts...); err != nil {
			return err
		}
	}
	return nil
}

func (p *AppServiceProvider) Boot(app *container.Container) error {
	router, err := container.Resolve[*routing.Router](app, "router")
	if err != nil {
		return err
	}
	routes.API(router)
	return nil
}
