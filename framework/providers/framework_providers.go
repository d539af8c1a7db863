package providers

import (
	"log/slog"

	"github.com/km-arc/go-starter/framework/config"
	"github.com/km-arc/go-starter/framework/container"
	"github.com/km-arc/go-starter/framework/logging"
	"github.com/km-arc/go-starter/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration.
//
// Bound abstracts:
//   - "config"    → *config.Config
//   - "services"  → *config.Services
type ConfigServiceProvider struct {
	container.BaseProvider
	Config   *config.Config
	Services *config.Services
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	services := p.Services
	if services == nil {
		var err error
		if services, err = config.ParseServices(nil); err != nil {
			return err
		}
	}
	app.Instance("config", p.Config)
	app.Instance("services", services)
	return nil
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider registers the application logger.
//
// Bound abstracts:
//   - "logger"  → *slog.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
}

func (p *LoggingServiceProvider) Register(app *container.Container) error {
	app.Singleton("logger", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		return logging.New(cfg), nil
	})
	return nil
}

// Boot makes the application logger the slog default.
func (p *LoggingServiceProvider) Boot(app *container.Container) error {
	log, err := container.Resolve[*slog.Logger](app, "logger")
	if err != nil {
		return err
	}
	slog.SetDefault(log)
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router. Controllers and
// middlewares are resolved through the container; default middlewares,
// aliases and strict mode come from the services file.
//
// Bound abstracts:
//   - "router"  → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	app.Singleton("router", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		services, err := container.Resolve[*config.Services](c, "services")
		if err != nil {
			return nil, err
		}
		log, err := container.Resolve[*slog.Logger](c, "logger")
		if err != nil {
			return nil, err
		}
		return routing.New(c,
			routing.WithDefaultMiddleware(services.Middlewares.Default...),
			routing.WithMiddlewareAliases(services.Middlewares.Aliases),
			routing.WithStrictMiddleware(services.Middlewares.Strict),
			routing.WithBasePath(cfg.Routing.BasePath),
			routing.WithLogger(log),
		), nil
	})
	return nil
}
