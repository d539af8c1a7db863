package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-starter/framework/config"
	"github.com/km-arc/go-starter/framework/container"
	gohttp "github.com/km-arc/go-starter/framework/http"
	"github.com/km-arc/go-starter/framework/providers"
	"github.com/km-arc/go-starter/framework/routing"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Bind(), app.Singleton(), app.Provide() directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	config *config.Config
}

// New loads .env and the services file, then creates the application.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	services, err := config.LoadServices(cfg.Routing.ServicesFile)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, services)
}

// NewWithConfig creates the application from already loaded configuration.
// The services file providers become the container registry.
func NewWithConfig(cfg *config.Config, services *config.Services) (*Application, error) {
	if services == nil {
		services = &config.Services{}
	}

	entries := make([]container.Entry, 0, len(services.Providers))
	for _, s := range services.Providers {
		entries = append(entries, container.Entry{Name: s.Name, Type: s.Type, Singleton: s.Singleton})
	}
	c := container.New(container.NewRegistry(entries...))
	c.Register()

	app := &Application{
		Container: c,
		Providers: container.NewProviderRegistry(c),
		config:    cfg,
	}

	for _, p := range []container.ServiceProvider{
		&providers.ConfigServiceProvider{Config: cfg, Services: services},
		&providers.LoggingServiceProvider{},
		&providers.RoutingServiceProvider{},
	} {
		if err := app.Register(p); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config returns the application configuration.
func (a *Application) Config() *config.Config { return a.config }

// Router resolves *routing.Router from the container.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container, "router")
}

// Logger resolves the application logger, falling back to slog's default.
func (a *Application) Logger() *slog.Logger {
	log, err := container.Resolve[*slog.Logger](a.Container, "logger")
	if err != nil {
		return slog.Default()
	}
	return log
}

// Handler boots the application (if needed) and returns the router wrapped
// in the kernel middleware stack.
func (a *Application) Handler() (http.Handler, error) {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return nil, err
		}
	}
	router, err := a.Router()
	if err != nil {
		return nil, err
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)
	mux.Mount("/", router)
	return mux, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// process receives SIGINT or SIGTERM, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	handler, err := a.Handler()
	if err != nil {
		return err
	}
	log := a.Logger()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", ":"+a.config.App.Port)
	if err != nil {
		return fmt.Errorf("app: listen: %w", err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			slog.String("address", ln.Addr().String()),
			slog.String("env", a.Environment()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	log.Info("shutdown completed")
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.config.App.Debug }
func (a *Application) Version() string     { return "0.1.0" }

// Controller is an embeddable base for HTTP controllers.
type Controller struct{}

func (c *Controller) Request(r *http.Request) *gohttp.Request {
	return gohttp.NewRequest(r)
}
func (c *Controller) Response(w http.ResponseWriter) *gohttp.Response {
	return gohttp.NewResponse(w)
}
