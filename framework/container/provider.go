package container

import "fmt"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related bindings and type declarations.
//
// Register runs as soon as the provider is added and must only bind or
// provide. Boot runs after every provider is registered, so it may resolve
// other services.
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    return app.Provide(services.NewMailer)
//	}
type ServiceProvider interface {
	Register(app *Container) error
	Boot(app *Container) error

	// Provides lists the service names a deferred provider binds.
	Provides() []string

	// IsDeferred reports whether Register should wait until one of the
	// Provides() names is first requested.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider supplies no-op Boot, Provides and IsDeferred.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders, loading deferred
// providers on first use of one of their services.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // service name → provider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider. Eager providers are registered immediately (and
// booted too when the registry has already booted). Adding the same provider
// twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, name := range provider.Provides() {
			r.deferred[name] = provider
		}
		r.interceptDeferred(provider)
		return nil
	}

	if err := provider.Register(r.app); err != nil {
		return fmt.Errorf("container: registering %T: %w", provider, err)
	}
	r.eager = append(r.eager, provider)

	if r.booted {
		if err := provider.Boot(r.app); err != nil {
			return fmt.Errorf("container: booting %T: %w", provider, err)
		}
	}
	return nil
}

// interceptDeferred binds a placeholder for each deferred name. The first Get
// registers the provider for real, which replaces the placeholder. A failed
// Register leaves the provider deferred so the next Get retries it.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	for _, name := range provider.Provides() {
		r.app.Bind(name, func(c *Container) (any, error) {
			if r.deferred[name] == nil {
				return nil, fmt.Errorf("%w: %T did not bind [%s]", ErrDeferredNotBound, provider, name)
			}
			if err := provider.Register(c); err != nil {
				return nil, fmt.Errorf("container: registering deferred %T: %w", provider, err)
			}
			for _, n := range provider.Provides() {
				delete(r.deferred, n)
			}
			if r.booted {
				if err := provider.Boot(c); err != nil {
					return nil, fmt.Errorf("container: booting deferred %T: %w", provider, err)
				}
			}
			return c.Get(name)
		})
	}
}

// Boot boots every eager provider once, in registration order.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, provider := range r.eager {
		if err := provider.Boot(r.app); err != nil {
			return fmt.Errorf("container: booting %T: %w", provider, err)
		}
	}
	return nil
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
