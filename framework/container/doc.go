// Package container provides the dependency-injection container and the
// Service Provider system.
//
// # Overview
//
// The container knows two kinds of keys:
//
//   - service names ("mailer", "router"), bound with Set / Bind / Singleton /
//     Instance or loaded from the configured Registry by Register, and
//     resolved with Get;
//   - type names ("services.Mailer"), made known with Provide (a constructor
//     function) or Declare (zero-value construction), and built with Resolve.
//
// Resolve injects each constructor parameter in declaration order. Go has no
// runtime access to parameter names, so names and defaults are declared with
// ProvideOptions; the function signature itself is the dependency list.
//
// # Registry
//
// The Registry is the ordered providers section of the services file:
//
//	providers:
//	  mailer: [services.Mailer, true]   # singleton
//	  users: services.UserStore         # new instance per Get
//
//	c := container.New(container.NewRegistry(entries...))
//	c.Register()
//
// A constructor parameter whose type is bound in the registry is resolved
// through Get, so it honours the entry's singleton flag.
//
// # Singletons
//
// Only Get caches. Two Resolve calls always return distinct instances, even
// for a type that a registry entry marks as singleton:
//
//	a, _ := c.Get("mailer")
//	b, _ := c.Get("mailer")                 // a == b
//	x, _ := c.Resolve("services.Mailer")
//	y, _ := c.Resolve("services.Mailer")    // x != y
//
// # Generics
//
//	mailer, err := container.Resolve[*services.Mailer](c, "mailer")
//	ctrl, err := container.Make[*controllers.UserController](c)
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    return app.Provide(services.NewMailer)
//	}
//
//	registry := container.NewProviderRegistry(c)
//	_ = registry.Register(&AppServiceProvider{})
//	_ = registry.Boot()
//
// A deferred provider (IsDeferred true) is registered on the first Get of one
// of its Provides() names.
//
// # Concurrency
//
// A Container is safe for concurrent use. Singleton construction may run
// more than once under contention, but every caller observes the instance
// that was cached first.
package container
