// Package app bootstraps the example application on top of the framework.
package app

import (
	"github.com/km-arc/go-starter/app/providers"
	framework "github.com/km-arc/go-starter/framework/app"
	"github.com/km-arc/go-starter/framework/config"
)

// New loads .env and the services file and registers the application
// providers.
//
//	application, err := app.New()
//	err = application.Run(ctx)
func New(envFiles ...string) (*framework.Application, error) {
	a, err := framework.New(envFiles...)
	if err != nil {
		return nil, err
	}
	return register(a)
}

// NewWithConfig is New for already loaded configuration.
func NewWithConfig(cfg *config.Config, services *config.Services) (*framework.Application, error) {
	a, err := framework.NewWithConfig(cfg, services)
	if err != nil {
		return nil, err
	}
	return register(a)
}

func register(a *framework.Application) (*framework.Application, error) {
	if err := a.Register(&providers.AppServiceProvider{}); err != nil {
		return nil, err
	}
	return a, nil
}
