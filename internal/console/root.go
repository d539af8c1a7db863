// Package console contains the artisan CLI commands.
package console

import (
	"github.com/spf13/cobra"

	"github.com/km-arc/go-starter/framework/app"
)

// Bootstrap builds the application the commands operate on.
type Bootstrap func() (*app.Application, error)

// NewRootCommand returns the artisan root command with every subcommand
// attached.
func NewRootCommand(boot Bootstrap) *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "artisan",
		Short: "go-starter application console",
		Long: `artisan serves the application and inspects its routes and services.

Example usage:
  artisan serve --port 8080    # Start the HTTP server
  artisan route:list           # Show the route table
  artisan service:list         # Show container bindings`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		newServeCommand(boot),
		newRouteListCommand(boot, &noColor),
		newServiceListCommand(boot),
	)
	return root
}

// booted builds the application and runs every provider's Boot phase, which
// is where routes are registered.
func booted(boot Bootstrap) (*app.Application, error) {
	a, err := boot()
	if err != nil {
		return nil, err
	}
	if err := a.Boot(); err != nil {
		return nil, err
	}
	return a, nil
}
