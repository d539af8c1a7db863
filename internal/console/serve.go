package console

import (
	"github.com/spf13/cobra"
)

func newServeCommand(boot Bootstrap) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server on APP_PORT (or --port) and block until
SIGINT or SIGTERM, then shut down gracefully.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := boot()
			if err != nil {
				return err
			}
			if port != "" {
				a.Config().App.Port = port
			}
			return a.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (default APP_PORT)")
	return cmd
}
