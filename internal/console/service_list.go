package console

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newServiceListCommand(boot Bootstrap) *cobra.Command {
	return &cobra.Command{
		Use:   "service:list",
		Short: "List container bindings",
		Long: `List every named binding in the container. Names loaded from the
services file show their type and singleton flag.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := booted(boot)
			if err != nil {
				return err
			}
			registry := a.Registry()

			var rows [][]string
			for _, name := range a.Bindings() {
				typ, singleton := "-", "-"
				if e, ok := registry.Lookup(name); ok {
					typ, singleton = e.Type, strconv.FormatBool(e.Singleton)
				}
				rows = append(rows, []string{name, typ, singleton, strconv.FormatBool(a.Resolved(name))})
			}
			return renderTable(cmd.OutOrStdout(), []string{"NAME", "TYPE", "SINGLETON", "RESOLVED"}, rows)
		},
	}
}
