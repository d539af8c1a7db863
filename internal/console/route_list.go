package console

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/km-arc/go-starter/framework/routing"
)

var verbColors = map[string]color.Attribute{
	"GET":     color.FgGreen,
	"POST":    color.FgYellow,
	"PUT":     color.FgBlue,
	"PATCH":   color.FgBlue,
	"DELETE":  color.FgRed,
	"OPTIONS": color.FgWhite,
}

func newRouteListCommand(boot Bootstrap, noColor *bool) *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "route:list",
		Short: "List registered routes",
		Long: `List registered routes in matching order.

Examples:
  artisan route:list               # All routes
  artisan route:list --method GET  # Only GET routes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := booted(boot)
			if err != nil {
				return err
			}
			router, err := a.Router()
			if err != nil {
				return err
			}

			var rows [][]string
			for _, rt := range router.Routes() {
				if method != "" && !strings.EqualFold(rt.Method(), method) {
					continue
				}
				rows = append(rows, []string{
					verb(rt.Method(), !*noColor),
					rt.URI(),
					rt.RouteName(),
					target(rt.Callback()),
					strings.Join(rt.Middlewares(), ", "),
				})
			}
			if len(rows) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No routes registered.")
				return err
			}
			return renderTable(cmd.OutOrStdout(), []string{"METHOD", "URI", "NAME", "ACTION", "MIDDLEWARE"}, rows)
		},
	}
	cmd.Flags().StringVarP(&method, "method", "m", "", "only list routes for this HTTP method")
	return cmd
}

func verb(method string, colored bool) string {
	attr, ok := verbColors[method]
	if !colored || !ok {
		return method
	}
	c := color.New(attr, color.Bold)
	c.EnableColor()
	return c.Sprint(method)
}

func target(cb routing.Callback) string {
	switch cb := cb.(type) {
	case routing.Action:
		return cb.String()
	case routing.HandlerFunc:
		return "Closure"
	default:
		return "-"
	}
}
