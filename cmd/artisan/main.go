package main

import (
	"context"
	"fmt"
	"os"

	"github.com/km-arc/go-starter/app"
	framework "github.com/km-arc/go-starter/framework/app"
	"github.com/km-arc/go-starter/internal/console"
)

func main() {
	root := console.NewRootCommand(func() (*framework.Application, error) {
		return app.New()
	})
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
