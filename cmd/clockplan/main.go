// Command clockplan plans the day on a 24-hour clock.
package main

import (
	"fmt"
	"os"

	"github.com/javiermolinar/clockplan/internal/config"
	"github.com/javiermolinar/clockplan/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app := ui.NewApp(nil, cfg)
	defer func() { _ = app.Close() }()
	app.SetArgs(args)
	return app.Execute()
}
