package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/gophnotes/internal/server"
	"github.com/dmitrijs2005/gophnotes/internal/server/config"
)

func main() {
	if err := run(context.Background()); err != nil {
		red := color.New(color.FgRed)
		red.Fprint(os.Stderr, "Error: ")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app, err := server.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
