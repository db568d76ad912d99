package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/gophnotes/internal/client/cli"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		color.New(color.FgRed).Fprint(os.Stderr, "Error: ")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cli.NewApp(cfg).Run(context.Background())
}
