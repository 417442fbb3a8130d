package main

import (
	"context"
	"flag"
	"os"

	"envirocar-tools/ectools/config"
	"envirocar-tools/ectools/terminal"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&boundsCmd{}, "")
	subcommands.Register(&reportCmd{}, "")
	subcommands.Register(&termsCmd{}, "")

	cfg, err := config.Load()
	if err != nil {
		terminal.Error(err, "Failed to load config")
		os.Exit(1)
	}
	cfg.Logger.Setup()

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx, cfg)))
}
