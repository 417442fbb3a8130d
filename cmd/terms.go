package main

import (
	"context"
	"flag"
	"fmt"

	"envirocar-tools/ectools/config"
	"envirocar-tools/ectools/terminal"
	"envirocar-tools/ectools/terms"

	"github.com/google/subcommands"
)

type termsCmd struct {
	id string
}

func (*termsCmd) Name() string     { return "terms" }
func (*termsCmd) Synopsis() string { return "Print the enviroCar terms of use." }
func (*termsCmd) Usage() string {
	return `terms [-id] <termsOfUseId>
	Print a version of the enviroCar terms of use, the latest one by default.
  `
}

func (c *termsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "terms of use id")
}

func (c *termsCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)

	client := terms.NewClient(cfg.APIBaseURL)

	o := terminal.NewOperation("Fetching terms of use from %s", client.BaseURL)
	var tou terms.TermsOfUse
	var err error
	if c.id != "" {
		tou, err = client.Get(ctx, c.id)
	} else {
		tou, err = client.Latest(ctx)
	}
	if err != nil {
		o.Error(err, "Failed to fetch terms of use")
		return subcommands.ExitFailure
	}
	o.Success("Terms of use '%s' issued on %s", tou.ID, tou.IssuedDate)

	if tou.Contents != nil {
		fmt.Println()
		fmt.Println(*tou.Contents)
	}

	return subcommands.ExitSuccess
}
