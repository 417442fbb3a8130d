package main

import (
	"context"
	"flag"
	"time"

	"envirocar-tools/ectools/config"
	"envirocar-tools/ectools/report"
	"envirocar-tools/ectools/report/mail"
	"envirocar-tools/ectools/terminal"

	"github.com/google/subcommands"
)

type reportCmd struct {
	when     string
	comments string
	send     bool
	prompt   bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "Bundle the log files and send an issue report." }
func (*reportCmd) Usage() string {
	return `report [-when minutes] [-comments text] [-send] [-prompt-password]
	Create a zip bundle of the log files and a report email to the enviroCar team.
	The email is sent through SMTP with -send, otherwise written as an .eml file.
  `
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.when, "when", "", "how many minutes ago the issue occurred")
	f.StringVar(&c.comments, "comments", "", "additional comments")
	f.BoolVar(&c.send, "send", false, "send the report through the configured SMTP server")
	f.BoolVar(&c.prompt, "prompt-password", false, "prompt for the SMTP password")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)

	minutes, err := report.ParseMinutesAgo(c.when)
	if err != nil {
		terminal.Error(err, "Invalid -when value")
		return subcommands.ExitUsageError
	}

	if c.send && cfg.SMTP.Host == "" {
		terminal.Error(nil, "No SMTP host configured, set SMTP_HOST")
		return subcommands.ExitUsageError
	}

	b := report.NewBundler(cfg.LogFile, cfg.ReportDir)

	// remove old report bundles
	removed, err := b.RemoveOldBundles()
	if err != nil {
		terminal.Warn("Could not remove old report bundles: %s", err)
	} else if len(removed) > 0 {
		terminal.Info("Removed %d old report bundle(s)", len(removed))
	}

	// create the bundle
	o := terminal.NewOperation("Creating report bundle")
	bundle, err := b.Create(ctx)
	if err != nil {
		o.Error(err, "An error occurred while creating the report bundle. Please send in the logs available at %s", b.LogDir())
		return subcommands.ExitFailure
	}
	o.Success("Report bundle created at %s", bundle)

	msg, err := mail.Compose(mail.Report{
		From:     cfg.SMTP.From,
		Contents: report.EmailContents(time.Now(), minutes, c.comments),
		Bundle:   bundle,
	})
	if err != nil {
		terminal.Error(err, "Failed to compose report email")
		return subcommands.ExitFailure
	}

	var d mail.Deliverer = &mail.EML{Bundle: bundle}
	if c.send {
		password := cfg.SMTP.Password
		if c.prompt {
			password, err = terminal.ReadPassword("SMTP password: ")
			if err != nil {
				terminal.Error(err, "Failed to read SMTP password")
				return subcommands.ExitFailure
			}
		}
		d = &mail.SMTP{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: password,
		}
	}

	o = terminal.NewOperation("Delivering report to %s", mail.ReportingAddress)
	dest, err := d.Deliver(ctx, msg)
	if err != nil {
		o.Error(err, "Failed to deliver report")
		return subcommands.ExitFailure
	}
	o.Success("Report delivered to %s", dest)

	return subcommands.ExitSuccess
}
