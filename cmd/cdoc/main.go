package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/cdoc/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	app struct {
		Version kong.VersionFlag `help:"Display version information and exit."`
		cli.Commands
	}
)

func main() {
	version := buildVersion()
	cli.Version = Version
	cli.CommitSHA = CommitSHA

	parser := kong.Must(&app,
		kong.Vars{
			"version": version,
		},
		kong.Name("cdoc"),
		kong.Description(cli.Description),
		kong.UsageOnError(),
		kong.Configuration(cli.YAMLConfig, cli.DefaultConfigPaths...),
		kong.Bind(&app.Globals),
	)

	ctx, err := parser.Parse(cli.RouteArgs(os.Args[1:]))
	parser.FatalIfErrorf(err)

	err = ctx.Run()

	var cmdErr *cli.CommandError
	if errors.As(err, &cmdErr) {
		os.Exit(cmdErr.ExitCode())
	}
	ctx.FatalIfErrorf(err)
}

func buildVersion() string {
	if Version == "" {
		Version = "0.0"
	}
	if CommitSHA == "" {
		return fmt.Sprintf("cdoc %s", Version)
	}
	return fmt.Sprintf("cdoc %s (%s)", Version, CommitSHA)
}
