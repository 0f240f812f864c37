package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version   kong.VersionFlag `short:"v" help:"Show version"`
	Serve     ServeCmd         `cmd:"" help:"Serve a round over websockets"`
	Strokes   StrokesCmd       `cmd:"" help:"Print the stroke allocation table for the configured players"`
	Standings StandingsCmd     `cmd:"" help:"Refold a stored round and print standings"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("wgp"),
		kong.Description("Wolf Goat Pig scorekeeping and betting engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
