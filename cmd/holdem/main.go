package main

import (
	"os"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	LogLevel string `short:"l" help:"Log level: debug, info, warn or error (overrides config)"`
	NoColor  bool   `help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play hands at a table from an HCL config"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-only hands on many tables at once"`
	Odds     OddsCmd          `cmd:"" help:"Estimate showdown equity for hands"`
	History  HistoryCmd       `cmd:"" help:"Work with PHH hand history files"`
	Ver      VersionCmd       `cmd:"" name:"version" help:"Print the version"`
}

func newParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	return kong.New(cli, append([]kong.Option{
		kong.Name("holdem"),
		kong.Description("No-limit Texas Hold'em engine with built-in bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	}, opts...)...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run())
}
