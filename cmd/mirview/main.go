package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mirview/cmd/mirview/commands"
	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
	"git.home.luguber.info/inful/mirview/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{Out: os.Stdout}

	parser, err := kong.New(cli,
		kong.Name("mirview"),
		kong.Description("Browse compiler logs and MIR dumps keyed by numeric identifier."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Usage errors are reported by kong; configuration errors are classified.
		if _, ok := errors.AsClassified(err); !ok {
			parser.FatalIfErrorf(err)
		}
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
		return
	}

	if err := ctx.Run(global, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
