// pgr serves and draws the lazy portfolio dashboards.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/pigro/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("pgr")

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	cmd.Register(subcommands.DefaultCommander)

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
