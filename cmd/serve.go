package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/pigro/server"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

type serveCmd struct {
	addr string
	env  string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the dashboards and their JSON API" }
func (*serveCmd) Usage() string {
	return `pgr serve [-addr :5000] [-env .env]

  Serves /api/data, /api/combined and the dashboard pages computed from the
  CSV files of the configuration. The address defaults to $PGR_ADDR, which
  can be set in the .env file.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Defaults to $PGR_ADDR or :5000")
	f.StringVar(&c.env, "env", ".env", "Environment file to load before starting")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := godotenv.Load(c.env); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", c.env, err)
		return subcommands.ExitFailure
	}
	addr := listenAddr(c.addr)

	m, err := OpenMarket()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market: %v\n", err)
		return subcommands.ExitFailure
	}
	s, err := server.New(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving on %s: %v\n", addr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// listenAddr returns addr, or $PGR_ADDR, or :5000.
func listenAddr(addr string) string {
	if addr != "" {
		return addr
	}
	if env := os.Getenv("PGR_ADDR"); env != "" {
		return env
	}
	return ":5000"
}
