package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type seriesCmd struct {
	asset    string
	freq     string
	combined bool
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "print the JSON the backend serves, without a server" }
func (*seriesCmd) Usage() string {
	return `pgr series [-asset ls80] [-freq monthly] [-combined]

  Computes /api/data (or /api/combined with -combined) from the CSV files of
  the configuration and prints it.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "ls80", "Asset to print")
	f.StringVar(&c.freq, "freq", "monthly", "Sampling frequency: daily, weekly, monthly, quarterly or yearly")
	f.BoolVar(&c.combined, "combined", false, "Print the weighted portfolio instead of a single asset")
}

func (c *seriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, err := OpenMarket()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market: %v\n", err)
		return subcommands.ExitFailure
	}

	var resp any
	if c.combined {
		resp, err = m.Combined(c.freq)
	} else {
		resp, err = m.Series(c.asset, c.freq)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing series: %v\n", err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing series: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
