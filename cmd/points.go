package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/pigro"
	"github.com/google/subcommands"
	"github.com/jedib0t/go-pretty/v6/table"
)

type pointsCmd struct {
	freq     string
	invest   float64
	currency string
}

func (*pointsCmd) Name() string     { return "points" }
func (*pointsCmd) Synopsis() string { return "print the portfolio series of the backend as a table" }
func (*pointsCmd) Usage() string {
	return `pgr [-url <backend>] points [-freq monthly] [-invest 10000] [-currency EUR]

  Prints every point of /api/combined, with the value an initial investment
  in the portfolio would have reached.
`
}

func (c *pointsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.freq, "freq", "monthly", "Sampling frequency: daily, weekly, monthly, quarterly or yearly")
	f.Float64Var(&c.invest, "invest", 10000, "Amount invested at the base date, 0 to hide the value column")
	f.StringVar(&c.currency, "currency", "EUR", "Currency of the investment")
}

func (c *pointsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !pigro.ValidCurrency(c.currency) {
		fmt.Fprintf(os.Stderr, "Error: unknown currency %q\n", c.currency)
		return subcommands.ExitUsageError
	}
	resp, err := client().Combined(ctx, c.freq)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching combined series: %v\n", err)
		return subcommands.ExitFailure
	}
	aggregate, _ := resp.Annotations()
	fmt.Println(aggregate)
	printPoints(os.Stdout, resp, pigro.M(c.invest, c.currency))
	return subcommands.ExitSuccess
}

// printPoints writes one row per label. A zero invest hides the value column.
func printPoints(w io.Writer, r pigro.CombinedResponse, invest pigro.Money) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	header := table.Row{"periodo", "portafoglio", "ls80", "gold", "btc"}
	if !invest.IsZero() {
		header = append(header, "valore", "guadagno")
	}
	t.AppendHeader(header)
	for i, label := range r.Labels {
		row := table.Row{label, r.Portfolio[i], r.LS80[i], r.Gold[i], r.BTC[i]}
		if !invest.IsZero() {
			value := invest.Index(r.Portfolio[i])
			row = append(row, value.String(), value.Sub(invest).SignedString())
		}
		t.AppendRow(row)
	}
	t.Render()
}
