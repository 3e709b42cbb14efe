package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/etnz/pigro/dashboard"
	"github.com/etnz/pigro/renderer"
	"github.com/google/subcommands"
)

type combinedCmd struct {
	chartFlags
	freq    string
	watch   bool
	ordered bool
}

func (*combinedCmd) Name() string     { return "combined" }
func (*combinedCmd) Synopsis() string { return "draw the portfolio and its breakdown charts of the backend" }
func (*combinedCmd) Usage() string {
	return `pgr [-url <backend>] combined [-freq monthly] [-o <dir>] [-format png|svg] [-watch] [-ordered]

  Fetches /api/combined and draws <dir>/aggregate.<format> and
  <dir>/breakdown.<format>.

  With -watch, every line read on the standard input is a new frequency,
  loaded without waiting for the previous loads. By default the last
  response to arrive is drawn; -ordered draws the last requested instead.
`
}

func (c *combinedCmd) SetFlags(f *flag.FlagSet) {
	c.chartFlags.SetFlags(f)
	f.StringVar(&c.freq, "freq", "monthly", "Sampling frequency: daily, weekly, monthly, quarterly or yearly")
	f.BoolVar(&c.watch, "watch", false, "Read new frequencies from the standard input")
	f.BoolVar(&c.ordered, "ordered", false, "Discard responses older than the last one drawn")
}

func (c *combinedCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, err := c.view()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	l := &dashboard.CombinedLoader{Client: client(), View: view, Ordered: c.ordered}

	if c.watch {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		l.Watch(ctx, c.freq, lines(os.Stdin))
	} else {
		err = l.Load(ctx, c.freq)
	}

	printMarkdown(renderer.RenderStatus(renderer.NewStatus(view, dashboard.AggregateCanvas, dashboard.BreakdownCanvas)))
	if err != nil || view.Status() != "" {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// lines sends the non blank lines of r, trimmed, and closes the channel at EOF.
func lines(r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				out <- line
			}
		}
		if err := scanner.Err(); err != nil {
			log.Printf("cannot read frequencies: %v", err)
		}
	}()
	return out
}
