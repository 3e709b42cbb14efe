package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pigro/dashboard"
	"github.com/etnz/pigro/plot"
	"github.com/etnz/pigro/renderer"
	"github.com/google/subcommands"
)

// chartFlags are the flags shared by the commands drawing charts.
type chartFlags struct {
	out    string
	format string
	width  int
	height int
}

func (c *chartFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", ".", "Directory where charts are drawn")
	f.StringVar(&c.format, "format", "png", "Image format: png or svg")
	f.IntVar(&c.width, "width", 1024, "Chart width in pixels")
	f.IntVar(&c.height, "height", 400, "Chart height in pixels")
}

// view returns a view drawing in files.
func (c *chartFlags) view() (*dashboard.View, error) {
	format, err := plot.ParseFormat(c.format)
	if err != nil {
		return nil, err
	}
	return dashboard.NewView(plot.Factory{Dir: c.out, Format: format, Width: c.width, Height: c.height}), nil
}

type dataCmd struct {
	chartFlags
}

func (*dataCmd) Name() string     { return "data" }
func (*dataCmd) Synopsis() string { return "draw the single asset chart of the backend" }
func (*dataCmd) Usage() string {
	return `pgr [-url <backend>] data [-o <dir>] [-format png|svg]

  Fetches /api/data and draws it in <dir>/chart.<format>.
`
}

func (c *dataCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, err := c.view()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	l := &dashboard.SingleLoader{Client: client(), View: view}
	err = l.Load(ctx)
	printMarkdown(renderer.RenderStatus(renderer.NewStatus(view, dashboard.SingleCanvas)))
	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
