// Package cmd implements pgr, the command line tool of the lazy portfolio dashboards.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/pigro/dashboard"
	"github.com/etnz/pigro/market"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&serveCmd{}, "backend")
	c.Register(&seriesCmd{}, "backend")

	c.Register(&dataCmd{}, "dashboards")
	c.Register(&combinedCmd{}, "dashboards")
	c.Register(&pointsCmd{}, "dashboards")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var backendURL = flag.String("url", "http://localhost:5000", "URL of the dashboard backend")
var configFile = flag.String("config", "pigro.yaml", "Path to the market configuration (YAML)")

// OpenMarket loads the market from the configuration file.
func OpenMarket() (*market.Market, error) {
	cfg, err := market.LoadConfig(*configFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, %s does not exist, using the default configuration", *configFile)
		cfg, err = market.DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return market.New(cfg), nil
}

// client returns the backend client.
func client() *dashboard.Client {
	return &dashboard.Client{BaseURL: *backendURL}
}

// printMarkdown prints markdown formatted for the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	log.Printf("cannot render markdown: %v", err)
	fmt.Fprint(os.Stdout, md)
}
