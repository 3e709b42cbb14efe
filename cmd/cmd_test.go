package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/etnz/pigro"
	"github.com/google/subcommands"
)

func combined() pigro.CombinedResponse {
	return pigro.CombinedResponse{
		BaseDate:  "2020-01-01",
		Points:    2,
		Freq:      "daily",
		Weights:   pigro.Weights{LS80: 0.8, Gold: 0.1, BTC: 0.1},
		Labels:    []string{"D1", "D2"},
		Portfolio: []float64{100, 101},
		LS80:      []float64{100, 102},
		Gold:      []float64{100, 99},
		BTC:       []float64{100, 110},
	}
}

func TestListenAddr(t *testing.T) {
	t.Setenv("PGR_ADDR", "")
	if got := listenAddr(""); got != ":5000" {
		t.Errorf("listenAddr() = %q want :5000", got)
	}
	t.Setenv("PGR_ADDR", ":8080")
	if got := listenAddr(""); got != ":8080" {
		t.Errorf("listenAddr() = %q want :8080", got)
	}
	if got := listenAddr("127.0.0.1:9000"); got != "127.0.0.1:9000" {
		t.Errorf("listenAddr() = %q want 127.0.0.1:9000", got)
	}
}

func TestLines(t *testing.T) {
	var got []string
	for line := range lines(strings.NewReader("weekly\n\n  yearly \r\nmonthly")) {
		got = append(got, line)
	}
	if want := []string{"weekly", "yearly", "monthly"}; !reflect.DeepEqual(got, want) {
		t.Errorf("lines() = %v want %v", got, want)
	}
}

func TestPrintPoints(t *testing.T) {
	var buf bytes.Buffer
	printPoints(&buf, combined(), pigro.M(10000, "EUR"))
	out := buf.String()
	for _, want := range []string{"PORTAFOGLIO", "D2", "€10,100.00", "+€100.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("printPoints() = \n%s\nwant it to contain %q", out, want)
		}
	}

	buf.Reset()
	printPoints(&buf, combined(), pigro.M(0, "EUR"))
	if strings.Contains(buf.String(), "VALORE") {
		t.Errorf("printPoints() without investment shows the value column")
	}
}

func TestOpenMarketDefaults(t *testing.T) {
	old := *configFile
	defer func() { *configFile = old }()
	*configFile = filepath.Join(t.TempDir(), "missing.yaml")

	m, err := OpenMarket()
	if err != nil {
		t.Fatalf("OpenMarket() unexpected error = %v", err)
	}
	if got := m.Config().DataDir; got != "data" {
		t.Errorf("OpenMarket().Config().DataDir = %q want data", got)
	}
}

func TestDataAndCombinedCommands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/data":
			io.WriteString(w, `{"labels":["Jan","Feb","Mar"],"values":[100,105,98]}`)
		case "/api/combined":
			json.NewEncoder(w).Encode(combined())
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	old := *backendURL
	defer func() { *backendURL = old }()
	*backendURL = srv.URL

	dir := t.TempDir()
	tests := []struct {
		cmd   subcommands.Command
		args  []string
		files []string
	}{
		{&dataCmd{}, []string{"-o", dir, "-format", "svg"}, []string{"chart.svg"}},
		{&combinedCmd{}, []string{"-o", dir, "-format", "svg", "-freq", "daily"}, []string{"aggregate.svg", "breakdown.svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			f := flag.NewFlagSet(tt.cmd.Name(), flag.ContinueOnError)
			tt.cmd.SetFlags(f)
			if err := f.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			if got := tt.cmd.Execute(context.Background(), f); got != subcommands.ExitSuccess {
				t.Fatalf("Execute() = %v want success", got)
			}
			for _, name := range tt.files {
				if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
					t.Errorf("Execute() did not draw %s: %v", name, err)
				}
			}
		})
	}

	*backendURL = srv.URL + "/down"
	f := flag.NewFlagSet("combined", flag.ContinueOnError)
	c := &combinedCmd{}
	c.SetFlags(f)
	f.Parse([]string{"-o", dir})
	if got := c.Execute(context.Background(), f); got != subcommands.ExitFailure {
		t.Errorf("Execute() against a missing backend = %v want failure", got)
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, name := range []string{"serve", "series", "data", "combined", "points", "topic"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("Completion() has no %q subcommand", name)
		}
	}
	if _, ok := c.Sub["combined"].Flags["watch"]; !ok {
		t.Errorf("Completion() combined has no -watch flag")
	}
}
