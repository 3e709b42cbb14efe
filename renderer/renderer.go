// Package renderer renders dashboard payloads and states as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/pigro"
	"github.com/etnz/pigro/dashboard"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates, _ = fs.Sub(templatesFS, "templates")

// Combined is the summary of a combined response: one row per series.
type Combined struct {
	Freq     string
	BaseDate string
	Points   int
	Rows     []Row
}

// Row summarizes one series between its first and its last point.
type Row struct {
	Name   string
	Weight string // empty for the portfolio itself
	First  string
	Last   string
	Change string // signed percentage
}

// NewCombined summarizes r.
func NewCombined(r pigro.CombinedResponse) *Combined {
	c := &Combined{Freq: r.Freq, BaseDate: r.BaseDate, Points: r.Points}
	c.Rows = []Row{
		newRow("Portafoglio", "", r.Portfolio),
		newRow("LS80", percent(r.Weights.LS80), r.LS80),
		newRow("Gold", percent(r.Weights.Gold), r.Gold),
		newRow("BTC", percent(r.Weights.BTC), r.BTC),
	}
	return c
}

func newRow(name, weight string, values []float64) Row {
	row := Row{Name: name, Weight: weight}
	if len(values) == 0 {
		return row
	}
	first := decimal.NewFromFloat(values[0])
	last := decimal.NewFromFloat(values[len(values)-1])
	row.First = first.StringFixed(2)
	row.Last = last.StringFixed(2)
	if !first.IsZero() {
		change := last.Div(first).Sub(decimal.NewFromInt(1)).Shift(2)
		row.Change = signed(change) + "%"
	}
	return row
}

func percent(w float64) string {
	return decimal.NewFromFloat(w).Shift(2).StringFixed(0) + "%"
}

func signed(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if d.Round(2).IsPositive() {
		return "+" + s
	}
	return s
}

// RenderCombined renders the summary of a combined response.
func RenderCombined(r pigro.CombinedResponse) string {
	partials := map[string]string{
		"combined_title": "combined_title.md",
		"combined_table": "combined_table.md",
	}
	return renderTemplate("combined", "combined.md", partials, NewCombined(r))
}

// Status is the state of a dashboard view.
type Status struct {
	Status string
	Charts []ChartStatus
}

// ChartStatus describes one canvas of a view.
type ChartStatus struct {
	Canvas string
	Note   string
	Path   string // where the chart is drawn, if it is drawn in a file
}

// NewStatus snapshots the status of v and of the given canvases. Canvases
// with neither a chart nor a note are skipped.
func NewStatus(v *dashboard.View, canvases ...string) *Status {
	s := &Status{Status: v.Status()}
	for _, id := range canvases {
		cs := ChartStatus{Canvas: id, Note: v.Note(id)}
		c, ok := v.Chart(id)
		if p, isFile := c.(interface{ Path() string }); ok && isFile {
			cs.Path = p.Path()
		}
		if !ok && cs.Note == "" {
			continue
		}
		s.Charts = append(s.Charts, cs)
	}
	return s
}

// RenderStatus renders the status of a view.
func RenderStatus(s *Status) string {
	return renderTemplate("status", "status.md", nil, s)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
