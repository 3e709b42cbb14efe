// Package plot draws dashboard charts as PNG or SVG images.
package plot

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/etnz/pigro/dashboard"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PNG, SVG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown image format %q (png, svg)", s)
	}
}

// Render draws config in format on w. A config without any point is drawn as
// empty axes.
func Render(w io.Writer, config dashboard.ChartConfig, format Format, width, height int) error {
	labels := config.Data.Labels
	xs := make([]float64, len(labels))
	for i := range xs {
		xs[i] = float64(i)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	var series []chart.Series
	for _, ds := range config.Data.Datasets {
		n := min(len(ds.Data), len(xs))
		if n == 0 {
			continue
		}
		for _, v := range ds.Data[:n] {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    ds.Label,
			XValues: xs[:n],
			YValues: ds.Data[:n],
			Style:   lineStyle(ds),
		})
	}
	empty := len(series) == 0
	if empty {
		// go-chart needs a series to draw the axes.
		lo, hi = 0, 0
		series = []chart.Series{chart.ContinuousSeries{
			XValues: []float64{0},
			YValues: []float64{0},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 1},
		}}
	}

	maxTicks := 0
	if t := config.Options.Scales.X.Ticks; t != nil {
		maxTicks = t.MaxTicksLimit
	}
	var xTicks []chart.Tick
	for _, i := range Ticks(labels, maxTicks) {
		xTicks = append(xTicks, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	if len(xTicks) == 0 {
		xTicks = []chart.Tick{{Value: 0}}
	}

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Ticks: xTicks,
			// explicit so that a single point still has a non-zero range.
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(max(len(labels), 1)) - 0.5},
		},
		Series: series,
	}
	if r := yRange(lo, hi, config.Options.Scales.Y.BeginAtZero); r != nil {
		ch.YAxis.Range = r
	}
	if !empty && len(series) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}

	provider := chart.PNG
	if format == SVG {
		provider = chart.SVG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("cannot render chart: %w", err)
	}
	return nil
}

// yRange returns the Y axis range, or nil to let go-chart pick it.
func yRange(lo, hi float64, beginAtZero bool) *chart.ContinuousRange {
	if beginAtZero {
		lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	}
	if hi-lo < 1e-9 {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	if beginAtZero {
		return &chart.ContinuousRange{Min: lo, Max: hi}
	}
	return nil
}

func lineStyle(ds dashboard.Dataset) chart.Style {
	color := chart.ColorBlue
	if ds.BorderColor != "" {
		color = drawing.ColorFromHex(strings.TrimPrefix(ds.BorderColor, "#"))
	}
	style := chart.Style{StrokeColor: color, StrokeWidth: 2}
	if ds.PointRadius == nil || *ds.PointRadius > 0 {
		style.DotColor = color
		style.DotWidth = 2
	}
	if ds.Fill {
		style.FillColor = color.WithAlpha(64)
	}
	return style
}

// Ticks returns the indexes of the labels to draw so that at most limit are
// drawn, evenly spaced and starting with the first one. limit <= 0 keeps them all.
func Ticks(labels []string, limit int) []int {
	n := len(labels)
	step := 1
	if limit > 0 && n > limit {
		step = (n + limit - 1) / limit
	}
	idx := make([]int, 0, n/step+1)
	for i := 0; i < n; i += step {
		idx = append(idx, i)
	}
	return idx
}
