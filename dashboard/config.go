package dashboard

import "github.com/etnz/pigro"

// ChartConfig is a line chart description. It marshals to the JSON accepted
// by the Chart.js constructor, so the server pages can hand it to the browser
// verbatim.
type ChartConfig struct {
	Type    string    `json:"type"`
	Data    ChartData `json:"data"`
	Options Options   `json:"options"`
}

// ChartData holds the X axis labels and the datasets drawn against them.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one line of a chart.
type Dataset struct {
	Label       string    `json:"label"`
	Data        []float64 `json:"data"`
	BorderColor string    `json:"borderColor,omitempty"` // #rrggbb
	Fill        bool      `json:"fill"`
	Tension     float64   `json:"tension,omitempty"`
	PointRadius *int      `json:"pointRadius,omitempty"`
}

// Options are the chart level options.
type Options struct {
	Responsive          bool         `json:"responsive"`
	MaintainAspectRatio *bool        `json:"maintainAspectRatio,omitempty"`
	Interaction         *Interaction `json:"interaction,omitempty"`
	Scales              Scales       `json:"scales"`
}

// Interaction selects which points the tooltip highlights.
type Interaction struct {
	Mode      string `json:"mode"`
	Intersect bool   `json:"intersect"`
}

type Scales struct {
	X Axis `json:"x"`
	Y Axis `json:"y"`
}

type Axis struct {
	BeginAtZero bool   `json:"beginAtZero"`
	Ticks       *Ticks `json:"ticks,omitempty"`
}

// Ticks caps the number of labels drawn along an axis.
type Ticks struct {
	AutoSkip      bool `json:"autoSkip"`
	MaxTicksLimit int  `json:"maxTicksLimit,omitempty"`
}

// Presentation constants.
const (
	singleColor    = "#4bc0c0"
	portfolioColor = "#3366cc"
	ls80Color      = "#dc3912"
	goldColor      = "#d4af37"
	btcColor       = "#f7931a"
	maxXTicks      = 12
)

// SingleChart returns the chart of one asset: values drawn at labels.
func SingleChart(r pigro.SeriesResponse) ChartConfig {
	label := r.Asset
	if label == "" {
		label = "valore"
	}
	return ChartConfig{
		Type: "line",
		Data: ChartData{
			Labels: r.Labels,
			Datasets: []Dataset{
				{Label: label, Data: r.Values, BorderColor: singleColor, Tension: 0.1},
			},
		},
		Options: Options{
			Responsive: true,
			Scales:     Scales{Y: Axis{BeginAtZero: false}},
		},
	}
}

// AggregateChart returns the chart of the weighted portfolio.
func AggregateChart(r pigro.CombinedResponse) ChartConfig {
	return combinedChart(r.Labels, Dataset{Label: "Portafoglio", Data: r.Portfolio, BorderColor: portfolioColor})
}

// BreakdownChart returns the chart of the three portfolio components.
func BreakdownChart(r pigro.CombinedResponse) ChartConfig {
	return combinedChart(r.Labels,
		Dataset{Label: "LS80", Data: r.LS80, BorderColor: ls80Color},
		Dataset{Label: "Gold", Data: r.Gold, BorderColor: goldColor},
		Dataset{Label: "BTC", Data: r.BTC, BorderColor: btcColor},
	)
}

func combinedChart(labels []string, datasets ...Dataset) ChartConfig {
	noPoints := 0
	keepRatio := false
	for i := range datasets {
		datasets[i].PointRadius = &noPoints
	}
	return ChartConfig{
		Type: "line",
		Data: ChartData{Labels: labels, Datasets: datasets},
		Options: Options{
			Responsive:          true,
			MaintainAspectRatio: &keepRatio,
			Interaction:         &Interaction{Mode: "index", Intersect: false},
			Scales: Scales{
				X: Axis{Ticks: &Ticks{AutoSkip: true, MaxTicksLimit: maxXTicks}},
			},
		},
	}
}
