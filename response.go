package pigro

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrShape reports a payload whose series are not parallel to its labels.
var ErrShape = errors.New("series not parallel to labels")

// SeriesResponse is the payload of /api/data: one base-100 series.
type SeriesResponse struct {
	Asset    string    `json:"asset,omitempty"`
	Freq     string    `json:"freq,omitempty"`
	BaseDate string    `json:"base_date,omitempty"`
	Points   int       `json:"points,omitempty"`
	Labels   []string  `json:"labels"`
	Values   []float64 `json:"values"`
}

// Validate checks that values are parallel to labels.
func (r SeriesResponse) Validate() error {
	if len(r.Values) != len(r.Labels) {
		return fmt.Errorf("values has %d points for %d labels: %w", len(r.Values), len(r.Labels), ErrShape)
	}
	return nil
}

// Weights is the allocation of the lazy portfolio.
type Weights struct {
	LS80 float64 `json:"ls80" yaml:"ls80"`
	Gold float64 `json:"gold" yaml:"gold"`
	BTC  float64 `json:"btc" yaml:"btc"`
}

// Slice returns the weights in the ls80, gold, btc order.
func (w Weights) Slice() []float64 { return []float64{w.LS80, w.Gold, w.BTC} }

// CombinedResponse is the payload of /api/combined: the weighted portfolio and
// its three components, all rebased to 100 at BaseDate.
type CombinedResponse struct {
	BaseDate  string    `json:"base_date"`
	Points    int       `json:"points"`
	Freq      string    `json:"freq"`
	Weights   Weights   `json:"weights"`
	Labels    []string  `json:"labels"`
	Portfolio []float64 `json:"portfolio"`
	LS80      []float64 `json:"ls80"`
	Gold      []float64 `json:"gold"`
	BTC       []float64 `json:"btc"`
}

// Validate checks that every series is parallel to labels.
//
// Points is informational and is not checked.
func (r CombinedResponse) Validate() error {
	var errs error
	series := []struct {
		name   string
		values []float64
	}{{"portfolio", r.Portfolio}, {"ls80", r.LS80}, {"gold", r.Gold}, {"btc", r.BTC}}
	for _, s := range series {
		if len(s.values) != len(r.Labels) {
			errs = errors.Join(errs, fmt.Errorf("%s has %d points for %d labels: %w", s.name, len(s.values), len(r.Labels), ErrShape))
		}
	}
	return errs
}

// Annotations returns the captions of the aggregate and of the breakdown charts.
func (r CombinedResponse) Annotations() (aggregate, breakdown string) {
	breakdown = fmt.Sprintf("Base (100) dal: %s | punti: %d", r.BaseDate, r.Points)
	aggregate = fmt.Sprintf("%s | pesi: LS80 %s, Gold %s, BTC %s | freq: %s",
		breakdown, shortFloat(r.Weights.LS80), shortFloat(r.Weights.Gold), shortFloat(r.Weights.BTC), r.Freq)
	return aggregate, breakdown
}

// shortFloat formats v with the fewest digits that represent it (0.8, 1, 0.125).
func shortFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
