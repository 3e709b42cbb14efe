// Package market computes the dashboard payloads from the CSV price files of
// the portfolio assets.
package market

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/pigro"
	"github.com/etnz/pigro/csvseries"
)

var (
	// ErrUnknownAsset is returned for an asset missing from the configuration.
	ErrUnknownAsset = errors.New("invalid asset")
	// ErrNoCommonDates is returned when the portfolio assets share no date.
	ErrNoCommonDates = errors.New("insufficient data (no common dates)")
)

// Market serves series computed from the configured files.
//
// Files are read on every call, so edits are picked up without a restart.
type Market struct {
	cfg Config
}

// New returns a Market over cfg.
func New(cfg Config) *Market { return &Market{cfg: cfg} }

// Config returns the market configuration.
func (m *Market) Config() Config { return m.cfg }

// Assets returns the declared asset names, sorted.
func (m *Market) Assets() []string {
	names := make([]string, 0, len(m.cfg.Assets))
	for name := range m.cfg.Assets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// History reads the raw price series of an asset.
func (m *Market) History(asset string) (*pigro.History, error) {
	path, ok := m.cfg.path(asset)
	if !ok {
		return nil, fmt.Errorf("%w: %s. Use: %s", ErrUnknownAsset, asset, strings.Join(m.Assets(), ", "))
	}
	return csvseries.ReadFile(path)
}

// resampled reads an asset and resamples it.
func (m *Market) resampled(asset string, p pigro.Period) (*pigro.History, error) {
	h, err := m.History(asset)
	if err != nil {
		return nil, err
	}
	return pigro.Resample(h, p), nil
}

// Series returns one asset rebased to 100 at the given frequency.
//
// Unknown frequencies are served monthly, freq is echoed lower-cased.
func (m *Market) Series(asset, freq string) (pigro.SeriesResponse, error) {
	asset, freq = strings.ToLower(asset), strings.ToLower(freq)
	p := pigro.ParseFrequency(freq)

	h, err := m.resampled(asset, p)
	if err != nil {
		return pigro.SeriesResponse{}, err
	}
	idx := pigro.Normalize(h)
	base, _ := idx.First()
	return pigro.SeriesResponse{
		Asset:    asset,
		Freq:     freq,
		BaseDate: base.String(),
		Points:   idx.Len(),
		Labels:   pigro.Labels(idx, p),
		Values:   pigro.Rounded(idx),
	}, nil
}

// Combined returns the weighted portfolio and its three components, rebased
// to 100 on the first date they all share.
func (m *Market) Combined(freq string) (pigro.CombinedResponse, error) {
	freq = strings.ToLower(freq)
	p := pigro.ParseFrequency(freq)

	var assets []*pigro.History
	for _, name := range []string{"ls80", "gold", "btc"} {
		h, err := m.resampled(name, p)
		if err != nil {
			return pigro.CombinedResponse{}, err
		}
		assets = append(assets, h)
	}

	dates := pigro.Intersect(assets...)
	if len(dates) == 0 {
		return pigro.CombinedResponse{}, ErrNoCommonDates
	}
	for i, h := range assets {
		assets[i] = pigro.Normalize(pigro.Restrict(h, dates))
	}
	portfolio := pigro.Weighted(m.cfg.Weights.Slice(), assets...)

	return pigro.CombinedResponse{
		BaseDate:  dates[0].String(),
		Points:    len(dates),
		Freq:      freq,
		Weights:   m.cfg.Weights,
		Labels:    pigro.Labels(portfolio, p),
		Portfolio: pigro.Rounded(portfolio),
		LS80:      pigro.Rounded(assets[0]),
		Gold:      pigro.Rounded(assets[1]),
		BTC:       pigro.Rounded(assets[2]),
	}, nil
}
