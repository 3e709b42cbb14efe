package pigro

import (
	"github.com/shopspring/decimal"
)

// Resample buckets h by period p and keeps the last observation of each
// bucket, dated at the end of the bucket. Buckets without data are absent.
func Resample(h *History, p Period) *History {
	out := new(History)
	for on, v := range h.Values() {
		// values are chronological, so later points of a bucket overwrite earlier ones.
		out.Append(p.End(on), v)
	}
	return out
}

// Normalize rebases h so that its first value is 100.
//
// A series starting at 0 cannot be rebased, all its points become 0.
func Normalize(h *History) *History {
	out := new(History)
	_, base := h.First()
	for on, v := range h.Values() {
		if base == 0 {
			out.Append(on, 0)
			continue
		}
		out.Append(on, v/base*100)
	}
	return out
}

// Intersect returns the dates present in every history, in chronological order.
func Intersect(hs ...*History) []Date {
	if len(hs) == 0 {
		return nil
	}
	var dates []Date
	for on := range hs[0].Values() {
		common := true
		for _, h := range hs[1:] {
			if _, ok := h.Get(on); !ok {
				common = false
				break
			}
		}
		if common {
			dates = append(dates, on)
		}
	}
	return dates
}

// Restrict returns the points of h whose date is in dates.
func Restrict(h *History, dates []Date) *History {
	out := new(History)
	for _, on := range dates {
		if v, ok := h.Get(on); ok {
			out.Append(on, v)
		}
	}
	return out
}

// Weighted returns the weighted sum of histories over the dates they share.
// weights[i] applies to hs[i].
func Weighted(weights []float64, hs ...*History) *History {
	out := new(History)
	for _, on := range Intersect(hs...) {
		sum := decimal.Zero
		for i, h := range hs {
			v, _ := h.Get(on)
			sum = sum.Add(decimal.NewFromFloat(v).Mul(decimal.NewFromFloat(weights[i])))
		}
		out.Append(on, sum.InexactFloat64())
	}
	return out
}

// Round2 rounds v to 2 decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Rounded returns the values of h rounded to 2 decimal places, in chronological order.
func Rounded(h *History) []float64 {
	values := make([]float64, 0, h.Len())
	for _, v := range h.Values() {
		values = append(values, Round2(v))
	}
	return values
}

// Labels returns the period labels of the dates of h, in chronological order.
func Labels(h *History, p Period) []string {
	labels := make([]string, 0, h.Len())
	for on := range h.Values() {
		labels = append(labels, p.Label(on))
	}
	return labels
}
