package pigro

import (
	"reflect"
	"slices"
	"testing"
)

// history builds a History from alternating ISO dates and values.
func history(points ...any) *History {
	h := new(History)
	for i := 0; i < len(points); i += 2 {
		on, err := ParseDate(points[i].(string))
		if err != nil {
			panic(err)
		}
		h.Append(on, points[i+1].(float64))
	}
	return h
}

func dates(h *History) []Date {
	var ds []Date
	for on := range h.Values() {
		ds = append(ds, on)
	}
	return ds
}

func TestResample(t *testing.T) {
	h := history(
		"2024-01-02", 10.0,
		"2024-01-31", 11.0,
		"2024-02-15", 12.0,
		"2024-04-01", 13.0,
	)

	tests := []struct {
		period Period
		dates  []Date
		values []float64
	}{
		{
			period: Monthly,
			// March has no data and is dropped.
			dates:  []Date{NewDate(2024, 1, 31), NewDate(2024, 2, 29), NewDate(2024, 4, 30)},
			values: []float64{11, 12, 13},
		},
		{
			period: Quarterly,
			dates:  []Date{NewDate(2024, 3, 31), NewDate(2024, 6, 30)},
			values: []float64{12, 13},
		},
		{
			period: Daily,
			dates:  dates(h),
			values: []float64{10, 11, 12, 13},
		},
	}
	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			got := Resample(h, tt.period)
			if !reflect.DeepEqual(dates(got), tt.dates) {
				t.Errorf("Resample(%v) dates = %v want %v", tt.period, dates(got), tt.dates)
			}
			values := slices.Collect(func(yield func(float64) bool) {
				for _, v := range got.Values() {
					if !yield(v) {
						return
					}
				}
			})
			if !reflect.DeepEqual(values, tt.values) {
				t.Errorf("Resample(%v) values = %v want %v", tt.period, values, tt.values)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	got := Rounded(Normalize(history("2024-01-01", 50.0, "2024-02-01", 75.0, "2024-03-01", 49.0)))
	want := []float64{100, 150, 98}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v want %v", got, want)
	}

	got = Rounded(Normalize(history("2024-01-01", 0.0, "2024-02-01", 75.0)))
	want = []float64{0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() with zero base = %v want %v", got, want)
	}

	if n := Normalize(new(History)); n.Len() != 0 {
		t.Errorf("Normalize(empty).Len() = %v want 0", n.Len())
	}
}

func TestIntersectAndWeighted(t *testing.T) {
	a := history("2024-01-01", 100.0, "2024-01-02", 110.0, "2024-01-03", 120.0)
	b := history("2024-01-02", 100.0, "2024-01-03", 90.0)
	c := history("2024-01-01", 100.0, "2024-01-03", 200.0)

	dates := Intersect(a, b, c)
	if want := []Date{NewDate(2024, 1, 3)}; !reflect.DeepEqual(dates, want) {
		t.Errorf("Intersect() = %v want %v", dates, want)
	}

	w := Weighted([]float64{0.8, 0.1, 0.1}, a, b, c)
	if v, ok := w.Get(NewDate(2024, 1, 3)); !ok || Round2(v) != 125 {
		t.Errorf("Weighted() on 2024-01-03 = %v, %v want 125, true", v, ok)
	}
	if w.Len() != 1 {
		t.Errorf("Weighted().Len() = %v want 1", w.Len())
	}

	r := Restrict(a, dates)
	if r.Len() != 1 {
		t.Errorf("Restrict().Len() = %v want 1", r.Len())
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{100, 100},
		{104.999, 105},
		{98.123, 98.12},
		{98.126, 98.13},
		{-1.005, -1.01},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v want %v", tt.in, got, tt.want)
		}
	}
}

func TestLabels(t *testing.T) {
	h := history("2024-01-31", 1.0, "2024-02-29", 2.0)
	if got, want := Labels(h, Monthly), []string{"2024-01", "2024-02"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v want %v", got, want)
	}
}
