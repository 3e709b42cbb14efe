package pigro

import (
	"encoding/json"
	"errors"
	"testing"
)

const combinedPayload = `{
	"base_date": "2020-01-01", "points": 2, "freq": "daily",
	"weights": {"ls80": 0.8, "gold": 0.1, "btc": 0.1},
	"labels": ["D1", "D2"],
	"portfolio": [100, 101], "ls80": [100, 102], "gold": [100, 99], "btc": [100, 110]
}`

func TestCombinedResponseAnnotations(t *testing.T) {
	var r CombinedResponse
	if err := json.Unmarshal([]byte(combinedPayload), &r); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error = %v", err)
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}

	aggregate, breakdown := r.Annotations()
	if want := "Base (100) dal: 2020-01-01 | punti: 2 | pesi: LS80 0.8, Gold 0.1, BTC 0.1 | freq: daily"; aggregate != want {
		t.Errorf("Annotations() aggregate = %q want %q", aggregate, want)
	}
	if want := "Base (100) dal: 2020-01-01 | punti: 2"; breakdown != want {
		t.Errorf("Annotations() breakdown = %q want %q", breakdown, want)
	}
}

func TestCombinedResponseValidate(t *testing.T) {
	r := CombinedResponse{
		Points:    5, // informational, not checked
		Labels:    []string{"a", "b"},
		Portfolio: []float64{1, 2},
		LS80:      []float64{1},
		Gold:      []float64{1, 2},
		BTC:       []float64{1, 2, 3},
	}
	err := r.Validate()
	if !errors.Is(err, ErrShape) {
		t.Fatalf("Validate() = %v want ErrShape", err)
	}
}

func TestSeriesResponseValidate(t *testing.T) {
	ok := SeriesResponse{Labels: []string{"Jan", "Feb", "Mar"}, Values: []float64{100, 105, 98}}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}
	bad := SeriesResponse{Labels: []string{"Jan", "Feb"}, Values: []float64{100}}
	if err := bad.Validate(); !errors.Is(err, ErrShape) {
		t.Errorf("Validate() = %v want ErrShape", err)
	}
}
