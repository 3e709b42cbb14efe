package cmd

import (
	"github.com/etnz/pigro"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of pgr.
//
// Install it with `complete -C pgr pgr` in bash.
func Completion() *complete.Command {
	var periods predict.Set
	for _, p := range pigro.Periods {
		periods = append(periods, p.String())
	}
	formats := predict.Set{"png", "svg"}
	charts := map[string]complete.Predictor{
		"o":      predict.Dirs("*"),
		"format": formats,
		"width":  predict.Something,
		"height": predict.Something,
	}
	with := func(flags map[string]complete.Predictor, extra map[string]complete.Predictor) map[string]complete.Predictor {
		out := make(map[string]complete.Predictor, len(flags)+len(extra))
		for k, v := range flags {
			out[k] = v
		}
		for k, v := range extra {
			out[k] = v
		}
		return out
	}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"url":    predict.Something,
			"config": predict.Files("*.yaml"),
		},
		Sub: map[string]*complete.Command{
			"serve": {Flags: map[string]complete.Predictor{
				"addr": predict.Something,
				"env":  predict.Files("*"),
			}},
			"series": {Flags: map[string]complete.Predictor{
				"asset":    predict.Set{"ls80", "gold", "btc"},
				"freq":     periods,
				"combined": predict.Nothing,
			}},
			"data": {Flags: charts},
			"combined": {Flags: with(charts, map[string]complete.Predictor{
				"freq":    periods,
				"watch":   predict.Nothing,
				"ordered": predict.Nothing,
			})},
			"points": {Flags: map[string]complete.Predictor{
				"freq":     periods,
				"invest":   predict.Something,
				"currency": predict.Set{"EUR", "USD", "CHF", "GBP"},
			}},
			"topic": {Args: predict.Set{"readme", "api", "csv", "*"}},
		},
	}
}
