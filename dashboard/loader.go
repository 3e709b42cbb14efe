package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// Canvas and caption ids.
const (
	SingleCanvas    = "chart"
	AggregateCanvas = "aggregate"
	BreakdownCanvas = "breakdown"
)

// Status messages.
const (
	LoadingMessage       = "Caricamento…"
	SingleErrorMessage   = "Errore nel caricamento dei dati."
	CombinedErrorMessage = "Errore nel caricamento dei dati combinati. Controlla la console (DevTools) per i dettagli."
)

// ErrStale is returned by an ordered CombinedLoader when a response arrives
// after the response of a more recent load has been applied.
var ErrStale = errors.New("stale response discarded")

// SingleLoader draws the single series of /api/data.
type SingleLoader struct {
	Client *Client
	View   *View
	Log    *log.Logger // nil means log.Default()
}

// Load fetches the series and draws it on SingleCanvas.
//
// On failure the status shows SingleErrorMessage and the charts are left
// untouched. The error is logged and returned.
func (l *SingleLoader) Load(ctx context.Context) error {
	err := l.load(ctx)
	if err != nil {
		l.View.SetStatus(SingleErrorMessage)
		logger(l.Log).Printf("single chart: %v", err)
	}
	return err
}

func (l *SingleLoader) load(ctx context.Context) error {
	resp, err := l.Client.Data(ctx)
	if err != nil {
		return err
	}
	l.View.SetStatus("")
	return l.View.Replace(SingleCanvas, SingleChart(resp))
}

// CombinedLoader draws the weighted portfolio of /api/combined and its breakdown.
//
// Loads may overlap. By default the last response to arrive is the one on
// screen, whatever the order the loads were started in. When Ordered is
// set, a response is applied only if no more recent load has been applied.
type CombinedLoader struct {
	Client  *Client
	View    *View
	Log     *log.Logger // nil means log.Default()
	Ordered bool

	seq     atomic.Uint64 // last load started
	mu      sync.Mutex
	applied uint64 // last load applied, guarded by mu
}

// Load fetches the portfolio series at freq and redraws both charts.
func (l *CombinedLoader) Load(ctx context.Context, freq string) error {
	n := l.seq.Add(1)
	l.View.SetStatus(LoadingMessage)
	l.View.SetNote(AggregateCanvas, "")
	l.View.SetNote(BreakdownCanvas, "")

	err := l.load(ctx, n, freq)
	switch {
	case errors.Is(err, ErrStale):
		logger(l.Log).Printf("combined chart %q: %v", freq, err)
	case err != nil:
		l.View.SetStatus(CombinedErrorMessage)
		logger(l.Log).Printf("combined chart %q: %v", freq, err)
	}
	return err
}

func (l *CombinedLoader) load(ctx context.Context, n uint64, freq string) error {
	resp, err := l.Client.Combined(ctx, freq)

	// responses are applied one at a time.
	l.mu.Lock()
	defer l.mu.Unlock()
	stale := l.Ordered && n < l.applied
	switch {
	case err != nil && stale:
		return fmt.Errorf("%w: %w", ErrStale, err)
	case err != nil:
		return err
	case stale:
		return ErrStale
	}
	l.applied = n

	aggregate, breakdown := resp.Annotations()
	l.View.SetStatus("")
	l.View.SetNote(AggregateCanvas, aggregate)
	l.View.SetNote(BreakdownCanvas, breakdown)
	if err := l.View.Replace(AggregateCanvas, AggregateChart(resp)); err != nil {
		return err
	}
	return l.View.Replace(BreakdownCanvas, BreakdownChart(resp))
}

// Watch loads initial, then starts a new load for every frequency received
// on changes, without waiting for the previous ones. It returns when changes
// is closed or ctx is done and all the loads it started are over.
func (l *CombinedLoader) Watch(ctx context.Context, initial string, changes <-chan string) {
	var wg sync.WaitGroup
	start := func(freq string) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Load(ctx, freq)
		}()
	}
	start(initial)
	defer wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return
		case freq, ok := <-changes:
			if !ok {
				return
			}
			start(freq)
		}
	}
}

func logger(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
