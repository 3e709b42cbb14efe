package dashboard

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Chart is a rendered chart bound to a canvas.
type Chart interface {
	Config() ChartConfig
	Destroy() error
}

// ChartFactory draws charts on canvases.
type ChartFactory interface {
	New(canvasID string, config ChartConfig) (Chart, error)
}

// View is the state of a dashboard page: a status line, captions and the
// charts currently drawn. A View holds at most one live chart per canvas.
//
// A View is safe for concurrent use.
type View struct {
	factory ChartFactory

	mu     sync.Mutex
	status string
	notes  map[string]string
	charts map[string]Chart
}

// NewView returns an empty view drawing with f.
func NewView(f ChartFactory) *View {
	return &View{
		factory: f,
		notes:   make(map[string]string),
		charts:  make(map[string]Chart),
	}
}

// Replace destroys the chart on canvasID, if any, and draws config instead.
//
// If the new chart cannot be drawn the canvas is left empty.
func (v *View) Replace(canvasID string, config ChartConfig) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if old, ok := v.charts[canvasID]; ok {
		if err := old.Destroy(); err != nil {
			return fmt.Errorf("cannot destroy chart %q: %w", canvasID, err)
		}
		delete(v.charts, canvasID)
	}
	c, err := v.factory.New(canvasID, config)
	if err != nil {
		return fmt.Errorf("cannot draw chart %q: %w", canvasID, err)
	}
	v.charts[canvasID] = c
	return nil
}

// Chart returns the live chart on canvasID.
func (v *View) Chart(canvasID string) (Chart, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	c, ok := v.charts[canvasID]
	return c, ok
}

// Canvases returns the ids of the canvases holding a chart, sorted.
func (v *View) Canvases() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	ids := make([]string, 0, len(v.charts))
	for id := range v.charts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SetStatus sets the status line. An empty status hides it.
func (v *View) SetStatus(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = s
}

// Status returns the status line.
func (v *View) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// SetNote sets the caption of a chart. An empty note clears it.
func (v *View) SetNote(id, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if text == "" {
		delete(v.notes, id)
		return
	}
	v.notes[id] = text
}

// Note returns the caption of a chart, empty when there is none.
func (v *View) Note(id string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notes[id]
}

// Close destroys every chart of the view.
func (v *View) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	var errs error
	for id, c := range v.charts {
		if err := c.Destroy(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("cannot destroy chart %q: %w", id, err))
		}
		delete(v.charts, id)
	}
	return errs
}
