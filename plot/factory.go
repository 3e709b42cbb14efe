package plot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/pigro/dashboard"
)

// Factory draws each canvas in an image file named after the canvas id.
type Factory struct {
	Dir           string
	Format        Format // PNG if empty
	Width, Height int
}

// Canvas is a chart drawn in a file.
type Canvas struct {
	path   string
	config dashboard.ChartConfig
}

// Path returns the image file.
func (c *Canvas) Path() string { return c.path }

func (c *Canvas) Config() dashboard.ChartConfig { return c.config }

// Destroy removes the image file.
func (c *Canvas) Destroy() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// New renders config in <Dir>/<canvasID>.<format>.
func (f Factory) New(canvasID string, config dashboard.ChartConfig) (dashboard.Chart, error) {
	format := f.Format
	if format == "" {
		format = PNG
	}
	width, height := f.Width, f.Height
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 400
	}
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return nil, err
	}

	path := filepath.Join(f.Dir, canvasID+"."+string(format))
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	err = Render(file, config, format, width, height)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("canvas %s: %w", canvasID, err)
	}
	return &Canvas{path: path, config: config}, nil
}
