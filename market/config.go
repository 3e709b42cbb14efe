package market

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/pigro"
	"gopkg.in/yaml.v3"
)

// Config describes where the price files are and how the portfolio is allocated.
type Config struct {
	DataDir      string            `yaml:"data_dir"`
	Assets       map[string]string `yaml:"assets"` // asset name -> CSV file, relative to DataDir
	Weights      pigro.Weights     `yaml:"weights"`
	DefaultAsset string            `yaml:"default_asset"`
	DefaultFreq  string            `yaml:"default_freq"`
}

// DefaultConfig returns the lazy portfolio: 80% LS80, 10% gold, 10% bitcoin.
func DefaultConfig() Config {
	return Config{
		DataDir: "data",
		Assets: map[string]string{
			"ls80": "ls80.csv",
			"gold": "gold.csv",
			"btc":  "btc.csv",
		},
		Weights:      pigro.Weights{LS80: 0.80, Gold: 0.10, BTC: 0.10},
		DefaultAsset: "ls80",
		DefaultFreq:  "monthly",
	}
}

// LoadConfig reads a YAML configuration file. Missing keys keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that the portfolio assets are declared and the weights are usable.
func (c Config) Validate() error {
	var errs error
	for _, name := range []string{"ls80", "gold", "btc"} {
		if c.Assets[name] == "" {
			errs = errors.Join(errs, fmt.Errorf("asset %q has no file", name))
		}
	}
	for _, w := range c.Weights.Slice() {
		if w < 0 {
			errs = errors.Join(errs, fmt.Errorf("negative weight %v", w))
		}
	}
	if _, ok := c.Assets[c.DefaultAsset]; !ok {
		errs = errors.Join(errs, fmt.Errorf("default asset %q is not declared", c.DefaultAsset))
	}
	return errs
}

// path returns the CSV file of an asset.
func (c Config) path(asset string) (string, bool) {
	file, ok := c.Assets[asset]
	if !ok {
		return "", false
	}
	if filepath.IsAbs(file) {
		return file, true
	}
	return filepath.Join(c.DataDir, file), true
}
