// Package config loads run configuration from YAML and converts it into
// the immutable page and card specs the layout package plans with.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/youruser/cardsheet/internal/document"
	"github.com/youruser/cardsheet/internal/layout"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrBadBackground  = errors.New("invalid background color")
)

// MaxFileSize bounds the config file read.
const MaxFileSize = 1 << 20

// Config holds everything needed for one run.
type Config struct {
	Page   PageConfig   `yaml:"page" json:"page"`
	Card   CardConfig   `yaml:"card" json:"card"`
	Output OutputConfig `yaml:"output" json:"output"`
	Render RenderConfig `yaml:"render" json:"render"`
}

type PageConfig struct {
	WidthIn  float64 `yaml:"width_in" json:"width_in"`
	HeightIn float64 `yaml:"height_in" json:"height_in"`
	DPI      float64 `yaml:"dpi" json:"dpi"`
}

type CardConfig struct {
	WidthMM        float64 `yaml:"width_mm" json:"width_mm"`
	GapMM          float64 `yaml:"gap_mm" json:"gap_mm"`
	SourceWidthPx  int     `yaml:"source_width_px" json:"source_width_px"`
	SourceHeightPx int     `yaml:"source_height_px" json:"source_height_px"`
}

type OutputConfig struct {
	Dir        string `yaml:"dir" json:"dir"`
	Format     string `yaml:"format" json:"format"` // "pdf" or "png"
	Name       string `yaml:"name" json:"name"`     // PDF file name inside Dir
	Background string `yaml:"background" json:"background"`
}

type RenderConfig struct {
	Workers  int `yaml:"workers" json:"workers"`     // <= 0: GOMAXPROCS
	MaxPages int `yaml:"max_pages" json:"max_pages"` // 0: unlimited
}

// Default returns 50mm cards cut from
// 691x1050 scans, no gap, US Letter landscape at 300 DPI.
func Default() Config {
	return Config{
		Page: PageConfig{WidthIn: 11, HeightIn: 8.5, DPI: 300},
		Card: CardConfig{WidthMM: 50, GapMM: 0, SourceWidthPx: 691, SourceHeightPx: 1050},
		Output: OutputConfig{
			Dir:    "output",
			Format: document.FormatPDF,
			Name:   "cards.pdf",
		},
	}
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > MaxFileSize {
		return cfg, fmt.Errorf("%w: %s exceeds %d bytes", ErrConfigParse, path, MaxFileSize)
	}
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML, e.g. for "plan --print-config".
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func (c Config) PageSpec() layout.PageSpec {
	return layout.PageSpec{WidthIn: c.Page.WidthIn, HeightIn: c.Page.HeightIn, DPI: c.Page.DPI}
}

func (c Config) CardSpec() layout.CardSpec {
	return layout.CardSpec{
		WidthMM:        c.Card.WidthMM,
		GapMM:          c.Card.GapMM,
		SourceWidthPx:  c.Card.SourceWidthPx,
		SourceHeightPx: c.Card.SourceHeightPx,
	}
}

// Validate checks everything that can be checked before layout.
func (c Config) Validate() error {
	if err := c.PageSpec().Validate(); err != nil {
		return err
	}
	if err := c.CardSpec().Validate(); err != nil {
		return err
	}
	if _, err := document.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if c.Render.MaxPages < 0 {
		return &layout.InvalidConfigurationError{Field: "render.max_pages", Value: float64(c.Render.MaxPages), Reason: "must not be negative"}
	}
	_, err := c.Background()
	return err
}

// Background parses Output.Background. Empty means transparent.
func (c Config) Background() (color.Color, error) {
	s := strings.TrimSpace(c.Output.Background)
	switch strings.ToLower(s) {
	case "", "transparent", "none":
		return color.NRGBA{}, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	col, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadBackground, c.Output.Background)
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Workers resolves the worker count.
func (c Config) Workers() int {
	if c.Render.Workers > 0 {
		return c.Render.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// OutputPath is the PDF path, or the PNG page directory.
func (c Config) OutputPath() string {
	f, _ := document.ParseFormat(c.Output.Format)
	if f == document.FormatPNG {
		return c.Output.Dir
	}
	name := c.Output.Name
	if name == "" {
		name = "cards.pdf"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Output.Dir, name)
}
