package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/youruser/cardsheet/internal/layout"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cardsheet.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	g, err := layout.Plan(cfg.PageSpec(), cfg.CardSpec())
	if err != nil || g.Capacity() == 0 {
		t.Errorf("default plan: %+v, %v", g, err)
	}
	if cfg.OutputPath() != filepath.Join("output", "cards.pdf") {
		t.Errorf("OutputPath = %s", cfg.OutputPath())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
card:
  width_mm: 63
  gap_mm: 2
output:
  format: png
  background: "#ffffff"
render:
  max_pages: 1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Card.WidthMM != 63 || cfg.Card.GapMM != 2 {
		t.Errorf("card = %+v", cfg.Card)
	}
	if cfg.Card.SourceWidthPx != 691 || cfg.Page.DPI != 300 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.OutputPath() != "output" {
		t.Errorf("png OutputPath = %s", cfg.OutputPath())
	}
	bg, err := cfg.Background()
	if err != nil || bg != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("Background = %v, %v", bg, err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("missing file err = %v", err)
	}
	path := writeConfig(t, "card:\n  widht_mm: 63\n")
	if _, err := Load(path); !errors.Is(err, ErrConfigParse) {
		t.Errorf("unknown key err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero dpi", func(c *Config) { c.Page.DPI = 0 }, layout.ErrInvalidConfiguration},
		{"zero card width", func(c *Config) { c.Card.WidthMM = 0 }, layout.ErrInvalidConfiguration},
		{"negative gap", func(c *Config) { c.Card.GapMM = -0.5 }, layout.ErrInvalidConfiguration},
		{"negative max pages", func(c *Config) { c.Render.MaxPages = -1 }, layout.ErrInvalidConfiguration},
		{"bad background", func(c *Config) { c.Output.Background = "#zzz" }, ErrBadBackground},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.target) {
				t.Errorf("Validate() = %v, want %v", err, tt.target)
			}
		})
	}

	cfg := Default()
	cfg.Output.Format = "gif"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "gif") {
		t.Errorf("bad format err = %v", err)
	}
}

func TestBackgroundTransparent(t *testing.T) {
	for _, s := range []string{"", "transparent", "None"} {
		cfg := Default()
		cfg.Output.Background = s
		bg, err := cfg.Background()
		if err != nil || bg != (color.NRGBA{}) {
			t.Errorf("Background(%q) = %v, %v", s, bg, err)
		}
	}
}

func TestWorkers(t *testing.T) {
	cfg := Default()
	if cfg.Workers() < 1 {
		t.Errorf("Workers = %d", cfg.Workers())
	}
	cfg.Render.Workers = 3
	if cfg.Workers() != 3 {
		t.Errorf("Workers = %d", cfg.Workers())
	}
}
