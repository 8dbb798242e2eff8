// Package cli implements the cardsheet command-line interface.
//
// Commands:
//   - render: lay out card images and write a PDF or numbered PNG pages
//   - plan: print the grid and page count without touching any image
//   - serve: run the HTTP API
//   - qr: write a QR code PNG
//
// All commands read an optional YAML config (--config) and let flags
// override individual values.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/youruser/cardsheet/internal/config"
)

const appName = "cardsheet"

// Version is set at build time via ldflags.
var Version = "dev"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Lay out card images on printable pages",
		Long:         `cardsheet tiles uniformly sized card images onto fixed-size pages at a given DPI and writes a multi-page PDF or one PNG per page.`,
		Version:      Version,
		SilenceUsage: true,
	}

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.qrCommand())
	return root
}

// layoutFlags are shared by render, plan and serve.
type layoutFlags struct {
	config     string
	pageWidth  float64
	pageHeight float64
	dpi        float64
	cardWidth  float64
	gap        float64
	sourceW    int
	sourceH    int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fl.Float64Var(&f.pageWidth, "page-width", 0, "page width in inches")
	fl.Float64Var(&f.pageHeight, "page-height", 0, "page height in inches")
	fl.Float64Var(&f.dpi, "dpi", 0, "output resolution in dots per inch")
	fl.Float64VarP(&f.cardWidth, "card-width", "w", 0, "card width in millimeters")
	fl.Float64Var(&f.gap, "gap", 0, "gap between cards in millimeters")
	fl.IntVar(&f.sourceW, "source-width", 0, "reference card image width in pixels (aspect ratio)")
	fl.IntVar(&f.sourceH, "source-height", 0, "reference card image height in pixels (aspect ratio)")
}

// load reads the config file (or defaults) and applies explicitly set flags.
func (f *layoutFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return cfg, err
		}
	}
	fl := cmd.Flags()
	if fl.Changed("page-width") {
		cfg.Page.WidthIn = f.pageWidth
	}
	if fl.Changed("page-height") {
		cfg.Page.HeightIn = f.pageHeight
	}
	if fl.Changed("dpi") {
		cfg.Page.DPI = f.dpi
	}
	if fl.Changed("card-width") {
		cfg.Card.WidthMM = f.cardWidth
	}
	if fl.Changed("gap") {
		cfg.Card.GapMM = f.gap
	}
	if fl.Changed("source-width") {
		cfg.Card.SourceWidthPx = f.sourceW
	}
	if fl.Changed("source-height") {
		cfg.Card.SourceHeightPx = f.sourceH
	}
	return cfg, nil
}
