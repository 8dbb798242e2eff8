package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/youruser/cardsheet/internal/cards"
	"github.com/youruser/cardsheet/internal/config"
	"github.com/youruser/cardsheet/internal/deck"
	"github.com/youruser/cardsheet/internal/document"
	"github.com/youruser/cardsheet/internal/sheet"
)

var errNoCards = errors.New("no card images found")

type renderFlags struct {
	layoutFlags
	deck       string
	manifest   string
	pattern    string
	include    []string
	exclude    []string
	out        string
	format     string
	background string
	workers    int
	maxPages   int
}

func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render [sources...]",
		Short: "Lay out card images and write the printable document",
		Long: `Render tiles every card image onto pages and writes them out.

Sources may be directories (every image inside, sorted by name), image
files, http(s) URLs, or qr:<text> for a generated QR card. --deck and
--manifest add cards from a deck list or a CSV manifest.`,
		Example: `  cardsheet render Cards/Regular
  cardsheet render --deck deck.txt --card-width 63 --gap 2
  cardsheet render cards/ --format png --out output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			return c.runRender(cmd, cfg, f, args)
		},
	}
	f.register(cmd)
	fl := cmd.Flags()
	fl.StringVarP(&f.deck, "deck", "d", "", "deck list file (\"4x card.png\" lines)")
	fl.StringVarP(&f.manifest, "manifest", "m", "", "CSV manifest with image and count columns")
	fl.StringVar(&f.pattern, "pattern", cards.DefaultPattern, "file pattern for directory sources")
	fl.StringSliceVar(&f.include, "include", nil, "keep only cards whose file name matches")
	fl.StringSliceVar(&f.exclude, "exclude", nil, "drop cards whose file name matches")
	fl.StringVarP(&f.out, "out", "o", "", "output PDF path, or page directory for png")
	fl.StringVarP(&f.format, "format", "f", "", "output format: pdf or png")
	fl.StringVar(&f.background, "background", "", "page background hex color (default transparent)")
	fl.IntVarP(&f.workers, "workers", "j", 0, "pages composed in parallel (default GOMAXPROCS)")
	fl.IntVar(&f.maxPages, "max-pages", 0, "stop after this many pages (0 = all)")
	return cmd
}

func (f *renderFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("format") {
		cfg.Output.Format = f.format
	}
	if fl.Changed("background") {
		cfg.Output.Background = f.background
	}
	if fl.Changed("workers") {
		cfg.Render.Workers = f.workers
	}
	if fl.Changed("max-pages") {
		cfg.Render.MaxPages = f.maxPages
	}
	if fl.Changed("out") {
		format, _ := document.ParseFormat(cfg.Output.Format)
		if format == document.FormatPNG {
			cfg.Output.Dir = f.out
		} else {
			cfg.Output.Dir, cfg.Output.Name = "", f.out
		}
	}
}

// collectRefs gathers cards from positional sources, the deck list and the
// manifest, in that order.
func (f *renderFlags) collectRefs(args []string) ([]cards.Ref, error) {
	var refs []cards.Ref
	for _, a := range args {
		ref := cards.Ref(a)
		if ref.Kind() != cards.KindFile {
			refs = append(refs, ref)
			continue
		}
		info, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			refs = append(refs, ref)
			continue
		}
		found, err := cards.LoadDir(a, f.pattern)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", a, err)
		}
		refs = append(refs, found...)
	}
	if f.deck != "" {
		d, err := deck.Load(f.deck)
		if err != nil {
			return nil, err
		}
		refs = append(refs, d.Refs()...)
	}
	if f.manifest != "" {
		m, err := cards.LoadManifest(f.manifest)
		if err != nil {
			return nil, err
		}
		refs = append(refs, m...)
	}
	return cards.Filter(refs, cards.FilterOptions{Include: f.include, Exclude: f.exclude}), nil
}

func (c *CLI) runRender(cmd *cobra.Command, cfg config.Config, f renderFlags, args []string) error {
	f.apply(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	bg, err := cfg.Background()
	if err != nil {
		return err
	}
	refs, err := f.collectRefs(args)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return errNoCards
	}

	prog := newProgress(c.Logger)
	runner := sheet.NewRunner(cfg.Workers(), c.Logger)
	res, err := runner.Compose(cmd.Context(), sheet.Request{
		Page:       cfg.PageSpec(),
		Card:       cfg.CardSpec(),
		Refs:       refs,
		Background: bg,
		MaxPages:   cfg.Render.MaxPages,
		AllowFiles: true,
	})
	if err != nil {
		return err
	}

	format, _ := document.ParseFormat(cfg.Output.Format)
	out := cfg.OutputPath()
	switch format {
	case document.FormatPNG:
		if _, err := document.WritePNGs(out, res.Pages); err != nil {
			return err
		}
	default:
		if err := document.WritePDFFile(out, res.Pages, cfg.PageSpec()); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Wrote %d pages", len(res.Pages)), "cards", res.Cards, "out", out)
	return nil
}
