package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/youruser/cardsheet/internal/cards"
	"github.com/youruser/cardsheet/internal/config"
	"github.com/youruser/cardsheet/internal/layout"
	"github.com/youruser/cardsheet/internal/sheet"
)

func (c *CLI) planCommand() *cobra.Command {
	var (
		f           layoutFlags
		count       int
		asJSON      bool
		printConfig bool
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the card grid for a page and card size",
		Example: `  cardsheet plan --card-width 63 --count 20
  cardsheet plan -c cardsheet.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			if printConfig {
				b, err := config.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			runner := sheet.NewRunner(1, c.Logger)
			g, err := runner.Plan(cfg.PageSpec(), cfg.CardSpec())
			if err != nil {
				return err
			}
			pages := 0
			if count > 0 {
				batches, err := sheet.Paginate(g, make([]cards.Ref, count))
				if err != nil {
					return err
				}
				pages = len(batches)
			}
			if asJSON {
				return writePlanJSON(cmd.OutOrStdout(), g, count, pages)
			}
			writePlan(cmd.OutOrStdout(), cfg, g, count, pages)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of cards to paginate")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the grid as JSON")
	cmd.Flags().BoolVar(&printConfig, "print-config", false, "print the effective config as YAML and exit")
	return cmd
}

func writePlanJSON(w io.Writer, g layout.Grid, count, pages int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Grid     layout.Grid `json:"grid"`
		Capacity int         `json:"capacity"`
		Cards    int         `json:"cards,omitempty"`
		Pages    int         `json:"pages,omitempty"`
	}{g, g.Capacity(), count, pages})
}

func writePlan(w io.Writer, cfg config.Config, g layout.Grid, count, pages int) {
	fmt.Fprintf(w, "page:     %gin x %gin @ %g dpi (%d x %d px)\n",
		cfg.Page.WidthIn, cfg.Page.HeightIn, cfg.Page.DPI, g.PageWidthPx, g.PageHeightPx)
	fmt.Fprintf(w, "card:     %gmm x %.2fmm (%d x %d px), gap %gmm (%d px)\n",
		cfg.Card.WidthMM, g.CardHeightMM, g.CardWidthPx, g.CardHeightPx, cfg.Card.GapMM, g.GapPx)
	fmt.Fprintf(w, "grid:     %d columns x %d rows = %d cards per page\n", g.Columns, g.Rows, g.Capacity())
	if count > 0 {
		fmt.Fprintf(w, "pages:    %d for %d cards\n", pages, count)
	}
}
