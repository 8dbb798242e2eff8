// Package sheet runs a whole card sheet job: plan the grid, paginate the
// card refs, compose each page and hand the encoded pages back in order.
package sheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/youruser/cardsheet/internal/cards"
	imagepkg "github.com/youruser/cardsheet/internal/image"
	"github.com/youruser/cardsheet/internal/layout"
)

// ImageLoader resolves a card ref to a decoded image.
type ImageLoader interface {
	Load(ctx context.Context, ref cards.Ref) (image.Image, error)
}

// Request is one composition job.
type Request struct {
	Page       layout.PageSpec
	Card       layout.CardSpec
	Refs       []cards.Ref
	Background color.Color
	// MaxPages limits output pages; 0 means no limit. Cards past the
	// limit are dropped with a warning.
	MaxPages int
	// AllowFiles is passed to the default loader.
	AllowFiles bool
}

// Result holds encoded pages in page order.
type Result struct {
	Grid    layout.Grid
	Pages   [][]byte
	Cards   int
	Dropped int
	Elapsed time.Duration
}

// Runner composes pages with a bounded number of workers. It keeps no
// per-job state and may be shared.
type Runner struct {
	Workers int
	Logger  *log.Logger
	// Loader overrides the default imagepkg.Loader, mainly for tests.
	Loader ImageLoader
}

// NewRunner returns a Runner. A nil logger means log.Default().
func NewRunner(workers int, logger *log.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Workers: workers, Logger: logger}
}

// Plan validates the specs and derives the grid.
func (r *Runner) Plan(page layout.PageSpec, card layout.CardSpec) (layout.Grid, error) {
	g, err := layout.Plan(page, card)
	if err != nil {
		return layout.Grid{}, err
	}
	r.Logger.Debug("planned grid",
		"rows", g.Rows,
		"columns", g.Columns,
		"capacity", g.Capacity(),
		"card_px", fmt.Sprintf("%dx%d", g.CardWidthPx, g.CardHeightPx),
		"gap_px", g.GapPx,
		"page_px", fmt.Sprintf("%dx%d", g.PageWidthPx, g.PageHeightPx))
	return g, nil
}

// Paginate splits refs into per-page batches for g, filling in the grid
// shape on a degenerate layout error.
func Paginate(g layout.Grid, refs []cards.Ref) ([]layout.Batch[cards.Ref], error) {
	batches, err := layout.Paginate(refs, g.Capacity())
	if err != nil {
		var de *layout.DegenerateLayoutError
		if errors.As(err, &de) {
			de.Rows, de.Columns = g.Rows, g.Columns
		}
		return nil, err
	}
	return batches, nil
}

// Compose plans, paginates and composes every page. Pages are composed
// concurrently; each worker owns its batch's images and canvas.
func (r *Runner) Compose(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	g, err := r.Plan(req.Page, req.Card)
	if err != nil {
		return nil, err
	}
	batches, err := Paginate(g, req.Refs)
	if err != nil {
		return nil, err
	}

	res := &Result{Grid: g, Cards: len(req.Refs)}
	if req.MaxPages > 0 && len(batches) > req.MaxPages {
		kept := batches[:req.MaxPages]
		for _, b := range batches[req.MaxPages:] {
			res.Dropped += len(b.Items)
		}
		res.Cards -= res.Dropped
		r.Logger.Warn("page limit reached, dropping cards",
			"max_pages", req.MaxPages,
			"dropped", res.Dropped)
		batches = kept
	}

	loader := r.Loader
	if loader == nil {
		loader = imagepkg.Loader{
			AllowFiles: req.AllowFiles,
			QRWidth:    g.CardWidthPx,
			QRHeight:   g.CardHeightPx,
		}
	}

	res.Pages = make([][]byte, len(batches))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(r.Workers, 1))
	for _, b := range batches {
		b := b
		eg.Go(func() error {
			page, err := r.composeBatch(ctx, g, b, loader, req.Background)
			if err != nil {
				return fmt.Errorf("page %d: %w", b.Index+1, err)
			}
			res.Pages[b.Index] = page
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res.Elapsed = time.Since(start)
	r.Logger.Info("composed pages",
		"pages", len(res.Pages),
		"cards", res.Cards,
		"capacity", g.Capacity(),
		"duration", res.Elapsed.Round(time.Millisecond))
	return res, nil
}

func (r *Runner) composeBatch(ctx context.Context, g layout.Grid, b layout.Batch[cards.Ref], loader ImageLoader, bg color.Color) ([]byte, error) {
	imgs := make([]image.Image, len(b.Items))
	for i, ref := range b.Items {
		img, err := loader.Load(ctx, ref)
		if err != nil {
			return nil, err
		}
		imgs[i] = img
	}
	canvas, err := imagepkg.ComposePage(g, imgs, bg)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	r.Logger.Debug("composed page", "page", b.Index+1, "cards", len(b.Items), "bytes", buf.Len())
	return buf.Bytes(), nil
}
