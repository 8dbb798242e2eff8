package imagepkg

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardsheet/internal/layout"
)

// Transparent is the default page background.
var Transparent = color.NRGBA{}

// ComposePage draws cards[i] into slot i of the grid on a fresh canvas of
// the grid's page size. Each card is resized to exactly the grid's card
// pixel size; aspect ratio is not otherwise preserved.
func ComposePage(g layout.Grid, cards []image.Image, bg color.Color) (*image.NRGBA, error) {
	if len(cards) > g.Capacity() {
		return nil, fmt.Errorf("compose page: %d cards for %d slots", len(cards), g.Capacity())
	}
	if bg == nil {
		bg = Transparent
	}
	canvas := imaging.New(g.PageWidthPx, g.PageHeightPx, bg)
	for i, c := range cards {
		if c == nil {
			return nil, fmt.Errorf("compose page: card %d is nil", i)
		}
		resized := c
		if b := c.Bounds(); b.Dx() != g.CardWidthPx || b.Dy() != g.CardHeightPx {
			resized = imaging.Resize(c, g.CardWidthPx, g.CardHeightPx, imaging.Lanczos)
		}
		canvas = imaging.Paste(canvas, resized, g.Slots[i])
	}
	return canvas, nil
}
