package layout

import (
	"image"
	"math"
)

// NumColumns is the number of cards (each followed by a gap) that fit
// across the page. Card width must be positive.
func NumColumns(pageWidthMM, cardWidthMM, gapMM float64) int {
	return fitCount(pageWidthMM, cardWidthMM, gapMM)
}

// NumRows is the vertical counterpart of NumColumns.
func NumRows(pageHeightMM, cardHeightMM, gapMM float64) int {
	return fitCount(pageHeightMM, cardHeightMM, gapMM)
}

func fitCount(pageMM, cardMM, gapMM float64) int {
	n := math.Floor(pageMM / (cardMM + gapMM))
	if n < 0 {
		return 0
	}
	return int(n)
}

// SlotCoordinates returns the top-left corner of every grid cell in
// row-major order. Zero rows or columns yields an empty slice.
func SlotCoordinates(rows, columns, cardWidthPx, cardHeightPx, gapPx int) []image.Point {
	if rows <= 0 || columns <= 0 {
		return []image.Point{}
	}
	slots := make([]image.Point, 0, rows*columns)
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			slots = append(slots, image.Pt(
				c*(cardWidthPx+gapPx),
				r*(cardHeightPx+gapPx),
			))
		}
	}
	return slots
}

// Grid is the page geometry shared by every page of a run. It is derived
// from a PageSpec and CardSpec by Plan and never modified afterwards.
type Grid struct {
	Rows         int           `json:"rows"`
	Columns      int           `json:"columns"`
	CardWidthPx  int           `json:"card_width_px"`
	CardHeightPx int           `json:"card_height_px"`
	GapPx        int           `json:"gap_px"`
	PageWidthPx  int           `json:"page_width_px"`
	PageHeightPx int           `json:"page_height_px"`
	CardHeightMM float64       `json:"card_height_mm"`
	Slots        []image.Point `json:"slots"`
}

// Capacity is the number of cards one page holds.
func (g Grid) Capacity() int {
	return g.Rows * g.Columns
}

// Degenerate reports whether not a single card fits on the page.
func (g Grid) Degenerate() bool {
	return g.Capacity() == 0
}

// CardRect is the pixel rectangle a card occupies in slot i.
func (g Grid) CardRect(i int) image.Rectangle {
	p := g.Slots[i]
	return image.Rect(p.X, p.Y, p.X+g.CardWidthPx, p.Y+g.CardHeightPx)
}
