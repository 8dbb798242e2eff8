package layout

import "math"

// PageSpec is the physical page and the output resolution.
type PageSpec struct {
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
	DPI      float64 `json:"dpi"`
}

func (p PageSpec) WidthMM() float64  { return InchesToMM(p.WidthIn) }
func (p PageSpec) HeightMM() float64 { return InchesToMM(p.HeightIn) }

// WidthPx is the canvas width, rounded like the card resize targets.
func (p PageSpec) WidthPx() int  { return RoundPixels(InchesToPixels(p.WidthIn, p.DPI)) }
func (p PageSpec) HeightPx() int { return RoundPixels(InchesToPixels(p.HeightIn, p.DPI)) }

// WidthPt and HeightPt are the page size in PDF points.
func (p PageSpec) WidthPt() float64  { return p.WidthIn * PointsPerInch }
func (p PageSpec) HeightPt() float64 { return p.HeightIn * PointsPerInch }

// Validate rejects non-positive dimensions and resolution.
func (p PageSpec) Validate() error {
	if err := positive("page.dpi", p.DPI); err != nil {
		return err
	}
	if err := positive("page.width_in", p.WidthIn); err != nil {
		return err
	}
	return positive("page.height_in", p.HeightIn)
}

// CardSpec is the requested card size. Height is not settable: it follows
// from the width and the source image aspect ratio.
type CardSpec struct {
	WidthMM        float64 `json:"width_mm"`
	GapMM          float64 `json:"gap_mm"`
	SourceWidthPx  int     `json:"source_width_px"`
	SourceHeightPx int     `json:"source_height_px"`
}

// HeightMM is the aspect-preserving card height.
func (c CardSpec) HeightMM() float64 {
	return CardHeightMM(c.WidthMM, c.SourceWidthPx, c.SourceHeightPx)
}

// Validate rejects a non-positive width or source size and a negative gap.
func (c CardSpec) Validate() error {
	if err := positive("card.width_mm", c.WidthMM); err != nil {
		return err
	}
	if math.IsNaN(c.GapMM) || math.IsInf(c.GapMM, 0) {
		return &InvalidConfigurationError{Field: "card.gap_mm", Value: c.GapMM, Reason: "must be finite"}
	}
	if c.GapMM < 0 {
		return &InvalidConfigurationError{Field: "card.gap_mm", Value: c.GapMM, Reason: "must not be negative"}
	}
	if c.SourceWidthPx <= 0 {
		return &InvalidConfigurationError{Field: "card.source_width_px", Value: float64(c.SourceWidthPx), Reason: "must be positive"}
	}
	if c.SourceHeightPx <= 0 {
		return &InvalidConfigurationError{Field: "card.source_height_px", Value: float64(c.SourceHeightPx), Reason: "must be positive"}
	}
	return nil
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidConfigurationError{Field: field, Value: v, Reason: "must be finite"}
	}
	if v <= 0 {
		return &InvalidConfigurationError{Field: field, Value: v, Reason: "must be positive"}
	}
	return nil
}

// Plan validates both specs and derives the shared page Grid. A grid with
// zero capacity is returned without error; Paginate reports it.
func Plan(page PageSpec, card CardSpec) (Grid, error) {
	if err := page.Validate(); err != nil {
		return Grid{}, err
	}
	if err := card.Validate(); err != nil {
		return Grid{}, err
	}

	heightMM := card.HeightMM()
	g := Grid{
		Columns:      NumColumns(page.WidthMM(), card.WidthMM, card.GapMM),
		Rows:         NumRows(page.HeightMM(), heightMM, card.GapMM),
		CardWidthPx:  CardWidthPx(card.WidthMM, page.DPI),
		CardHeightPx: CardHeightPx(heightMM, page.DPI),
		GapPx:        GapPx(card.GapMM, page.DPI),
		PageWidthPx:  page.WidthPx(),
		PageHeightPx: page.HeightPx(),
		CardHeightMM: heightMM,
	}
	g.Slots = SlotCoordinates(g.Rows, g.Columns, g.CardWidthPx, g.CardHeightPx, g.GapPx)
	return g, nil
}
