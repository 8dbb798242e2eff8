package imagepkg

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardsheet/internal/cards"
	"github.com/youruser/cardsheet/internal/layout"
)

func testGrid() layout.Grid {
	g := layout.Grid{Rows: 2, Columns: 2, CardWidthPx: 10, CardHeightPx: 15, GapPx: 2, PageWidthPx: 30, PageHeightPx: 40}
	g.Slots = layout.SlotCoordinates(g.Rows, g.Columns, g.CardWidthPx, g.CardHeightPx, g.GapPx)
	return g
}

func TestComposePage(t *testing.T) {
	g := testGrid()
	red := imaging.New(10, 15, color.NRGBA{R: 255, A: 255})
	blue := imaging.New(10, 15, color.NRGBA{B: 255, A: 255})
	big := imaging.New(50, 50, color.NRGBA{G: 255, A: 255})

	page, err := ComposePage(g, []image.Image{red, blue, big}, nil)
	if err != nil {
		t.Fatalf("ComposePage: %v", err)
	}
	if page.Bounds() != image.Rect(0, 0, 30, 40) {
		t.Fatalf("bounds = %v", page.Bounds())
	}

	tests := []struct {
		name string
		pt   image.Point
		want color.NRGBA
	}{
		{"slot 0", image.Pt(5, 7), color.NRGBA{R: 255, A: 255}},
		{"slot 1", image.Pt(12, 0), color.NRGBA{B: 255, A: 255}},
		{"slot 1 last pixel", image.Pt(21, 14), color.NRGBA{B: 255, A: 255}},
		{"gap column", image.Pt(10, 5), color.NRGBA{}},
		{"empty slot 3", image.Pt(15, 20), color.NRGBA{}},
	}
	for _, tt := range tests {
		if got := page.NRGBAAt(tt.pt.X, tt.pt.Y); got != tt.want {
			t.Errorf("%s at %v = %v, want %v", tt.name, tt.pt, got, tt.want)
		}
	}
	// slot 2 holds the resized 50x50 card; its footprint is exactly 10x15.
	if got := page.NRGBAAt(9, 31); got.G < 250 || got.A < 250 {
		t.Errorf("resized card corner = %v", got)
	}
	if got := page.NRGBAAt(10, 31); got != (color.NRGBA{}) {
		t.Errorf("pixel right of resized card = %v", got)
	}
}

func TestComposePageBackground(t *testing.T) {
	page, err := ComposePage(testGrid(), nil, color.White)
	if err != nil {
		t.Fatal(err)
	}
	if got := page.NRGBAAt(29, 39); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("background = %v", got)
	}
}

func TestComposePageTooManyCards(t *testing.T) {
	c := imaging.New(1, 1, color.Black)
	cs := []image.Image{c, c, c, c, c}
	if _, err := ComposePage(testGrid(), cs, nil); err == nil {
		t.Error("expected error for more cards than slots")
	}
}

func TestQRCard(t *testing.T) {
	img, err := QRCard("deck:example", 200, 300)
	if err != nil {
		t.Fatalf("QRCard: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 300 {
		t.Errorf("bounds = %v", b)
	}
	png, err := GenerateQRPNG("deck:example", 128)
	if err != nil || len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Errorf("GenerateQRPNG: %v", err)
	}
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.png")
	if err := imaging.Save(imaging.New(7, 9, color.Black), path); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	l := Loader{AllowFiles: true, QRWidth: 40, QRHeight: 60}
	img, err := l.Load(ctx, cards.Ref(path))
	if err != nil || img.Bounds().Dx() != 7 {
		t.Fatalf("file load: %v", err)
	}
	img, err = l.Load(ctx, "qr:hello")
	if err != nil || img.Bounds().Dy() != 60 {
		t.Fatalf("qr load: %v", err)
	}
	if _, err := l.Load(ctx, cards.Ref(filepath.Join(dir, "missing.png"))); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("missing file err = %v", err)
	}

	l.AllowFiles = false
	if _, err := l.Load(ctx, cards.Ref(path)); !errors.Is(err, ErrFileRefsDisabled) {
		t.Errorf("disabled files err = %v", err)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := l.Load(cctx, "qr:x"); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled ctx err = %v", err)
	}
}
