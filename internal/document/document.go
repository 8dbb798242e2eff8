// Package document serializes composed pages, already PNG encoded and in
// page order, into the final output: one multi-page PDF or a directory of
// numbered PNG files.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/youruser/cardsheet/internal/layout"
	"github.com/youruser/cardsheet/internal/util"
)

// Output formats.
const (
	FormatPDF = "pdf"
	FormatPNG = "png"
)

var (
	ErrNoPages       = errors.New("no pages to write")
	ErrUnknownFormat = errors.New("unknown output format")
)

// ParseFormat normalizes a format name.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatPDF, FormatPNG:
		return f, nil
	case "":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// WritePDF writes one PDF page per PNG. Every page has the physical page
// size in points; the image is centered and scaled to fit, which for a
// canvas of page.WidthPx x page.HeightPx fills the page at page.DPI.
func WritePDF(w io.Writer, pages [][]byte, page layout.PageSpec) error {
	if len(pages) == 0 {
		return ErrNoPages
	}
	imp := pdfcpu.DefaultImportConfig()
	imp.PageDim = &types.Dim{Width: page.WidthPt(), Height: page.HeightPt()}
	imp.UserDim = true
	imp.Pos = types.Center
	imp.Scale = 1
	imp.DPI = int(page.DPI)
	imp.InpUnit = types.POINTS

	readers := make([]io.Reader, len(pages))
	for i, p := range pages {
		readers[i] = bytes.NewReader(p)
	}
	conf := model.NewDefaultConfiguration()
	if err := pdfapi.ImportImages(nil, w, readers, imp, conf); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WritePDFFile is WritePDF to a file path, creating parent directories.
func WritePDFFile(path string, pages [][]byte, page layout.PageSpec) error {
	if len(pages) == 0 {
		return ErrNoPages
	}
	f, err := util.CreateFile(path)
	if err != nil {
		return err
	}
	if err := WritePDF(f, pages, page); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// PageFileName is the name of page n (zero based): p01.png, p02.png, ...
func PageFileName(n int) string {
	return fmt.Sprintf("p%02d.png", n+1)
}

// WritePNGs writes each page to dir as PageFileName(i) and returns the
// written paths in page order.
func WritePNGs(dir string, pages [][]byte) ([]string, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	if err := util.EnsureDir(dir); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(pages))
	for i, p := range pages {
		path := filepath.Join(dir, PageFileName(i))
		if err := os.WriteFile(path, p, 0o644); err != nil {
			return paths, fmt.Errorf("write page %d: %w", i+1, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
