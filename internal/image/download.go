package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardsheet/internal/cards"
	"github.com/youruser/cardsheet/internal/util"
)

var (
	ErrSourceUnavailable = errors.New("card source unavailable")
	ErrUnsupportedRef    = errors.New("unsupported card reference")
	ErrFileRefsDisabled  = errors.New("local file references are disabled")
)

// DownloadImage downloads an image from URL and decodes it.
func DownloadImage(ctx context.Context, url string) (image.Image, error) {
	body, err := util.GetBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
}

// Loader resolves card refs to decoded images.
type Loader struct {
	// AllowFiles permits KindFile refs. The HTTP API turns it off.
	AllowFiles bool
	// QRWidth and QRHeight size generated QR cards, normally the grid's
	// card pixel size.
	QRWidth, QRHeight int
}

func (l Loader) Load(ctx context.Context, ref cards.Ref) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		img image.Image
		err error
	)
	switch ref.Kind() {
	case cards.KindFile:
		if !l.AllowFiles {
			return nil, fmt.Errorf("%w: %s", ErrFileRefsDisabled, ref)
		}
		img, err = imaging.Open(string(ref), imaging.AutoOrientation(true))
	case cards.KindURL:
		img, err = DownloadImage(ctx, string(ref))
	case cards.KindQR:
		w, h := l.QRWidth, l.QRHeight
		if w <= 0 || h <= 0 {
			w, h = 400, 400
		}
		img, err = QRCard(ref.QRText(), w, h)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRef, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w: %w", ref, ErrSourceUnavailable, err)
	}
	return img, nil
}
