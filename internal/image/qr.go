package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	return qrcode.Encode(text, qrcode.Medium, size)
}

// GenerateQRImage returns a size x size QR code image.
func GenerateQRImage(text string, size int) (image.Image, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return q.Image(size), nil
}

// QRCard renders text as a QR code centered on a white card of the given
// pixel size, so it survives the card resize without distortion.
func QRCard(text string, width, height int) (image.Image, error) {
	side := min(width, height) * 4 / 5
	if side < 1 {
		side = 1
	}
	q, err := GenerateQRImage(text, side)
	if err != nil {
		return nil, err
	}
	card := imaging.New(width, height, color.White)
	return imaging.PasteCenter(card, q), nil
}
