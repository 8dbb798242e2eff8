package cards

import "strings"

// Kind tells a loader how to resolve a Ref.
type Kind int

const (
	KindFile Kind = iota
	KindURL
	KindQR
)

// qrPrefix marks a ref whose card is a generated QR code of the rest.
const qrPrefix = "qr:"

// Ref identifies one source card image: a local path, an http(s) URL,
// or "qr:<text>".
type Ref string

func (r Ref) Kind() Kind {
	s := string(r)
	switch {
	case strings.HasPrefix(s, qrPrefix):
		return KindQR
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return KindURL
	default:
		return KindFile
	}
}

// QRText is the encoded text of a KindQR ref.
func (r Ref) QRText() string {
	return strings.TrimPrefix(string(r), qrPrefix)
}

func (r Ref) String() string { return string(r) }

// Refs converts plain strings.
func Refs(ss ...string) []Ref {
	out := make([]Ref, 0, len(ss))
	for _, s := range ss {
		out = append(out, Ref(s))
	}
	return out
}
