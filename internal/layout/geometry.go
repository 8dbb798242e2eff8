package layout

// CardHeightMM derives a card height that keeps the source aspect ratio.
// The source dimensions must be positive.
func CardHeightMM(cardWidthMM float64, sourceWidthPx, sourceHeightPx int) float64 {
	return cardWidthMM * (float64(sourceHeightPx) / float64(sourceWidthPx))
}

// CardWidthPx is the resize target width, rounded half away from zero.
func CardWidthPx(cardWidthMM, dpi float64) int {
	return RoundPixels(MMToPixels(cardWidthMM, dpi))
}

// CardHeightPx rounds the height on its own rather than scaling the
// rounded width, so each axis stays within half a pixel of exact.
func CardHeightPx(cardHeightMM, dpi float64) int {
	return RoundPixels(MMToPixels(cardHeightMM, dpi))
}

// GapPx truncates the gap to whole pixels.
func GapPx(gapMM, dpi float64) int {
	return TruncPixels(MMToPixels(gapMM, dpi))
}
