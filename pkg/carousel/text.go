package carousel

import (
	"strings"

	"github.com/fogleman/gg"
)

// drawText draws s with its top-left corner at (x, y). Layouts in this
// package are specified from the top-left, while gg positions strings by
// baseline; the anchored form bridges the two.
func drawText(dc *gg.Context, s string, x, y float64) {
	dc.DrawStringAnchored(s, x, y, 0, 1)
}

// drawTextRight draws s with its top-right corner at (x, y).
func drawTextRight(dc *gg.Context, s string, x, y float64) {
	dc.DrawStringAnchored(s, x, y, 1, 1)
}

// drawTextCenteredX draws s horizontally centered on x with its top at y.
func drawTextCenteredX(dc *gg.Context, s string, x, y float64) {
	dc.DrawStringAnchored(s, x, y, 0.5, 1)
}

// wrapWords greedily wraps s into lines no wider than maxWidth using the
// context's current font face. A single word wider than maxWidth gets its
// own line rather than being split.
func wrapWords(dc *gg.Context, s string, maxWidth float64) []string {
	var lines []string
	var current string

	for _, word := range strings.Fields(s) {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if w, _ := dc.MeasureString(test); w <= maxWidth {
			current = test
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// truncateRunes shortens s to at most n characters without splitting a
// multi-byte rune.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// hasDigit reports whether s contains any decimal digit.
func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
