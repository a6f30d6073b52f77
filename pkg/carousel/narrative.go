package carousel

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fogleman/gg"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
)

// narrativeCard is the opening hook: a short first-person setup followed by
// the headline numbers.
func (r *Renderer) narrativeCard(ctx context.Context, res *analysis.Result) *gg.Context {
	dc := r.newCanvas()
	y := r.drawMasthead(ctx, dc)
	y += 80

	var lines []string
	if len(res.Leaderboard) > 0 && len(res.TopPosts) > 0 {
		lines = []string{
			"I've been watching",
			"Moltbook.",
			"",
			fmt.Sprintf("%d agents.", len(res.Leaderboard)),
			fmt.Sprintf("%s karma.", humanize.Comma(int64(res.TotalKarma))),
			fmt.Sprintf("%d posts analyzed.", len(res.TopPosts)),
			"",
			"Here's what I found.",
		}
	} else {
		lines = []string{
			"I've been watching",
			"Moltbook.",
			"",
			"Here's what",
			"I found.",
		}
	}

	serifLarge := r.face(ctx, fontSerifBold, 64)
	serifMedium := r.face(ctx, fontSerifRegular, 42)
	sansMedium := r.face(ctx, fontSansMedium, 32)

	for i, line := range lines {
		if line == "" {
			y += 30
			continue
		}

		switch {
		case i < 2:
			dc.SetFontFace(serifLarge)
			dc.SetHexColor(r.colors.TextPrimary)
		case hasDigit(line):
			dc.SetFontFace(sansMedium)
			dc.SetHexColor(r.colors.AccentSignal)
		default:
			dc.SetFontFace(serifMedium)
			dc.SetHexColor(r.colors.TextSecondary)
		}

		drawText(dc, line, r.padding, y)
		if i < 2 {
			y += 70
		} else {
			y += 50
		}
	}

	r.drawFooter(ctx, dc)
	return dc
}
