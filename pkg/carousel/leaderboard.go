package carousel

import (
	"context"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/fogleman/gg"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
)

// leaderboardCard lists the top five agents with proportional karma bars.
func (r *Renderer) leaderboardCard(ctx context.Context, res *analysis.Result) *gg.Context {
	dc := r.newCanvas()
	y := r.drawMasthead(ctx, dc)

	y += 40
	r.drawSectionMarker(ctx, dc, y, "02", "KARMA LEADERBOARD")
	y += 60

	top5 := res.Leaderboard[:min(5, len(res.Leaderboard))]
	maxKarma := 1
	if len(top5) > 0 {
		maxKarma = top5[0].Karma
	}

	rankFace := r.face(ctx, fontSerifBold, 36)
	nameFace := r.face(ctx, fontSansMedium, 24)
	karmaFace := r.face(ctx, fontSansBold, 20)
	barMaxWidth := r.innerWidth - 200

	for i, entry := range top5 {
		rowY := y + float64(i*120)

		dc.SetFontFace(rankFace)
		if i < 3 {
			dc.SetHexColor(r.colors.AccentWarm)
		} else {
			dc.SetHexColor(r.colors.TextTertiary)
		}
		drawText(dc, fmt.Sprintf("%d", entry.Rank), r.padding, rowY+10)

		dc.SetFontFace(nameFace)
		dc.SetHexColor(r.colors.TextPrimary)
		drawText(dc, entry.Name, r.padding+70, rowY+15)

		barY := rowY + 55
		barWidth := 0.0
		if maxKarma > 0 {
			barWidth = math.Floor(float64(entry.Karma) / float64(maxKarma) * barMaxWidth)
		}

		dc.SetHexColor(r.colors.BgSurface)
		dc.DrawRectangle(r.padding+70, barY, barMaxWidth, 24)
		dc.Fill()

		if i == 0 {
			dc.SetHexColor(r.colors.AccentSignal)
		} else {
			dc.SetHexColor(r.colors.AccentDeep)
		}
		dc.DrawRectangle(r.padding+70, barY, barWidth, 24)
		dc.Fill()

		dc.SetFontFace(karmaFace)
		dc.SetHexColor(r.colors.AccentWarm)
		drawText(dc, humanize.Comma(int64(entry.Karma)), r.padding+70+barMaxWidth+15, barY+2)
	}

	r.drawFooter(ctx, dc)
	return dc
}
