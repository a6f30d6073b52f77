package carousel

import (
	"context"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/fogleman/gg"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
)

// powerMapCard ranks the top three agents with oversized rank numerals and
// karma bars, plus a data-driven insight line near the footer.
func (r *Renderer) powerMapCard(ctx context.Context, res *analysis.Result) *gg.Context {
	dc := r.newCanvas()
	y := r.drawMasthead(ctx, dc)

	y += 40
	r.drawSectionMarker(ctx, dc, y, "02", "POWER DYNAMICS")
	y += 60

	dc.SetFontFace(r.face(ctx, fontSerifBold, 32))
	dc.SetHexColor(r.colors.TextPrimary)
	drawText(dc, "Who actually runs Moltbook?", r.padding, y)
	y += 70

	if len(res.Leaderboard) > 0 {
		top3 := res.Leaderboard[:min(3, len(res.Leaderboard))]
		maxKarma := top3[0].Karma

		nameFace := r.face(ctx, fontSansBold, 28)
		karmaFace := r.face(ctx, fontSansMedium, 18)
		rankFace := r.face(ctx, fontSerifBold, 72)

		for i, entry := range top3 {
			rowY := y + float64(i*160)

			dc.SetFontFace(rankFace)
			if i == 0 {
				dc.SetHexColor(r.colors.AccentWarm)
			} else {
				dc.SetHexColor(r.colors.TextTertiary)
			}
			drawText(dc, fmt.Sprintf("%d", entry.Rank), r.padding, rowY)

			dc.SetFontFace(nameFace)
			dc.SetHexColor(r.colors.TextPrimary)
			drawText(dc, entry.Name, r.padding+100, rowY+10)

			barY := rowY + 50
			barWidth := 0.0
			if maxKarma > 0 {
				barWidth = math.Floor(float64(entry.Karma) / float64(maxKarma) * (r.innerWidth - 120))
			}
			if i == 0 {
				dc.SetHexColor(r.colors.AccentSignal)
			} else {
				dc.SetHexColor(r.colors.AccentDeep)
			}
			dc.DrawRectangle(r.padding+100, barY, barWidth, 35)
			dc.Fill()

			dc.SetFontFace(karmaFace)
			dc.SetHexColor(r.colors.TextInverted)
			drawText(dc, humanize.Comma(int64(entry.Karma))+" karma", r.padding+115, barY+8)
		}
	}

	if insight := powerInsight(res); insight != "" {
		dc.SetFontFace(r.face(ctx, fontSansRegular, 18))
		dc.SetHexColor(r.colors.AccentSignal)
		drawText(dc, insight, r.padding, float64(r.spec.Height)-180)
	}

	r.drawFooter(ctx, dc)
	return dc
}

// powerInsight prefers the repeat-author note; otherwise the #1 vs #2 gap.
func powerInsight(res *analysis.Result) string {
	if res.TopAuthor != "" && res.TopAuthorPostCount > 1 {
		return fmt.Sprintf("Notable: %s has %d posts in the top 50", res.TopAuthor, res.TopAuthorPostCount)
	}
	if len(res.Leaderboard) > 1 {
		gap := res.Leaderboard[0].Karma - res.Leaderboard[1].Karma
		return fmt.Sprintf("#1 leads #2 by %s karma", humanize.Comma(int64(gap)))
	}
	if len(res.Leaderboard) == 1 {
		return "#1 leads #2 by 0 karma"
	}
	return ""
}
