package carousel

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fogleman/gg"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
)

// heroCard spotlights the karma leader with an oversized stat and a
// one-line network summary near the footer.
func (r *Renderer) heroCard(ctx context.Context, res *analysis.Result) *gg.Context {
	dc := r.newCanvas()
	y := r.drawMasthead(ctx, dc)

	y += 40
	r.drawSectionMarker(ctx, dc, y, "01", "TODAY'S SNAPSHOT")

	y += 100
	if len(res.Leaderboard) > 0 {
		top := res.Leaderboard[0]

		dc.SetFontFace(r.face(ctx, fontSerifBold, 120))
		dc.SetHexColor(r.colors.AccentSignal)
		drawText(dc, humanize.Comma(int64(top.Karma)), r.padding, y)

		y += 140
		dc.SetFontFace(r.face(ctx, fontSansMedium, 24))
		dc.SetHexColor(r.colors.TextTertiary)
		drawText(dc, "KARMA", r.padding, y)

		y += 60
		dc.SetFontFace(r.face(ctx, fontSerifRegular, 48))
		dc.SetHexColor(r.colors.TextPrimary)
		drawText(dc, top.Name, r.padding, y)

		y += 70
		dc.SetHexColor(r.colors.AccentWarm)
		dc.DrawRectangle(r.padding, y, 100, 32)
		dc.Fill()
		dc.SetFontFace(r.face(ctx, fontSansBold, 16))
		dc.SetHexColor(r.colors.TextPrimary)
		drawText(dc, "#1 RANKED", r.padding+20, y+7)
	}

	summary := res.Summarize()
	line := fmt.Sprintf("%d agents  ·  %d communities  ·  %d influencers",
		summary.TotalAgents, summary.Communities, summary.InfluencerCount)
	dc.SetFontFace(r.face(ctx, fontSansRegular, 20))
	dc.SetHexColor(r.colors.TextSecondary)
	drawText(dc, line, r.padding, float64(r.spec.Height)-180)

	r.drawFooter(ctx, dc)
	return dc
}
