package carousel

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fogleman/gg"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
)

// networkStatsCard shows a 2x3 metrics grid. With real network metrics
// available it shows them directly; otherwise the grid falls back to stats
// derived from the leaderboard and top posts.
func (r *Renderer) networkStatsCard(ctx context.Context, res *analysis.Result) *gg.Context {
	dc := r.newCanvas()
	y := r.drawMasthead(ctx, dc)

	y += 40
	r.drawSectionMarker(ctx, dc, y, "03", "NETWORK METRICS")
	y += 80

	type cell struct{ label, value string }
	stats := res.Network

	var grid []cell
	if stats.NetworkDensity > 0 || stats.Modularity > 0 {
		grid = []cell{
			{"AGENTS", fmt.Sprintf("%d", stats.TotalAgents)},
			{"COMMUNITIES", fmt.Sprintf("%d", stats.CommunityCount)},
			{"INFLUENCERS", fmt.Sprintf("%d", stats.InfluencerCount)},
			{"DENSITY", fmt.Sprintf("%.4f", stats.NetworkDensity)},
			{"MODULARITY", fmt.Sprintf("%.3f", stats.Modularity)},
			{"POSTS", fmt.Sprintf("%d", stats.TotalPosts)},
		}
	} else {
		topUpvotes := 0
		if len(res.TopPosts) > 0 {
			topUpvotes = res.TopPosts[0].Upvotes
		}
		authors := make(map[string]struct{})
		for _, p := range res.TopPosts {
			authors[p.Author] = struct{}{}
		}

		grid = []cell{
			{"AGENTS", fmt.Sprintf("%d", stats.TotalAgents)},
			{"TOP POSTS", fmt.Sprintf("%d", len(res.TopPosts))},
			{"TOTAL KARMA", humanize.Comma(int64(res.TotalKarma))},
			{"AVG TOP 10", humanize.Comma(int64(res.AvgKarmaTop10))},
			{"TOP UPVOTES", humanize.Comma(int64(topUpvotes))},
			{"AUTHORS", fmt.Sprintf("%d", len(authors))},
		}
	}

	cellWidth := r.innerWidth / 2
	const cellHeight = 160
	labelFace := r.face(ctx, fontSansMedium, 16)
	valueFace := r.face(ctx, fontSerifBold, 48)

	for i, c := range grid {
		cellX := r.padding + float64(i%2)*cellWidth
		cellY := y + float64(i/2)*cellHeight

		dc.SetHexColor(r.colors.BgSurface)
		dc.DrawRectangle(cellX, cellY, cellWidth-10, cellHeight-10)
		dc.Fill()

		dc.SetFontFace(valueFace)
		dc.SetHexColor(r.colors.TextPrimary)
		drawText(dc, c.value, cellX+20, cellY+30)

		dc.SetFontFace(labelFace)
		dc.SetHexColor(r.colors.TextTertiary)
		drawText(dc, c.label, cellX+20, cellY+100)
	}

	if stats.TopInfluencer != "" {
		dc.SetFontFace(r.face(ctx, fontSansRegular, 18))
		dc.SetHexColor(r.colors.AccentSignal)
		drawText(dc, "Top influencer: "+stats.TopInfluencer, r.padding, float64(r.spec.Height)-180)
	}

	r.drawFooter(ctx, dc)
	return dc
}
