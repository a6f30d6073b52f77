package carousel

import (
	"context"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
)

// overviewCard shows the big picture: karma concentration bars on the left
// and a ringed network sketch of the top fifteen agents on the right.
func (r *Renderer) overviewCard(ctx context.Context, res *analysis.Result) *gg.Context {
	dc := r.newCanvas()
	y := r.drawMasthead(ctx, dc)

	y += 30
	r.drawSectionMarker(ctx, dc, y, "01", "THE BIG PICTURE")
	y += 55

	if len(res.Leaderboard) > 0 {
		top5 := 0
		for _, e := range res.Leaderboard[:min(5, len(res.Leaderboard))] {
			top5 += e.Karma
		}
		concentration := 0.0
		if res.TotalKarma > 0 {
			concentration = float64(top5) / float64(res.TotalKarma) * 100
		}

		dc.SetFontFace(r.face(ctx, fontSerifBold, 32))
		dc.SetHexColor(r.colors.TextPrimary)
		drawText(dc, fmt.Sprintf("The top 5 agents control %.0f%% of karma", concentration), r.padding, y)
	}
	y += 50

	colWidth := (r.innerWidth - 40) / 2
	leftX := r.padding
	rightX := r.padding + colWidth + 40

	y += 20
	sectionFace := r.face(ctx, fontSansBold, 12)
	dc.SetFontFace(sectionFace)
	dc.SetHexColor(r.colors.TextTertiary)
	drawText(dc, "KARMA DISTRIBUTION", leftX, y)
	y += 30

	if len(res.Leaderboard) > 0 {
		r.drawKarmaTiers(ctx, dc, res, leftX, y, colWidth)
	}

	rightY := r.padding + 200
	dc.SetFontFace(sectionFace)
	dc.SetHexColor(r.colors.TextTertiary)
	drawText(dc, "NETWORK STRUCTURE", rightX, rightY)
	rightY += 30

	if len(res.Leaderboard) > 0 {
		r.drawNetworkSketch(ctx, dc, res, rightX+colWidth/2, rightY+140)
	}

	r.drawLegend(ctx, dc, rightX)
	r.drawFooter(ctx, dc)
	return dc
}

// drawKarmaTiers renders the stacked tier bars (#1, #2-5, #6-10, rest) with
// percentage labels.
func (r *Renderer) drawKarmaTiers(ctx context.Context, dc *gg.Context, res *analysis.Result, x, y, colWidth float64) {
	total := res.TotalKarma
	sumTop := func(n int) int {
		s := 0
		for _, e := range res.Leaderboard[:min(n, len(res.Leaderboard))] {
			s += e.Karma
		}
		return s
	}
	top1 := res.Leaderboard[0].Karma
	top5 := sumTop(5)
	top10 := sumTop(10)

	tiers := []struct {
		label string
		karma int
		color string
	}{
		{"#1", top1, r.colors.AccentSignal},
		{"#2-5", top5 - top1, r.colors.AccentWarm},
		{"#6-10", top10 - top5, r.colors.AccentDeep},
		{"Others", total - top10, r.colors.Border},
	}

	const barHeight = 35
	valueFace := r.face(ctx, fontSansBold, 14)
	labelFace := r.face(ctx, fontSansMedium, 11)

	for _, tier := range tiers {
		pct := 0.0
		barWidth := 0.0
		if total > 0 {
			pct = float64(tier.karma) / float64(total) * 100
			barWidth = math.Floor(float64(tier.karma) / float64(total) * colWidth)
		}

		dc.SetHexColor(tier.color)
		dc.DrawRectangle(x, y, math.Max(barWidth, 4), barHeight)
		dc.Fill()

		dc.SetFontFace(valueFace)
		dc.SetHexColor(r.colors.TextPrimary)
		drawText(dc, fmt.Sprintf("%.1f%%", pct), x+barWidth+10, y+5)

		dc.SetFontFace(labelFace)
		dc.SetHexColor(r.colors.TextTertiary)
		drawText(dc, tier.label, x+barWidth+10, y+22)

		y += barHeight + 15
	}
}

// drawNetworkSketch places the top fifteen agents on concentric rings
// around the leader, sized by relative karma.
func (r *Renderer) drawNetworkSketch(ctx context.Context, dc *gg.Context, res *analysis.Result, centerX, centerY float64) {
	entries := res.Leaderboard[:min(15, len(res.Leaderboard))]
	topKarma := entries[0].Karma

	// Spokes first, so nodes draw over them.
	dc.SetHexColor(r.colors.Border)
	dc.SetLineWidth(1)
	for i := range entries {
		if i == 0 {
			continue
		}
		nx, ny := ringPosition(i, centerX, centerY)
		dc.DrawLine(centerX, centerY, nx, ny)
		dc.Stroke()
	}

	for i, entry := range entries {
		if i == 0 {
			dc.SetHexColor(r.colors.AccentSignal)
			dc.DrawCircle(centerX, centerY, 20)
			dc.Fill()
			continue
		}

		nx, ny := ringPosition(i, centerX, centerY)
		radius := 6.0
		if topKarma > 0 {
			radius = math.Max(6, math.Min(14, math.Floor(float64(entry.Karma)/float64(topKarma)*14)))
		}

		switch {
		case i < 5:
			dc.SetHexColor(r.colors.AccentWarm)
		case i < 10:
			dc.SetHexColor(r.colors.AccentDeep)
		default:
			dc.SetHexColor(r.colors.TextTertiary)
		}
		dc.DrawCircle(nx, ny, radius)
		dc.Fill()
	}

	name := truncateRunes(entries[0].Name, 8)
	dc.SetFontFace(r.face(ctx, fontSansBold, 11))
	dc.SetHexColor(r.colors.TextPrimary)
	drawTextCenteredX(dc, name, centerX, centerY+28)
}

// ringPosition maps a leaderboard index (1..14) onto three rings of 3, 5,
// and 7 slots, each ring rotated slightly so spokes don't align.
func ringPosition(i int, centerX, centerY float64) (float64, float64) {
	ring, ringStart, slots := 0, 0, 3
	switch {
	case i < 3:
	case i < 8:
		ring, ringStart, slots = 1, 3, 5
	default:
		ring, ringStart, slots = 2, 8, 7
	}

	radius := 40 + float64(ring)*50
	angle := float64(i-ringStart)*(2*math.Pi/float64(slots)) + float64(ring)*0.3

	x := centerX + math.Floor(radius*math.Cos(angle))
	y := centerY + math.Floor(radius*math.Sin(angle))
	return x, y
}

func (r *Renderer) drawLegend(ctx context.Context, dc *gg.Context, x float64) {
	legendY := float64(r.spec.Height) - 160
	dc.SetFontFace(r.face(ctx, fontSansMedium, 10))

	items := []struct {
		color string
		label string
	}{
		{r.colors.AccentSignal, "Elite (#1)"},
		{r.colors.AccentWarm, "Top 5"},
		{r.colors.AccentDeep, "Top 10"},
		{r.colors.TextTertiary, "Rising"},
	}

	for i, item := range items {
		lx := x + float64(i*100)
		dc.SetHexColor(item.color)
		dc.DrawCircle(lx+5, legendY+5, 5)
		dc.Fill()

		dc.SetHexColor(r.colors.TextSecondary)
		drawText(dc, item.label, lx+16, legendY-1)
	}
}
