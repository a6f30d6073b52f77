package carousel

import (
	"context"

	"github.com/fogleman/gg"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
)

// ctaCard closes the carousel on an inverted color scheme with a mock
// repository preview panel and the repo URL.
func (r *Renderer) ctaCard(ctx context.Context, _ *analysis.Result) *gg.Context {
	dc := gg.NewContext(r.spec.Width, r.spec.Height)
	dc.SetHexColor(r.colors.Wayfinding)
	dc.Clear()

	centerX := float64(r.spec.Width) / 2

	y := 160.0
	dc.SetFontFace(r.face(ctx, fontSerifBold, 48))
	dc.SetHexColor(r.colors.TextInverted)
	drawTextCenteredX(dc, "MOLT IN THE MIST", centerX, y)

	y += 70
	dc.SetHexColor(r.colors.AccentSignal)
	dc.DrawRectangle(centerX-50, y, 100, 4)
	dc.Fill()

	y += 30
	dc.SetFontFace(r.face(ctx, fontSansMedium, 20))
	dc.SetHexColor(r.colors.TextTertiary)
	drawTextCenteredX(dc, "Network Influence Analysis for Moltbook", centerX, y)

	y += 80
	y = r.drawRepoPreview(ctx, dc, centerX, y)

	y += 50
	dc.SetFontFace(r.face(ctx, fontSansBold, 24))
	dc.SetHexColor(r.colors.AccentSignal)
	drawTextCenteredX(dc, "Explore the code →", centerX, y)

	dc.SetFontFace(r.face(ctx, fontSansMedium, 18))
	dc.SetHexColor(r.colors.TextInverted)
	drawTextCenteredX(dc, "github.com/busse/molt-in-the-mist", centerX, float64(r.spec.Height)-100)

	return dc
}

// drawRepoPreview draws the mock GitHub social preview panel and returns
// the y position of its bottom edge.
func (r *Renderer) drawRepoPreview(ctx context.Context, dc *gg.Context, centerX, y float64) float64 {
	const (
		previewWidth  = 700.0
		previewHeight = 360.0
	)
	previewX := centerX - previewWidth/2

	dc.SetHexColor(r.colors.AccentDeep)
	dc.DrawRectangle(previewX, y, previewWidth, previewHeight)
	dc.Fill()
	dc.SetHexColor(r.colors.Border)
	dc.SetLineWidth(2)
	dc.DrawRectangle(previewX, y, previewWidth, previewHeight)
	dc.Stroke()

	dc.SetFontFace(r.face(ctx, fontSansBold, 16))
	dc.SetHexColor(r.colors.TextTertiary)
	drawText(dc, "github.com", previewX+30, y+30)

	dc.SetFontFace(r.face(ctx, fontSansBold, 28))
	dc.SetHexColor(r.colors.TextInverted)
	drawText(dc, "busse/molt-in-the-mist", previewX+30, y+80)

	descLines := []string{
		"Research toolkit for Moltbook data collection",
		"and social network analysis. Explore influence,",
		"community structure, and interaction dynamics.",
	}
	dc.SetFontFace(r.face(ctx, fontSansRegular, 18))
	dc.SetHexColor(r.colors.TextTertiary)
	descY := y + 130
	for _, line := range descLines {
		drawText(dc, line, previewX+30, descY)
		descY += 28
	}

	dc.SetFontFace(r.face(ctx, fontSansMedium, 14))
	dc.SetHexColor(r.colors.AccentWarm)
	drawText(dc, "TypeScript  ·  Open Source  ·  MIT License", previewX+30, y+previewHeight-50)

	return y + previewHeight
}
