package carousel

import (
	"context"

	"github.com/fogleman/gg"
)

// drawMasthead draws the shared editorial header (source line, timestamp,
// title, accent rule, tagline) and returns the y position below it.
func (r *Renderer) drawMasthead(ctx context.Context, dc *gg.Context) float64 {
	y := r.padding
	width := float64(r.spec.Width)

	dc.SetFontFace(r.face(ctx, fontSansMedium, 14))
	dc.SetHexColor(r.colors.TextTertiary)
	drawText(dc, "DATA FROM MOLTBOOK", r.padding, y)
	drawTextRight(dc, r.mastheadTimestamp(), width-r.padding, y)

	y += 30
	dc.SetFontFace(r.face(ctx, fontSerifBold, 38))
	dc.SetHexColor(r.colors.TextPrimary)
	drawText(dc, "MOLT IN THE MIST", r.padding, y)

	y += 55
	dc.SetHexColor(r.colors.AccentSignal)
	dc.DrawRectangle(r.padding, y, 80, 4)
	dc.Fill()

	y += 18
	dc.SetFontFace(r.face(ctx, fontSansMedium, 16))
	dc.SetHexColor(r.colors.TextSecondary)
	drawText(dc, "NETWORK INFLUENCE ANALYSIS", r.padding, y)

	return y + 45
}

// drawFooter draws the black footer bar with attribution and repo URL.
func (r *Renderer) drawFooter(ctx context.Context, dc *gg.Context) {
	width := float64(r.spec.Width)
	footerY := float64(r.spec.Height) - footerHeight

	dc.SetHexColor(r.colors.Wayfinding)
	dc.DrawRectangle(0, footerY, width, footerHeight)
	dc.Fill()

	const (
		label     = "Generated by Molt in the Mist"
		separator = "  ·  "
		url       = "github.com/busse/molt-in-the-mist"
	)

	dc.SetFontFace(r.face(ctx, fontSansMedium, 14))
	fullWidth, textHeight := dc.MeasureString(label + separator + url)
	x := (width - fullWidth) / 2
	textY := footerY + (footerHeight-textHeight)/2

	dc.SetHexColor(r.colors.TextInverted)
	drawText(dc, label, x, textY)

	labelWidth, _ := dc.MeasureString(label)
	dc.SetHexColor(r.colors.TextTertiary)
	drawText(dc, separator, x+labelWidth, textY)

	sepWidth, _ := dc.MeasureString(separator)
	dc.SetHexColor(r.colors.TextInverted)
	drawText(dc, url, x+labelWidth+sepWidth, textY)
}

// drawSectionMarker draws the numbered wayfinding chip and section label,
// returning nothing; the caller advances y itself.
func (r *Renderer) drawSectionMarker(ctx context.Context, dc *gg.Context, y float64, number, label string) {
	dc.SetFontFace(r.face(ctx, fontSansBold, 14))

	dc.SetHexColor(r.colors.Wayfinding)
	dc.DrawRectangle(r.padding, y, 30, 24)
	dc.Fill()

	dc.SetHexColor(r.colors.TextInverted)
	drawText(dc, number, r.padding+8, y+4)

	dc.SetHexColor(r.colors.TextPrimary)
	drawText(dc, label, r.padding+45, y+4)
}
