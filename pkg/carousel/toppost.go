package carousel

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/fogleman/gg"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
)

// topPostCard spotlights the highest-upvoted post: a big upvote figure and
// the wrapped title, capped at four lines with an ellipsis line.
func (r *Renderer) topPostCard(ctx context.Context, res *analysis.Result) *gg.Context {
	dc := r.newCanvas()
	y := r.drawMasthead(ctx, dc)

	y += 40
	r.drawSectionMarker(ctx, dc, y, "04", "TOP POST")

	if len(res.TopPosts) > 0 {
		post := res.TopPosts[0]

		y += 80
		dc.SetFontFace(r.face(ctx, fontSerifBold, 96))
		dc.SetHexColor(r.colors.AccentSignal)
		drawText(dc, humanize.Comma(int64(post.Upvotes)), r.padding, y)

		y += 110
		dc.SetFontFace(r.face(ctx, fontSansMedium, 20))
		dc.SetHexColor(r.colors.TextTertiary)
		drawText(dc, "UPVOTES", r.padding, y)

		y += 60
		titleFace := r.face(ctx, fontSerifRegular, 32)
		dc.SetFontFace(titleFace)
		dc.SetHexColor(r.colors.TextPrimary)

		lines := wrapWords(dc, post.Title, r.innerWidth)
		for _, line := range lines[:min(4, len(lines))] {
			drawText(dc, line, r.padding, y)
			y += 45
		}
		if len(lines) > 4 {
			dc.SetHexColor(r.colors.TextTertiary)
			drawText(dc, "...", r.padding, y)
			y += 45
		}

		y += 20
		dc.SetFontFace(r.face(ctx, fontSansMedium, 22))
		dc.SetHexColor(r.colors.AccentDeep)
		drawText(dc, "by "+post.Author, r.padding, y)
	}

	r.drawFooter(ctx, dc)
	return dc
}
