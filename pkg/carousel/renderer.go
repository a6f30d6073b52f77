// Package carousel renders the eight-card image sequence for a carousel
// post. Cards are drawn at fixed layouts per platform and written as PNG
// files with stable, ordered filenames.
package carousel

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
	"github.com/busse/molt-in-the-mist/pkg/carousel/fontkit"
	"github.com/busse/molt-in-the-mist/pkg/errors"
)

const (
	defaultPadding = 80
	footerHeight   = 50
)

// Font names requested from the font manager. Serif for headlines, sans
// for labels and data.
const (
	fontSerifBold    = "LibreBaskerville-Bold"
	fontSerifRegular = "LibreBaskerville-Regular"
	fontSansRegular  = "DMSans-Regular"
	fontSansMedium   = "DMSans-Medium"
	fontSansBold     = "DMSans-Bold"
)

// Options configures a Renderer. Zero values fall back to the threads
// platform, the default palette, and an uncached font manager.
type Options struct {
	Platform Platform
	Palette  *Palette
	Fonts    *fontkit.Manager

	// Timestamp overrides the masthead date. Empty means "now".
	Timestamp string
}

// Renderer draws carousel cards for one platform.
type Renderer struct {
	platform Platform
	spec     Spec
	colors   Palette
	fonts    *fontkit.Manager

	padding    float64
	innerWidth float64
	timestamp  string
}

// NewRenderer builds a renderer from options.
func NewRenderer(opts Options) *Renderer {
	platform := opts.Platform
	if platform == "" {
		platform = PlatformThreads
	}
	colors := DefaultPalette()
	if opts.Palette != nil {
		colors = *opts.Palette
	}
	fonts := opts.Fonts
	if fonts == nil {
		fonts = fontkit.NewManager(fontkit.Config{}, nil)
	}

	spec := platform.Spec()
	return &Renderer{
		platform:   platform,
		spec:       spec,
		colors:     colors,
		fonts:      fonts,
		padding:    defaultPadding,
		innerWidth: float64(spec.Width) - defaultPadding*2,
		timestamp:  opts.Timestamp,
	}
}

// Platform returns the renderer's target platform.
func (r *Renderer) Platform() Platform { return r.platform }

// GenerateAll renders every card into outDir and returns the written paths
// in carousel order. The order is fixed regardless of which data sources
// were present in the analysis.
func (r *Renderer) GenerateAll(ctx context.Context, res *analysis.Result, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "create output directory")
	}

	cards := []struct {
		file string
		draw func(context.Context, *analysis.Result) *gg.Context
	}{
		{"01-narrative.png", r.narrativeCard},
		{"02-overview.png", r.overviewCard},
		{"03-power-map.png", r.powerMapCard},
		{"04-hero.png", r.heroCard},
		{"05-leaderboard.png", r.leaderboardCard},
		{"06-network.png", r.networkStatsCard},
		{"07-top-post.png", r.topPostCard},
		{"08-cta.png", r.ctaCard},
	}

	paths := make([]string, 0, len(cards))
	for _, card := range cards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(outDir, card.file)
		dc := card.draw(ctx, res)
		if err := dc.SavePNG(path); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "save %s", card.file)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// newCanvas creates a card-sized drawing context filled with the paper
// background.
func (r *Renderer) newCanvas() *gg.Context {
	dc := gg.NewContext(r.spec.Width, r.spec.Height)
	dc.SetHexColor(r.colors.BgPaper)
	dc.Clear()
	return dc
}

func (r *Renderer) face(ctx context.Context, name string, size float64) font.Face {
	return r.fonts.Face(ctx, name, size)
}

func (r *Renderer) mastheadTimestamp() string {
	if r.timestamp != "" {
		return r.timestamp
	}
	return time.Now().Format("Jan 02, 2006")
}
