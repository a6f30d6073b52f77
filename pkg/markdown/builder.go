// Package markdown assembles the ready-to-post document that accompanies a
// rendered carousel: headline, summary, gallery, quick-copy blocks, and a
// raw data appendix.
package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
	"github.com/busse/molt-in-the-mist/pkg/carousel"
	"github.com/busse/molt-in-the-mist/pkg/errors"
)

const outputFile = "post.md"

// cardGallery describes each carousel slide for the gallery section, in
// render order.
var cardGallery = []struct {
	title       string
	description string
}{
	{"Opening Hook", "Narrative intro with key stats teaser"},
	{"The Big Picture", "High-level network overview with tier visualization"},
	{"Power Dynamics", "Top 3 power players with visual weight"},
	{"Hero Card", "Main headline with top karma stat"},
	{"Leaderboard", "Top 5 agents by karma with bar visualization"},
	{"Network Stats", "Key network metrics grid"},
	{"Top Post", "Featured post with upvote count"},
	{"Explore More", "Inverse color CTA with GitHub preview"},
}

// Options configures document generation.
type Options struct {
	// Headline overrides the generated headline when non-empty.
	Headline string

	Platform carousel.Platform
}

// Builder writes post.md documents.
type Builder struct {
	now func() time.Time
}

// NewBuilder returns a Builder using the wall clock.
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// Generate writes post.md into outDir, referencing imagePaths by filename,
// and returns the written path.
func (b *Builder) Generate(res *analysis.Result, imagePaths []string, outDir string, opts Options) (string, error) {
	headline := opts.Headline
	if headline == "" {
		headline = Headline(res)
	}

	content := b.document(res, headline, imagePaths, opts.Platform)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create output directory")
	}
	path := filepath.Join(outDir, outputFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write %s", outputFile)
	}
	return path, nil
}

// HeadlineChoices returns the candidate headlines for a result, in a stable
// order. With community data present an extra community-focused option is
// inserted at position three.
func HeadlineChoices(res *analysis.Result) []string {
	if len(res.Leaderboard) == 0 {
		return []string{"Moltbook Network Analysis Update"}
	}

	top := res.Leaderboard[0]
	choices := []string{
		fmt.Sprintf("%s dominates with %s karma", top.Name, humanize.Comma(int64(top.Karma))),
		fmt.Sprintf("The Moltbook power map: %s leads %d agents", top.Name, res.Network.TotalAgents),
		"Network analysis: Who really runs Moltbook?",
		"I've been watching Moltbook. Here's what I found.",
	}
	if res.Network.CommunityCount > 0 {
		community := fmt.Sprintf("%d communities, one leader: %s", res.Network.CommunityCount, top.Name)
		choices = append(choices[:2], append([]string{community}, choices[2:]...)...)
	}
	return choices
}

// Headline picks a headline deterministically from the leaderboard size, so
// consecutive runs over growing data rotate through the templates.
func Headline(res *analysis.Result) string {
	choices := HeadlineChoices(res)
	if len(res.Leaderboard) == 0 {
		return choices[0]
	}
	return choices[len(res.Leaderboard)%len(choices)]
}

// Summary builds the markdown summary paragraphs, skipping sections whose
// source data is missing.
func Summary(res *analysis.Result) string {
	var parts []string

	if len(res.Leaderboard) > 0 {
		top := res.Leaderboard[0]
		parts = append(parts, fmt.Sprintf(
			"**%s** holds the top spot with **%s karma**, leading a network of %d active agents.",
			top.Name, humanize.Comma(int64(top.Karma)), res.Network.TotalAgents))
	}

	switch {
	case res.Network.CommunityCount > 0:
		parts = append(parts, fmt.Sprintf(
			"The network has formed **%d distinct communities** with %d identified influencers.",
			res.Network.CommunityCount, res.Network.InfluencerCount))
	case res.Network.InfluencerCount > 0:
		parts = append(parts, fmt.Sprintf(
			"Analysis identified **%d key influencers** in the network.",
			res.Network.InfluencerCount))
	}

	if len(res.TopPosts) > 0 {
		post := res.TopPosts[0]
		parts = append(parts, fmt.Sprintf(
			"The most upvoted post is *\"%s\"* by %s with **%s upvotes**.",
			truncate(post.Title, 60), post.Author, humanize.Comma(int64(post.Upvotes))))
	}

	if res.TopAuthor != "" && res.TopAuthorPostCount > 1 {
		parts = append(parts, fmt.Sprintf(
			"Notable: **%s** appears %d times in the top posts.",
			res.TopAuthor, res.TopAuthorPostCount))
	}

	return strings.Join(parts, "\n\n")
}

// PlainSummary builds the short caption variant without markdown emphasis.
func PlainSummary(res *analysis.Result) string {
	var parts []string

	if len(res.Leaderboard) > 0 {
		top := res.Leaderboard[0]
		parts = append(parts, fmt.Sprintf("%s leads with %s karma.", top.Name, humanize.Comma(int64(top.Karma))))
	}

	if res.Network.CommunityCount > 0 {
		parts = append(parts, fmt.Sprintf("%d agents across %d communities.",
			res.Network.TotalAgents, res.Network.CommunityCount))
	} else {
		parts = append(parts, fmt.Sprintf("%d agents analyzed.", res.Network.TotalAgents))
	}

	if len(res.TopPosts) > 0 {
		parts = append(parts, fmt.Sprintf("Top post: %s upvotes.", humanize.Comma(int64(res.TopPosts[0].Upvotes))))
	}

	return strings.Join(parts, " ")
}

func (b *Builder) document(res *analysis.Result, headline string, imagePaths []string, platform carousel.Platform) string {
	now := b.now()
	spec := platform.Spec()
	dimensions := fmt.Sprintf("%d×%d", spec.Width, spec.Height)

	var doc strings.Builder
	fmt.Fprintf(&doc, "# %s\n\n", headline)
	fmt.Fprintf(&doc, "> Generated for **%s** (%s, %s)\n>\n> %s at %s\n\n",
		spec.Name, dimensions, spec.AspectRatio,
		now.Format("January 02, 2006"), now.Format("03:04 PM"))

	fmt.Fprintf(&doc, "## Summary\n\n%s\n\n---\n\n", Summary(res))

	doc.WriteString("## Platform Info\n\n")
	fmt.Fprintf(&doc, "- **Target:** %s\n", spec.Name)
	fmt.Fprintf(&doc, "- **Image Size:** %s px\n", dimensions)
	fmt.Fprintf(&doc, "- **Aspect Ratio:** %s\n", spec.AspectRatio)
	fmt.Fprintf(&doc, "- **Notes:** %s\n\n---\n\n", spec.Notes)

	fmt.Fprintf(&doc, "## Carousel Images\n\n%s\n---\n\n", gallerySection(imagePaths))

	doc.WriteString("## Quick Copy\n\n")
	fmt.Fprintf(&doc, "**Headline (for post):**\n```\n%s\n```\n\n", headline)
	fmt.Fprintf(&doc, "**Summary (for post caption):**\n```\n%s\n```\n\n---\n\n", PlainSummary(res))

	fmt.Fprintf(&doc, "## Data Appendix\n\n%s\n\n---\n\n", dataAppendix(res))

	doc.WriteString("*Generated by Molt in the Mist Social Carousel Generator*\n")
	return doc.String()
}

// gallerySection lists each image with its slide title and description.
// Images are referenced by bare filename so the document works from inside
// the output directory.
func gallerySection(imagePaths []string) string {
	var lines []string
	for i, path := range imagePaths {
		title, description := fmt.Sprintf("Image %d", i+1), ""
		if i < len(cardGallery) {
			title, description = cardGallery[i].title, cardGallery[i].description
		}

		lines = append(lines,
			fmt.Sprintf("### %d. %s", i+1, title),
			"",
			fmt.Sprintf("![%s](%s)", title, filepath.Base(path)),
			"",
			fmt.Sprintf("*%s*", description),
			"",
		)
	}
	return strings.Join(lines, "\n")
}

func dataAppendix(res *analysis.Result) string {
	var lines []string

	lines = append(lines,
		"### Top 10 Karma Leaderboard",
		"",
		"| Rank | Agent | Karma |",
		"|------|-------|-------|",
	)
	for _, entry := range res.Leaderboard[:min(10, len(res.Leaderboard))] {
		lines = append(lines, fmt.Sprintf("| %d | %s | %s |",
			entry.Rank, entry.Name, humanize.Comma(int64(entry.Karma))))
	}
	lines = append(lines, "")

	stats := res.Network
	lines = append(lines,
		"### Network Statistics",
		"",
		fmt.Sprintf("- **Total Agents:** %d", stats.TotalAgents),
		fmt.Sprintf("- **Total Posts:** %d", stats.TotalPosts),
	)
	if stats.TotalComments > 0 {
		lines = append(lines, fmt.Sprintf("- **Total Comments:** %d", stats.TotalComments))
	}
	if stats.CommunityCount > 0 {
		lines = append(lines, fmt.Sprintf("- **Communities:** %d", stats.CommunityCount))
	}
	if stats.InfluencerCount > 0 {
		lines = append(lines, fmt.Sprintf("- **Influencers:** %d", stats.InfluencerCount))
	}
	if stats.NetworkDensity > 0 {
		lines = append(lines, fmt.Sprintf("- **Network Density:** %.6f", stats.NetworkDensity))
	}
	if stats.Modularity > 0 {
		lines = append(lines, fmt.Sprintf("- **Modularity:** %.4f", stats.Modularity))
	}
	if stats.TopInfluencer != "" {
		lines = append(lines, fmt.Sprintf("- **Top Influencer:** %s", stats.TopInfluencer))
	}
	if res.TotalKarma > 0 {
		lines = append(lines, fmt.Sprintf("- **Total Karma:** %s", humanize.Comma(int64(res.TotalKarma))))
	}
	lines = append(lines, "")

	lines = append(lines,
		"### Top 5 Posts",
		"",
		"| Title | Author | Upvotes |",
		"|-------|--------|---------|",
	)
	for _, post := range res.TopPosts[:min(5, len(res.TopPosts))] {
		title := escapePipes(truncate(post.Title, 50))
		lines = append(lines, fmt.Sprintf("| %s | %s | %s |",
			title, post.Author, humanize.Comma(int64(post.Upvotes))))
	}

	return strings.Join(lines, "\n")
}

// truncate shortens s to n runes plus an ellipsis. Short strings pass
// through unchanged.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// escapePipes protects table cells from embedded pipe characters.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
