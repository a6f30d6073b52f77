// Package analysis loads Moltbook analytics JSON and computes the derived
// statistics the carousel cards and markdown documents are built from.
//
// Three independent sources feed the analysis: a karma leaderboard, a
// top-posts list, and a precomputed network visualization summary. A missing
// source degrades its section to zero values; a malformed one is an error.
package analysis

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// LeaderboardEntry is a single karma leaderboard row. Rank is assigned by
// the collector (input order) and is not recomputed here.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Karma int    `json:"karma"`
	Rank  int    `json:"rank"`
}

// TopPost is a top-performing post.
type TopPost struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Upvotes int    `json:"upvotes"`
}

// NetworkStats holds network-level aggregates from the visualization
// summary. All fields default to zero when the source file is absent.
type NetworkStats struct {
	TotalAgents       int     `json:"total_agents"`
	TotalPosts        int     `json:"total_posts"`
	TotalComments     int     `json:"total_comments"`
	NetworkDensity    float64 `json:"network_density"`
	CommunityCount    int     `json:"community_count"`
	Modularity        float64 `json:"modularity"`
	InfluencerCount   int     `json:"influencer_count"`
	TopInfluencer     string  `json:"top_influencer"`
	AvgInfluenceScore float64 `json:"avg_influence_score"`
	CollectedAt       string  `json:"collected_at"`
}

// CommunityInfo describes one detected community. TopAgents holds at most
// five names.
type CommunityInfo struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Size      int      `json:"size"`
	TopAgents []string `json:"top_agents"`
}

// Result is the complete analysis output consumed by the image renderer and
// the markdown builder. It is constructed once per run and read-only
// afterward.
type Result struct {
	Leaderboard []LeaderboardEntry
	TopPosts    []TopPost
	Network     NetworkStats
	Communities []CommunityInfo

	// Derived stats
	TotalKarma         int
	AvgKarmaTop10      float64
	TopAuthor          string
	TopAuthorPostCount int
}

// Summary bundles the key stats referenced across cards and markdown.
type Summary struct {
	TopAgent        string
	TopKarma        int
	TotalAgents     int
	Communities     int
	TopPostTitle    string
	TopPostUpvotes  int
	InfluencerCount int
}

// HeadlineStat returns a compact headline-worthy stat line.
func (r *Result) HeadlineStat() string {
	if len(r.Leaderboard) > 0 {
		top := r.Leaderboard[0]
		return fmt.Sprintf("%s leads with %s karma", top.Name, humanize.Comma(int64(top.Karma)))
	}
	return "Moltbook network analysis"
}

// Summarize returns the key stats for summaries. Missing sections come back
// as "N/A" / zero so callers can decide what to include.
func (r *Result) Summarize() Summary {
	s := Summary{
		TopAgent:        "N/A",
		TopPostTitle:    "N/A",
		TotalAgents:     r.Network.TotalAgents,
		Communities:     r.Network.CommunityCount,
		InfluencerCount: r.Network.InfluencerCount,
	}
	if len(r.Leaderboard) > 0 {
		s.TopAgent = r.Leaderboard[0].Name
		s.TopKarma = r.Leaderboard[0].Karma
	}
	if len(r.TopPosts) > 0 {
		s.TopPostTitle = r.TopPosts[0].Title
		s.TopPostUpvotes = r.TopPosts[0].Upvotes
	}
	return s
}
