package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/busse/molt-in-the-mist/pkg/errors"
)

// Source file names within the data directories.
const (
	leaderboardFile   = "moltbook-leaderboard.json"
	topPostsFile      = "moltbook-top-posts.json"
	visualizationFile = "visualization.json"
)

// maxCommunityAgents caps the top-agent list carried per community.
const maxCommunityAgents = 5

// Analyzer loads Moltbook data from JSON files and computes derived stats.
type Analyzer struct {
	// DataDir holds the collector output (leaderboard, top posts).
	DataDir string

	// SiteDataDir holds the site's published data (visualization summary).
	SiteDataDir string
}

// New creates an Analyzer reading from the given directories.
func New(dataDir, siteDataDir string) *Analyzer {
	return &Analyzer{DataDir: dataDir, SiteDataDir: siteDataDir}
}

// Analyze loads all sources and returns the complete result. A missing
// source file yields an empty section; an unreadable or malformed one is an
// error and aborts the run.
func (a *Analyzer) Analyze() (*Result, error) {
	leaderboard, err := a.loadLeaderboard()
	if err != nil {
		return nil, err
	}
	topPosts, err := a.loadTopPosts()
	if err != nil {
		return nil, err
	}
	network, communities, err := a.loadVisualization()
	if err != nil {
		return nil, err
	}

	// When the visualization summary is absent, derive the totals from
	// whatever data is present.
	if network.TotalAgents == 0 && len(leaderboard) > 0 {
		network.TotalAgents = len(leaderboard)
	}
	if network.TotalPosts == 0 && len(topPosts) > 0 {
		network.TotalPosts = len(topPosts)
	}

	result := &Result{
		Leaderboard: leaderboard,
		TopPosts:    topPosts,
		Communities: communities,
	}

	if len(leaderboard) > 0 {
		for _, e := range leaderboard {
			result.TotalKarma += e.Karma
		}

		top10 := leaderboard[:min(10, len(leaderboard))]
		sum := 0
		for _, e := range top10 {
			sum += e.Karma
		}
		result.AvgKarmaTop10 = float64(sum) / float64(len(top10))

		// Influencer estimate: top 10% or everyone beating the top-10
		// average, whichever is larger. Only meaningful with a full
		// leaderboard; smaller boards keep the collector's value.
		if len(leaderboard) >= 10 {
			above := 0
			for _, e := range leaderboard {
				if float64(e.Karma) > result.AvgKarmaTop10 {
					above++
				}
			}
			network.InfluencerCount = max(len(leaderboard)/10, above)
		}

		if network.TopInfluencer == "" {
			network.TopInfluencer = leaderboard[0].Name
		}
	}

	result.Network = network

	result.TopAuthor, result.TopAuthorPostCount = topAuthor(topPosts)

	return result, nil
}

// topAuthor returns the most prolific author among the posts and their post
// count. Ties break toward the author that first reached the winning count
// in input order.
func topAuthor(posts []TopPost) (string, int) {
	if len(posts) == 0 {
		return "", 0
	}

	counts := make(map[string]int, len(posts))
	var order []string
	for _, p := range posts {
		if _, seen := counts[p.Author]; !seen {
			order = append(order, p.Author)
		}
		counts[p.Author]++
	}

	var best string
	bestCount := 0
	for _, author := range order {
		if counts[author] > bestCount {
			best = author
			bestCount = counts[author]
		}
	}
	return best, bestCount
}

// loadLeaderboard reads the karma leaderboard. Absent file → empty slice.
func (a *Analyzer) loadLeaderboard() ([]LeaderboardEntry, error) {
	path := filepath.Join(a.DataDir, leaderboardFile)

	var entries []LeaderboardEntry
	if err := readJSON(path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// loadTopPosts reads the top-posts list. Absent file → empty slice.
func (a *Analyzer) loadTopPosts() ([]TopPost, error) {
	path := filepath.Join(a.DataDir, topPostsFile)

	var posts []TopPost
	if err := readJSON(path, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// visualizationDoc mirrors the on-disk shape of the visualization summary.
type visualizationDoc struct {
	Metadata    NetworkStats    `json:"metadata"`
	Communities []CommunityInfo `json:"communities"`
}

// loadVisualization reads the network summary. Absent file → zero stats.
func (a *Analyzer) loadVisualization() (NetworkStats, []CommunityInfo, error) {
	path := filepath.Join(a.SiteDataDir, visualizationFile)

	var doc visualizationDoc
	if err := readJSON(path, &doc); err != nil {
		return NetworkStats{}, nil, err
	}

	communities := doc.Communities
	for i := range communities {
		if communities[i].Name == "" {
			communities[i].Name = fmt.Sprintf("Community %d", communities[i].ID)
		}
		if len(communities[i].TopAgents) > maxCommunityAgents {
			communities[i].TopAgents = communities[i].TopAgents[:maxCommunityAgents]
		}
	}

	return doc.Metadata, communities, nil
}

// readJSON unmarshals path into v. A missing file leaves v untouched and
// returns nil; parse failures return a structured error.
func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidData, err, "parse %s", path)
	}
	return nil
}
