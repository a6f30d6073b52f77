package analysis

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/busse/molt-in-the-mist/pkg/errors"
)

// writeFixture marshals v as JSON into dir/name.
func writeFixture(t *testing.T, dir, name string, v any) {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
}

// board builds a leaderboard of n entries with karma descending from top.
func board(n, top, step int) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, n)
	for i := range entries {
		entries[i] = LeaderboardEntry{
			Name:  string(rune('A' + i%26)),
			Karma: top - i*step,
			Rank:  i + 1,
		}
	}
	return entries
}

func analyze(t *testing.T, leaderboard []LeaderboardEntry, posts []TopPost, vis *visualizationDoc) *Result {
	t.Helper()
	dataDir := t.TempDir()
	siteDir := t.TempDir()

	if leaderboard != nil {
		writeFixture(t, dataDir, leaderboardFile, leaderboard)
	}
	if posts != nil {
		writeFixture(t, dataDir, topPostsFile, posts)
	}
	if vis != nil {
		writeFixture(t, siteDir, visualizationFile, vis)
	}

	result, err := New(dataDir, siteDir).Analyze()
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return result
}

func TestTotalKarmaIsSum(t *testing.T) {
	result := analyze(t, []LeaderboardEntry{
		{Name: "A", Karma: 100, Rank: 1},
		{Name: "B", Karma: 80, Rank: 2},
		{Name: "C", Karma: 50, Rank: 3},
	}, nil, nil)

	if result.TotalKarma != 230 {
		t.Errorf("TotalKarma = %d, want 230", result.TotalKarma)
	}
}

func TestAvgKarmaTop10(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want float64
	}{
		{"fewer than ten entries", 4, (1000 + 990 + 980 + 970) / 4.0},
		{"exactly ten entries", 10, 955}, // mean of 1000..910 step 10
		{"more than ten entries", 50, 955},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyze(t, board(tt.n, 1000, 10), nil, nil)
			if result.AvgKarmaTop10 != tt.want {
				t.Errorf("AvgKarmaTop10 = %v, want %v", result.AvgKarmaTop10, tt.want)
			}
		})
	}
}

func TestAvgKarmaTop10EmptyBoard(t *testing.T) {
	result := analyze(t, nil, nil, nil)
	if result.AvgKarmaTop10 != 0 {
		t.Errorf("AvgKarmaTop10 = %v, want 0", result.AvgKarmaTop10)
	}
}

func TestInfluencerCountFloor(t *testing.T) {
	// For any board of size >= 10, influencer count must be at least n/10.
	for _, n := range []int{10, 25, 50, 100} {
		result := analyze(t, board(n, 10000, 7), nil, nil)
		if got, floor := result.Network.InfluencerCount, n/10; got < floor {
			t.Errorf("n=%d: InfluencerCount = %d, want >= %d", n, got, floor)
		}
	}
}

func TestInfluencerCountSmallBoardKeepsCollectorValue(t *testing.T) {
	vis := &visualizationDoc{Metadata: NetworkStats{InfluencerCount: 3}}
	result := analyze(t, board(5, 100, 10), nil, vis)
	if result.Network.InfluencerCount != 3 {
		t.Errorf("InfluencerCount = %d, want 3 (collector value)", result.Network.InfluencerCount)
	}
}

func TestHeadlineStat(t *testing.T) {
	result := analyze(t, []LeaderboardEntry{
		{Name: "A", Karma: 100, Rank: 1},
		{Name: "B", Karma: 80, Rank: 2},
		{Name: "C", Karma: 50, Rank: 3},
	}, nil, nil)

	if got, want := result.HeadlineStat(), "A leads with 100 karma"; got != want {
		t.Errorf("HeadlineStat = %q, want %q", got, want)
	}
}

func TestHeadlineStatEmpty(t *testing.T) {
	result := analyze(t, nil, nil, nil)
	if got, want := result.HeadlineStat(), "Moltbook network analysis"; got != want {
		t.Errorf("HeadlineStat = %q, want %q", got, want)
	}
}

func TestTotalAgentsFallsBackToLeaderboardSize(t *testing.T) {
	result := analyze(t, board(17, 500, 5), nil, nil)
	if result.Network.TotalAgents != 17 {
		t.Errorf("TotalAgents = %d, want 17", result.Network.TotalAgents)
	}
}

func TestTotalAgentsKeepsVisualizationValue(t *testing.T) {
	vis := &visualizationDoc{Metadata: NetworkStats{TotalAgents: 240}}
	result := analyze(t, board(17, 500, 5), nil, vis)
	if result.Network.TotalAgents != 240 {
		t.Errorf("TotalAgents = %d, want 240", result.Network.TotalAgents)
	}
}

func TestTopAuthor(t *testing.T) {
	posts := []TopPost{
		{ID: "1", Title: "one", Author: "X", Upvotes: 50},
		{ID: "2", Title: "two", Author: "Y", Upvotes: 40},
		{ID: "3", Title: "three", Author: "X", Upvotes: 30},
		{ID: "4", Title: "four", Author: "X", Upvotes: 20},
	}
	result := analyze(t, nil, posts, nil)

	if result.TopAuthor != "X" {
		t.Errorf("TopAuthor = %q, want %q", result.TopAuthor, "X")
	}
	if result.TopAuthorPostCount != 3 {
		t.Errorf("TopAuthorPostCount = %d, want 3", result.TopAuthorPostCount)
	}
}

func TestTopAuthorTieBreaksOnFirstAppearance(t *testing.T) {
	posts := []TopPost{
		{ID: "1", Author: "Y", Upvotes: 50},
		{ID: "2", Author: "Z", Upvotes: 40},
		{ID: "3", Author: "Z", Upvotes: 30},
		{ID: "4", Author: "Y", Upvotes: 20},
	}
	result := analyze(t, nil, posts, nil)

	if result.TopAuthor != "Y" {
		t.Errorf("TopAuthor = %q, want %q (first to appear)", result.TopAuthor, "Y")
	}
}

func TestTopInfluencerDefaultsToLeader(t *testing.T) {
	result := analyze(t, board(12, 100, 1), nil, nil)
	if result.Network.TopInfluencer != "A" {
		t.Errorf("TopInfluencer = %q, want %q", result.Network.TopInfluencer, "A")
	}
}

func TestCommunitiesCappedAndNamed(t *testing.T) {
	vis := &visualizationDoc{
		Metadata: NetworkStats{CommunityCount: 2},
		Communities: []CommunityInfo{
			{ID: 0, Size: 12, TopAgents: []string{"a", "b", "c", "d", "e", "f", "g"}},
			{ID: 1, Name: "The Reef", Size: 8, TopAgents: []string{"x"}},
		},
	}
	result := analyze(t, nil, nil, vis)

	if len(result.Communities) != 2 {
		t.Fatalf("Communities = %d, want 2", len(result.Communities))
	}
	if result.Communities[0].Name != "Community 0" {
		t.Errorf("default name = %q, want %q", result.Communities[0].Name, "Community 0")
	}
	if len(result.Communities[0].TopAgents) != 5 {
		t.Errorf("TopAgents capped to %d, want 5", len(result.Communities[0].TopAgents))
	}
}

func TestMalformedJSONIsFatal(t *testing.T) {
	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, leaderboardFile), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New(dataDir, t.TempDir()).Analyze()
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidData) {
		t.Errorf("error code = %v, want INVALID_DATA", apperrors.GetCode(err))
	}
}

func TestSummarize(t *testing.T) {
	result := analyze(t,
		[]LeaderboardEntry{{Name: "Crusty", Karma: 4200, Rank: 1}},
		[]TopPost{{ID: "p1", Title: "molting szn", Author: "Crusty", Upvotes: 380}},
		&visualizationDoc{Metadata: NetworkStats{TotalAgents: 99, CommunityCount: 4, InfluencerCount: 9}},
	)

	s := result.Summarize()
	if s.TopAgent != "Crusty" || s.TopKarma != 4200 {
		t.Errorf("top agent = %q/%d", s.TopAgent, s.TopKarma)
	}
	if s.TotalAgents != 99 || s.Communities != 4 || s.InfluencerCount != 9 {
		t.Errorf("network stats = %+v", s)
	}
	if s.TopPostTitle != "molting szn" || s.TopPostUpvotes != 380 {
		t.Errorf("top post = %q/%d", s.TopPostTitle, s.TopPostUpvotes)
	}
}
