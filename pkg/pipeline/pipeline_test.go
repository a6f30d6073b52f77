package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/busse/molt-in-the-mist/pkg/carousel"
)

func writeTestData(t *testing.T) (dataDir, siteDir string) {
	t.Helper()
	dataDir = t.TempDir()
	siteDir = t.TempDir()

	board := []map[string]any{
		{"name": "Shelly", "karma": 4200, "rank": 1},
		{"name": "Pinch", "karma": 3100, "rank": 2},
		{"name": "Carapace", "karma": 2800, "rank": 3},
	}
	posts := []map[string]any{
		{"id": "p1", "title": "Molting season survival guide", "author": "Shelly", "upvotes": 812},
	}
	viz := map[string]any{
		"metadata": map[string]any{
			"total_agents":    120,
			"total_posts":     300,
			"community_count": 4,
			"network_density": 0.02,
			"modularity":      0.4,
		},
		"communities": []any{},
	}

	write := func(dir, name string, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(dataDir, "moltbook-leaderboard.json", board)
	write(dataDir, "moltbook-top-posts.json", posts)
	write(siteDir, "visualization.json", viz)
	return dataDir, siteDir
}

func TestExecuteFullRun(t *testing.T) {
	dataDir, siteDir := writeTestData(t)
	outDir := t.TempDir()

	runner := NewRunner(nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		DataDir:     dataDir,
		SiteDataDir: siteDir,
		OutputDir:   outDir,
		Platforms:   []carousel.Platform{carousel.PlatformThreads},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.RunID == "" {
		t.Error("expected a run ID")
	}
	if result.Stats.CardCount != 8 {
		t.Errorf("CardCount = %d, want 8", result.Stats.CardCount)
	}
	if len(result.Images[carousel.PlatformThreads]) != 8 {
		t.Fatalf("got %d images", len(result.Images[carousel.PlatformThreads]))
	}

	mdPath := result.Markdown[carousel.PlatformThreads]
	if filepath.Base(mdPath) != "post.md" {
		t.Errorf("markdown path = %q", mdPath)
	}
	if _, err := os.Stat(mdPath); err != nil {
		t.Errorf("post.md not written: %v", err)
	}

	if result.Stats.AnalyzeTime <= 0 {
		t.Error("AnalyzeTime should be recorded")
	}
	if result.Stats.RenderTime <= 0 {
		t.Error("RenderTime should be recorded")
	}
	if result.Stats.MarkdownTime <= 0 {
		t.Error("MarkdownTime should be recorded")
	}
}

func TestExecuteAllPlatformsByDefault(t *testing.T) {
	dataDir, siteDir := writeTestData(t)

	runner := NewRunner(nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		DataDir:     dataDir,
		SiteDataDir: siteDir,
		OutputDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Images) != 2 {
		t.Fatalf("got %d platforms, want 2", len(result.Images))
	}
	if result.Stats.CardCount != 16 {
		t.Errorf("CardCount = %d, want 16", result.Stats.CardCount)
	}
	for _, p := range carousel.Platforms() {
		if _, ok := result.Markdown[p]; !ok {
			t.Errorf("missing markdown for %s", p)
		}
	}
}

func TestExecuteSkipImages(t *testing.T) {
	dataDir, siteDir := writeTestData(t)
	outDir := t.TempDir()

	runner := NewRunner(nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		DataDir:     dataDir,
		SiteDataDir: siteDir,
		OutputDir:   outDir,
		SkipImages:  true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	paths := result.Images[carousel.PlatformThreads]
	if len(paths) != 8 {
		t.Fatalf("got %d placeholder paths", len(paths))
	}
	// Placeholders reference filenames only; no PNG is written.
	if _, err := os.Stat(paths[0]); !os.IsNotExist(err) {
		t.Error("expected placeholder image to not exist")
	}
	if _, err := os.Stat(result.Markdown[carousel.PlatformThreads]); err != nil {
		t.Errorf("post.md not written: %v", err)
	}
}

func TestExecuteInvalidPlatform(t *testing.T) {
	runner := NewRunner(nil, nil)
	_, err := runner.Execute(context.Background(), Options{
		OutputDir: t.TempDir(),
		Platforms: []carousel.Platform{"mastodon"},
	})
	if err == nil {
		t.Fatal("expected error for unknown platform")
	}
}

func TestExecuteMissingDataDirSucceeds(t *testing.T) {
	// Absent source files degrade to an empty analysis, not an error.
	runner := NewRunner(nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		DataDir:     filepath.Join(t.TempDir(), "nope"),
		SiteDataDir: filepath.Join(t.TempDir(), "nope"),
		OutputDir:   t.TempDir(),
		Platforms:   []carousel.Platform{carousel.PlatformThreads},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := result.Stats.LeaderboardEntries; got != 0 {
		t.Errorf("LeaderboardEntries = %d, want 0", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.DataDir != DefaultDataDir {
		t.Errorf("DataDir = %q", opts.DataDir)
	}
	if len(opts.Platforms) != 2 {
		t.Errorf("Platforms = %v", opts.Platforms)
	}
	if opts.OutputDir == "" {
		t.Error("expected timestamped output dir")
	}
}
