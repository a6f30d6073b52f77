package cli

import (
	"strings"
	"testing"

	"github.com/busse/molt-in-the-mist/internal/config"
	"github.com/busse/molt-in-the-mist/pkg/carousel"
)

func TestParsePlatforms(t *testing.T) {
	tests := []struct {
		input   string
		want    []carousel.Platform
		wantErr bool
	}{
		{input: "", want: carousel.Platforms()},
		{input: "all", want: carousel.Platforms()},
		{input: "threads", want: []carousel.Platform{carousel.PlatformThreads}},
		{input: "linkedin", want: []carousel.Platform{carousel.PlatformLinkedIn}},
		{input: "mastodon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePlatforms(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parsePlatforms(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePlatforms(%q): %v", tt.input, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d platforms, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("platform[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildPipelineOptionsFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Dir = "config-data"
	cfg.Output.Base = "config-output"

	opts := &generateOpts{
		dataDir:   "flag-data",
		outputDir: "flag-output/run",
		platform:  "threads",
		headline:  "Custom headline",
	}

	pipeOpts, err := buildPipelineOptions(cfg, opts, nil)
	if err != nil {
		t.Fatal(err)
	}

	if pipeOpts.DataDir != "flag-data" {
		t.Errorf("DataDir = %q, want flag value", pipeOpts.DataDir)
	}
	if pipeOpts.SiteDataDir != cfg.Data.SiteDir {
		t.Errorf("SiteDataDir = %q, want config value", pipeOpts.SiteDataDir)
	}
	if pipeOpts.OutputDir != "flag-output/run" {
		t.Errorf("OutputDir = %q, want flag value", pipeOpts.OutputDir)
	}
	if pipeOpts.Headline != "Custom headline" {
		t.Errorf("Headline = %q", pipeOpts.Headline)
	}
	if len(pipeOpts.Platforms) != 1 || pipeOpts.Platforms[0] != carousel.PlatformThreads {
		t.Errorf("Platforms = %v, want [threads]", pipeOpts.Platforms)
	}
}

func TestBuildPipelineOptionsTimestampedOutput(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Base = "runs"

	pipeOpts, err := buildPipelineOptions(cfg, &generateOpts{platform: "all"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(pipeOpts.OutputDir, "runs") {
		t.Errorf("OutputDir = %q, want under configured base", pipeOpts.OutputDir)
	}
	if pipeOpts.OutputDir == "runs" {
		t.Error("OutputDir should carry a timestamped subdirectory")
	}
}
