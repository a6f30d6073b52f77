// Package pipeline provides the analyze → render → markdown pipeline behind
// carousel generation.
//
// This package implements the complete run that the CLI and the preview
// server both drive. Centralizing it keeps behavior identical across entry
// points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Analyze: Load the Moltbook JSON exports and compute derived stats
//  2. Render: Draw the eight carousel cards per target platform
//  3. Markdown: Write the post.md document next to each platform's images
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(fonts, logger)
//	opts := pipeline.Options{
//	    DataDir:   "data",
//	    OutputDir: "output/threads-posts/2026-03-14-093000",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths := result.Images[carousel.PlatformThreads]
package pipeline

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
	"github.com/busse/molt-in-the-mist/pkg/carousel"
	"github.com/busse/molt-in-the-mist/pkg/errors"
)

// Defaults shared by the CLI and the preview server.
const (
	// DefaultDataDir is where the collector drops its JSON exports.
	DefaultDataDir = "data"

	// DefaultSiteDataDir is where the site build keeps visualization.json.
	DefaultSiteDataDir = "packages/site/public/data"

	// DefaultOutputBase is the parent for timestamped run directories.
	DefaultOutputBase = "output/threads-posts"

	// outputTimestampLayout names run directories.
	outputTimestampLayout = "2006-01-02-150405"
)

// Options contains all configuration for a pipeline run. The struct
// supports JSON serialization for preview server requests.
type Options struct {
	// Analyze options
	DataDir     string `json:"data_dir,omitempty"`
	SiteDataDir string `json:"site_data_dir,omitempty"`

	// Render options
	Platforms []carousel.Platform `json:"platforms,omitempty"`
	OutputDir string              `json:"output_dir,omitempty"`
	Timestamp string              `json:"timestamp,omitempty"` // masthead date override

	// Markdown options
	Headline string `json:"headline,omitempty"`

	// SkipImages renders no cards and writes markdown against placeholder
	// image names. Useful when iterating on copy.
	SkipImages bool `json:"skip_images,omitempty"`

	// Runtime options (not serialized)
	Palette *carousel.Palette `json:"-"`
	Logger  *log.Logger       `json:"-"`

	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.DataDir == "" {
		o.DataDir = DefaultDataDir
	}
	if o.SiteDataDir == "" {
		o.SiteDataDir = DefaultSiteDataDir
	}
	if o.OutputDir == "" {
		o.OutputDir = filepath.Join(DefaultOutputBase, time.Now().Format(outputTimestampLayout))
	}
	if len(o.Platforms) == 0 {
		o.Platforms = carousel.Platforms()
	}
	for _, p := range o.Platforms {
		if _, err := carousel.ParsePlatform(string(p)); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this run.
	RunID string

	// Analysis is the computed analysis result.
	Analysis *analysis.Result

	// OutputDir is the base directory all artifacts were written under.
	OutputDir string

	// Images maps each platform to its card paths, in carousel order.
	Images map[carousel.Platform][]string

	// Markdown maps each platform to its post.md path.
	Markdown map[carousel.Platform]string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LeaderboardEntries int
	TopPosts           int
	Communities        int
	CardCount          int

	AnalyzeTime  time.Duration
	RenderTime   time.Duration
	MarkdownTime time.Duration
}

// validatePlatform keeps error codes consistent when a caller bypasses
// ValidateAndSetDefaults.
func validatePlatform(p carousel.Platform) error {
	if _, err := carousel.ParsePlatform(string(p)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPlatform, err, "pipeline platform")
	}
	return nil
}
