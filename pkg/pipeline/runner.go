package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
	"github.com/busse/molt-in-the-mist/pkg/carousel"
	"github.com/busse/molt-in-the-mist/pkg/carousel/fontkit"
	"github.com/busse/molt-in-the-mist/pkg/errors"
	"github.com/busse/molt-in-the-mist/pkg/markdown"
	"github.com/busse/molt-in-the-mist/pkg/observability"
)

// placeholderFiles stand in for card paths when image generation is
// skipped, so markdown still references the canonical filenames.
var placeholderFiles = []string{
	"01-narrative.png", "02-overview.png", "03-power-map.png",
	"04-hero.png", "05-leaderboard.png", "06-network.png",
	"07-top-post.png", "08-cta.png",
}

// Runner executes pipeline runs. It is stateless apart from the shared
// font manager and logger; multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Fonts  *fontkit.Manager
	Logger *log.Logger
}

// NewRunner creates a runner. A nil fonts manager gets an uncached default;
// a nil logger falls back to the package default.
func NewRunner(fonts *fontkit.Manager, logger *log.Logger) *Runner {
	if fonts == nil {
		fonts = fontkit.NewManager(fontkit.Config{}, nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Fonts: fonts, Logger: logger}
}

// Execute runs the complete analyze → render → markdown pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		OutputDir: opts.OutputDir,
		Images:    make(map[carousel.Platform][]string),
		Markdown:  make(map[carousel.Platform]string),
	}

	// Stage 1: Analyze
	analyzeStart := time.Now()
	res, err := r.Analyze(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.Analysis = res
	result.Stats.LeaderboardEntries = len(res.Leaderboard)
	result.Stats.TopPosts = len(res.TopPosts)
	result.Stats.Communities = len(res.Communities)

	if len(res.Leaderboard) == 0 {
		opts.Logger.Warn("no leaderboard data found", "data_dir", opts.DataDir)
	}
	if len(res.TopPosts) == 0 {
		opts.Logger.Warn("no top posts data found", "data_dir", opts.DataDir)
	}

	// Stage 2: Render per platform
	if opts.SkipImages {
		opts.Logger.Info("skipping image generation")
		paths := make([]string, len(placeholderFiles))
		for i, name := range placeholderFiles {
			paths[i] = filepath.Join(opts.OutputDir, string(carousel.PlatformThreads), name)
		}
		result.Images[carousel.PlatformThreads] = paths
	} else {
		renderStart := time.Now()
		for _, platform := range opts.Platforms {
			paths, err := r.Render(ctx, res, platform, opts)
			if err != nil {
				return nil, err
			}
			result.Images[platform] = paths
			result.Stats.CardCount += len(paths)
		}
		result.Stats.RenderTime = time.Since(renderStart)
	}

	// Stage 3: Markdown per platform
	markdownStart := time.Now()
	for platform, paths := range result.Images {
		path, err := r.WriteMarkdown(ctx, res, platform, paths, opts)
		if err != nil {
			return nil, err
		}
		result.Markdown[platform] = path
	}
	result.Stats.MarkdownTime = time.Since(markdownStart)

	opts.Logger.Info("pipeline complete",
		"run_id", result.RunID,
		"output_dir", result.OutputDir,
		"cards", result.Stats.CardCount)

	return result, nil
}

// Analyze runs only the analysis stage.
func (r *Runner) Analyze(ctx context.Context, opts Options) (*analysis.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, opts.DataDir)

	start := time.Now()
	res, err := analysis.New(opts.DataDir, opts.SiteDataDir).Analyze()
	duration := time.Since(start)

	entries := 0
	if res != nil {
		entries = len(res.Leaderboard)
	}
	hooks.OnAnalyzeComplete(ctx, opts.DataDir, entries, duration, err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("analysis complete",
		"entries", len(res.Leaderboard),
		"posts", len(res.TopPosts),
		"communities", len(res.Communities),
		"duration", duration)
	return res, nil
}

// Render draws the card set for one platform into its subdirectory.
func (r *Runner) Render(ctx context.Context, res *analysis.Result, platform carousel.Platform, opts Options) ([]string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
	}
	if err := validatePlatform(platform); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, string(platform))

	renderer := carousel.NewRenderer(carousel.Options{
		Platform:  platform,
		Palette:   opts.Palette,
		Fonts:     r.Fonts,
		Timestamp: opts.Timestamp,
	})

	start := time.Now()
	paths, err := renderer.GenerateAll(ctx, res, filepath.Join(opts.OutputDir, string(platform)))
	duration := time.Since(start)
	hooks.OnRenderComplete(ctx, string(platform), len(paths), duration, err)
	if err != nil {
		return nil, err
	}

	w, h := platform.Size()
	opts.Logger.Info("rendered cards",
		"platform", platform,
		"size", fmt.Sprintf("%dx%d", w, h),
		"images", len(paths),
		"duration", duration)
	return paths, nil
}

// WriteMarkdown writes the post.md for one platform.
func (r *Runner) WriteMarkdown(ctx context.Context, res *analysis.Result, platform carousel.Platform, imagePaths []string, opts Options) (string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnMarkdownStart(ctx, string(platform))

	start := time.Now()
	path, err := markdown.NewBuilder().Generate(res, imagePaths, filepath.Join(opts.OutputDir, string(platform)), markdown.Options{
		Headline: opts.Headline,
		Platform: platform,
	})
	duration := time.Since(start)
	hooks.OnMarkdownComplete(ctx, string(platform), duration, err)
	if err != nil {
		return "", err
	}

	opts.Logger.Info("wrote markdown", "platform", platform, "path", path)
	return path, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
