package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/busse/molt-in-the-mist/internal/config"
	"github.com/busse/molt-in-the-mist/pkg/carousel"
	"github.com/busse/molt-in-the-mist/pkg/markdown"
	"github.com/busse/molt-in-the-mist/pkg/netviz"
	"github.com/busse/molt-in-the-mist/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	dataDir     string // collector export directory
	siteDataDir string // visualization.json directory
	outputDir   string // run directory (timestamped under output base if empty)
	platform    string // "threads", "linkedin", or "all"
	headline    string // markdown headline override
	timestamp   string // masthead date override
	skipImages  bool   // write markdown against placeholder image names
	interactive bool   // pick the headline from a list
	network     bool   // also export a community node-link SVG
}

// generateCommand creates the generate command, the full pipeline run.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Analyze the data exports and render carousel cards plus markdown",
		Long: `Analyze the Moltbook data exports and render a complete carousel run:
platform-sized card images and a ready-to-post markdown document per platform.

Examples:
  moltcarousel generate                          # all platforms, fresh timestamped run
  moltcarousel generate --platform threads       # single platform
  moltcarousel generate --interactive            # pick the headline from a list
  moltcarousel generate --skip-images            # markdown only, placeholder image names`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), cfg, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "data export directory")
	cmd.Flags().StringVar(&opts.siteDataDir, "site-data-dir", "", "visualization.json directory")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "run directory (default: timestamped under output base)")
	cmd.Flags().StringVarP(&opts.platform, "platform", "p", "all", "platform: threads, linkedin, or all")
	cmd.Flags().StringVar(&opts.headline, "headline", "", "headline override for the markdown document")
	cmd.Flags().StringVar(&opts.timestamp, "timestamp", "", "masthead date override (e.g. \"Mar 14, 2026\")")
	cmd.Flags().BoolVar(&opts.skipImages, "skip-images", false, "skip card rendering, write markdown only")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the headline interactively")
	cmd.Flags().BoolVar(&opts.network, "network", false, "also export a community node-link diagram")

	return cmd
}

// runGenerate executes the pipeline and prints the run summary.
func (c *CLI) runGenerate(ctx context.Context, cfg *config.Config, opts *generateOpts) error {
	ctx = withLogger(ctx, c.Logger)

	pipeOpts, err := buildPipelineOptions(cfg, opts, c.Logger)
	if err != nil {
		return err
	}

	runner := c.newRunner(cfg)

	if opts.interactive {
		headline, err := pickHeadline(ctx, runner, *pipeOpts)
		if err != nil {
			return err
		}
		if headline == "" {
			printInfo("Cancelled")
			return nil
		}
		pipeOpts.Headline = headline
	}

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, *pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d cards across %d platforms", result.Stats.CardCount, len(result.Images)))

	if opts.network {
		if err := exportNetwork(ctx, result); err != nil {
			return err
		}
	}

	printRunSummary(result)
	return nil
}

// buildPipelineOptions layers command flags over the config file.
func buildPipelineOptions(cfg *config.Config, opts *generateOpts, logger *log.Logger) (*pipeline.Options, error) {
	platforms, err := parsePlatforms(opts.platform)
	if err != nil {
		return nil, err
	}

	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = filepath.Join(cfg.Output.Base, time.Now().Format("2006-01-02-150405"))
	}

	dataDir := opts.dataDir
	if dataDir == "" {
		dataDir = cfg.Data.Dir
	}
	siteDataDir := opts.siteDataDir
	if siteDataDir == "" {
		siteDataDir = cfg.Data.SiteDir
	}

	palette := cfg.Palette

	return &pipeline.Options{
		DataDir:     dataDir,
		SiteDataDir: siteDataDir,
		OutputDir:   outputDir,
		Platforms:   platforms,
		Headline:    opts.headline,
		Timestamp:   opts.timestamp,
		SkipImages:  opts.skipImages,
		Palette:     &palette,
		Logger:      logger,
	}, nil
}

// parsePlatforms resolves the --platform flag. "all" or empty selects every
// platform.
func parsePlatforms(s string) ([]carousel.Platform, error) {
	if s == "" || s == "all" {
		return carousel.Platforms(), nil
	}
	p, err := carousel.ParsePlatform(s)
	if err != nil {
		return nil, err
	}
	return []carousel.Platform{p}, nil
}

// pickHeadline analyzes the data and runs the interactive headline picker.
// It returns empty when the user quits without selecting.
func pickHeadline(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (string, error) {
	res, err := runner.Analyze(ctx, opts)
	if err != nil {
		return "", err
	}

	model := newHeadlineListModel(markdown.HeadlineChoices(res))
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(headlineListModel); ok && m.Selected != "" {
		return m.Selected, nil
	}
	return "", nil
}

// exportNetwork writes the community node-link diagram next to the cards.
func exportNetwork(ctx context.Context, result *pipeline.Result) error {
	logger := loggerFromContext(ctx)

	dot := netviz.ToDOT(result.Analysis, netviz.Options{})
	path := filepath.Join(result.OutputDir, "network.svg")
	if err := netviz.WriteFile(ctx, dot, path); err != nil {
		return err
	}
	logger.Infof("Exported network diagram to %s", path)
	printFile(path)
	return nil
}

// printRunSummary prints the generated artifacts and suggested next steps.
func printRunSummary(result *pipeline.Result) {
	printNewline()
	printSuccess("Run complete")
	printRunStats(result.Stats.LeaderboardEntries, result.Stats.TopPosts, result.Stats.Communities)
	printNewline()

	for _, platform := range carousel.Platforms() {
		images, ok := result.Images[platform]
		if !ok {
			continue
		}
		printInfo("%s", platform)
		for _, img := range images {
			printFile(img)
		}
		if md, ok := result.Markdown[platform]; ok {
			printFile(md)
		}
	}

	printNewline()
	printNextStep("Preview the run", fmt.Sprintf("%s preview %s", appName, result.OutputDir))
	printNextStep("Publish it", fmt.Sprintf("%s post %s --live", appName, filepath.Join(result.OutputDir, "threads", "post.md")))
}
