package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/busse/molt-in-the-mist/pkg/analysis"
	"github.com/busse/molt-in-the-mist/pkg/markdown"
	"github.com/busse/molt-in-the-mist/pkg/pipeline"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	dataDir     string // collector export directory
	siteDataDir string // visualization.json directory
	output      string // JSON destination ("-" for stdout; empty prints human-readable)
}

// analyzeCommand creates the analyze command for inspecting the data exports
// without rendering anything.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Load the data exports and print the derived statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if opts.dataDir == "" {
				opts.dataDir = cfg.Data.Dir
			}
			if opts.siteDataDir == "" {
				opts.siteDataDir = cfg.Data.SiteDir
			}

			ctx := withLogger(cmd.Context(), c.Logger)
			runner := c.newRunner(cfg)
			res, err := runner.Analyze(ctx, pipeline.Options{
				DataDir:     opts.dataDir,
				SiteDataDir: opts.siteDataDir,
				Logger:      c.Logger,
			})
			if err != nil {
				return err
			}

			if opts.output != "" {
				return writeAnalysisJSON(res, opts.output)
			}
			printAnalysis(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "data export directory")
	cmd.Flags().StringVar(&opts.siteDataDir, "site-data-dir", "", "visualization.json directory")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the analysis as JSON (\"-\" for stdout)")

	return cmd
}

// printAnalysis prints the derived statistics in human-readable form.
func printAnalysis(res *analysis.Result) {
	printSuccess("%s", res.HeadlineStat())
	printRunStats(len(res.Leaderboard), len(res.TopPosts), len(res.Communities))
	printNewline()

	s := res.Summarize()
	printKeyValue("Top agent", s.TopAgent)
	printKeyValue("Top karma", humanize.Comma(int64(s.TopKarma)))
	printKeyValue("Total karma", humanize.Comma(int64(res.TotalKarma)))
	if res.AvgKarmaTop10 > 0 {
		printKeyValue("Avg top 10", fmt.Sprintf("%.0f", res.AvgKarmaTop10))
	}
	if res.Network.TotalAgents > 0 {
		printKeyValue("Agents", humanize.Comma(int64(res.Network.TotalAgents)))
	}
	if res.Network.CommunityCount > 0 {
		printKeyValue("Communities", fmt.Sprintf("%d", res.Network.CommunityCount))
	}
	if res.Network.InfluencerCount > 0 {
		printKeyValue("Influencers", fmt.Sprintf("%d", res.Network.InfluencerCount))
	}
	if res.Network.NetworkDensity > 0 {
		printKeyValue("Density", fmt.Sprintf("%.4f", res.Network.NetworkDensity))
	}
	if res.Network.Modularity > 0 {
		printKeyValue("Modularity", fmt.Sprintf("%.3f", res.Network.Modularity))
	}
	if s.TopPostTitle != "N/A" {
		printKeyValue("Top post", s.TopPostTitle)
		printKeyValue("Upvotes", humanize.Comma(int64(s.TopPostUpvotes)))
	}
	if res.TopAuthor != "" && res.TopAuthorPostCount > 1 {
		printKeyValue("Top author", fmt.Sprintf("%s (%d posts)", res.TopAuthor, res.TopAuthorPostCount))
	}

	printNewline()
	printDetail("%s", markdown.PlainSummary(res))
}

// writeAnalysisJSON serializes the analysis to path ("-" means stdout).
func writeAnalysisJSON(res *analysis.Result, path string) error {
	var out io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
