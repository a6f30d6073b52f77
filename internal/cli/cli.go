// Package cli implements the moltcarousel command-line interface.
//
// This package provides commands for analyzing Moltbook network exports,
// rendering carousel card images, publishing announcement posts, and
// previewing generated runs in a browser. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Run the full analyze, render, markdown pipeline
//   - analyze: Load the data exports and print the derived statistics
//   - post: Publish a generated post.md to Moltbook
//   - preview: Serve a generated run directory over HTTP
//   - cache: Manage the font download cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/busse/molt-in-the-mist/internal/config"
	"github.com/busse/molt-in-the-mist/pkg/buildinfo"
	"github.com/busse/molt-in-the-mist/pkg/cache"
	"github.com/busse/molt-in-the-mist/pkg/carousel/fontkit"
	"github.com/busse/molt-in-the-mist/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "moltcarousel"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the explicit --config value; empty means search the
	// default locations.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Moltcarousel turns Moltbook network data into social carousels",
		Long:         `Moltcarousel is a CLI tool that analyzes Moltbook leaderboard and network exports and renders them as platform-sized carousel card images with ready-to-post markdown.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: ./moltcarousel.toml)")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.postCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the effective configuration for a command invocation.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.ConfigPath)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Fonts resolve through the
// byte cache backend named in cfg.
func (c *CLI) newRunner(cfg *config.Config) *pipeline.Runner {
	fonts := fontkit.NewManager(fontkit.Config{
		Dirs: cfg.Fonts.Dirs,
		URLs: cfg.Fonts.URLs,
	}, newByteCache(cfg))
	return pipeline.NewRunner(fonts, c.Logger)
}

// newByteCache selects the cache backend from config. Backend failures
// degrade to the null cache so a broken cache never blocks a run.
func newByteCache(cfg *config.Config) cache.Cache {
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache()
	case "redis":
		rc, err := cache.NewRedisCache(context.Background(), cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			return cache.NewNullCache()
		}
		return rc
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache()
			}
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return cache.NewNullCache()
		}
		return fc
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/moltcarousel/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
