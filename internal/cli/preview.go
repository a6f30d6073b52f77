package cli

import (
	"context"
	"encoding/json"
	"html/template"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/busse/molt-in-the-mist/pkg/carousel"
	"github.com/busse/molt-in-the-mist/pkg/errors"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	addr string // listen address
}

// previewCommand creates the preview command for browsing a generated run.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview [run-dir]",
		Short: "Serve a generated run directory over HTTP",
		Long: `Serve a generated run directory over HTTP for local inspection.

Without an argument the most recent run under the configured output base
is served. The index page lists each platform's cards and markdown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			dir := ""
			if len(args) == 1 {
				dir = args[0]
			} else {
				dir, err = latestRunDir(cfg.Output.Base)
				if err != nil {
					return err
				}
			}
			return c.runPreview(cmd.Context(), dir, opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "localhost:8612", "listen address")

	return cmd
}

// latestRunDir returns the newest timestamped run directory under base.
// Run directory names sort chronologically, so lexical order suffices.
func latestRunDir(base string) (string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "no runs under %s", base)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	if len(dirs) == 0 {
		return "", errors.New(errors.ErrCodeNotFound, "no runs under %s", base)
	}
	sort.Strings(dirs)
	return filepath.Join(base, dirs[len(dirs)-1]), nil
}

// runPreview serves dir until ctx is cancelled.
func (c *CLI) runPreview(ctx context.Context, dir, addr string) error {
	if _, err := os.Stat(dir); err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "run directory %s", dir)
	}

	srv := &http.Server{
		Addr:        addr,
		Handler:     previewRouter(dir),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printSuccess("Serving %s", dir)
	printFile("http://" + addr)
	printDetail("Ctrl+C to stop")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		c.Logger.Info("Preview server stopped")
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// runArtifacts is the JSON shape served at /api/run.
type runArtifacts struct {
	Dir       string                       `json:"dir"`
	Platforms map[string]platformArtifacts `json:"platforms"`
}

type platformArtifacts struct {
	Images   []string `json:"images"`
	Markdown string   `json:"markdown,omitempty"`
}

// previewRouter builds the chi router for a run directory.
func previewRouter(dir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		arts := collectArtifacts(dir)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTemplate.Execute(w, indexData{Dir: dir, Artifacts: arts}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	r.Get("/api/run", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(collectArtifacts(dir)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(dir))))

	return r
}

// collectArtifacts walks the run directory's platform subdirectories.
func collectArtifacts(dir string) runArtifacts {
	arts := runArtifacts{Dir: dir, Platforms: map[string]platformArtifacts{}}

	for _, platform := range carousel.Platforms() {
		sub := filepath.Join(dir, string(platform))
		entries, err := os.ReadDir(sub)
		if err != nil {
			continue
		}

		var pa platformArtifacts
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			rel := filepath.ToSlash(filepath.Join(string(platform), e.Name()))
			switch filepath.Ext(e.Name()) {
			case ".png":
				pa.Images = append(pa.Images, rel)
			case ".md":
				pa.Markdown = rel
			}
		}
		arts.Platforms[string(platform)] = pa
	}
	return arts
}

type indexData struct {
	Dir       string
	Artifacts runArtifacts
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<title>moltcarousel preview</title>
<style>
body { font-family: Georgia, serif; background: #FAF8F3; color: #141414; margin: 40px; }
h1 { border-bottom: 4px solid #E03C31; padding-bottom: 8px; }
h2 { text-transform: uppercase; letter-spacing: 0.05em; font-size: 14px; }
.cards { display: flex; flex-wrap: wrap; gap: 16px; }
.cards img { width: 260px; border: 1px solid #D8D2C4; }
a { color: #1F4E79; }
</style>
</head>
<body>
<h1>Molt in the Mist</h1>
<p>{{.Dir}}</p>
{{range $platform, $arts := .Artifacts.Platforms}}
<h2>{{$platform}}</h2>
{{if $arts.Markdown}}<p><a href="/files/{{$arts.Markdown}}">post.md</a></p>{{end}}
<div class="cards">
{{range $arts.Images}}<a href="/files/{{.}}"><img src="/files/{{.}}" loading="lazy"></a>
{{end}}
</div>
{{end}}
</body>
</html>
`))
