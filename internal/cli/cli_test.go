package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/busse/molt-in-the-mist/internal/config"
	"github.com/busse/molt-in-the-mist/pkg/cache"
)

func newTestCLI() *CLI {
	return New(&bytes.Buffer{}, LogInfo)
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	want := []string{"generate", "analyze", "post", "preview", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache-test")

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join("/tmp/xdg-cache-test", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestNewByteCacheNone(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = "none"

	c := newByteCache(cfg)
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("backend none should select the null cache, got %T", c)
	}
}

func TestNewByteCacheFile(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()

	c := newByteCache(cfg)
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("default backend should select the file cache, got %T", c)
	}
}

func TestNewRunnerNotNil(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = "none"
	runner := newTestCLI().newRunner(cfg)
	if runner == nil {
		t.Fatal("newRunner returned nil")
	}
}
