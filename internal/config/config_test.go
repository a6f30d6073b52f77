package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/busse/molt-in-the-mist/pkg/errors"
	"github.com/busse/molt-in-the-mist/pkg/pipeline"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Dir != pipeline.DefaultDataDir {
		t.Errorf("Data.Dir = %q, want %q", cfg.Data.Dir, pipeline.DefaultDataDir)
	}
	if cfg.Output.Base != pipeline.DefaultOutputBase {
		t.Errorf("Output.Base = %q, want %q", cfg.Output.Base, pipeline.DefaultOutputBase)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Moltbook.Submolt != "general" {
		t.Errorf("Moltbook.Submolt = %q, want general", cfg.Moltbook.Submolt)
	}
	if cfg.Palette.AccentSignal == "" {
		t.Error("Palette.AccentSignal should default to a non-empty color")
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	content := `
[data]
dir = "exports"

[output]
base = "out/runs"

[palette]
accent_signal = "#FF0000"

[cache]
backend = "redis"

[cache.redis]
addr = "redis.internal:6379"
db = 3

[moltbook]
submolt = "datascience"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Dir != "exports" {
		t.Errorf("Data.Dir = %q, want exports", cfg.Data.Dir)
	}
	// Unset fields keep their defaults.
	if cfg.Data.SiteDir != pipeline.DefaultSiteDataDir {
		t.Errorf("Data.SiteDir = %q, want default", cfg.Data.SiteDir)
	}
	if cfg.Output.Base != "out/runs" {
		t.Errorf("Output.Base = %q, want out/runs", cfg.Output.Base)
	}
	if cfg.Palette.AccentSignal != "#FF0000" {
		t.Errorf("Palette.AccentSignal = %q, want #FF0000", cfg.Palette.AccentSignal)
	}
	if cfg.Palette.BgPaper == "" {
		t.Error("Palette.BgPaper should keep its default when not overridden")
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Redis.Addr != "redis.internal:6379" || cfg.Cache.Redis.DB != 3 {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Moltbook.Submolt != "datascience" {
		t.Errorf("Moltbook.Submolt = %q, want datascience", cfg.Moltbook.Submolt)
	}
}

func TestLoadImplicitWorkingDirFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	content := "[data]\ndir = \"local-data\"\n"
	if err := os.WriteFile(defaultFileName, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Dir != "local-data" {
		t.Errorf("Data.Dir = %q, want local-data", cfg.Data.Dir)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[data\ndir ="), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed config file")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestConfigDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	got := configDir()
	want := filepath.Join("/tmp/xdg-test", appName)
	if got != want {
		t.Errorf("configDir() = %q, want %q", got, want)
	}
}
