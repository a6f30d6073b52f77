package fontkit

import (
	"context"
	"testing"

	"github.com/busse/molt-in-the-mist/pkg/cache"
)

func TestFaceNeverNil(t *testing.T) {
	m := NewManager(Config{}, nil)

	face := m.Face(context.Background(), "definitely-not-installed-font", 24)
	if face == nil {
		t.Fatal("expected a face, got nil")
	}
}

func TestFaceCachedPerSize(t *testing.T) {
	m := NewManager(Config{}, nil)
	ctx := context.Background()

	a := m.Face(ctx, "no-such-font", 24)
	b := m.Face(ctx, "no-such-font", 24)
	if a != b {
		t.Error("expected the same face for repeated lookups")
	}
}

func TestUnparseableCachedBytesFallThrough(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "font:scratched", []byte("not a font"), 0); err != nil {
		t.Fatal(err)
	}

	m := NewManager(Config{}, c)
	if face := m.Face(ctx, "scratched", 16); face == nil {
		t.Fatal("expected a fallback face despite corrupt cached bytes")
	}
}

func TestParseFontRejectsGarbage(t *testing.T) {
	if f := parseFont([]byte("not a font")); f != nil {
		t.Error("expected nil for unparseable font data")
	}
}
