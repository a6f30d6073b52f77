// Package fontkit resolves named fonts into font.Face values for card
// rendering. Resolution is best effort: a face is always returned, falling
// back through the byte cache, local font directories, configured download
// URLs, and system font lookup before settling on a built-in bitmap face.
package fontkit

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/busse/molt-in-the-mist/pkg/cache"
	"github.com/busse/molt-in-the-mist/pkg/httputil"
	"github.com/busse/molt-in-the-mist/pkg/observability"
)

// fallbackPaths are tried last, in order, when a named font cannot be found
// anywhere else.
var fallbackPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Georgia.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	`C:\Windows\Fonts\arial.ttf`,
}

// Config holds font resolution settings.
type Config struct {
	// Dirs are local directories searched for "<name>.ttf" before any
	// network or system lookup.
	Dirs []string

	// URLs maps font names to download URLs. Downloads are cached.
	URLs map[string]string
}

// Manager loads and caches fonts. Safe for use by a single render run;
// faces are cached per (name, size).
type Manager struct {
	cfg    Config
	cache  cache.Cache
	client *http.Client

	mu    sync.Mutex
	fonts map[string]*truetype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	name string
	size float64
}

// NewManager creates a font manager. A nil byte cache disables download
// caching (every run re-fetches configured URLs).
func NewManager(cfg Config, byteCache cache.Cache) *Manager {
	if byteCache == nil {
		byteCache = cache.NewNullCache()
	}
	return &Manager{
		cfg:    cfg,
		cache:  byteCache,
		client: httputil.NewHTTPClient(),
		fonts:  make(map[string]*truetype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

// Face returns a font face for the named font at the given size. Lookup
// never fails: when no source yields a parseable font, the built-in bitmap
// face is returned.
func (m *Manager) Face(ctx context.Context, name string, size float64) font.Face {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := faceKey{name: name, size: size}
	if face, ok := m.faces[key]; ok {
		return face
	}

	face := m.newFace(ctx, name, size)
	m.faces[key] = face
	return face
}

func (m *Manager) newFace(ctx context.Context, name string, size float64) font.Face {
	f := m.ensureFont(ctx, name)
	if f == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72})
}

// ensureFont resolves a named font to parsed truetype data, or nil when
// every source fails.
func (m *Manager) ensureFont(ctx context.Context, name string) *truetype.Font {
	if f, ok := m.fonts[name]; ok {
		return f
	}

	for _, load := range []func(context.Context, string) *truetype.Font{
		m.fromByteCache,
		m.fromLocalDirs,
		m.fromURL,
		m.fromSystem,
	} {
		if f := load(ctx, name); f != nil {
			m.fonts[name] = f
			return f
		}
	}

	// Cache the failure too so we don't retry every size.
	m.fonts[name] = nil
	return nil
}

func (m *Manager) fromByteCache(ctx context.Context, name string) *truetype.Font {
	data, hit, err := m.cache.Get(ctx, "font:"+name)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "font")
		return nil
	}
	observability.Cache().OnCacheHit(ctx, "font")
	return parseFont(data)
}

func (m *Manager) fromLocalDirs(ctx context.Context, name string) *truetype.Font {
	dirs := m.cfg.Dirs
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".local", "share", "fonts"),
			filepath.Join(home, "Library", "Fonts"),
		)
	}

	for _, dir := range dirs {
		data, err := os.ReadFile(filepath.Join(dir, name+".ttf"))
		if err != nil {
			continue
		}
		if f := parseFont(data); f != nil {
			return f
		}
	}
	return nil
}

func (m *Manager) fromURL(ctx context.Context, name string) *truetype.Font {
	url, ok := m.cfg.URLs[name]
	if !ok {
		return nil
	}

	data, err := httputil.Download(ctx, m.client, url)
	if err != nil {
		return nil
	}

	f := parseFont(data)
	if f != nil {
		if err := m.cache.Set(ctx, "font:"+name, data, 0); err == nil {
			observability.Cache().OnCacheSet(ctx, "font", len(data))
		}
	}
	return f
}

func (m *Manager) fromSystem(ctx context.Context, name string) *truetype.Font {
	if path, err := findfont.Find(name + ".ttf"); err == nil {
		if data, err := os.ReadFile(path); err == nil {
			if f := parseFont(data); f != nil {
				return f
			}
		}
	}

	for _, path := range fallbackPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if f := parseFont(data); f != nil {
			return f
		}
	}
	return nil
}

// parseFont parses TTF bytes, returning nil on any parse failure (e.g. a
// TTC collection the truetype package cannot read).
func parseFont(data []byte) *truetype.Font {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil
	}
	return f
}
