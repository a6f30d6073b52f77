package carousel

import (
	"strings"

	apperrors "github.com/busse/molt-in-the-mist/pkg/errors"
)

// Platform identifies a target platform and its canvas size.
type Platform string

// Supported platforms.
const (
	PlatformThreads  Platform = "threads"  // 1:1 square
	PlatformLinkedIn Platform = "linkedin" // 4:5 portrait
)

// Spec describes a platform's image format for display and markdown output.
type Spec struct {
	Name        string
	Width       int
	Height      int
	AspectRatio string
	Notes       string
}

var specs = map[Platform]Spec{
	PlatformThreads: {
		Name:        "Threads",
		Width:       1080,
		Height:      1080,
		AspectRatio: "1:1 (square)",
		Notes:       "Optimal for Threads and Instagram carousels",
	},
	PlatformLinkedIn: {
		Name:        "LinkedIn",
		Width:       1080,
		Height:      1350,
		AspectRatio: "4:5 (portrait)",
		Notes:       "Optimal for LinkedIn carousel/document posts",
	},
}

// Platforms returns all supported platforms in fixed order.
func Platforms() []Platform {
	return []Platform{PlatformThreads, PlatformLinkedIn}
}

// ParsePlatform validates a platform string.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(s))
	if _, ok := specs[p]; !ok {
		return "", apperrors.New(apperrors.ErrCodeInvalidPlatform,
			"invalid platform: %q (must be 'threads' or 'linkedin')", s)
	}
	return p, nil
}

// Spec returns the platform's format description. Unknown platforms fall
// back to the Threads spec.
func (p Platform) Spec() Spec {
	if s, ok := specs[p]; ok {
		return s
	}
	return specs[PlatformThreads]
}

// Size returns the canvas dimensions in pixels.
func (p Platform) Size() (w, h int) {
	s := p.Spec()
	return s.Width, s.Height
}

// String returns the platform identifier.
func (p Platform) String() string { return string(p) }
