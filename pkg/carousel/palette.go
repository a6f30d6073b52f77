package carousel

// Palette is the editorial color scheme shared by all cards, matching the
// site stylesheet. Values are hex strings as understood by gg.SetHexColor.
type Palette struct {
	BgPaper   string `toml:"bg_paper"`
	BgSurface string `toml:"bg_surface"`
	BgInset   string `toml:"bg_inset"`

	Border       string `toml:"border"`
	BorderStrong string `toml:"border_strong"`

	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	TextTertiary  string `toml:"text_tertiary"`
	TextInverted  string `toml:"text_inverted"`

	AccentSignal string `toml:"accent_signal"` // Economist red
	AccentWarm   string `toml:"accent_warm"`   // NatGeo gold
	AccentDeep   string `toml:"accent_deep"`   // deep blue-gray
	Wayfinding   string `toml:"wayfinding"`    // pure black
}

// DefaultPalette returns the stock editorial palette.
func DefaultPalette() Palette {
	return Palette{
		BgPaper:   "#FAF7F2",
		BgSurface: "#F3EDE4",
		BgInset:   "#FFFFFF",

		Border:       "#D4CFC6",
		BorderStrong: "#1A1A1A",

		TextPrimary:   "#1A1A1A",
		TextSecondary: "#5C5C5C",
		TextTertiary:  "#8A8A8A",
		TextInverted:  "#FFFFFF",

		AccentSignal: "#E03C31",
		AccentWarm:   "#D4A853",
		AccentDeep:   "#2C3E50",
		Wayfinding:   "#000000",
	}
}

// Merge overlays non-empty fields from other onto p and returns the result.
// Used to apply config palette overrides without forcing a full palette.
func (p Palette) Merge(other Palette) Palette {
	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	merge(&p.BgPaper, other.BgPaper)
	merge(&p.BgSurface, other.BgSurface)
	merge(&p.BgInset, other.BgInset)
	merge(&p.Border, other.Border)
	merge(&p.BorderStrong, other.BorderStrong)
	merge(&p.TextPrimary, other.TextPrimary)
	merge(&p.TextSecondary, other.TextSecondary)
	merge(&p.TextTertiary, other.TextTertiary)
	merge(&p.TextInverted, other.TextInverted)
	merge(&p.AccentSignal, other.AccentSignal)
	merge(&p.AccentWarm, other.AccentWarm)
	merge(&p.AccentDeep, other.AccentDeep)
	merge(&p.Wayfinding, other.Wayfinding)
	return p
}
