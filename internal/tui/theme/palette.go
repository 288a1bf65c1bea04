package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the lipgloss colours of a Theme plus the shades derived
// from subject colours.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Border      lipgloss.Color
	Session     lipgloss.Color
	Today       lipgloss.Color
	Warning     lipgloss.Color
	Success     lipgloss.Color
	Error       lipgloss.Color

	TextOnAccent lipgloss.Color
	TextOnToday  lipgloss.Color

	bg, fg rgb
	light  bool
}

// NewPalette derives a Palette from t. A nil theme uses the default one.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		if t, _ = Load(DefaultName); t == nil {
			t = &Theme{Name: DefaultName}
		}
	}
	th := *t
	th.applyDefaults()

	bg, _ := parseRGB(th.Bg)
	fg, _ := parseRGB(th.Fg)
	return &Palette{
		Bg:          Color(th.Bg),
		BgHighlight: Color(th.BgHighlight),
		BgSelection: Color(th.BgSelection),
		Fg:          Color(th.Fg),
		FgMuted:     Color(th.FgMuted),
		Accent:      Color(th.Accent),
		Border:      Color(th.Border),
		Session:     Color(th.Session),
		Today:       Color(th.Today),
		Warning:     Color(th.Warning),
		Success:     Color(th.Success),
		Error:       Color(th.Error),

		TextOnAccent: Color(readableOn(th.Accent, th.Bg, th.Fg)),
		TextOnToday:  Color(readableOn(th.Today, th.Bg, th.Fg)),

		bg:    bg,
		fg:    fg,
		light: bg.luminance() > 0.55,
	}
}

// IsLight reports whether the theme has a light background.
func (p *Palette) IsLight() bool { return p.light }

// BlockBg returns the background for a block of the given subject colour.
// Dark themes darken the colour and light themes wash it out.
func (p *Palette) BlockBg(hex string) lipgloss.Color {
	c, ok := parseRGB(hex)
	if !ok {
		return Color(hex)
	}
	if p.light {
		return Color(c.mix(p.bg, 0.75).String())
	}
	return Color(c.darken().String())
}

// BlockSelectedBg returns the background of the selected block.
func (p *Palette) BlockSelectedBg(hex string) lipgloss.Color {
	c, ok := parseRGB(string(p.BlockBg(hex)))
	if !ok {
		return Color(hex)
	}
	if p.light {
		return Color(c.mix(rgb{}, 0.10).String())
	}
	return Color(c.mix(rgb{255, 255, 255}, 0.30).String())
}

// BlockText returns the readable foreground on top of BlockBg(hex).
func (p *Palette) BlockText(hex string) lipgloss.Color {
	return Color(readableOn(string(p.BlockBg(hex)), p.fg.String(), p.bg.String()))
}

type rgb struct{ r, g, b int }

func parseRGB(hex string) (rgb, bool) {
	if len(hex) != 7 {
		return rgb{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return rgb{}, false
	}
	r, g, b := c.RGB255()
	return rgb{int(r), int(g), int(b)}, true
}

func (c rgb) color() colorful.Color {
	return colorful.Color{R: float64(c.r) / 255, G: float64(c.g) / 255, B: float64(c.b) / 255}
}

func (c rgb) String() string {
	return c.color().Hex()
}

// darken halves each channel, never going below 40 so blocks stay visible.
func (c rgb) darken() rgb {
	const floor = 40
	return rgb{max(c.r/2, floor), max(c.g/2, floor), max(c.b/2, floor)}
}

// mix moves c towards o by ratio, clamped to [0, 1].
func (c rgb) mix(o rgb, ratio float64) rgb {
	r, g, b := c.color().BlendRgb(o.color(), min(max(ratio, 0), 1)).Clamped().RGB255()
	return rgb{int(r), int(g), int(b)}
}

// luminance is the WCAG relative luminance.
func (c rgb) luminance() float64 {
	r, g, b := c.color().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func luminance(hex string) float64 {
	c, _ := parseRGB(hex)
	return c.luminance()
}

func contrast(a, b string) float64 {
	l1, l2 := luminance(a), luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// readableOn picks whichever of the two text colours contrasts more with bg.
func readableOn(bg, first, second string) string {
	if contrast(bg, first) >= contrast(bg, second) {
		return first
	}
	return second
}
