package chart

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// qualitativePalette is the 12-hue Set3 palette used for pie wedges when the
// request carries no colors.
var qualitativePalette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// ParseColor accepts SVG color names ("steelblue") and hex codes ("#4682b4",
// "#48b").
func ParseColor(s string) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, false
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, false
		}
		return c.Clamped(), true
	}
	c, ok := colornames.Map[s]
	if !ok {
		return nil, false
	}
	return c, true
}

func paletteColor(i int) color.Color {
	return namedColor(qualitativePalette[i%len(qualitativePalette)])
}

// wedgeColors resolves one fill color per wedge. A shorter list cycles and an
// unknown name falls back to the palette entry at that position.
func wedgeColors(requested []string, n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		if len(requested) > 0 {
			if c, ok := ParseColor(requested[i%len(requested)]); ok {
				out[i] = c
				continue
			}
		}
		out[i] = paletteColor(i)
	}
	return out
}

func colorOr(name, fallback string) color.Color {
	if c, ok := ParseColor(name); ok {
		return c
	}
	return namedColor(fallback)
}

func namedColor(name string) color.Color {
	c, _ := ParseColor(name)
	return c
}

// withAlpha returns c with its opacity scaled to alpha (0-1).
func withAlpha(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*alpha + 0.5)
	return n
}

// Luminance approximates perceived brightness of c as
// 0.299R + 0.587G + 0.114B over channels normalized to 0-1.
func Luminance(c color.Color) float64 {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return 1
	}
	return 0.299*cf.R + 0.587*cf.G + 0.114*cf.B
}

// TextColorFor picks black text above a luminance of 0.5 and white text at or
// below it.
func TextColorFor(luminance float64) color.Color {
	if luminance > 0.5 {
		return color.Black
	}
	return color.White
}

// ContrastTextColor returns the label color for text drawn on bg.
func ContrastTextColor(bg color.Color) color.Color {
	return TextColorFor(Luminance(bg))
}
