package vision

import (
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// RGB is a colour with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// White disables monochrome tinting.
var White = RGB{1, 1, 1}

// IsWhite reports whether the colour is (effectively) white.
func (c RGB) IsWhite() bool {
	const eps = 1e-9
	return c.R > 1-eps && c.G > 1-eps && c.B > 1-eps
}

// RGBA converts to an 8-bit colour for rendering.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp(c.R, 0, 1)*255 + 0.5),
		G: uint8(clamp(c.G, 0, 1)*255 + 0.5),
		B: uint8(clamp(c.B, 0, 1)*255 + 0.5),
		A: 255,
	}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: clamp(c.R, 0, 1), G: clamp(c.G, 0, 1), B: clamp(c.B, 0, 1)}
}

// Gray returns the luminance-preserving grayscale of c.
func (c RGB) Gray() RGB {
	h, _, l := c.colorful().Hsl()
	g := colorful.Hsl(h, 0, l)
	return RGB{g.R, g.G, g.B}
}

// Desaturate blends c toward its grayscale by amount in [0, 1];
// 0 leaves it unchanged, 1 is fully gray.
func (c RGB) Desaturate(amount float64) RGB {
	amount = clamp(amount, 0, 1)
	mixed := c.colorful().BlendRgb(c.Gray().colorful(), amount)
	return RGB{mixed.R, mixed.G, mixed.B}
}

// Multiply returns the channel-wise product, used to tint grayscale
// regions with a monochrome vision colour.
func (c RGB) Multiply(o RGB) RGB {
	return RGB{c.R * o.R, c.G * o.G, c.B * o.B}
}

// ParseColor parses "#rrggbb", "rrggbb" or an SVG colour name.
func ParseColor(s string) (RGB, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return RGB{}, false
	}
	hex := s
	if !strings.HasPrefix(hex, "#") {
		if named, ok := colornames.Map[hex]; ok {
			return RGB{
				R: float64(named.R) / 255,
				G: float64(named.G) / 255,
				B: float64(named.B) / 255,
			}, true
		}
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, false
	}
	return RGB{c.R, c.G, c.B}, true
}

// ResolveMonoColor resolves a token's monochrome vision tint: token flag
// → world setting → white. White means no tinting.
func ResolveMonoColor(tok *Token, world WorldSettings) RGB {
	if s, ok := tok.Flags.String(FlagMonoVisionColor); ok {
		if c, ok := ParseColor(s); ok {
			return c
		}
	}
	if c, ok := ParseColor(world.MonoVisionColor); ok {
		return c
	}
	return White
}
