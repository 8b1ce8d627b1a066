package vision

import "math"

// Scene holds the host-owned scene geometry and flags this module reads.
type Scene struct {
	Rect         Rect    // scene bounds in pixels
	GridSize     float64 // pixels per grid square
	UnitDistance float64 // scene distance units per grid square
	Darkness     float64 // global darkness level, 0 (day) .. 1 (pitch black)
	Walls        []Wall  // sight-blocking segments
	Flags        FlagBag
}

// Default illumination channel colours, used when a scene does not
// override them through its flags.
var (
	DefaultDaylightColor = RGB{R: 1, G: 1, B: 1}
	DefaultDarknessColor = RGB{R: 0.05, G: 0.05, B: 0.12}
)

// DaylightColor returns the scene's daylight channel colour. A malformed
// flag value reads as absent, like every other flag.
func (s *Scene) DaylightColor() RGB {
	if raw, ok := s.Flags.String(FlagDaylightColor); ok {
		if c, ok := ParseColor(raw); ok {
			return c
		}
	}
	return DefaultDaylightColor
}

// DarknessColor returns the scene's darkness channel colour.
func (s *Scene) DarknessColor() RGB {
	if raw, ok := s.Flags.String(FlagDarknessColor); ok {
		if c, ok := ParseColor(raw); ok {
			return c
		}
	}
	return DefaultDarknessColor
}

// GlobalLight reports whether the scene's global illumination light is
// switched on.
func (s *Scene) GlobalLight() bool {
	v, ok := s.Flags.Bool(FlagGlobalLight)
	return ok && v
}

// MaxRadius returns the largest radius any source in the scene can need:
// the scene diagonal. "Unlimited" vision is clamped to this rather than
// treated as literal infinity.
func (s *Scene) MaxRadius() float64 {
	return s.Rect.Diagonal()
}

// PixelRadius converts a sight distance in scene units to a pixel radius
// centred on the token: (units / unit distance) * grid size + half width.
// Zero units is zero pixels — the half-width offset applies only to an
// actual radius, matching the host's light-radius convention. A scene
// with no usable grid ratio yields zero rather than an invalid radius.
func (s *Scene) PixelRadius(units float64, tok *Token) float64 {
	if s.UnitDistance <= 0 || s.GridSize <= 0 {
		return 0
	}
	if units == 0 || math.IsNaN(units) || math.IsInf(units, 0) {
		return 0
	}
	return (units/s.UnitDistance)*s.GridSize + tok.HalfWidth()
}

// Token is the host-owned token state this module reads. Derived vision
// state is never stored on the token itself; it lives in a side table
// keyed by ID (see Tabletop).
type Token struct {
	ID           string
	Label        string
	X, Y         float64 // centre, pixels
	Width        float64 // footprint, pixels
	Height       float64 // footprint, pixels
	DimSight     float64 // scene units, signed (negative = unlimited)
	BrightSight  float64 // scene units, signed
	SightEnabled bool
	Primary      bool // false for preview/clone copies during drags
	Flags        FlagBag
}

// Center returns the token's centre point.
func (t *Token) Center() Point { return Point{t.X, t.Y} }

// HalfWidth returns half the smaller footprint dimension. This is the
// minimum radius a token's vision may collapse to.
func (t *Token) HalfWidth() float64 {
	w := t.Width
	if t.Height < w {
		w = t.Height
	}
	return w / 2
}

// WorldSettings are the module's world-level defaults, the last stop of
// every precedence chain. Values are stored in their settings-registry
// spelling (strings); an empty value means unset and yields the built-in
// fallback when read.
type WorldSettings struct {
	VisionRules string // default preset name, e.g. "fvtt", "dnd5e"

	// Branch defaults used when rules resolve to "custom" and neither
	// token nor scene supplies a branch. Outcome tag spellings
	// ("dim_mono", "bright", ...); unset or unparseable falls back to
	// "bright", the most permissive outcome.
	DimVisionInDarkness    string
	DimVisionInDimLight    string
	BrightVisionInDarkness string
	BrightVisionInDimLight string

	MonoVisionColor  string // hex or colour name; unset means white (off)
	ImprovedGMVision bool
}

// DefaultWorldSettings returns the shipped defaults: the Foundry-default
// rule set and white (disabled) monochrome tint.
func DefaultWorldSettings() WorldSettings {
	return WorldSettings{
		VisionRules:            "fvtt",
		DimVisionInDarkness:    "dim",
		DimVisionInDimLight:    "dim",
		BrightVisionInDarkness: "bright",
		BrightVisionInDimLight: "bright",
	}
}
