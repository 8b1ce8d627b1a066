package vision

// BlendMode is the blend semantics a layer's filter composes with.
type BlendMode uint8

const (
	// BlendNormal draws the layer over what is below.
	BlendNormal BlendMode = iota
	// BlendMax keeps the brighter of layer and backdrop per channel:
	// "this region is at least this bright".
	BlendMax
	// BlendMin keeps the darker of layer and backdrop per channel, for
	// darkness emitters.
	BlendMin
)

func (m BlendMode) String() string {
	switch m {
	case BlendMax:
		return "max"
	case BlendMin:
		return "min"
	default:
		return "normal"
	}
}

// MeshPlan decides one mesh layer's rendering: whether it draws at all,
// the blend filter applied, and the polygon mask clipped to, if any.
type MeshPlan struct {
	Visible bool
	Blend   BlendMode
	Mask    Polygon // nil means unmasked
}

// DesatPlan describes a monochrome desaturation region: the area inside
// Outer but outside Inner loses colour, tinted with Tint, scaled by the
// scene saturation level.
type DesatPlan struct {
	Inner      Polygon // colour-preserving FOV
	Outer      Polygon // full vision FOV
	Tint       RGB
	Saturation float64 // 0 = fully gray, 1 = untouched
}

// SourcePlan is the compositor's decision for one light or vision
// source: layer visibility, masks and blend filters the renderer applies
// verbatim.
type SourcePlan struct {
	// Vision is the vision-specific duplicate of the illumination
	// mesh. For vision emitters it is masked to the vision FOV; for
	// plain lights it lightens dark regions at partial brightness.
	Vision MeshPlan
	// Desaturation is non-nil when a monochrome region must render.
	Desaturation *DesatPlan
}

// Source is one emitter the compositor plans for.
type Source struct {
	Token *Token
	Res   Resolution
	LOS   Polygon
	Cache *FOVCache

	// IsVision distinguishes a token's sight from a plain placed light.
	IsVision bool
	// DarknessEmitter marks a source in the darkness emission state.
	DarknessEmitter bool
	// BrightnessRatio is the plain light's brightness in [0, 1].
	BrightnessRatio float64
	// GlobalLightPlaceholder marks the scene's no-op global light
	// stand-in, which must never draw a duplicate mesh.
	GlobalLightPlaceholder bool
}

// PlanSource decides the layer composition for one source.
//
// A vision emitter shows its duplicate mesh whenever sight is enabled
// and the derived vision radius is positive, masked to the vision FOV;
// the filter blends MIN while the source is in the darkness emission
// state and MAX otherwise. A plain light shows the duplicate only below
// full brightness (so partially bright lights still lighten fully dark
// regions without double-darkening lit ones), always with MAX.
func PlanSource(src *Source, sc *Scene) SourcePlan {
	var plan SourcePlan

	if src.IsVision {
		radius := src.Res.Derived.Vision
		plan.Vision.Visible = src.Token.SightEnabled && radius > 0
		if plan.Vision.Visible {
			plan.Vision.Mask = src.Cache.ComputeFOV(radius, src.LOS)
		}
		if src.DarknessEmitter {
			plan.Vision.Blend = BlendMin
		} else {
			plan.Vision.Blend = BlendMax
		}
		plan.Desaturation = planDesaturation(src, sc)
		return plan
	}

	plan.Vision.Visible = src.BrightnessRatio < 1 && !src.GlobalLightPlaceholder
	plan.Vision.Blend = BlendMax
	return plan
}

// planDesaturation derives the monochrome region for a vision source:
// the complement of the colour FOV within the main FOV. Nothing renders
// when the tint is white, the token is a preview copy, or colour vision
// already covers everything visible.
func planDesaturation(src *Source, sc *Scene) *DesatPlan {
	mono := src.Res.MonoColor
	if mono.IsWhite() || !src.Token.Primary {
		return nil
	}
	vision := src.Res.Derived.Vision
	colorR := src.Res.Derived.VisionColor
	if colorR >= vision || vision <= 0 {
		return nil
	}
	return &DesatPlan{
		Inner:      src.Cache.ComputeFOV(colorR, src.LOS),
		Outer:      src.Cache.ComputeFOV(vision, src.LOS),
		Tint:       mono,
		Saturation: SceneSaturation(sc),
	}
}

// SceneSaturation returns the scene's global colour saturation level.
// Unless a scene forces an explicit value, saturation follows darkness:
// a fully dark scene is fully desaturated.
func SceneSaturation(sc *Scene) float64 {
	if forced, ok := sc.Flags.Bool(FlagForceSaturation); ok && forced {
		if v, ok := sc.Flags.Number(FlagSaturation); ok {
			return clamp(v, 0, 1)
		}
	}
	return clamp(1-sc.Darkness, 0, 1)
}

// GlobalPlan decides the mutually exclusive full-screen tint layers.
type GlobalPlan struct {
	// ImprovedGMVision renders only while no vision source exists in
	// the scene and the world setting enables it.
	ImprovedGMVision bool
	// VisionTint renders whenever at least one vision source exists.
	VisionTint bool
}

// PlanGlobalLayers switches the full-screen layers on the presence of
// vision sources. The two are never visible together.
func PlanGlobalLayers(hasVisionSources bool, world WorldSettings) GlobalPlan {
	if hasVisionSources {
		return GlobalPlan{VisionTint: true}
	}
	return GlobalPlan{ImprovedGMVision: world.ImprovedGMVision}
}

// Compositor carries the per-scene compositing state that survives
// between passes: the grayscale conversions of the global illumination
// colours, recomputed only when the underlying colours actually change.
type Compositor struct {
	lastDaylight RGB
	lastDarkness RGB
	grayDaylight RGB
	grayDarkness RGB
	haveGray     bool

	recomputes int
}

// IlluminationColors returns the grayscale daylight and darkness colours
// for the current channel configuration, converting only when either
// input changed since the previous call.
func (c *Compositor) IlluminationColors(daylight, darkness RGB) (grayDay, grayDark RGB) {
	if !c.haveGray || daylight != c.lastDaylight || darkness != c.lastDarkness {
		c.grayDaylight = daylight.Gray()
		c.grayDarkness = darkness.Gray()
		c.lastDaylight = daylight
		c.lastDarkness = darkness
		c.haveGray = true
		c.recomputes++
	}
	return c.grayDaylight, c.grayDarkness
}

// Recomputes reports how many grayscale conversions have run, for tests
// asserting the conversion is not repeated per frame.
func (c *Compositor) Recomputes() int { return c.recomputes }
