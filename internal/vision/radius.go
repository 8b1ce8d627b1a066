package vision

import "math"

// RadiusSet is the resolver's light-emission output for one token, in
// pixels. Dim and Bright carry the global sign: a negative magnitude is
// the host's historical encoding for unlimited vision and is already
// clamped to the scene's maximum radius, so consumers may take the
// absolute value.
type RadiusSet struct {
	Dim        float64
	Bright     float64
	SightLimit float64 // pixels; negative when no limit applies
	MinRadius  float64 // half the token footprint
}

// HasSightLimit reports whether a sight limit is in force.
func (r RadiusSet) HasSightLimit() bool { return r.SightLimit >= 0 }

// DerivedRadii are the vision radii derived from the active rule set,
// always ≥ 0.
type DerivedRadii struct {
	// Vision is the radius of everything the token can see in
	// darkness, regardless of how it appears.
	Vision float64
	// VisionColor is the radius within which colour is preserved;
	// never exceeds Vision.
	VisionColor float64
	// VisionDimToBright is the radius within which dim light renders
	// as bright for this observer.
	VisionDimToBright float64
}

// Resolution is the complete per-token result of one resolver pass.
type Resolution struct {
	Radii     RadiusSet
	Derived   DerivedRadii
	Rules     RuleSet
	MonoColor RGB
	Unlimited bool // raw sight carried the negative "unlimited" sign
}

// Resolve computes a token's light-emission radii, derived vision radii,
// active rule set and monochrome tint from host state. It never fails:
// every malformed input resolves to a defined fallback, so one broken
// token cannot abort the refresh pass for the rest. Calling it twice
// with identical inputs yields identical output.
func Resolve(tok *Token, sc *Scene, world WorldSettings) Resolution {
	return ResolveTraced(tok, sc, world, nil)
}

// ResolveTraced is Resolve with an optional trace of intermediate
// decisions, recorded for the headless report tooling. tr may be nil.
func ResolveTraced(tok *Token, sc *Scene, world WorldSettings, tr *Trace) Resolution {
	maxR := sc.MaxRadius()
	minR := tok.HalfWidth()

	dimRaw := sanitize(tok.DimSight)
	brightRaw := sanitize(tok.BrightSight)

	// The host encodes unlimited vision as a negative sight value. The
	// sign of the smaller raw value becomes a global sign re-applied to
	// the emission outputs; all interim math runs on magnitudes.
	sign := 1.0
	if math.Min(dimRaw, brightRaw) < 0 {
		sign = -1
	}

	d := clamp(sc.PixelRadius(math.Abs(dimRaw), tok), 0, maxR)
	b := clamp(sc.PixelRadius(math.Abs(brightRaw), tok), 0, maxR)
	tr.Add(tok.Label, "radius", "pixel_dim", d)
	tr.Add(tok.Label, "radius", "pixel_bright", b)

	limit := -1.0
	if units, ok := tok.Flags.Number(FlagSightLimit); ok {
		limit = sc.PixelRadius(math.Abs(units), tok)
	} else if units, ok := sc.Flags.Number(FlagSightLimit); ok {
		limit = sc.PixelRadius(math.Abs(units), tok)
	}
	if limit >= 0 {
		limit = clamp(limit, minR, maxR)
		d = math.Min(d, limit)
		b = math.Min(b, limit)
		tr.Add(tok.Label, "radius", "sight_limit", limit)
	}

	rules := ResolveRules(tok, sc, world)
	tr.AddStr(tok.Label, "rules", "dim_in_darkness", rules.DimInDarkness.String())
	tr.AddStr(tok.Label, "rules", "bright_in_darkness", rules.BrightInDarkness.String())

	// Branch radii: the two dim-sight branches act at radius d, the two
	// bright-sight branches at radius b. Only the in-darkness branches
	// grant vision where no light reaches; the in-dim-light branches
	// only upgrade lighting that is already there.
	dimOut := math.Max(
		branch(rules.DimInDarkness.AsDim(), d),
		branch(rules.BrightInDarkness.AsDim(), b),
	)
	brightOut := math.Max(
		branch(rules.DimInDarkness.AsBright(), d),
		branch(rules.BrightInDarkness.AsBright(), b),
	)

	vision := math.Max(
		branch(rules.DimInDarkness.Lit(), d),
		branch(rules.BrightInDarkness.Lit(), b),
	)
	visionColor := math.Max(
		branch(rules.DimInDarkness.Lit() && !rules.DimInDarkness.Mono(), d),
		branch(rules.BrightInDarkness.Lit() && !rules.BrightInDarkness.Mono(), b),
	)
	dimToBright := math.Max(
		branch(rules.DimInDimLight.AsBright(), d),
		branch(rules.BrightInDimLight.AsBright(), b),
	)

	// A token must never end up entirely without an emission radius, or
	// downstream polygon code degenerates to a point.
	if dimOut == 0 && brightOut == 0 {
		dimOut = minR
		tr.Add(tok.Label, "radius", "forced_min", minR)
	}
	vision = math.Max(vision, math.Max(dimOut, brightOut))
	if visionColor > vision {
		visionColor = vision
	}

	tr.Add(tok.Label, "derived", "vision", vision)
	tr.Add(tok.Label, "derived", "vision_color", visionColor)
	tr.Add(tok.Label, "derived", "dim_to_bright", dimToBright)

	return Resolution{
		Radii: RadiusSet{
			Dim:        sign * dimOut,
			Bright:     sign * brightOut,
			SightLimit: limit,
			MinRadius:  minR,
		},
		Derived: DerivedRadii{
			Vision:            vision,
			VisionColor:       visionColor,
			VisionDimToBright: dimToBright,
		},
		Rules:     rules,
		MonoColor: ResolveMonoColor(tok, world),
		Unlimited: sign < 0,
	}
}

// branch returns r when the rule branch applies, else 0.
func branch(applies bool, r float64) float64 {
	if applies {
		return r
	}
	return 0
}

// sanitize maps NaN/Inf sight values to 0, the "not set" reading.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
