package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Dark-Vision/internal/vision"
)

// meshUniforms are the per-mesh illumination colours. The vision
// duplicate mesh mirrors the base mesh's uniforms through observables;
// its darkness uniform is excluded from the sync because vision regions
// keep their own darkness treatment.
type meshUniforms struct {
	daylight vision.RGB
	darkness vision.RGB
}

// channelSync mirrors the global illumination colours into both meshes'
// uniforms through observables, honouring the vision mesh's darkness
// exclusion. It carries no rendering state of its own.
type channelSync struct {
	illumMesh  meshUniforms
	visionMesh meshUniforms

	daylightObs *vision.Observable[vision.RGB]
	darknessObs *vision.Observable[vision.RGB]
}

func newChannelSync() *channelSync {
	cs := &channelSync{
		daylightObs: vision.NewObservable(vision.DefaultDaylightColor),
		darknessObs: vision.NewObservable(vision.DefaultDarknessColor),
	}
	cs.daylightObs.Subscribe("illum", func(c vision.RGB) { cs.illumMesh.daylight = c })
	cs.daylightObs.Subscribe("vision", func(c vision.RGB) { cs.visionMesh.daylight = c })
	cs.darknessObs.Subscribe("illum", func(c vision.RGB) { cs.illumMesh.darkness = c })
	cs.darknessObs.Exclude("vision")
	cs.darknessObs.Subscribe("vision", func(c vision.RGB) { cs.visionMesh.darkness = c })
	// Excluded from the sync, the vision mesh carries its own darkness
	// colour.
	cs.visionMesh.darkness = vision.RGB{R: 0.1, G: 0.1, B: 0.2}
	return cs
}

// set updates the global daylight/darkness colours. Writes propagate to
// both meshes' uniforms, minus the exclusions; an unchanged value is a
// no-op and notifies nobody.
func (cs *channelSync) set(daylight, darkness vision.RGB) {
	cs.daylightObs.Set(daylight)
	cs.darknessObs.Set(darkness)
}

// applyScene reads the scene's illumination colour flags into the
// uniforms. Called once per frame; the observables swallow unchanged
// values, so downstream recomputation happens only on an actual edit.
func (cs *channelSync) applyScene(sc *vision.Scene) {
	cs.set(sc.DaylightColor(), sc.DarknessColor())
}

// LayerStack owns the offscreen buffers the compositor plans render
// into. Drawing every region into a buffer first and compositing the
// buffer once keeps overlapping polygons from blowing out additively.
type LayerStack struct {
	*channelSync

	illumBuf  *ebiten.Image // base illumination layer
	visionBuf *ebiten.Image // vision-duplicate layer
	scratch   *ebiten.Image // per-source polygon scratch
	desatBuf  *ebiten.Image // monochrome desaturation layer
}

// NewLayerStack creates buffers covering a w x h pixel scene.
func NewLayerStack(w, h int) *LayerStack {
	return &LayerStack{
		channelSync: newChannelSync(),
		illumBuf:    ebiten.NewImage(w, h),
		visionBuf:   ebiten.NewImage(w, h),
		scratch:     ebiten.NewImage(w, h),
		desatBuf:    ebiten.NewImage(w, h),
	}
}

// SetChannelColors updates the global daylight/darkness colours directly,
// bypassing scene flags.
func (s *LayerStack) SetChannelColors(daylight, darkness vision.RGB) {
	s.set(daylight, darkness)
}

// fillPolygon fills a closed polygon into dst.
func fillPolygon(dst *ebiten.Image, poly vision.Polygon, clr color.Color) {
	if len(poly) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, pt := range poly[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	path.Close()

	r, g, b, a := clr.RGBA()
	var opts vector.DrawPathOptions
	opts.AntiAlias = true
	opts.ColorScale.Scale(
		float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff)
	vector.FillPath(dst, &path, &vector.FillOptions{}, &opts)
}

// Compose renders one frame of vision compositing for the tabletop onto
// screen: darkness base, per-token vision meshes with their planned
// blend filters and masks, monochrome desaturation regions, then the
// global tint layer.
func (s *LayerStack) Compose(screen *ebiten.Image, tb *vision.Tabletop, comp *vision.Compositor) {
	s.applyScene(tb.Scene)
	grayDay, grayDark := comp.IlluminationColors(s.illumMesh.daylight, s.illumMesh.darkness)

	// Base darkness: the scene colour faded toward black by darkness
	// level.
	s.illumBuf.Clear()
	base := s.illumMesh.daylight.Desaturate(tb.Scene.Darkness)
	dk := tb.Scene.Darkness
	s.illumBuf.Fill(color.RGBA{
		R: lerp8(base.R, s.illumMesh.darkness.R, dk),
		G: lerp8(base.G, s.illumMesh.darkness.G, dk),
		B: lerp8(base.B, s.illumMesh.darkness.B, dk),
		A: 255,
	})

	// Vision meshes, one source at a time, each through its planned
	// blend so overlaps compose as at-least-this-bright (or the MIN
	// inverse for darkness emitters).
	s.visionBuf.Clear()
	for _, tok := range tb.Tokens {
		st := tb.State(tok.ID)
		if st == nil || !st.Plan.Vision.Visible {
			continue
		}
		s.scratch.Clear()
		mask := st.Plan.Vision.Mask
		if mask == nil {
			mask = st.LOS
		}
		// Vision regions light up in the mesh's own daylight colour,
		// warmed slightly.
		fill := s.visionMesh.daylight.Multiply(vision.RGB{R: 1, G: 0.96, B: 0.84})
		fillPolygon(s.scratch, mask, fill.RGBA())

		// The dim-to-bright region renders at the full daylight colour on
		// top, upgrading dim illumination to bright inside it.
		if brighten := brightenMask(st); brighten != nil {
			fillPolygon(s.scratch, brighten, s.visionMesh.daylight.RGBA())
		}

		var opts ebiten.DrawImageOptions
		opts.Blend = BlendFor(st.Plan.Vision.Blend)
		s.visionBuf.DrawImage(s.scratch, &opts)
	}

	// Desaturation regions: the colour-FOV complement, tinted.
	s.desatBuf.Clear()
	anyDesat := false
	for _, tok := range tb.Tokens {
		st := tb.State(tok.ID)
		if st == nil || st.Plan.Desaturation == nil {
			continue
		}
		d := st.Plan.Desaturation
		tint := grayDark.Multiply(d.Tint)
		fillPolygon(s.desatBuf, d.Outer, tint.RGBA())
		// Carve the colour-preserving interior back out.
		s.scratch.Clear()
		fillPolygon(s.scratch, d.Inner, color.White)
		var clear ebiten.DrawImageOptions
		clear.Blend = ebiten.BlendClear
		s.desatBuf.DrawImage(s.scratch, &clear)
		anyDesat = true
	}

	// Composite: darkness base, then vision lifting it, then the
	// desaturation overlay.
	screen.DrawImage(s.illumBuf, nil)

	var lift ebiten.DrawImageOptions
	lift.Blend = blendMax
	lift.ColorScale.ScaleAlpha(float32(1 - tb.Scene.Darkness*0.2))
	screen.DrawImage(s.visionBuf, &lift)

	if anyDesat {
		var overlay ebiten.DrawImageOptions
		sat := vision.SceneSaturation(tb.Scene)
		overlay.ColorScale.ScaleAlpha(float32((1 - sat) * 0.85))
		screen.DrawImage(s.desatBuf, &overlay)
	}

	// Global full-screen layer: GM improvement or the vision tint,
	// never both.
	global := tb.GlobalPlan()
	switch {
	case global.ImprovedGMVision:
		var gm ebiten.DrawImageOptions
		gm.Blend = blendMax
		s.scratch.Clear()
		s.scratch.Fill(grayDay.Desaturate(0.4).RGBA())
		screen.DrawImage(s.scratch, &gm)
	case global.VisionTint:
		// The vision mesh keeps its own darkness colour (excluded from
		// the uniform sync); the full-screen tint uses it.
		tint := s.visionMesh.darkness
		s.scratch.Clear()
		s.scratch.Fill(color.RGBA{
			R: uint8(clampF(tint.R) * 40),
			G: uint8(clampF(tint.G) * 40),
			B: uint8(clampF(tint.B) * 40),
			A: 40,
		})
		screen.DrawImage(s.scratch, nil)
	}
}

// brightenMask returns the dim-to-bright polygon to brighten for a
// token, or nil when the token has none or its vision mesh is hidden.
func brightenMask(st *vision.TokenState) vision.Polygon {
	if st == nil || !st.Plan.Vision.Visible || len(st.FOVBrighten) < 3 {
		return nil
	}
	return st.FOVBrighten
}

// clampF limits a channel to [0, 1].
func clampF(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp8 linearly interpolates two unit channels into an 8-bit value.
func lerp8(a, b, t float64) uint8 {
	v := a + (b-a)*t
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
