package vision

import (
	"math"

	"github.com/google/uuid"
)

// OpInitializeSource names the per-source initialization operation the
// refresh pass runs through the hook table.
const OpInitializeSource = "initializeVisionSource"

// TokenState is the derived vision state for one token after a refresh
// pass. It lives in the Tabletop's side table, never on the token
// itself, so host-owned token values stay untouched.
type TokenState struct {
	Res Resolution

	LOS         Polygon // unlimited line-of-sight polygon
	LOSLimited  Polygon // LOS clipped to the sight limit, when one applies
	FOV         Polygon // vision radius FOV
	FOVColor    Polygon // colour-preserving FOV
	FOVBrighten Polygon // dim-to-bright FOV

	Plan SourcePlan
}

// Tabletop is a headless scene: host-shaped state plus this module's
// side table of derived vision results. It mirrors the host's
// source-initialization pass without any rendering dependency, and is
// used by tests, the report tool and the demo alike.
type Tabletop struct {
	Scene  *Scene
	Tokens []*Token
	World  WorldSettings
	Hooks  *Hooks
	Trace  *Trace

	states          map[string]*TokenState
	globalLightPlan *SourcePlan
}

// tableOptionKind controls the pass in which an option is applied.
type tableOptionKind int

const (
	tableOptInfra tableOptionKind = iota // scene geometry, settings — applied first
	tableOptToken                        // add tokens — applied after the scene exists
)

// TableOption is a builder function applied to a Tabletop during
// construction.
type TableOption struct {
	kind tableOptionKind
	fn   func(*Tabletop)
}

// WithSceneSize sets the scene bounds in pixels.
func WithSceneSize(w, h float64) TableOption {
	return TableOption{tableOptInfra, func(tb *Tabletop) {
		tb.Scene.Rect = Rect{W: w, H: h}
	}}
}

// WithGrid sets pixels per square and scene units per square.
func WithGrid(gridSize, unitDistance float64) TableOption {
	return TableOption{tableOptInfra, func(tb *Tabletop) {
		tb.Scene.GridSize = gridSize
		tb.Scene.UnitDistance = unitDistance
	}}
}

// WithDarkness sets the scene darkness level (0..1).
func WithDarkness(level float64) TableOption {
	return TableOption{tableOptInfra, func(tb *Tabletop) {
		tb.Scene.Darkness = clamp(level, 0, 1)
	}}
}

// WithWall adds a sight-blocking segment.
func WithWall(x1, y1, x2, y2 float64) TableOption {
	return TableOption{tableOptInfra, func(tb *Tabletop) {
		tb.Scene.Walls = append(tb.Scene.Walls, Wall{x1, y1, x2, y2})
	}}
}

// WithSceneFlag sets a scene-level flag.
func WithSceneFlag(key string, value any) TableOption {
	return TableOption{tableOptInfra, func(tb *Tabletop) {
		tb.Scene.Flags[key] = value
	}}
}

// WithWorldSettings replaces the world settings.
func WithWorldSettings(ws WorldSettings) TableOption {
	return TableOption{tableOptInfra, func(tb *Tabletop) {
		tb.World = ws
	}}
}

// WithToken adds a sighted token. label is the lookup key for tests and
// reports; dim and bright are sight distances in scene units. The token
// footprint defaults to one grid square.
func WithToken(label string, x, y, dim, bright float64) TableOption {
	return TableOption{tableOptToken, func(tb *Tabletop) {
		size := tb.Scene.GridSize
		if size <= 0 {
			size = 100
		}
		tb.Tokens = append(tb.Tokens, &Token{
			ID:           uuid.NewString(),
			Label:        label,
			X:            x,
			Y:            y,
			Width:        size,
			Height:       size,
			DimSight:     dim,
			BrightSight:  bright,
			SightEnabled: true,
			Primary:      true,
			Flags:        FlagBag{},
		})
	}}
}

// WithTokenFlag sets a flag on the labelled token. Applied after tokens
// exist; an unknown label is ignored.
func WithTokenFlag(label, key string, value any) TableOption {
	return TableOption{tableOptToken, func(tb *Tabletop) {
		if tok := tb.Token(label); tok != nil {
			tok.Flags[key] = value
		}
	}}
}

// NewTabletop builds a headless scene from options. Infrastructure
// options apply before token options regardless of argument order.
func NewTabletop(opts ...TableOption) *Tabletop {
	tb := &Tabletop{
		Scene: &Scene{
			Rect:         Rect{W: 1000, H: 1000},
			GridSize:     100,
			UnitDistance: 5,
			Flags:        FlagBag{},
		},
		World:  DefaultWorldSettings(),
		Hooks:  NewHooks(),
		Trace:  NewTrace(),
		states: make(map[string]*TokenState),
	}
	for _, kind := range []tableOptionKind{tableOptInfra, tableOptToken} {
		for _, opt := range opts {
			if opt.kind == kind {
				opt.fn(tb)
			}
		}
	}
	return tb
}

// Token returns the token with the given label, or nil.
func (tb *Tabletop) Token(label string) *Token {
	for _, tok := range tb.Tokens {
		if tok.Label == label {
			return tok
		}
	}
	return nil
}

// State returns the side-table entry for a token ID, or nil before the
// first refresh.
func (tb *Tabletop) State(id string) *TokenState {
	return tb.states[id]
}

// StateOf returns the side-table entry for a labelled token, or nil.
func (tb *Tabletop) StateOf(label string) *TokenState {
	if tok := tb.Token(label); tok != nil {
		return tb.states[tok.ID]
	}
	return nil
}

// RefreshAll recomputes every token's derived vision state: radius
// resolution, LOS, FOV polygons and layer plan, in that order, one
// token at a time. Each token's initialization runs through the hook
// table under OpInitializeSource. The side-table entry is assigned only
// once the token's pass completes, so stale partial results are never
// observable. A fresh FOV cache is created per token per pass and
// discarded with it.
func (tb *Tabletop) RefreshAll() {
	tb.Trace.Reset()
	for _, tok := range tb.Tokens {
		tb.refreshToken(tok)
	}
	tb.refreshGlobalLight()
}

// refreshGlobalLight plans the scene's global illumination light. The
// global light is a placeholder source: it lights the whole scene at
// full brightness and must never draw a duplicate vision mesh.
func (tb *Tabletop) refreshGlobalLight() {
	if !tb.Scene.GlobalLight() {
		tb.globalLightPlan = nil
		return
	}
	src := &Source{
		BrightnessRatio:        1,
		GlobalLightPlaceholder: true,
	}
	plan := PlanSource(src, tb.Scene)
	tb.globalLightPlan = &plan
}

// GlobalLightPlan returns the layer plan for the scene's global light,
// when the scene has one switched on.
func (tb *Tabletop) GlobalLightPlan() (SourcePlan, bool) {
	if tb.globalLightPlan == nil {
		return SourcePlan{}, false
	}
	return *tb.globalLightPlan, true
}

func (tb *Tabletop) refreshToken(tok *Token) {
	tb.Hooks.Run(OpInitializeSource, tok, func() {
		res := ResolveTraced(tok, tb.Scene, tb.World, tb.Trace)

		origin := tok.Center()
		los := LOSPolygon(origin, tb.Scene.Rect, tb.Scene.Walls)
		sourceRadius := math.Max(res.Derived.Vision, res.Radii.MinRadius)
		cache := NewFOVCache(origin, tb.Scene.Rect, sourceRadius)

		state := &TokenState{Res: res, LOS: los}
		state.FOV = cache.ComputeFOV(res.Derived.Vision, los)
		state.FOVColor = cache.ComputeFOV(res.Derived.VisionColor, los)
		state.FOVBrighten = cache.ComputeFOV(res.Derived.VisionDimToBright, los)
		if res.Radii.HasSightLimit() {
			state.LOSLimited = cache.ComputeFOV(res.Radii.SightLimit, los)
		}

		src := &Source{
			Token:    tok,
			Res:      res,
			LOS:      los,
			Cache:    cache,
			IsVision: true,
		}
		state.Plan = PlanSource(src, tb.Scene)

		tb.states[tok.ID] = state
	})
}

// HasVisionSources reports whether any sighted token exists, which
// switches the global tint layers.
func (tb *Tabletop) HasVisionSources() bool {
	for _, tok := range tb.Tokens {
		if tok.SightEnabled {
			return true
		}
	}
	return false
}

// GlobalPlan returns the current full-screen layer decision.
func (tb *Tabletop) GlobalPlan() GlobalPlan {
	return PlanGlobalLayers(tb.HasVisionSources(), tb.World)
}
