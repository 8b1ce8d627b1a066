package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Dark-Vision/internal/vision"
)

const (
	screenW = 1280
	screenH = 800
)

// tokenMoveSpeed is how fast the selected token moves, pixels per tick.
const tokenMoveSpeed = 4.0

// Game is the interactive demo: a walled scene with a few tokens whose
// presets, darkness level and positions can be changed live, with the
// full vision compositing pipeline re-run on every change.
type Game struct {
	tb       *vision.Tabletop
	comp     vision.Compositor
	stack    *LayerStack
	selected int
	dirty    bool // a scene/token change requires a refresh pass

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
	statusLine    string
}

// New builds the demo tabletop: a dark scene with interior walls and
// three tokens on different vision rules.
func New() *Game {
	tb := vision.NewTabletop(
		vision.WithSceneSize(screenW, screenH),
		vision.WithGrid(100, 5),
		vision.WithDarkness(0.9),
		vision.WithSceneFlag(vision.FlagDaylightColor, "#f4ead8"),
		vision.WithSceneFlag(vision.FlagDarknessColor, "#0c0e1e"),
		vision.WithWall(400, 120, 400, 420),
		vision.WithWall(400, 500, 400, 700),
		vision.WithWall(700, 260, 980, 260),
		vision.WithWall(840, 260, 840, 560),
		vision.WithToken("darkvision", 260, 300, 60, 0),
		vision.WithTokenFlag("darkvision", vision.FlagVisionRules, "dnd5e"),
		vision.WithTokenFlag("darkvision", vision.FlagMonoVisionColor, "#a0b8d8"),
		vision.WithToken("torchbearer", 620, 560, 20, 40),
		vision.WithToken("owl", 1040, 420, 0, 90),
		vision.WithTokenFlag("owl", vision.FlagVisionRules, "pf2e"),
	)
	tb.RefreshAll()

	return &Game{
		tb:       tb,
		stack:    NewLayerStack(screenW, screenH),
		dirty:    false,
		prevKeys: make(map[ebiten.Key]bool),
	}
}

func (g *Game) Layout(int, int) (int, int) { return screenW, screenH }

// pressed reports an edge-triggered key press.
func (g *Game) pressed(k ebiten.Key, current map[ebiten.Key]bool) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !g.prevKeys[k]
}

func (g *Game) Update() error {
	currentKeys := make(map[ebiten.Key]bool)
	tok := g.tb.Tokens[g.selected]

	// Token movement.
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		tok.Y -= tokenMoveSpeed
		g.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		tok.Y += tokenMoveSpeed
		g.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		tok.X -= tokenMoveSpeed
		g.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		tok.X += tokenMoveSpeed
		g.dirty = true
	}

	// Selection cycling.
	if g.pressed(ebiten.KeyTab, currentKeys) {
		g.selected = (g.selected + 1) % len(g.tb.Tokens)
		g.statusLine = "selected " + g.tb.Tokens[g.selected].Label
	}

	// Preset switching on the selected token.
	for i, key := range []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4} {
		if g.pressed(key, currentKeys) {
			preset := vision.PresetNames()[i]
			tok.Flags[vision.FlagVisionRules] = preset
			g.statusLine = tok.Label + " → " + preset
			g.dirty = true
		}
	}

	// Darkness level.
	if g.pressed(ebiten.KeyComma, currentKeys) {
		g.tb.Scene.Darkness = clampF(g.tb.Scene.Darkness - 0.1)
		g.dirty = true
	}
	if g.pressed(ebiten.KeyPeriod, currentKeys) {
		g.tb.Scene.Darkness = clampF(g.tb.Scene.Darkness + 0.1)
		g.dirty = true
	}

	// Sight toggle.
	if g.pressed(ebiten.KeyV, currentKeys) {
		tok.SightEnabled = !tok.SightEnabled
		g.dirty = true
	}

	// Copy the inspector report.
	if g.pressed(ebiten.KeyC, currentKeys) {
		if err := clipboard.WriteAll(g.report()); err != nil {
			g.statusLine = "clipboard: " + err.Error()
		} else {
			g.statusLine = "report copied"
		}
	}

	// Click-to-select.
	mouseLeft := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if mouseLeft && !g.prevMouseLeft {
		mx, my := ebiten.CursorPosition()
		g.selectNearest(float64(mx), float64(my))
	}
	g.prevMouseLeft = mouseLeft

	g.prevKeys = currentKeys

	if g.dirty {
		g.tb.RefreshAll()
		g.dirty = false
	}
	return nil
}

// selectNearest picks the token closest to the click.
func (g *Game) selectNearest(x, y float64) {
	bestDist := -1.0
	for i, tok := range g.tb.Tokens {
		d := tok.Center().Dist(vision.Point{X: x, Y: y})
		if bestDist < 0 || d < bestDist {
			bestDist = d
			g.selected = i
		}
	}
	g.statusLine = "selected " + g.tb.Tokens[g.selected].Label
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.stack.Compose(screen, g.tb, &g.comp)

	// Walls.
	for _, w := range g.tb.Scene.Walls {
		vector.StrokeLine(screen,
			float32(w.X1), float32(w.Y1), float32(w.X2), float32(w.Y2),
			3, color.RGBA{R: 150, G: 120, B: 90, A: 255}, true)
	}

	// Tokens.
	for i, tok := range g.tb.Tokens {
		c := color.RGBA{R: 90, G: 160, B: 220, A: 255}
		if i == g.selected {
			c = color.RGBA{R: 240, G: 200, B: 80, A: 255}
		}
		vector.FillCircle(screen, float32(tok.X), float32(tok.Y), float32(tok.HalfWidth())*0.4, c, true)
		vector.StrokeCircle(screen, float32(tok.X), float32(tok.Y), float32(tok.HalfWidth())*0.4, 1.5, color.RGBA{A: 255}, true)
	}

	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	tok := g.tb.Tokens[g.selected]
	st := g.tb.State(tok.ID)

	lines := []string{
		fmt.Sprintf("darkness %.1f   [,/.] adjust   [tab] next token   [1-4] preset   [v] sight   [c] copy report", g.tb.Scene.Darkness),
	}
	if st != nil {
		r := st.Res
		lines = append(lines,
			fmt.Sprintf("%s  rules(dark: dim=%s bright=%s)  dim=%.0f bright=%.0f",
				tok.Label, r.Rules.DimInDarkness, r.Rules.BrightInDarkness, r.Radii.Dim, r.Radii.Bright),
			fmt.Sprintf("vision=%.0f colour=%.0f dim→bright=%.0f  mono=%v",
				r.Derived.Vision, r.Derived.VisionColor, r.Derived.VisionDimToBright, !r.MonoColor.IsWhite()),
		)
	}
	if g.statusLine != "" {
		lines = append(lines, g.statusLine)
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+i*14)
	}
}

// report formats the full per-token resolution report for the
// clipboard.
func (g *Game) report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Vision Report (darkness %.1f) ===\n", g.tb.Scene.Darkness)
	for _, tok := range g.tb.Tokens {
		st := g.tb.State(tok.ID)
		if st == nil {
			continue
		}
		r := st.Res
		fmt.Fprintf(&b, "%-12s dim=%7.1f bright=%7.1f vision=%7.1f colour=%7.1f brighten=%7.1f\n",
			tok.Label, r.Radii.Dim, r.Radii.Bright,
			r.Derived.Vision, r.Derived.VisionColor, r.Derived.VisionDimToBright)
	}
	return b.String()
}
