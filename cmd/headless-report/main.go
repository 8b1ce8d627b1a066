package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Garsondee/Dark-Vision/internal/vision"
)

func main() {
	var scenario string
	var token string
	var trace bool

	flag.StringVar(&scenario, "scenario", "", "YAML scenario file (built-in demo scene when empty)")
	flag.StringVar(&token, "token", "", "limit the report to one token label")
	flag.BoolVar(&trace, "trace", false, "print per-token resolution trace entries")
	flag.Parse()

	tb, err := loadTabletop(scenario)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	tb.RefreshAll()

	fmt.Printf("=== Headless Vision Report ===\n")
	fmt.Printf("scene=%spx grid=%.0fpx/%.0funits darkness=%.2f walls=%d tokens=%d\n\n",
		fmt.Sprintf("%.0fx%.0f", tb.Scene.Rect.W, tb.Scene.Rect.H),
		tb.Scene.GridSize, tb.Scene.UnitDistance, tb.Scene.Darkness,
		len(tb.Scene.Walls), len(tb.Tokens))

	printHeader()
	for _, tok := range tb.Tokens {
		if token != "" && tok.Label != token {
			continue
		}
		printToken(tb, tok)
	}

	global := tb.GlobalPlan()
	_, globalLight := tb.GlobalLightPlan()
	fmt.Printf("\nglobal layers: improved_gm_vision=%v vision_tint=%v global_light=%v\n",
		global.ImprovedGMVision, global.VisionTint, globalLight)

	if trace {
		fmt.Printf("\n--- Trace ---\n")
		for _, e := range tb.Trace.Entries() {
			if token != "" && e.Token != token {
				continue
			}
			fmt.Println(e)
		}
	}
}

// loadTabletop reads the scenario file, or builds a small built-in demo
// scene when no file is given.
func loadTabletop(path string) (*vision.Tabletop, error) {
	if path != "" {
		return vision.LoadScenario(path)
	}
	return vision.NewTabletop(
		vision.WithSceneSize(2000, 1500),
		vision.WithGrid(100, 5),
		vision.WithDarkness(0.9),
		vision.WithWall(800, 200, 800, 900),
		vision.WithToken("darkvision", 400, 500, 60, 0),
		vision.WithTokenFlag("darkvision", vision.FlagVisionRules, "dnd5e"),
		vision.WithTokenFlag("darkvision", vision.FlagMonoVisionColor, "#a0b8d8"),
		vision.WithToken("limited", 1400, 700, 120, 0),
		vision.WithTokenFlag("limited", vision.FlagSightLimit, 30.0),
	), nil
}

// presetName maps a resolved rule set back to its preset name for the
// report, or "custom" when no shipped preset matches.
func presetName(rs vision.RuleSet) string {
	for _, name := range vision.PresetNames() {
		if preset, ok := vision.Preset(name); ok && preset == rs {
			return name
		}
	}
	return "custom"
}

func printHeader() {
	fmt.Printf("%-14s %-8s %9s %9s %9s %9s %9s %9s  %s\n",
		"token", "rules", "dim", "bright", "limit", "vision", "colour", "brighten", "layers")
	fmt.Println(strings.Repeat("-", 104))
}

func printToken(tb *vision.Tabletop, tok *vision.Token) {
	st := tb.State(tok.ID)
	if st == nil {
		fmt.Printf("%-14s (no state)\n", tok.Label)
		return
	}
	r := st.Res

	rules := presetName(r.Rules)

	limit := "-"
	if r.Radii.HasSightLimit() {
		limit = fmt.Sprintf("%.1f", r.Radii.SightLimit)
	}

	var layers []string
	if st.Plan.Vision.Visible {
		layers = append(layers, "vision("+st.Plan.Vision.Blend.String()+")")
	}
	if st.Plan.Desaturation != nil {
		layers = append(layers, fmt.Sprintf("desat(sat=%.2f)", st.Plan.Desaturation.Saturation))
	}
	if len(st.FOVBrighten) >= 3 {
		layers = append(layers, "brighten")
	}
	if len(layers) == 0 {
		layers = append(layers, "none")
	}

	fmt.Printf("%-14s %-8s %9.1f %9.1f %9s %9.1f %9.1f %9.1f  %s\n",
		tok.Label, rules, r.Radii.Dim, r.Radii.Bright, limit,
		r.Derived.Vision, r.Derived.VisionColor, r.Derived.VisionDimToBright,
		strings.Join(layers, " "))
}
