package vision

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the YAML document the headless report tool consumes: a
// scene, its tokens and optional world settings in one file.
type Scenario struct {
	Scene struct {
		Width    float64        `yaml:"width"`
		Height   float64        `yaml:"height"`
		Grid     float64        `yaml:"grid"`     // pixels per square
		Distance float64        `yaml:"distance"` // units per square
		Darkness float64        `yaml:"darkness"`
		Walls    [][4]float64   `yaml:"walls"` // x1, y1, x2, y2
		Flags    map[string]any `yaml:"flags"`
	} `yaml:"scene"`

	World struct {
		VisionRules            string `yaml:"visionRules"`
		DimVisionInDarkness    string `yaml:"dimVisionInDarkness"`
		DimVisionInDimLight    string `yaml:"dimVisionInDimLight"`
		BrightVisionInDarkness string `yaml:"brightVisionInDarkness"`
		BrightVisionInDimLight string `yaml:"brightVisionInDimLight"`
		MonoVisionColor        string `yaml:"monoVisionColor"`
		ImprovedGMVision       bool   `yaml:"improvedGMVision"`
	} `yaml:"world"`

	Tokens []struct {
		Label  string         `yaml:"label"`
		X      float64        `yaml:"x"`
		Y      float64        `yaml:"y"`
		Dim    float64        `yaml:"dim"`    // sight, scene units
		Bright float64        `yaml:"bright"` // sight, scene units
		Flags  map[string]any `yaml:"flags"`
	} `yaml:"tokens"`
}

// LoadScenario reads and builds a Tabletop from a YAML scenario file.
func LoadScenario(path string) (*Tabletop, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario builds a Tabletop from YAML scenario bytes. Omitted
// scene fields keep the harness defaults; omitted world settings keep
// the shipped defaults.
func ParseScenario(data []byte) (*Tabletop, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	var opts []TableOption
	if sc.Scene.Width > 0 && sc.Scene.Height > 0 {
		opts = append(opts, WithSceneSize(sc.Scene.Width, sc.Scene.Height))
	}
	if sc.Scene.Grid > 0 && sc.Scene.Distance > 0 {
		opts = append(opts, WithGrid(sc.Scene.Grid, sc.Scene.Distance))
	}
	opts = append(opts, WithDarkness(sc.Scene.Darkness))
	for _, w := range sc.Scene.Walls {
		opts = append(opts, WithWall(w[0], w[1], w[2], w[3]))
	}
	for k, v := range sc.Scene.Flags {
		opts = append(opts, WithSceneFlag(k, v))
	}

	world := DefaultWorldSettings()
	if sc.World.VisionRules != "" {
		world.VisionRules = sc.World.VisionRules
	}
	if sc.World.DimVisionInDarkness != "" {
		world.DimVisionInDarkness = sc.World.DimVisionInDarkness
	}
	if sc.World.DimVisionInDimLight != "" {
		world.DimVisionInDimLight = sc.World.DimVisionInDimLight
	}
	if sc.World.BrightVisionInDarkness != "" {
		world.BrightVisionInDarkness = sc.World.BrightVisionInDarkness
	}
	if sc.World.BrightVisionInDimLight != "" {
		world.BrightVisionInDimLight = sc.World.BrightVisionInDimLight
	}
	if sc.World.MonoVisionColor != "" {
		world.MonoVisionColor = sc.World.MonoVisionColor
	}
	world.ImprovedGMVision = sc.World.ImprovedGMVision
	opts = append(opts, WithWorldSettings(world))

	for i, t := range sc.Tokens {
		label := t.Label
		if label == "" {
			label = fmt.Sprintf("token-%d", i)
		}
		opts = append(opts, WithToken(label, t.X, t.Y, t.Dim, t.Bright))
		for k, v := range t.Flags {
			opts = append(opts, WithTokenFlag(label, k, v))
		}
	}

	return NewTabletop(opts...), nil
}
