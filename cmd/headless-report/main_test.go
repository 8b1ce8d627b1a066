package main

import (
	"testing"

	"github.com/Garsondee/Dark-Vision/internal/vision"
)

func TestPresetName_KnownPreset(t *testing.T) {
	rs, _ := vision.Preset("dnd5e")
	if got := presetName(rs); got != "dnd5e" {
		t.Fatalf("expected dnd5e, got %q", got)
	}
}

func TestPresetName_CustomRuleSet(t *testing.T) {
	rs := vision.RuleSet{
		DimInDarkness:    vision.OutcomeSceneMono,
		DimInDimLight:    vision.OutcomeDim,
		BrightInDarkness: vision.OutcomeBright,
		BrightInDimLight: vision.OutcomeBright,
	}
	if got := presetName(rs); got != "custom" {
		t.Fatalf("expected custom, got %q", got)
	}
}

func TestLoadTabletop_BuiltInScene(t *testing.T) {
	tb, err := loadTabletop("")
	if err != nil {
		t.Fatalf("built-in scene: %v", err)
	}
	tb.RefreshAll()

	dv := tb.StateOf("darkvision")
	if dv == nil || dv.Res.Derived.Vision != 1250 {
		t.Fatalf("darkvision token state wrong: %+v", dv)
	}
	// dnd5e upgrades dim light to bright within the dim radius, so the
	// brighten polygon must exist.
	if len(dv.FOVBrighten) < 3 {
		t.Fatalf("darkvision token should have a dim-to-bright polygon, got %d vertices",
			len(dv.FOVBrighten))
	}
	limited := tb.StateOf("limited")
	if limited == nil || !limited.Res.Radii.HasSightLimit() {
		t.Fatal("limited token should carry a sight limit")
	}
}

func TestLoadTabletop_MissingFile(t *testing.T) {
	if _, err := loadTabletop("/no/such/scenario.yaml"); err == nil {
		t.Fatal("missing scenario file should error")
	}
}
