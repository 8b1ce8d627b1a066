package vision

import "testing"

func TestTabletop_RefreshAll_FillsSideTable(t *testing.T) {
	tb := NewTabletop(
		WithSceneSize(2000, 1500),
		WithGrid(100, 5),
		WithToken("scout", 400, 400, 60, 0),
		WithTokenFlag("scout", FlagVisionRules, "dnd5e"),
		WithToken("guard", 1200, 800, 0, 30),
	)

	tb.RefreshAll()

	scout := tb.StateOf("scout")
	if scout == nil {
		t.Fatal("scout state missing after refresh")
	}
	if scout.Res.Derived.Vision != 1250 {
		t.Fatalf("scout vision radius %.2f, want 1250", scout.Res.Derived.Vision)
	}
	if scout.LOS.Empty() || scout.FOV.Empty() {
		t.Fatal("scout polygons missing")
	}
	guard := tb.StateOf("guard")
	if guard == nil || guard.FOV.Empty() {
		t.Fatal("guard state missing after refresh")
	}
	// Derived state never lands on the token itself.
	if len(tb.Token("scout").Flags) != 1 {
		t.Fatal("refresh must not write token flags")
	}
}

func TestTabletop_RefreshAll_SightLimitPolygon(t *testing.T) {
	tb := NewTabletop(
		WithToken("mole", 500, 500, 120, 0),
		WithTokenFlag("mole", FlagSightLimit, 30.0),
	)

	tb.RefreshAll()

	st := tb.StateOf("mole")
	if st.LOSLimited.Empty() {
		t.Fatal("sight-limited LOS polygon should be produced")
	}
	origin := tb.Token("mole").Center()
	for i, v := range st.LOSLimited {
		if origin.Dist(v) > st.Res.Radii.SightLimit+1e-9 {
			t.Fatalf("vertex %d beyond the sight limit: %.2f", i, origin.Dist(v))
		}
	}
}

func TestTabletop_Refresh_RunsThroughHookTable(t *testing.T) {
	tb := NewTabletop(WithToken("a", 300, 300, 30, 0))

	var ops []string
	tb.Hooks.Before(OpInitializeSource, func(_ string, subject any) {
		tok := subject.(*Token)
		ops = append(ops, "before:"+tok.Label)
	})
	tb.Hooks.After(OpInitializeSource, func(_ string, subject any) {
		tok := subject.(*Token)
		// The side-table entry exists by the time after-hooks run.
		if tb.State(tok.ID) == nil {
			t.Error("state not assigned before after-hook")
		}
		ops = append(ops, "after:"+tok.Label)
	})

	tb.RefreshAll()

	if len(ops) != 2 || ops[0] != "before:a" || ops[1] != "after:a" {
		t.Fatalf("hook sequence wrong: %v", ops)
	}
}

func TestTabletop_Refresh_RecordsTrace(t *testing.T) {
	tb := NewTabletop(WithToken("a", 300, 300, 60, 0))

	tb.RefreshAll()

	if len(tb.Trace.Filter("a", "derived")) == 0 {
		t.Fatal("refresh should trace derived radii")
	}

	// A second pass replaces, not appends.
	n := len(tb.Trace.Entries())
	tb.RefreshAll()
	if len(tb.Trace.Entries()) != n {
		t.Fatalf("trace should reset per pass: %d then %d", n, len(tb.Trace.Entries()))
	}
}

func TestTabletop_Refresh_OverwritesPriorState(t *testing.T) {
	tb := NewTabletop(WithToken("a", 300, 300, 30, 0))
	tb.RefreshAll()
	before := tb.StateOf("a").Res.Derived.Vision

	tb.Token("a").DimSight = 60
	tb.RefreshAll()
	after := tb.StateOf("a").Res.Derived.Vision

	if after <= before {
		t.Fatalf("recompute should reflect the new sight: %.2f then %.2f", before, after)
	}
}

func TestTabletop_GlobalPlan_SwitchesOnVisionSources(t *testing.T) {
	world := DefaultWorldSettings()
	world.ImprovedGMVision = true

	empty := NewTabletop(WithWorldSettings(world))
	if plan := empty.GlobalPlan(); !plan.ImprovedGMVision || plan.VisionTint {
		t.Fatalf("no tokens: GM vision layer should render, got %+v", plan)
	}

	occupied := NewTabletop(WithWorldSettings(world), WithToken("a", 100, 100, 30, 0))
	if plan := occupied.GlobalPlan(); plan.ImprovedGMVision || !plan.VisionTint {
		t.Fatalf("with a vision source the tint layer renders, got %+v", plan)
	}
}

func TestTabletop_GlobalLightFlag_PlansInvisiblePlaceholder(t *testing.T) {
	tb := NewTabletop(
		WithSceneFlag(FlagGlobalLight, true),
		WithToken("a", 100, 100, 30, 0),
	)
	tb.RefreshAll()

	plan, ok := tb.GlobalLightPlan()
	if !ok {
		t.Fatal("global light flag should produce a plan")
	}
	if plan.Vision.Visible {
		t.Fatal("the global light placeholder must never draw a duplicate mesh")
	}
}

func TestTabletop_GlobalLightOff_NoPlan(t *testing.T) {
	tb := NewTabletop(WithToken("a", 100, 100, 30, 0))
	tb.RefreshAll()

	if _, ok := tb.GlobalLightPlan(); ok {
		t.Fatal("no plan without the scene flag")
	}

	// Switching the flag off again drops a previously computed plan.
	tb.Scene.Flags[FlagGlobalLight] = true
	tb.RefreshAll()
	if _, ok := tb.GlobalLightPlan(); !ok {
		t.Fatal("plan should appear after the flag is set")
	}
	tb.Scene.Flags[FlagGlobalLight] = false
	tb.RefreshAll()
	if _, ok := tb.GlobalLightPlan(); ok {
		t.Fatal("plan should be dropped once the flag clears")
	}
}

func TestTabletop_TokenIDsUnique(t *testing.T) {
	tb := NewTabletop(
		WithToken("a", 100, 100, 0, 0),
		WithToken("b", 200, 200, 0, 0),
	)
	if tb.Tokens[0].ID == tb.Tokens[1].ID {
		t.Fatal("token IDs must be unique")
	}
}
