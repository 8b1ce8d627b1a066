package vision

import (
	"math"
	"testing"
)

func TestParseColor_HexForms(t *testing.T) {
	for _, s := range []string{"#ff8000", "ff8000", "#FF8000"} {
		c, ok := ParseColor(s)
		if !ok {
			t.Fatalf("%q should parse", s)
		}
		if math.Abs(c.R-1) > 1e-9 || math.Abs(c.G-128.0/255) > 1e-9 || c.B != 0 {
			t.Fatalf("%q parsed to %+v", s, c)
		}
	}
}

func TestParseColor_NamedColor(t *testing.T) {
	c, ok := ParseColor("midnightblue")
	if !ok {
		t.Fatal("SVG colour name should parse")
	}
	if c.IsWhite() {
		t.Fatalf("midnightblue is not white: %+v", c)
	}
}

func TestParseColor_Garbage(t *testing.T) {
	for _, s := range []string{"", "   ", "#12", "#zzzzzz", "octarine"} {
		if _, ok := ParseColor(s); ok {
			t.Fatalf("%q should not parse", s)
		}
	}
}

func TestRGB_Gray_IsNeutral(t *testing.T) {
	g := RGB{0.8, 0.3, 0.1}.Gray()
	if math.Abs(g.R-g.G) > 1e-9 || math.Abs(g.G-g.B) > 1e-9 {
		t.Fatalf("grayscale channels differ: %+v", g)
	}
}

func TestRGB_Desaturate_Endpoints(t *testing.T) {
	c := RGB{0.8, 0.3, 0.1}
	if got := c.Desaturate(0); math.Abs(got.R-c.R) > 1e-9 {
		t.Fatalf("amount 0 should be identity, got %+v", got)
	}
	full := c.Desaturate(1)
	gray := c.Gray()
	if math.Abs(full.R-gray.R) > 1e-6 || math.Abs(full.G-gray.G) > 1e-6 {
		t.Fatalf("amount 1 should equal grayscale: %+v vs %+v", full, gray)
	}
}

func TestResolveMonoColor_Precedence(t *testing.T) {
	world := DefaultWorldSettings()
	world.MonoVisionColor = "#404040"

	tok := testToken(0, 0)
	if got := ResolveMonoColor(tok, world); got == White {
		t.Fatal("world setting should apply when the token has no flag")
	}

	tok.Flags[FlagMonoVisionColor] = "#a0b0c0"
	got := ResolveMonoColor(tok, world)
	if math.Abs(got.R-160.0/255) > 1e-9 {
		t.Fatalf("token flag should win, got %+v", got)
	}

	tok.Flags[FlagMonoVisionColor] = "not-a-colour"
	if got := ResolveMonoColor(tok, world); math.Abs(got.R-64.0/255) > 1e-9 {
		t.Fatalf("malformed token flag should fall through to world, got %+v", got)
	}
}

func TestResolveMonoColor_DefaultWhite(t *testing.T) {
	if got := ResolveMonoColor(testToken(0, 0), DefaultWorldSettings()); !got.IsWhite() {
		t.Fatalf("expected white default, got %+v", got)
	}
}
