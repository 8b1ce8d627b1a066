package vision

// OutcomeTag describes how a token perceives one lighting condition:
// what a region of darkness or dim light looks like to that observer.
type OutcomeTag uint8

const (
	// OutcomeDarkness: the region stays dark; no vision there.
	OutcomeDarkness OutcomeTag = iota
	// OutcomeScene: seen as the scene lights it, in colour.
	OutcomeScene
	// OutcomeSceneMono: seen as the scene lights it, desaturated.
	OutcomeSceneMono
	// OutcomeDim: seen as dim light, in colour.
	OutcomeDim
	// OutcomeDimMono: seen as dim light, desaturated.
	OutcomeDimMono
	// OutcomeBright: seen as bright light, in colour.
	OutcomeBright
	// OutcomeBrightMono: seen as bright light, desaturated.
	OutcomeBrightMono
)

// Mono reports whether the outcome is a desaturated ("mono") variant.
func (t OutcomeTag) Mono() bool {
	return t == OutcomeSceneMono || t == OutcomeDimMono || t == OutcomeBrightMono
}

// Lit reports whether the outcome grants any vision at all.
func (t OutcomeTag) Lit() bool { return t != OutcomeDarkness }

// AsDim reports whether the outcome renders as dim light.
func (t OutcomeTag) AsDim() bool { return t == OutcomeDim || t == OutcomeDimMono }

// AsBright reports whether the outcome renders as bright light.
func (t OutcomeTag) AsBright() bool { return t == OutcomeBright || t == OutcomeBrightMono }

func (t OutcomeTag) String() string {
	switch t {
	case OutcomeScene:
		return "scene"
	case OutcomeSceneMono:
		return "scene_mono"
	case OutcomeDim:
		return "dim"
	case OutcomeDimMono:
		return "dim_mono"
	case OutcomeBright:
		return "bright"
	case OutcomeBrightMono:
		return "bright_mono"
	default:
		return "darkness"
	}
}

// ParseOutcomeTag parses the flag spelling of an outcome tag.
func ParseOutcomeTag(s string) (OutcomeTag, bool) {
	switch s {
	case "darkness":
		return OutcomeDarkness, true
	case "scene":
		return OutcomeScene, true
	case "scene_mono":
		return OutcomeSceneMono, true
	case "dim":
		return OutcomeDim, true
	case "dim_mono":
		return OutcomeDimMono, true
	case "bright":
		return OutcomeBright, true
	case "bright_mono":
		return OutcomeBrightMono, true
	}
	return OutcomeDarkness, false
}

// RuleSet is one token's active vision rules: the outcome of each sight
// type in each lighting condition.
type RuleSet struct {
	DimInDarkness    OutcomeTag
	DimInDimLight    OutcomeTag
	BrightInDarkness OutcomeTag
	BrightInDimLight OutcomeTag
}

// presets are the shipped per-system rule sets. "fvtt" is the host's own
// behaviour; the others model each game system's darkvision rules.
var presets = map[string]RuleSet{
	"fvtt": {
		DimInDarkness:    OutcomeDim,
		DimInDimLight:    OutcomeDim,
		BrightInDarkness: OutcomeBright,
		BrightInDimLight: OutcomeBright,
	},
	// D&D 3.5e: low-light vision widens dim sight, darkvision is
	// black-and-white bright sight.
	"dnd35e": {
		DimInDarkness:    OutcomeDarkness,
		DimInDimLight:    OutcomeDim,
		BrightInDarkness: OutcomeBrightMono,
		BrightInDimLight: OutcomeBright,
	},
	// D&D 5e: darkvision turns darkness into dim, colourless light and
	// dim light into bright light, all via dim sight.
	"dnd5e": {
		DimInDarkness:    OutcomeDimMono,
		DimInDimLight:    OutcomeBright,
		BrightInDarkness: OutcomeBright,
		BrightInDimLight: OutcomeBright,
	},
	// Pathfinder 2e: low-light vision upgrades dim to bright,
	// darkvision sees darkness as colourless bright light.
	"pf2e": {
		DimInDarkness:    OutcomeDarkness,
		DimInDimLight:    OutcomeBright,
		BrightInDarkness: OutcomeBrightMono,
		BrightInDimLight: OutcomeBright,
	},
}

// Preset returns the named rule set. "custom" and unknown names report
// false; callers then resolve the four branches individually.
func Preset(name string) (RuleSet, bool) {
	rs, ok := presets[name]
	return rs, ok
}

// PresetNames returns the shipped preset names in a fixed order.
func PresetNames() []string {
	return []string{"fvtt", "dnd35e", "dnd5e", "pf2e"}
}

// ResolveRules determines the active rule set for a token. Precedence:
// token preset/custom flags, then scene, then world settings. Exactly one
// rule set results from every call; a branch that resolves nowhere
// defaults to bright, the most permissive outcome, since a token left
// sightless is the more visibly broken failure.
func ResolveRules(tok *Token, sc *Scene, world WorldSettings) RuleSet {
	name, ok := tok.Flags.String(FlagVisionRules)
	if !ok {
		name, ok = sc.Flags.String(FlagVisionRules)
	}
	if !ok {
		name = world.VisionRules
	}
	if rs, found := Preset(name); found {
		return rs
	}
	// "custom" — and, per the error policy, any unknown preset name.
	return RuleSet{
		DimInDarkness:    resolveBranch(FlagDimVisionInDarkness, tok, sc, world.DimVisionInDarkness),
		DimInDimLight:    resolveBranch(FlagDimVisionInDimLight, tok, sc, world.DimVisionInDimLight),
		BrightInDarkness: resolveBranch(FlagBrightVisionInDarkness, tok, sc, world.BrightVisionInDarkness),
		BrightInDimLight: resolveBranch(FlagBrightVisionInDimLight, tok, sc, world.BrightVisionInDimLight),
	}
}

// resolveBranch resolves one rule branch through token flag → scene flag
// → world setting → bright. Unparseable values count as absent.
func resolveBranch(key string, tok *Token, sc *Scene, worldDefault string) OutcomeTag {
	if s, ok := tok.Flags.String(key); ok {
		if tag, ok := ParseOutcomeTag(s); ok {
			return tag
		}
	}
	if s, ok := sc.Flags.String(key); ok {
		if tag, ok := ParseOutcomeTag(s); ok {
			return tag
		}
	}
	if tag, ok := ParseOutcomeTag(worldDefault); ok {
		return tag
	}
	return OutcomeBright
}
