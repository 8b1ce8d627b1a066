package vision

import (
	"math"
	"strconv"
	"strings"
)

// Flag keys understood on token and scene documents. The host owns the
// documents; this module only reads them.
const (
	FlagVisionRules            = "visionRules"
	FlagDimVisionInDarkness    = "dimVisionInDarkness"
	FlagDimVisionInDimLight    = "dimVisionInDimLight"
	FlagBrightVisionInDarkness = "brightVisionInDarkness"
	FlagBrightVisionInDimLight = "brightVisionInDimLight"
	FlagMonoVisionColor        = "monoVisionColor"
	FlagSightLimit             = "sightLimit"
	FlagGlobalLight            = "globalLight"
	FlagDaylightColor          = "daylightColor"
	FlagDarknessColor          = "darknessColor"
	FlagForceSaturation        = "forceSaturation"
	FlagSaturation             = "saturation"
)

// FlagBag is a host-owned flag document: arbitrary keys with loosely
// typed values. All readers are lenient — a malformed value is
// indistinguishable from an absent one, so lookups fall through the
// settings precedence chain instead of failing.
type FlagBag map[string]any

// Number reads a finite numeric flag. Strings are parsed; NaN, ±Inf and
// non-numeric values report absent.
func (f FlagBag) Number(key string) (float64, bool) {
	raw, ok := f[key]
	if !ok || raw == nil {
		return 0, false
	}
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// String reads a non-empty string flag.
func (f FlagBag) String(key string) (string, bool) {
	raw, ok := f[key]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// Bool reads a boolean flag. The strings "true"/"false" are accepted
// since host documents round-trip through JSON-ish storage.
func (f FlagBag) Bool(key string) (bool, bool) {
	raw, ok := f[key]
	if !ok {
		return false, false
	}
	switch b := raw.(type) {
	case bool:
		return b, true
	case string:
		switch strings.TrimSpace(b) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}
