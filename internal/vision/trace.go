package vision

import "fmt"

// TraceEntry is one recorded decision during a resolution pass.
type TraceEntry struct {
	Token    string  // token label, or "--" for scene-wide entries
	Category string  // radius, rules, derived, fov, layer
	Key      string  // specific decision within the category
	Value    string  // human-readable detail
	NumVal   float64 // numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	torch-1  radius   sight_limit      650.0
func (e TraceEntry) String() string {
	if e.Value != "" {
		return fmt.Sprintf("%-10s %-8s %-18s %s", e.Token, e.Category, e.Key, e.Value)
	}
	return fmt.Sprintf("%-10s %-8s %-18s %.1f", e.Token, e.Category, e.Key, e.NumVal)
}

// Trace collects structured resolver decisions during one refresh pass.
// It is unbounded and machine-readable, for the headless report tool and
// tests. A nil *Trace is valid and records nothing, so the resolver can
// run untraced without branching at every call site.
type Trace struct {
	entries []TraceEntry
}

// NewTrace creates an empty trace.
func NewTrace() *Trace { return &Trace{} }

// Add records a numeric entry.
func (t *Trace) Add(token, category, key string, numVal float64) {
	if t == nil {
		return
	}
	t.entries = append(t.entries, TraceEntry{
		Token:    token,
		Category: category,
		Key:      key,
		NumVal:   numVal,
	})
}

// AddStr records a string-valued entry.
func (t *Trace) AddStr(token, category, key, value string) {
	if t == nil {
		return
	}
	t.entries = append(t.entries, TraceEntry{
		Token:    token,
		Category: category,
		Key:      key,
		Value:    value,
	})
}

// Entries returns all recorded entries.
func (t *Trace) Entries() []TraceEntry {
	if t == nil {
		return nil
	}
	return t.entries
}

// Filter returns entries matching the given token and/or category.
// Pass empty string to match any value for that field.
func (t *Trace) Filter(token, category string) []TraceEntry {
	var out []TraceEntry
	for _, e := range t.Entries() {
		if token != "" && e.Token != token {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Reset discards all entries, for reuse across refresh passes.
func (t *Trace) Reset() {
	if t == nil {
		return
	}
	t.entries = t.entries[:0]
}
