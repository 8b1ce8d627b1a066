package vision

import "testing"

func TestHooks_Run_NothingRegistered(t *testing.T) {
	h := NewHooks()
	ran := false

	h.Run("op", nil, func() { ran = true })

	if !ran {
		t.Fatal("body should run with an empty table")
	}
}

func TestHooks_Ordering(t *testing.T) {
	h := NewHooks()
	var order []string
	h.Before("init", func(string, any) { order = append(order, "before") })
	h.After("init", func(string, any) { order = append(order, "after") })
	h.Around("init", func(_ string, _ any, next func()) {
		order = append(order, "around-in")
		next()
		order = append(order, "around-out")
	})

	h.Run("init", nil, func() { order = append(order, "body") })

	want := []string{"before", "around-in", "body", "around-out", "after"}
	if len(order) != len(want) {
		t.Fatalf("got %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("step %d: got %v, want %v", i, order, want)
		}
	}
}

func TestHooks_AroundNesting_FirstRegisteredOutermost(t *testing.T) {
	h := NewHooks()
	var order []string
	h.Around("op", func(_ string, _ any, next func()) {
		order = append(order, "outer-in")
		next()
		order = append(order, "outer-out")
	})
	h.Around("op", func(_ string, _ any, next func()) {
		order = append(order, "inner-in")
		next()
		order = append(order, "inner-out")
	})

	h.Run("op", nil, func() { order = append(order, "body") })

	want := []string{"outer-in", "inner-in", "body", "inner-out", "outer-out"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestHooks_SubjectPassedThrough(t *testing.T) {
	h := NewHooks()
	tok := &Token{ID: "x"}
	var got any
	h.Before("init", func(_ string, subject any) { got = subject })

	h.Run("init", tok, func() {})

	if got != tok {
		t.Fatal("hook should receive the operation subject")
	}
}

func TestHooks_OtherOperationsUnaffected(t *testing.T) {
	h := NewHooks()
	calls := 0
	h.Before("initA", func(string, any) { calls++ })

	h.Run("initB", nil, func() {})

	if calls != 0 {
		t.Fatal("hooks keyed by one operation must not fire for another")
	}
}
