package vision

import "testing"

func TestObservable_SubscribeDeliversCurrentValue(t *testing.T) {
	o := NewObservable(RGB{0.5, 0.5, 0.5})

	var got []RGB
	o.Subscribe("mesh", func(c RGB) { got = append(got, c) })

	if len(got) != 1 || got[0] != (RGB{0.5, 0.5, 0.5}) {
		t.Fatalf("subscriber should receive the current value on subscribe: %+v", got)
	}
}

func TestObservable_SetNotifiesAll(t *testing.T) {
	o := NewObservable(0.0)
	var a, b float64
	o.Subscribe("illum", func(v float64) { a = v })
	o.Subscribe("vision", func(v float64) { b = v })

	o.Set(0.4)

	if a != 0.4 || b != 0.4 {
		t.Fatalf("all dependents should see the write: a=%.2f b=%.2f", a, b)
	}
}

func TestObservable_SetSameValue_NoNotify(t *testing.T) {
	o := NewObservable(7)
	calls := 0
	o.Subscribe("n", func(int) { calls++ })

	o.Set(7)

	if calls != 1 { // only the subscription delivery
		t.Fatalf("writing the current value must not notify, calls=%d", calls)
	}
}

func TestObservable_ExcludedDependent_SkippedThenCaughtUp(t *testing.T) {
	o := NewObservable(1)
	var seen []int
	o.Exclude("desat")
	o.Subscribe("desat", func(v int) { seen = append(seen, v) })

	o.Set(2)
	o.Set(3)
	if len(seen) != 0 {
		t.Fatalf("excluded dependent should see nothing, got %v", seen)
	}

	o.Include("desat")
	if len(seen) != 1 || seen[0] != 3 {
		t.Fatalf("include should deliver the current value, got %v", seen)
	}

	o.Set(4)
	if seen[len(seen)-1] != 4 {
		t.Fatalf("re-included dependent should see new writes, got %v", seen)
	}
}
