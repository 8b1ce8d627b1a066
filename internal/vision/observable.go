package vision

// Observable is a shared value whose every write is propagated to
// subscribed dependents. The render layer uses it to keep the vision
// duplicate mesh's uniforms synchronized with the base illumination
// mesh, with an exclusion set for uniforms a dependent owns itself.
type Observable[T comparable] struct {
	value    T
	subs     []subscriber[T]
	excluded map[string]struct{}
}

type subscriber[T comparable] struct {
	name string
	fn   func(T)
}

// NewObservable creates an observable holding the initial value.
func NewObservable[T comparable](initial T) *Observable[T] {
	return &Observable[T]{
		value:    initial,
		excluded: make(map[string]struct{}),
	}
}

// Get returns the current value.
func (o *Observable[T]) Get() T { return o.value }

// Subscribe registers a named dependent. The dependent is notified
// immediately with the current value, then on every subsequent change.
func (o *Observable[T]) Subscribe(name string, fn func(T)) {
	o.subs = append(o.subs, subscriber[T]{name: name, fn: fn})
	if _, skip := o.excluded[name]; !skip {
		fn(o.value)
	}
}

// Exclude suppresses notifications to the named dependent until
// Include is called. Writes are still recorded.
func (o *Observable[T]) Exclude(name string) {
	o.excluded[name] = struct{}{}
}

// Include re-enables notifications to a previously excluded dependent
// and delivers the current value so it catches up.
func (o *Observable[T]) Include(name string) {
	if _, ok := o.excluded[name]; !ok {
		return
	}
	delete(o.excluded, name)
	for _, s := range o.subs {
		if s.name == name {
			s.fn(o.value)
		}
	}
}

// Set writes a new value and notifies all non-excluded dependents.
// Writing the current value again is a no-op.
func (o *Observable[T]) Set(v T) {
	if v == o.value {
		return
	}
	o.value = v
	for _, s := range o.subs {
		if _, skip := o.excluded[s.name]; skip {
			continue
		}
		s.fn(v)
	}
}
