package vision

// HookFunc observes an operation on a subject, before or after it runs.
type HookFunc func(op string, subject any)

// AroundFunc wraps an operation; it must call next exactly once for the
// wrapped work (and any inner wrappers) to run.
type AroundFunc func(op string, subject any, next func())

// Hooks layers additional behaviour around operations this module does
// not own, keyed by operation name. It is the composition root's
// alternative to splicing into a host object's dispatch: the host call
// is wrapped explicitly instead of its method table being rewritten.
type Hooks struct {
	before map[string][]HookFunc
	after  map[string][]HookFunc
	around map[string][]AroundFunc
}

// NewHooks creates an empty hook table.
func NewHooks() *Hooks {
	return &Hooks{
		before: make(map[string][]HookFunc),
		after:  make(map[string][]HookFunc),
		around: make(map[string][]AroundFunc),
	}
}

// Before registers fn to run before the named operation.
func (h *Hooks) Before(op string, fn HookFunc) {
	h.before[op] = append(h.before[op], fn)
}

// After registers fn to run after the named operation completes.
func (h *Hooks) After(op string, fn HookFunc) {
	h.after[op] = append(h.after[op], fn)
}

// Around registers fn wrapping the named operation. Wrappers nest in
// registration order: the first registered is outermost.
func (h *Hooks) Around(op string, fn AroundFunc) {
	h.around[op] = append(h.around[op], fn)
}

// Run executes body as the named operation on subject: before hooks,
// then the around chain enclosing body, then after hooks. With nothing
// registered, Run is just body().
func (h *Hooks) Run(op string, subject any, body func()) {
	for _, fn := range h.before[op] {
		fn(op, subject)
	}

	call := body
	wrappers := h.around[op]
	for i := len(wrappers) - 1; i >= 0; i-- {
		fn := wrappers[i]
		inner := call
		call = func() { fn(op, subject, inner) }
	}
	call()

	for _, fn := range h.after[op] {
		fn(op, subject)
	}
}
