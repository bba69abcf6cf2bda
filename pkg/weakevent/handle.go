package weakevent

import "weak"

// Handle is a liveness-checked reference to a subscriber. It never prevents
// reclamation of its target; once the target becomes unreachable and is
// collected, Alive reports false forever.
//
// The zero Handle is always alive with a nil target. Use it for subscribers
// that have no owning object, such as package-level loggers or test probes.
type Handle struct {
	value func() (any, bool)
}

// HandleFor returns a weak handle to target. A nil target yields the zero
// Handle.
//
// Liveness checks are synchronous and side-effect-free; they do not depend
// on finalizer timing.
func HandleFor[T any](target *T) Handle {
	if target == nil {
		return Handle{}
	}
	p := weak.Make(target)
	return Handle{value: func() (any, bool) {
		if v := p.Value(); v != nil {
			return v, true
		}
		return nil, false
	}}
}

// Alive reports whether the target is still reachable. Always true for the
// zero Handle.
func (h Handle) Alive() bool {
	if h.value == nil {
		return true
	}
	_, ok := h.value()
	return ok
}

// Target resolves a strong reference to the target for the duration of a
// single invocation. It returns (nil, false) once the target has been
// reclaimed, and (nil, true) for the zero Handle.
func (h Handle) Target() (any, bool) {
	if h.value == nil {
		return nil, true
	}
	return h.value()
}
