package weakevent

import "reflect"

// entry pairs a weak handle with its callback. The callback must not capture
// the handle's target, otherwise the entry pins the target and the weak
// semantics are lost.
type entry[H any] struct {
	id       uint64
	handle   Handle
	callback H
	key      uintptr
}

// registry is an ordered collection of weak listener entries. Insertion
// order is dispatch order; duplicates are allowed. It is not safe for
// concurrent use: the owning source serializes access so that snapshot and
// purge can share one lock acquisition.
type registry[H any] struct {
	entries []entry[H]
	nextID  uint64
}

// callbackKey returns the identity key for a callback. Go functions are not
// comparable, so identity is the code pointer: closures created from the
// same literal and method values of different receivers compare equal.
// Returns 0 for nil or non-func values.
func callbackKey(fn any) uintptr {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return 0
	}
	return v.Pointer()
}

// add appends a new entry and returns its id. A nil callback is a no-op and
// returns (0, false).
func (r *registry[H]) add(h Handle, fn H) (uint64, bool) {
	key := callbackKey(fn)
	if key == 0 {
		return 0, false
	}
	r.nextID++
	r.entries = append(r.entries, entry[H]{
		id:       r.nextID,
		handle:   h,
		callback: fn,
		key:      key,
	})
	return r.nextID, true
}

// remove drops every entry whose callback identity matches fn, preserving
// the relative order of the rest. No-op if fn is nil or not registered.
func (r *registry[H]) remove(fn H) {
	key := callbackKey(fn)
	if key == 0 {
		return
	}
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.key != key {
			kept = append(kept, e)
		}
	}
	r.entries = kept
}

// removeID drops the single entry with the given id, if present.
func (r *registry[H]) removeID(id uint64) {
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// snapshot returns an independent ordered copy of the current entries for
// iteration outside the lock.
func (r *registry[H]) snapshot() []entry[H] {
	out := make([]entry[H], len(r.entries))
	copy(out, r.entries)
	return out
}

// purge drops every entry whose target is no longer alive, preserving the
// relative order of the rest. Must be called while holding the owner's lock.
func (r *registry[H]) purge() {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.handle.Alive() {
			kept = append(kept, e)
		}
	}
	r.entries = kept
}

func (r *registry[H]) len() int {
	return len(r.entries)
}
