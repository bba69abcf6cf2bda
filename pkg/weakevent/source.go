package weakevent

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Handler processes a plain notification. The target argument is the
// subscriber resolved from its weak handle for the duration of this
// invocation (nil for zero-handle subscriptions); sender is the value passed
// to Raise. Handlers must not capture their subscriber; receive it through
// target instead.
type Handler func(ctx context.Context, target, sender any) error

// Source broadcasts plain notifications to weakly-held subscribers.
//
// The zero value is ready to use. A Source must not be copied after first
// use. Its lifetime is the owning publisher's lifetime; subscribers never
// own the source.
type Source struct {
	mu  sync.Mutex
	reg registry[Handler]
}

// Subscribe registers fn under the given handle. A nil fn is a no-op and
// returns the zero Subscription.
func (s *Source) Subscribe(h Handle, fn Handler) Subscription {
	s.mu.Lock()
	id, ok := s.reg.add(h, fn)
	s.mu.Unlock()
	if !ok {
		return Subscription{}
	}
	return Subscription{cancel: func() {
		s.mu.Lock()
		s.reg.removeID(id)
		s.mu.Unlock()
	}}
}

// Unsubscribe removes every registration whose callback identity matches fn.
// No-op if fn is nil or was never registered. See the package documentation
// for the identity caveats of code-pointer matching.
func (s *Source) Unsubscribe(fn Handler) {
	s.mu.Lock()
	s.reg.remove(fn)
	s.mu.Unlock()
}

// Raise notifies all live subscribers in subscription order, as of a
// snapshot taken under the lock. Dispatch runs with the lock released, so
// handlers may subscribe, unsubscribe, or raise reentrantly. Entries whose
// target has been reclaimed are skipped; if any were seen, the registry is
// purged once after the pass.
//
// Every snapshot entry is attempted: handler errors and recovered panics are
// joined and returned only after the full pass.
func (s *Source) Raise(ctx context.Context, sender any) error {
	s.mu.Lock()
	snap := s.reg.snapshot()
	s.mu.Unlock()

	var errs []error
	stale := false
	for _, e := range snap {
		target, ok := e.handle.Target()
		if !ok {
			stale = true
			continue
		}
		if err := invoke(ctx, e.callback, target, sender); err != nil {
			errs = append(errs, err)
		}
	}
	if stale {
		s.mu.Lock()
		s.reg.purge()
		s.mu.Unlock()
	}
	return errors.Join(errs...)
}

// Len returns the current number of registered entries, including entries
// whose target has died but has not been purged yet.
func (s *Source) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.len()
}

// Listen subscribes owner to the source with a type-safe, non-capturing
// callback: fn receives the resolved owner on every dispatch instead of
// closing over it, so the subscription does not pin the owner. It returns
// the registered Handler (for Unsubscribe) and the Subscription.
func Listen[O any](s *Source, owner *O, fn func(ctx context.Context, owner *O, sender any) error) (Handler, Subscription) {
	h := Handler(func(ctx context.Context, target, sender any) error {
		o, ok := target.(*O)
		if !ok {
			return nil
		}
		return fn(ctx, o, sender)
	})
	return h, s.Subscribe(HandleFor(owner), h)
}

// invoke runs one handler with panic recovery so a failing subscriber
// cannot abort the rest of the dispatch pass.
func invoke(ctx context.Context, fn Handler, target, sender any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("weakevent: handler panicked: %v", r)
		}
	}()
	return fn(ctx, target, sender)
}
