package weakevent

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// HandlerOf processes a notification carrying a typed payload. The target
// argument is the subscriber resolved from its weak handle for the duration
// of this invocation; sender is the value passed to Raise. Handlers must not
// capture their subscriber; receive it through target instead.
type HandlerOf[T any] func(ctx context.Context, target, sender any, args T) error

// SourceOf broadcasts typed payloads to weakly-held subscribers. It follows
// the same snapshot-then-dispatch-then-purge protocol as Source.
//
// The zero value is ready to use. A SourceOf must not be copied after first
// use.
type SourceOf[T any] struct {
	mu  sync.Mutex
	reg registry[HandlerOf[T]]
}

// Subscribe registers fn under the given handle. A nil fn is a no-op and
// returns the zero Subscription.
func (s *SourceOf[T]) Subscribe(h Handle, fn HandlerOf[T]) Subscription {
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
// No-op if fn is nil or was never registered.
func (s *SourceOf[T]) Unsubscribe(fn HandlerOf[T]) {
	s.mu.Lock()
	s.reg.remove(fn)
	s.mu.Unlock()
}

// Raise notifies all live subscribers in subscription order with the given
// payload. Semantics are identical to Source.Raise: snapshot under the lock,
// dispatch outside it, one batched purge when staleness was observed, and
// per-handler failure isolation.
func (s *SourceOf[T]) Raise(ctx context.Context, sender any, args T) error {
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
		if err := invokeOf(ctx, e.callback, target, sender, args); err != nil {
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
func (s *SourceOf[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.len()
}

// ListenTo subscribes owner to the source with a type-safe, non-capturing
// callback, mirroring Listen for typed payloads. It returns the registered
// HandlerOf (for Unsubscribe) and the Subscription.
func ListenTo[O, T any](s *SourceOf[T], owner *O, fn func(ctx context.Context, owner *O, sender any, args T) error) (HandlerOf[T], Subscription) {
	h := HandlerOf[T](func(ctx context.Context, target, sender any, args T) error {
		o, ok := target.(*O)
		if !ok {
			return nil
		}
		return fn(ctx, o, sender, args)
	})
	return h, s.Subscribe(HandleFor(owner), h)
}

func invokeOf[T any](ctx context.Context, fn HandlerOf[T], target, sender any, args T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("weakevent: handler panicked: %v", r)
		}
	}()
	return fn(ctx, target, sender, args)
}
