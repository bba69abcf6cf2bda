package command

import (
	"context"
	"sync"

	"github.com/mvvmkit/mvvmkit/core/binding"
	"github.com/mvvmkit/mvvmkit/pkg/taskwatch"
	"github.com/mvvmkit/mvvmkit/pkg/weakevent"
)

// Command is an immutable unit combining a target, an execute action, an
// optional can-execute gate, and an optional property dependency driving
// invalidation. Construct it with New; a Command is never mutated after
// Build except for its broadcaster's subscriber list.
type Command[S any] struct {
	target  *S
	execute func(context.Context, *S) error
	async   bool
	gate    func(*S) bool
	watcher *taskwatch.Watcher
	name    string

	changed weakevent.Source
	bridge  *binding.Bridge

	mu   sync.Mutex
	last bool // cached gate result; meaningful only when gate is set
}

// Execute runs the command's action against its target. A synchronous
// action runs inline and returns its error. An asynchronous action is
// dispatched fire-and-forget through the command's watcher and Execute
// returns nil immediately; its failure is observable only on the watcher's
// fault broadcaster.
//
// Execute does not consult CanExecute: binding layers query the gate before
// invoking, and non-UI callers may deliberately bypass it.
func (c *Command[S]) Execute(ctx context.Context) error {
	if c.async {
		c.watcher.Go(ctx, c.name, func(taskCtx context.Context) error {
			return c.execute(taskCtx, c.target)
		})
		return nil
	}
	return c.execute(ctx, c.target)
}

// CanExecute reports whether the command is currently actionable, evaluated
// synchronously against current target state. Always true when no predicate
// was set. Idempotent and side-effect-free.
func (c *Command[S]) CanExecute() bool {
	if c.gate == nil {
		return true
	}
	return c.gate(c.target)
}

// CanExecuteChanged returns the command's own broadcaster, raised whenever
// the gate's result may have changed. Bound consumers subscribe here to
// re-query CanExecute.
func (c *Command[S]) CanExecuteChanged() *weakevent.Source {
	return &c.changed
}

// Refresh re-evaluates the gate and raises CanExecuteChanged when its
// boolean result differs from the previous evaluation. The property
// dependency wiring calls this on every matching change; it may also be
// called directly when the gate depends on state outside the watched
// property.
func (c *Command[S]) Refresh(ctx context.Context) error {
	now := c.CanExecute()

	c.mu.Lock()
	flipped := now != c.last
	c.last = now
	c.mu.Unlock()

	if !flipped {
		return nil
	}
	return c.changed.Raise(ctx, c)
}

// refreshReaction is the bridge reaction for dependency-driven invalidation.
// Deliberately a named function so it captures nothing: the bridge resolves
// the command through its weak handle on every dispatch.
func refreshReaction[S any](ctx context.Context, c *Command[S]) error {
	return c.Refresh(ctx)
}
