package command

import (
	"context"

	"github.com/mvvmkit/mvvmkit/core/binding"
	"github.com/mvvmkit/mvvmkit/pkg/taskwatch"
	"github.com/mvvmkit/mvvmkit/pkg/weakevent"
)

// ParamCommand is the parameterized variant of Command: the execute action
// and the gate additionally receive a caller-supplied parameter at
// invocation time. Construct it with NewParam.
type ParamCommand[S, P any] struct {
	target  *S
	execute func(context.Context, *S, P) error
	async   bool
	gate    func(*S, P) bool
	watcher *taskwatch.Watcher
	name    string

	changed weakevent.Source
	bridge  *binding.Bridge
}

// Execute runs the command's action against its target with the given
// parameter. Synchronous actions run inline; asynchronous actions are
// dispatched fire-and-forget through the watcher and Execute returns nil.
func (c *ParamCommand[S, P]) Execute(ctx context.Context, param P) error {
	if c.async {
		c.watcher.Go(ctx, c.name, func(taskCtx context.Context) error {
			return c.execute(taskCtx, c.target, param)
		})
		return nil
	}
	return c.execute(ctx, c.target, param)
}

// CanExecute reports whether the command is actionable for the given
// parameter. Always true when no predicate was set.
func (c *ParamCommand[S, P]) CanExecute(param P) bool {
	if c.gate == nil {
		return true
	}
	return c.gate(c.target, param)
}

// CanExecuteChanged returns the command's own broadcaster. Bound consumers
// subscribe here and re-query CanExecute with their current parameter.
func (c *ParamCommand[S, P]) CanExecuteChanged() *weakevent.Source {
	return &c.changed
}

// Refresh raises CanExecuteChanged unconditionally. Unlike Command, the
// parameterized gate cannot be pre-evaluated without a parameter, so no
// result caching or de-duplication is possible; every matching property
// change makes consumers re-query.
func (c *ParamCommand[S, P]) Refresh(ctx context.Context) error {
	return c.changed.Raise(ctx, c)
}

func paramRefreshReaction[S, P any](ctx context.Context, c *ParamCommand[S, P]) error {
	return c.Refresh(ctx)
}

// ParamBuilder assembles a ParamCommand. It is structurally identical to
// Builder: each setter accepts its value exactly once and the first
// violation surfaces from Build.
type ParamBuilder[S, P any] struct {
	target   *S
	execute  func(context.Context, *S, P) error
	async    bool
	gate     func(*S, P) bool
	property string
	watcher  *taskwatch.Watcher
	err      error
}

// NewParam starts building a parameterized command against target.
//
// Example:
//
//	open, err := command.NewParam[Workspace, string](ws).
//	    Execute(func(ctx context.Context, w *Workspace, path string) error {
//	        return w.Open(ctx, path)
//	    }).
//	    CanExecute(func(w *Workspace, path string) bool { return path != "" }).
//	    Build()
func NewParam[S, P any](target *S) *ParamBuilder[S, P] {
	b := &ParamBuilder[S, P]{target: target}
	if target == nil {
		b.fail(ErrNilTarget)
	}
	return b
}

// Execute sets a synchronous action. Required; may be set once, counting
// ExecuteAsync.
func (b *ParamBuilder[S, P]) Execute(fn func(ctx context.Context, target *S, param P) error) *ParamBuilder[S, P] {
	return b.setExecute(fn, false)
}

// ExecuteAsync sets a fire-and-forget action watched by the command's
// watcher. Required; may be set once, counting Execute.
func (b *ParamBuilder[S, P]) ExecuteAsync(fn func(ctx context.Context, target *S, param P) error) *ParamBuilder[S, P] {
	return b.setExecute(fn, true)
}

// CanExecute sets the gate predicate. Optional; may be set once.
func (b *ParamBuilder[S, P]) CanExecute(fn func(target *S, param P) bool) *ParamBuilder[S, P] {
	switch {
	case fn == nil:
		b.fail(ErrNilPredicate)
	case b.gate != nil:
		b.fail(ErrPredicateAlreadySet)
	default:
		b.gate = fn
	}
	return b
}

// DependsOn names the target property whose change notifications raise
// CanExecuteChanged. Optional; may be set once; requires CanExecute by Build
// time and a target that implements binding.Notifier.
func (b *ParamBuilder[S, P]) DependsOn(property string) *ParamBuilder[S, P] {
	switch {
	case property == "":
		b.fail(ErrEmptyProperty)
	case b.property != "":
		b.fail(ErrPropertyAlreadySet)
	default:
		b.property = property
	}
	return b
}

// WithWatcher injects the diagnostic watcher used for asynchronous actions.
// Optional; may be set once; defaults to taskwatch.Default().
func (b *ParamBuilder[S, P]) WithWatcher(w *taskwatch.Watcher) *ParamBuilder[S, P] {
	switch {
	case w == nil:
		b.fail(ErrNilWatcher)
	case b.watcher != nil:
		b.fail(ErrWatcherAlreadySet)
	default:
		b.watcher = w
	}
	return b
}

// Build validates the accumulated state and returns the immutable command.
func (b *ParamBuilder[S, P]) Build() (*ParamCommand[S, P], error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.execute == nil {
		return nil, ErrExecuteRequired
	}
	if b.property != "" && b.gate == nil {
		return nil, ErrPredicateRequired
	}

	watcher := b.watcher
	if watcher == nil {
		watcher = taskwatch.Default()
	}

	cmd := &ParamCommand[S, P]{
		target:  b.target,
		execute: b.execute,
		async:   b.async,
		gate:    b.gate,
		watcher: watcher,
		name:    taskNameFor[S](),
	}

	if b.property != "" {
		notifier, ok := any(b.target).(binding.Notifier)
		if !ok {
			return nil, ErrNotifierRequired
		}
		bridge, err := binding.Watch(notifier, b.property, cmd, paramRefreshReaction[S, P])
		if err != nil {
			return nil, err
		}
		cmd.bridge = bridge
	}

	return cmd, nil
}

func (b *ParamBuilder[S, P]) setExecute(fn func(ctx context.Context, target *S, param P) error, async bool) *ParamBuilder[S, P] {
	switch {
	case fn == nil:
		b.fail(ErrNilExecute)
	case b.execute != nil:
		b.fail(ErrExecuteAlreadySet)
	default:
		b.execute = fn
		b.async = async
	}
	return b
}

func (b *ParamBuilder[S, P]) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
