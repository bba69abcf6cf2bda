package command

import (
	"context"

	"github.com/mvvmkit/mvvmkit/core/binding"
	"github.com/mvvmkit/mvvmkit/pkg/taskwatch"
)

// Builder assembles a Command. Each setter accepts its value exactly once;
// the first precondition violation is recorded and returned from Build, so
// call sites can chain without intermediate error checks.
type Builder[S any] struct {
	target   *S
	execute  func(context.Context, *S) error
	async    bool
	gate     func(*S) bool
	property string
	watcher  *taskwatch.Watcher
	err      error
}

// New starts building a command against target.
//
// Example:
//
//	cmd, err := command.New(doc).
//	    Execute(saveDocument).
//	    CanExecute(func(d *Document) bool { return d.IsDirty() }).
//	    DependsOn("IsDirty").
//	    Build()
func New[S any](target *S) *Builder[S] {
	b := &Builder[S]{target: target}
	if target == nil {
		b.fail(ErrNilTarget)
	}
	return b
}

// Execute sets a synchronous action that runs inline on invocation.
// Required; may be set once, counting ExecuteAsync.
func (b *Builder[S]) Execute(fn func(ctx context.Context, target *S) error) *Builder[S] {
	return b.setExecute(fn, false)
}

// ExecuteAsync sets a fire-and-forget action, watched by the command's
// watcher so its failures are reported instead of lost. Required; may be set
// once, counting Execute.
func (b *Builder[S]) ExecuteAsync(fn func(ctx context.Context, target *S) error) *Builder[S] {
	return b.setExecute(fn, true)
}

// CanExecute sets the gate predicate consulted by consumers before invoking
// the command. Optional; may be set once. The predicate must be cheap and
// side-effect-free.
func (b *Builder[S]) CanExecute(fn func(target *S) bool) *Builder[S] {
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

// DependsOn names the target property whose change notifications re-evaluate
// the gate. Optional; may be set once; requires CanExecute by Build time and
// a target that implements binding.Notifier.
func (b *Builder[S]) DependsOn(property string) *Builder[S] {
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
func (b *Builder[S]) WithWatcher(w *taskwatch.Watcher) *Builder[S] {
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
// It fails with the first recorded setter violation, or with
// ErrExecuteRequired, ErrPredicateRequired, or ErrNotifierRequired when the
// combination is incomplete.
func (b *Builder[S]) Build() (*Command[S], error) {
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

	cmd := &Command[S]{
		target:  b.target,
		execute: b.execute,
		async:   b.async,
		gate:    b.gate,
		watcher: watcher,
		name:    taskNameFor[S](),
	}
	cmd.last = cmd.CanExecute()

	if b.property != "" {
		notifier, ok := any(b.target).(binding.Notifier)
		if !ok {
			return nil, ErrNotifierRequired
		}
		bridge, err := binding.Watch(notifier, b.property, cmd, refreshReaction[S])
		if err != nil {
			return nil, err
		}
		cmd.bridge = bridge
	}

	return cmd, nil
}

func (b *Builder[S]) setExecute(fn func(ctx context.Context, target *S) error, async bool) *Builder[S] {
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

// fail records the first precondition violation; later ones are dropped so
// Build reports the call-order bug closest to its cause.
func (b *Builder[S]) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
