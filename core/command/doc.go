// Package command provides immutable, validated command objects that pair an
// execute action with an optional can-execute gate, re-evaluated through
// weak property-change subscriptions.
//
// A command is built once, against a target, and never mutated afterwards;
// only its can-execute-changed broadcaster's subscriber list changes. The
// shape a binding layer consumes is: an execute entry point, a can-execute
// query, and a subscribe/unsubscribe pair for can-execute-changed.
//
// # Building
//
//	type Document struct {
//	    binding.ChangeNotifier
//	    dirty bool
//	}
//
//	func (d *Document) IsDirty() bool { return d.dirty }
//
//	save, err := command.New(doc).
//	    Execute(func(ctx context.Context, d *Document) error {
//	        return d.Save(ctx)
//	    }).
//	    CanExecute(func(d *Document) bool { return d.IsDirty() }).
//	    DependsOn("IsDirty").
//	    Build()
//
// Builder preconditions fail fast: each setter accepts its value exactly
// once, the execute action is required, and a property dependency without a
// predicate is rejected (there is nothing to re-evaluate). The first
// violation is sticky and surfaces from Build, matchable against
// ErrInvalidArgument and ErrInvalidOperation with errors.Is.
//
// # Invalidation
//
// When a dependency is declared, a binding.Bridge is installed on the target
// through a weak handle to the command: matching property changes re-run the
// predicate, and the can-execute-changed broadcaster is raised only when the
// gate's boolean result actually flips. The wiring never extends the
// command's lifetime; a collected command's watch entry is purged lazily by
// the target's broadcaster.
//
// # Asynchronous Execution
//
// ExecuteAsync actions are fire-and-forget: Execute dispatches the action
// through a taskwatch.Watcher and returns nil immediately. A failure, either
// a returned error or a recovered panic, never reaches the invoking control
// flow; it is observable only on the watcher's fault broadcaster. Builders
// take WithWatcher so tests can inject a capturing instance; the default is
// the process-wide taskwatch.Default().
//
// # Parameterized Commands
//
// NewParam builds ParamCommand[S, P], the structurally identical variant
// whose execute action and predicate additionally receive a parameter
// supplied by the caller at invocation time.
//
// CanExecute is evaluated synchronously against current target state on
// demand; it must stay cheap and side-effect-free, since binding layers call
// it on every refresh.
package command
