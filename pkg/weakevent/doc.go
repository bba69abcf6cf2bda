// Package weakevent provides a publish/subscribe primitive whose
// subscriptions do not keep subscribers alive.
//
// A long-lived publisher (a view-model, a command, a process-wide diagnostic
// hook) can notify short-lived subscribers (UI elements, observers, test
// probes) without the subscription itself extending the subscriber's
// lifetime, and without the bookkeeping introducing races, leaks, or
// dispatch-time crashes when subscribers are added or removed during
// delivery.
//
// # Core Types
//
// Handle is a liveness-checked reference to a subscriber built on the
// standard library's weak pointers. It never prevents reclamation of its
// target; once the target is collected, the handle is permanently dead.
//
// Source broadcasts plain notifications (a sender, no payload). SourceOf[T]
// broadcasts a typed payload alongside the sender. Both wrap an ordered
// listener registry behind a mutex and dispatch with a snapshot taken
// outside the lock.
//
// # Usage
//
// Subscribing a view-model to a broadcaster without pinning it:
//
//	var changed weakevent.SourceOf[string]
//
//	vm := NewProfileViewModel()
//	sub := changed.Subscribe(weakevent.HandleFor(vm),
//		func(ctx context.Context, target, sender any, name string) error {
//			return target.(*ProfileViewModel).OnChanged(ctx, name)
//		})
//
//	err := changed.Raise(ctx, source, "DisplayName")
//	sub.Cancel() // or changed.Unsubscribe(handler)
//
// The handler receives the resolved target as an argument instead of
// capturing it. A handler closure that captures its subscriber holds a
// strong reference to it, which defeats the weak registry; the ListenTo
// helper enforces the non-capturing shape with type safety:
//
//	weakevent.ListenTo(&changed, vm,
//		func(ctx context.Context, vm *ProfileViewModel, sender any, name string) error {
//			return vm.OnChanged(ctx, name)
//		})
//
// # Dispatch Protocol
//
// Raise is two-phase: it takes an ordered snapshot of the registry under the
// lock, then invokes handlers from the snapshot with the lock released.
// Handlers may therefore subscribe, unsubscribe, or raise reentrantly
// without deadlocking or corrupting iteration. Entries whose target has been
// reclaimed are skipped and flagged; when any staleness was observed, the
// lock is reacquired once after the pass and dead entries are purged in a
// single batch.
//
// Handlers run in subscription order as of the snapshot. A subscribe racing
// with an in-flight raise may or may not be included in that raise; each
// individual raise is internally ordered and deterministic from its own
// snapshot.
//
// # Failure Isolation
//
// A failing handler cannot prevent later handlers in the same raise from
// running. Panics are recovered per invocation and converted to errors;
// handler errors and recovered panics are joined and returned from Raise
// only after every snapshot entry has been attempted.
//
// # Identity
//
// Unsubscribe matches callbacks by code pointer. Closures created from the
// same function literal and method values of different receivers share a
// code pointer, so Unsubscribe removes every subscription made with them.
// Keep the Subscription returned by Subscribe to cancel a single
// registration precisely.
package weakevent
