// Package taskwatch captures the outcome of fire-and-forget operations so
// their failures are observed instead of silently lost.
//
// A watched operation runs on its own goroutine with panic recovery. Its
// eventual error or recovered panic never reaches the invoking control flow;
// it is reported on the watcher's fault broadcaster, where loggers and test
// harnesses subscribe through weak handles that do not keep them alive.
//
// # Usage
//
//	watcher := taskwatch.New(taskwatch.WithLogger(logger))
//
//	watcher.Faulted().Subscribe(weakevent.Handle{},
//		func(ctx context.Context, target, sender any, f taskwatch.Fault) error {
//			metrics.CountFault(f.Task.Name())
//			return nil
//		})
//
//	task := watcher.Go(ctx, "thumbnail", func(ctx context.Context) error {
//		return generateThumbnail(ctx, img)
//	})
//
// The returned Task is a handle the caller may ignore entirely (that is the
// point of fire-and-forget) or await when a rendezvous is needed:
//
//	if err := task.Await(ctx); err != nil {
//	    // the same error that was reported on the fault broadcaster
//	}
//
// # Process-Wide Watcher
//
// Default returns the process-wide watcher, initialized once at startup with
// no teardown. It exists for convenience at call sites that have no watcher
// of their own; everything that consumes a watcher should accept one
// explicitly so tests can substitute a capturing instance (SetDefault swaps
// the process-wide one when injection is not possible).
package taskwatch
