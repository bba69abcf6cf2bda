package taskwatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mvvmkit/mvvmkit/pkg/logger"
	"github.com/mvvmkit/mvvmkit/pkg/weakevent"
)

// Watcher observes fire-and-forget operations. It exposes two broadcast
// points: Watched fires when an operation is registered, Faulted fires when
// a watched operation ends in an error or a recovered panic. Subscribers are
// held weakly, so loggers and test harnesses are never kept alive by the
// watcher.
//
// A Watcher has no lifecycle: it is created once and never torn down.
type Watcher struct {
	watched weakevent.SourceOf[*Task]
	faulted weakevent.SourceOf[Fault]
	logger  *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger used for fault reporting and for subscriber
// failures on the diagnostic broadcasters themselves. Defaults to a
// discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a watcher.
//
// Example:
//
//	watcher := taskwatch.New(taskwatch.WithLogger(slog.Default()))
func New(opts ...Option) *Watcher {
	w := &Watcher{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watched returns the broadcaster raised once per registered operation,
// before the operation starts. The payload is the task handle.
func (w *Watcher) Watched() *weakevent.SourceOf[*Task] {
	return &w.watched
}

// Faulted returns the broadcaster raised exactly once for every watched
// operation that ends in failure.
func (w *Watcher) Faulted() *weakevent.SourceOf[Fault] {
	return &w.faulted
}

// Go registers fn for watching and runs it on its own goroutine. The
// operation's failure, a returned error or a recovered panic, never
// reaches the caller; it is reported on the Faulted broadcaster and logged.
// A context that is already canceled fails the task with the context's
// error without running fn.
//
// A nil fn is a no-op and returns nil.
func (w *Watcher) Go(ctx context.Context, name string, fn func(context.Context) error) *Task {
	if fn == nil {
		return nil
	}

	t := &Task{
		id:        uuid.New().String(),
		name:      name,
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}

	if err := w.watched.Raise(ctx, w, t); err != nil {
		w.logger.WarnContext(ctx, "taskwatch: watched subscriber failed",
			logger.TaskID(t.id),
			logger.TaskName(t.name),
			logger.Error(err))
	}

	go func() {
		err := w.run(ctx, fn)
		t.err = err
		close(t.done)

		if err == nil {
			return
		}

		_, panicked := err.(*panicError)

		// Fault reporting must survive cancellation of the spawning context.
		reportCtx := context.WithoutCancel(ctx)
		fault := Fault{Task: t, Err: err, Panicked: panicked}
		if raiseErr := w.faulted.Raise(reportCtx, w, fault); raiseErr != nil {
			w.logger.WarnContext(reportCtx, "taskwatch: fault subscriber failed",
				logger.TaskID(t.id),
				logger.TaskName(t.name),
				logger.Error(raiseErr))
		}
		w.logger.ErrorContext(reportCtx, "taskwatch: watched task faulted",
			logger.TaskID(t.id),
			logger.TaskName(t.name),
			logger.Panicked(panicked),
			logger.Error(err))
	}()

	return t
}

// run executes fn with panic recovery, honoring a pre-canceled context.
func (w *Watcher) run(ctx context.Context, fn func(context.Context) error) (err error) {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return fn(ctx)
}

// panicError wraps a recovered panic value so Fault can distinguish panics
// from returned errors.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("taskwatch: task panicked: %v", e.value)
}
