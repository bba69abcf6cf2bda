package taskwatch

import (
	"context"
	"time"
)

// Task is the handle of one watched fire-and-forget operation. Callers may
// discard it; completion and failure are reported through the watcher's
// broadcasters regardless.
type Task struct {
	id        string
	name      string
	startedAt time.Time

	done chan struct{}
	err  error // written once before done is closed
}

// ID returns the unique identifier of the watched operation.
func (t *Task) ID() string { return t.id }

// Name returns the caller-supplied operation name, used in diagnostics.
func (t *Task) Name() string { return t.name }

// StartedAt returns when the operation was registered for watching.
func (t *Task) StartedAt() time.Time { return t.startedAt }

// Done returns a channel that is closed when the operation completes.
func (t *Task) Done() <-chan struct{} { return t.done }

// Err returns the terminal error without blocking. It is nil while the
// operation is still running and nil after a successful completion.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Await blocks until the operation completes or ctx is done, returning the
// operation's terminal error or the context's error respectively.
func (t *Task) Await(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fault describes a watched operation that ended in failure.
type Fault struct {
	Task     *Task
	Err      error
	Panicked bool // failure was a recovered panic rather than a returned error
}
