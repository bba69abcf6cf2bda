package taskwatch

import (
	"log/slog"
	"sync/atomic"
)

// The process-wide watcher reports through slog.Default so unobserved
// faults are at least visible in logs when nobody injected a watcher.
var defaultWatcher atomic.Pointer[Watcher]

func init() {
	defaultWatcher.Store(New(WithLogger(slog.Default())))
}

// Default returns the process-wide watcher.
func Default() *Watcher {
	return defaultWatcher.Load()
}

// SetDefault replaces the process-wide watcher. A nil watcher is ignored.
// Intended for tests and application wiring at startup; prefer passing a
// watcher explicitly everywhere else.
func SetDefault(w *Watcher) {
	if w != nil {
		defaultWatcher.Store(w)
	}
}
