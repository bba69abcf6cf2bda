// Package logger provides structured logging attributes built on Go's
// standard slog package, with type-safe helpers for the module's diagnostic
// vocabulary (tasks, components, errors).
//
// Attribute helpers return the empty slog.Attr for absent values, so call
// sites never need nil checks:
//
//	log.Error("watched task faulted",
//		logger.TaskID(task.ID()),
//		logger.TaskName(task.Name()),
//		logger.Error(err),
//	)
package logger
