package command

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the root of all precondition failures caused by
	// an absent required value.
	ErrInvalidArgument = errors.New("command: invalid argument")

	// ErrInvalidOperation is the root of all precondition failures caused by
	// calling builder operations in an invalid order or state.
	ErrInvalidOperation = errors.New("command: invalid operation")
)

var (
	// ErrNilTarget is returned when a builder is created for a nil target.
	ErrNilTarget = fmt.Errorf("%w: target is nil", ErrInvalidArgument)

	// ErrNilExecute is returned when Execute or ExecuteAsync is given a nil function.
	ErrNilExecute = fmt.Errorf("%w: execute function is nil", ErrInvalidArgument)

	// ErrNilPredicate is returned when CanExecute is given a nil predicate.
	ErrNilPredicate = fmt.Errorf("%w: can-execute predicate is nil", ErrInvalidArgument)

	// ErrEmptyProperty is returned when DependsOn is given an empty property name.
	ErrEmptyProperty = fmt.Errorf("%w: property name is empty", ErrInvalidArgument)

	// ErrNilWatcher is returned when WithWatcher is given a nil watcher.
	ErrNilWatcher = fmt.Errorf("%w: watcher is nil", ErrInvalidArgument)
)

var (
	// ErrExecuteAlreadySet is returned when the execute action is set twice.
	ErrExecuteAlreadySet = fmt.Errorf("%w: execute already set", ErrInvalidOperation)

	// ErrPredicateAlreadySet is returned when the can-execute predicate is set twice.
	ErrPredicateAlreadySet = fmt.Errorf("%w: can-execute predicate already set", ErrInvalidOperation)

	// ErrPropertyAlreadySet is returned when the property dependency is set twice.
	ErrPropertyAlreadySet = fmt.Errorf("%w: property dependency already set", ErrInvalidOperation)

	// ErrWatcherAlreadySet is returned when the watcher is set twice.
	ErrWatcherAlreadySet = fmt.Errorf("%w: watcher already set", ErrInvalidOperation)

	// ErrExecuteRequired is returned by Build when no execute action was set.
	ErrExecuteRequired = fmt.Errorf("%w: build requires an execute action", ErrInvalidOperation)

	// ErrPredicateRequired is returned by Build when a property dependency
	// was declared without a predicate to re-evaluate.
	ErrPredicateRequired = fmt.Errorf("%w: property dependency requires a can-execute predicate", ErrInvalidOperation)

	// ErrNotifierRequired is returned by Build when a property dependency
	// was declared but the target does not broadcast property changes.
	ErrNotifierRequired = fmt.Errorf("%w: property dependency requires a target implementing binding.Notifier", ErrInvalidOperation)
)
