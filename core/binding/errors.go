package binding

import "errors"

var (
	// ErrNilNotifier is returned when a watch is requested on a nil notifier.
	ErrNilNotifier = errors.New("binding: notifier is nil")

	// ErrEmptyProperty is returned when a watch is requested without a property name.
	ErrEmptyProperty = errors.New("binding: property name is empty")

	// ErrNilOwner is returned when a watch is requested for a nil owner.
	ErrNilOwner = errors.New("binding: owner is nil")

	// ErrNilReaction is returned when a watch is requested without a reaction callback.
	ErrNilReaction = errors.New("binding: reaction is nil")
)
