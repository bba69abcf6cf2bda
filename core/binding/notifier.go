package binding

import (
	"context"

	"github.com/mvvmkit/mvvmkit/pkg/weakevent"
)

// Notifier is implemented by targets that broadcast property changes. The
// payload is the property name; an empty name signals that every property
// may have changed.
type Notifier interface {
	PropertyChanged() *weakevent.SourceOf[string]
}

// ChangeNotifier is an embeddable Notifier implementation. The zero value is
// ready to use; it must not be copied after first use.
type ChangeNotifier struct {
	changed weakevent.SourceOf[string]
}

// PropertyChanged returns the property-change broadcaster. The broadcaster
// lives as long as the embedding target; subscribers never own it.
func (n *ChangeNotifier) PropertyChanged() *weakevent.SourceOf[string] {
	return &n.changed
}

// NotifyPropertyChanged broadcasts that the named property changed. Pass an
// empty name to signal that every property may have changed. The returned
// error aggregates subscriber failures; the notification itself always
// reaches every live subscriber.
func (n *ChangeNotifier) NotifyPropertyChanged(ctx context.Context, name string) error {
	return n.changed.Raise(ctx, n, name)
}
