package binding

import (
	"context"

	"github.com/mvvmkit/mvvmkit/pkg/weakevent"
)

// Bridge is a live watch of one property on a notifier. It exists to drive
// invalidation: whenever the watched property fires, the reaction runs with
// the resolved owner. Dropping the last strong reference to the owner ends
// the watch implicitly; Close ends it explicitly.
type Bridge struct {
	sub weakevent.Subscription
}

// Watch subscribes owner to the notifier's property-change broadcaster,
// filtered by property name. Notifications with an empty name match any
// property. The owner is held weakly: the watch never extends the owner's
// lifetime, and react receives the resolved owner instead of capturing it.
func Watch[O any](n Notifier, property string, owner *O, react func(ctx context.Context, owner *O) error) (*Bridge, error) {
	switch {
	case n == nil:
		return nil, ErrNilNotifier
	case property == "":
		return nil, ErrEmptyProperty
	case owner == nil:
		return nil, ErrNilOwner
	case react == nil:
		return nil, ErrNilReaction
	}

	src := n.PropertyChanged()
	handler := func(ctx context.Context, target, sender any, name string) error {
		if name != "" && name != property {
			return nil
		}
		o, ok := target.(*O)
		if !ok {
			return nil
		}
		return react(ctx, o)
	}
	sub := src.Subscribe(weakevent.HandleFor(owner), handler)

	return &Bridge{sub: sub}, nil
}

// Close removes the watch from the notifier. Safe to call more than once.
func (b *Bridge) Close() {
	b.sub.Cancel()
}
