// Package binding connects property-change notifications to reactions
// through the weak subscription mechanism in pkg/weakevent.
//
// Notifier is the contract a target exposes: a single typed broadcaster
// carrying the name of the property that changed (an empty name means every
// property changed). ChangeNotifier is an embeddable implementation for
// view-model-style targets:
//
//	type Profile struct {
//	    binding.ChangeNotifier
//	    enabled bool
//	}
//
//	func (p *Profile) SetEnabled(ctx context.Context, v bool) error {
//	    p.enabled = v
//	    return p.NotifyPropertyChanged(ctx, "IsEnabled")
//	}
//
// Bridge watches one property on a notifier and invokes a reaction with its
// resolved owner. The bridge neither keeps the owner alive (the owner is
// held through a weak handle) nor is kept alive past the notifier; it is
// typically created once per command and discarded with it.
//
//	bridge, err := binding.Watch(profile, "IsEnabled", cmd,
//		func(ctx context.Context, cmd *RefreshCommand) error {
//			return cmd.Refresh(ctx)
//		})
package binding
