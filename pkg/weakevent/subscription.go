package weakevent

// Subscription identifies one registration on a source. Unlike Unsubscribe,
// which matches by callback identity, Cancel removes exactly the
// registration that produced it.
type Subscription struct {
	cancel func()
}

// Cancel removes the registration from its source. Safe to call on the zero
// Subscription and safe to call more than once.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}
