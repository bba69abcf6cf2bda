package weakevent_test

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mvvmkit/mvvmkit/pkg/weakevent"
)

// recorder collects dispatch observations; its pointer fields keep it out of
// the tiny allocator so weak handles to it are reclaimed predictably.
type recorder struct {
	name  string
	calls *atomic.Int32
}

func TestRaiseInvokesInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	var src weakevent.Source
	var mu sync.Mutex
	var order []int

	for i := range 5 {
		src.Subscribe(weakevent.Handle{}, func(ctx context.Context, target, sender any) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
	}

	require.NoError(t, src.Raise(context.Background(), t))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)

	// A second raise repeats the same order from a fresh snapshot.
	order = order[:0]
	require.NoError(t, src.Raise(context.Background(), t))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestRaisePassesSenderAndPayload(t *testing.T) {
	t.Parallel()

	var src weakevent.SourceOf[string]
	sender := &recorder{name: "publisher"}

	var gotSender any
	var gotArgs string
	src.Subscribe(weakevent.Handle{}, func(ctx context.Context, target, s any, args string) error {
		gotSender = s
		gotArgs = args
		return nil
	})

	require.NoError(t, src.Raise(context.Background(), sender, "IsEnabled"))
	assert.Same(t, sender, gotSender)
	assert.Equal(t, "IsEnabled", gotArgs)
}

func TestSubscribeNilHandlerIsNoop(t *testing.T) {
	t.Parallel()

	var src weakevent.Source
	sub := src.Subscribe(weakevent.Handle{}, nil)
	assert.Equal(t, 0, src.Len())

	sub.Cancel() // zero subscription, harmless
}

func TestUnsubscribeNeverRegisteredIsNoop(t *testing.T) {
	t.Parallel()

	var src weakevent.Source
	src.Subscribe(weakevent.Handle{}, func(ctx context.Context, target, sender any) error { return nil })

	assert.NotPanics(t, func() {
		src.Unsubscribe(func(ctx context.Context, target, sender any) error { return errors.New("stranger") })
		src.Unsubscribe(nil)
	})
	assert.Equal(t, 1, src.Len())
}

func TestUnsubscribeRemovesAllIdentityMatches(t *testing.T) {
	t.Parallel()

	var src weakevent.Source
	var calls atomic.Int32
	fn := weakevent.Handler(func(ctx context.Context, target, sender any) error {
		calls.Add(1)
		return nil
	})

	src.Subscribe(weakevent.Handle{}, fn)
	src.Subscribe(weakevent.Handle{}, fn)
	require.Equal(t, 2, src.Len())

	src.Unsubscribe(fn)
	assert.Equal(t, 0, src.Len())
	require.NoError(t, src.Raise(context.Background(), t))
	assert.Equal(t, int32(0), calls.Load())
}

func TestSubscriptionCancelRemovesSingleRegistration(t *testing.T) {
	t.Parallel()

	var src weakevent.Source
	var calls atomic.Int32
	fn := weakevent.Handler(func(ctx context.Context, target, sender any) error {
		calls.Add(1)
		return nil
	})

	first := src.Subscribe(weakevent.Handle{}, fn)
	src.Subscribe(weakevent.Handle{}, fn)

	first.Cancel()
	assert.Equal(t, 1, src.Len())

	require.NoError(t, src.Raise(context.Background(), t))
	assert.Equal(t, int32(1), calls.Load())

	first.Cancel() // idempotent
	assert.Equal(t, 1, src.Len())
}

func TestRaiseSkipsAndPurgesDeadSubscriber(t *testing.T) {
	var src weakevent.SourceOf[int]
	survivorCalls := &atomic.Int32{}
	ghostCalls := &atomic.Int32{}

	survivor := &recorder{name: "survivor", calls: survivorCalls}
	weakevent.ListenTo(&src, survivor, func(ctx context.Context, r *recorder, sender any, v int) error {
		r.calls.Add(1)
		return nil
	})

	// Subscribe a recorder that goes unreachable as soon as this helper
	// returns; only the weak handle remains in the registry.
	func() {
		ghost := &recorder{name: "ghost", calls: ghostCalls}
		weakevent.ListenTo(&src, ghost, func(ctx context.Context, r *recorder, sender any, v int) error {
			r.calls.Add(1)
			return nil
		})
	}()
	require.Equal(t, 2, src.Len())

	runtime.GC()
	runtime.GC()

	// First raise after collection still succeeds, skips the dead entry,
	// and triggers the batched purge.
	require.NoError(t, src.Raise(context.Background(), t, 1))
	assert.Equal(t, int32(1), survivorCalls.Load())
	assert.Equal(t, int32(0), ghostCalls.Load())
	assert.Equal(t, 1, src.Len())

	require.NoError(t, src.Raise(context.Background(), t, 2))
	assert.Equal(t, int32(2), survivorCalls.Load())

	runtime.KeepAlive(survivor)
}

func TestHandlerFailuresAreIsolated(t *testing.T) {
	t.Parallel()

	var src weakevent.Source
	errBoom := errors.New("boom")
	var calls []string
	var mu sync.Mutex
	record := func(name string) {
		mu.Lock()
		calls = append(calls, name)
		mu.Unlock()
	}

	src.Subscribe(weakevent.Handle{}, func(ctx context.Context, target, sender any) error {
		record("failing")
		return errBoom
	})
	src.Subscribe(weakevent.Handle{}, func(ctx context.Context, target, sender any) error {
		record("panicking")
		panic("unreachable state")
	})
	src.Subscribe(weakevent.Handle{}, func(ctx context.Context, target, sender any) error {
		record("last")
		return nil
	})

	err := src.Raise(context.Background(), t)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "handler panicked")
	assert.Equal(t, []string{"failing", "panicking", "last"}, calls)
}

func TestReentrantSubscribeDuringDispatch(t *testing.T) {
	t.Parallel()

	var src weakevent.Source
	var lateCalls atomic.Int32

	src.Subscribe(weakevent.Handle{}, func(ctx context.Context, target, sender any) error {
		src.Subscribe(weakevent.Handle{}, func(ctx context.Context, target, sender any) error {
			lateCalls.Add(1)
			return nil
		})
		return nil
	})

	// The newly added handler is not part of the in-flight snapshot.
	require.NoError(t, src.Raise(context.Background(), t))
	assert.Equal(t, int32(0), lateCalls.Load())

	require.NoError(t, src.Raise(context.Background(), t))
	assert.Equal(t, int32(1), lateCalls.Load())
}

func TestReentrantUnsubscribeDuringDispatch(t *testing.T) {
	t.Parallel()

	var src weakevent.Source
	var calls atomic.Int32
	var sub weakevent.Subscription

	sub = src.Subscribe(weakevent.Handle{}, func(ctx context.Context, target, sender any) error {
		calls.Add(1)
		sub.Cancel()
		return nil
	})

	require.NoError(t, src.Raise(context.Background(), t))
	require.NoError(t, src.Raise(context.Background(), t))
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 0, src.Len())
}

func TestListenResolvesOwner(t *testing.T) {
	t.Parallel()

	var src weakevent.Source
	owner := &recorder{name: "owner", calls: &atomic.Int32{}}

	handler, sub := weakevent.Listen(&src, owner, func(ctx context.Context, o *recorder, sender any) error {
		o.calls.Add(1)
		return nil
	})
	require.NoError(t, src.Raise(context.Background(), t))
	assert.Equal(t, int32(1), owner.calls.Load())

	sub.Cancel()
	require.NoError(t, src.Raise(context.Background(), t))
	assert.Equal(t, int32(1), owner.calls.Load())

	_ = handler
	runtime.KeepAlive(owner)
}

func TestConcurrentSubscribeAndRaise(t *testing.T) {
	t.Parallel()

	var src weakevent.SourceOf[int]
	keep := &recorder{name: "keep", calls: &atomic.Int32{}}
	weakevent.ListenTo(&src, keep, func(ctx context.Context, r *recorder, sender any, v int) error {
		r.calls.Add(1)
		return nil
	})

	var g errgroup.Group
	for w := range 4 {
		g.Go(func() error {
			for i := range 250 {
				switch (w + i) % 3 {
				case 0:
					if err := src.Raise(context.Background(), nil, i); err != nil {
						return err
					}
				case 1:
					owner := &recorder{name: "transient", calls: &atomic.Int32{}}
					_, sub := weakevent.ListenTo(&src, owner, func(ctx context.Context, r *recorder, sender any, v int) error {
						r.calls.Add(1)
						return nil
					})
					sub.Cancel()
				default:
					if src.Len() < 0 {
						return errors.New("negative registry length")
					}
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.GreaterOrEqual(t, src.Len(), 1)
	assert.Positive(t, keep.calls.Load())
	runtime.KeepAlive(keep)
}
