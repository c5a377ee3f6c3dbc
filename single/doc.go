// Package single provides a lazy, cancelable asynchronous computation that
// produces at most one value or one error.
//
// A Single is built from a start function and performs no work until
// Subscribe is called. Subscribing starts the computation on its own
// goroutine and returns a Subscription that settles exactly once:
//
//	s := single.New(func(ctx context.Context) (int, error) {
//	    return compute(ctx)
//	})
//	sub := s.Subscribe(ctx)
//	v, err := sub.Wait(ctx)
//
// Canceling a pending subscription aborts the computation's context and
// guarantees that no value or error from it is ever observed. Terminal
// states are absorbing: once a subscription has succeeded, failed, or been
// canceled, later events are dropped and Cancel becomes a no-op.
//
// A Single supports one subscription. Repeated Subscribe calls return the
// original Subscription, so the start function runs at most once ever.
package single
