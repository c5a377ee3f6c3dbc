package single

import (
	"context"
	"sync"
)

// StartFunc produces the sequence's one value. It runs on the subscription's
// goroutine and must honor ctx cancellation at its blocking points.
type StartFunc[T any] func(ctx context.Context) (T, error)

// Single is a lazy asynchronous computation yielding at most one value or
// one error. Construction performs no work; the start function runs only
// when the Single gains its subscriber.
type Single[T any] struct {
	start StartFunc[T]

	mu  sync.Mutex
	sub *Subscription[T]
}

// New creates a Single from a start function.
func New[T any](start StartFunc[T]) *Single[T] {
	return &Single[T]{start: start}
}

// Just creates a Single that immediately yields v on subscription.
func Just[T any](v T) *Single[T] {
	return New(func(_ context.Context) (T, error) {
		return v, nil
	})
}

// Fail creates a Single that immediately fails with err on subscription.
func Fail[T any](err error) *Single[T] {
	return New(func(_ context.Context) (T, error) {
		var zero T
		return zero, err
	})
}

// Map derives a Single that applies fn to the source's value. Composition is
// lazy: the source's start function and fn both run on the subscriber's
// goroutine, so a mapped Single still performs no work until subscribed.
func Map[I, O any](s *Single[I], fn func(I) (O, error)) *Single[O] {
	return New(func(ctx context.Context) (O, error) {
		v, err := s.start(ctx)
		if err != nil {
			var zero O
			return zero, err
		}
		return fn(v)
	})
}

// Subscribe starts the computation and returns its Subscription. The first
// call transitions the Single from Idle to Pending; subsequent calls return
// the same Subscription without restarting anything.
//
// ctx bounds the computation: canceling it behaves like Subscription.Cancel.
func (s *Single[T]) Subscribe(ctx context.Context) *Subscription[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		return s.sub
	}

	runCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription[T]{
		state:  Pending,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.sub = sub

	go func() {
		defer cancel()
		v, err := s.start(runCtx)
		if err != nil {
			sub.fail(err)
			return
		}
		sub.succeed(v)
	}()

	return sub
}

// State reports Idle before subscription, otherwise the subscription's state.
func (s *Single[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub == nil {
		return Idle
	}
	return s.sub.State()
}
