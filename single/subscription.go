package single

import (
	"context"
	"errors"
	"sync"
)

// State is a Single's position in its lifecycle.
type State int

const (
	// Idle means the Single has not been subscribed yet.
	Idle State = iota
	// Pending means the computation is running.
	Pending
	// Succeeded means the computation yielded its value.
	Succeeded
	// Failed means the computation yielded an error.
	Failed
	// Canceled means the subscription was canceled before settling.
	Canceled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is absorbing.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed || s == Canceled
}

// ErrCanceled is returned by Result and Wait after the subscription was
// canceled before settling.
var ErrCanceled = errors.New("single: subscription canceled")

// ErrPending is returned by Result while the computation is still running.
var ErrPending = errors.New("single: subscription still pending")

// Subscription is a running computation's handle. It settles exactly once;
// the settle transition is guarded so that late completions (for example a
// start function returning after Cancel) are dropped.
type Subscription[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu    sync.Mutex
	state State
	val   T
	err   error
}

// Done returns a channel closed when the subscription reaches a terminal
// state.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// State reports the subscription's current state.
func (s *Subscription[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the settled outcome. While still pending it returns
// ErrPending; after cancelation it returns ErrCanceled.
func (s *Subscription[T]) Result() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	switch s.state {
	case Succeeded:
		return s.val, nil
	case Failed:
		return zero, s.err
	case Canceled:
		return zero, ErrCanceled
	default:
		return zero, ErrPending
	}
}

// Wait blocks until the subscription settles or ctx is done, then returns
// the outcome.
func (s *Subscription[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-s.done:
		return s.Result()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Cancel aborts a pending computation. The computation's context is
// canceled and any outcome it later produces is dropped. Cancel after a
// terminal state is a no-op.
func (s *Subscription[T]) Cancel() {
	s.mu.Lock()
	if s.state != Pending {
		s.mu.Unlock()
		return
	}
	s.state = Canceled
	close(s.done)
	s.mu.Unlock()

	s.cancel()
}

func (s *Subscription[T]) succeed(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Pending {
		return
	}
	s.state = Succeeded
	s.val = v
	close(s.done)
}

func (s *Subscription[T]) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Pending {
		return
	}
	s.state = Failed
	s.err = err
	close(s.done)
}
