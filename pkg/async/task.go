// Package async provides a cancellable unit of background work and a
// context-aware sleep.
package async

import (
	"context"
	"time"
)

type Task[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	value  T
	err    error
}

// Go starts fn in its own goroutine. The context handed to fn is cancelled
// when parent is done or Cancel is called.
func Go[T any](parent context.Context, fn func(ctx context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(parent)
	t := &Task[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer close(t.done)
		defer cancel()
		t.value, t.err = fn(ctx)
	}()
	return t
}

func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

func (t *Task[T]) Cancel() {
	t.cancel()
}

// Await blocks until the task finishes or ctx is done. When ctx wins the task
// is cancelled and Await still waits for it to return, so no goroutine is left
// behind.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		t.cancel()
		<-t.done
		var zero T
		return zero, ctx.Err()
	}
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
