package stately

import (
	"errors"
	"time"
)

// ErrTimeout is returned by AwaitWithTimeout when the future is not complete
var ErrTimeout = errors.New("future: timeout waiting for result")

// Future represents the result of a suspended machine operation.
type Future[T any] struct {
	result   T
	err      error
	panicked any
	done     chan struct{}
}

// goFuture runs fn as a task. A panic inside fn is re-raised by Await.
func goFuture[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.panicked = r
			}
		}()

		f.result, f.err = fn()
	}()

	return f
}

// Await waits for the operation to complete and returns its result and error.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	if f.panicked != nil {
		panic(f.panicked)
	}
	return f.result, f.err
}

// AwaitWithTimeout waits for the operation with a timeout. The operation keeps
// running after a timeout; only the wait is abandoned.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.Await()
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// IsComplete checks if the operation is complete without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done is closed when the operation completes
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
