package async

import (
	"context"
	"sync"
	"time"
)

// Future represents the result of an asynchronous computation.
// Continuations registered with Then run once the result is available.
type Future[U any] struct {
	mu        sync.Mutex
	result    U
	err       error
	done      chan struct{}
	callbacks []func(U, error)
	cancel    func()
}

func newFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// complete settles the future once. Later calls are ignored.
func (f *Future[U]) complete(res U, err error) bool {
	f.mu.Lock()
	select {
	case <-f.done:
		f.mu.Unlock()
		return false
	default:
	}
	f.result, f.err = res, err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb(res, err)
	}
	return true
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout waits for the asynchronous function to complete with a timeout.
// Returns the result and error if the function completes before the timeout.
// If the timeout occurs before completion, returns a timeout error.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

// AwaitContext waits for completion or until ctx is done.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Done returns a channel closed on completion.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// IsComplete checks if the asynchronous function is complete without blocking.
// Returns true if the function has completed, false otherwise.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Then registers a continuation. It runs on the goroutine completing the
// future, or immediately when the future is already complete.
func (f *Future[U]) Then(fn func(U, error)) {
	f.mu.Lock()
	select {
	case <-f.done:
		f.mu.Unlock()
		fn(f.result, f.err)
		return
	default:
	}
	f.callbacks = append(f.callbacks, fn)
	f.mu.Unlock()
}

// Cancel completes a pending future with ErrCancelled and cancels the
// computation behind it. It is a no-op on complete futures.
func (f *Future[U]) Cancel() {
	var zero U
	if f.complete(zero, ErrCancelled) && f.cancel != nil {
		f.cancel()
	}
}

// Intercept returns a future completing with the same outcome, except that a
// successful result is first passed to check; a non-nil error from check
// fails the returned future instead. Cancelling the returned future cancels f.
func (f *Future[U]) Intercept(check func(U) error) *Future[U] {
	derived := newFuture[U]()
	derived.cancel = f.Cancel

	f.Then(func(res U, err error) {
		if err == nil {
			if cerr := check(res); cerr != nil {
				var zero U
				derived.complete(zero, cerr)
				return
			}
		}
		derived.complete(res, err)
	})
	return derived
}

// InterceptAny is Intercept for callers that do not know U.
func (f *Future[U]) InterceptAny(check func(any) error) any {
	return f.Intercept(func(v U) error { return check(v) })
}

// Async executes a function asynchronously and returns a Future.
// The function accepts a context.Context and a parameter of any type T, and returns (U, error).
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	ctx, cancel := context.WithCancel(ctx)
	f := newFuture[U]()
	f.cancel = cancel

	go func() {
		defer cancel()

		// Early exit prevents goroutine leak when context is pre-canceled
		if err := ctx.Err(); err != nil {
			var zero U
			f.complete(zero, err)
			return
		}

		res, err := fn(ctx, param)
		f.complete(res, err)
	}()

	return f
}

// NewPromise returns a pending future and the function settling it.
// Only the first call to settle has an effect.
func NewPromise[U any]() (*Future[U], func(U, error)) {
	f := newFuture[U]()
	return f, func(res U, err error) { f.complete(res, err) }
}

// Resolve returns a future completed with v.
func Resolve[U any](v U) *Future[U] {
	f := newFuture[U]()
	f.complete(v, nil)
	return f
}

// Reject returns a future failed with err.
func Reject[U any](err error) *Future[U] {
	f := newFuture[U]()
	var zero U
	f.complete(zero, err)
	return f
}

// WaitAll waits for all futures to complete and returns a slice of their results and an error
// if any of the futures returned an error.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// WaitAny waits for any of the futures to complete and returns the index of the completed future,
// its result, and any error it might have returned.
func WaitAny[U any](futures ...*Future[U]) (int, U, error) {
	if len(futures) == 0 {
		var zero U
		return -1, zero, ErrNoFutures
	}

	type outcome struct {
		index  int
		result U
		err    error
	}
	// buffered so continuations of late futures never block
	done := make(chan outcome, len(futures))

	for i, future := range futures {
		future.Then(func(res U, err error) {
			done <- outcome{i, res, err}
		})
	}

	res := <-done
	return res.index, res.result, res.err
}
