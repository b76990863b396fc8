// Package async implements Future, a single value that becomes available
// later, together with helpers to produce and combine futures.
//
// Async runs a function in its own goroutine and returns the Future of its
// result. NewPromise returns a pending Future and the function settling it,
// for producers that complete from callbacks. Resolve and Reject build
// futures that are already complete.
//
//	f := async.Async(ctx, id, loadBook)
//	book, err := f.AwaitWithTimeout(2 * time.Second)
//
// Consumers block with Await, AwaitWithTimeout or AwaitContext, or register
// a continuation with Then. WaitAll collects the results of several futures
// and WaitAny returns the first one to complete.
//
// # Interception
//
// Intercept derives a future that passes a successful result through a check
// before completing. A failing check completes the derived future with the
// check's error, so a consumer awaiting it observes the failure exactly where
// it would observe any other error. The source is never blocked on and its
// errors bypass the check. Cancelling the derived future cancels the source.
// InterceptAny is the untyped form used when the element type is unknown.
//
// # Errors
//
// Await returns the producer's error, the error of a failed check,
// ErrTimeout from AwaitWithTimeout or ErrCancelled after Cancel. A context
// cancelled before the producer starts completes the future with the
// context error.
package async
