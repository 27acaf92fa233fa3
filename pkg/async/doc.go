// Package async provides generic futures for computations that complete once and are
// awaited by many.
//
// A Future is obtained by calling Async, which starts the supplied function in its own
// goroutine, or with Resolved and Rejected for values that are already known. Any number
// of goroutines may wait on the same Future with Await, AwaitContext or AwaitWithTimeout,
// or poll it with IsComplete. The outcome is recorded exactly once.
//
// AwaitContext lets a caller stop waiting without cancelling the computation, which is
// what a shared fetch needs: one caller walking away must not break the result for the
// others.
//
// # Usage
//
//	future := async.Async(ctx, "en", func(ctx context.Context, lang string) (Bundle, error) {
//	    return fetch(ctx, lang)
//	})
//
//	bundle, err := future.AwaitContext(reqCtx)
//
// # Error Handling
//
// Futures carry the error returned by the callback. AwaitWithTimeout reports ErrTimeout,
// AwaitContext reports the context error.
package async
