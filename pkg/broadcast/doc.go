// Package broadcast provides type-safe, synchronous event streams with subscription handles.
//
// A Stream keeps an ordered list of callbacks. Emit runs each of them on the calling
// goroutine, in subscription order, before returning. Nothing is buffered, batched or
// coalesced: two Emit calls with the same value reach every subscriber twice.
//
// Basic usage:
//
//	var changes broadcast.Stream[string]
//
//	sub := changes.Subscribe(func(key string) {
//		fmt.Println("changed:", key)
//	})
//	defer sub.Unsubscribe()
//
//	changes.Emit("hello_world")
//
// Dispatch iterates over a snapshot of the subscriber list, so callbacks may call
// Unsubscribe (their own or another subscriber's) and Subscribe without deadlocking.
// A subscriber removed while an event is being dispatched does not receive that event
// unless its callback already ran. Unsubscribe is idempotent.
//
// Serial orders deliveries that originate on different goroutines. Wrapping
// every Emit of a set of streams in Serial.Do guarantees that no two callbacks
// of those streams run at once:
//
//	var dispatch broadcast.Serial
//	dispatch.Do(func() { changes.Emit("hello_world") })
package broadcast
