// Package broadcast provides lazy multi-value streams and a one-to-many
// message broadcaster feeding them.
//
// A Stream produces nothing until Receive is called. Values are handed to the
// consumer over an unbuffered channel, so an infinite producer only runs as
// far as the consumer reads. A failure ends the stream with a final Message
// whose Err is set.
//
//	s := broadcast.FromSlice("a", "b", "")
//	checked := s.Intercept(func(i int, v string) error {
//		if v == "" {
//			return errBlank
//		}
//		return nil
//	})
//
//	items, err := checked.Collect(ctx) // ["a" "b"], errBlank
//
// Intercept stops reading from the source at the first failed check and
// cancels it, so no goroutine outlives the failure.
//
// MemoryBroadcaster is a hot source. FromSubscriber turns it into a stream
// that ends when the broadcaster is closed or fails:
//
//	b := broadcast.NewMemoryBroadcaster[Event](16)
//	events := broadcast.FromSubscriber[Event](b)
//
//	go b.Broadcast(ctx, broadcast.Message[Event]{Data: ev})
//	_ = b.Fail(ctx, io.ErrUnexpectedEOF) // terminates every subscriber
//
// Slow subscribers never block a broadcast. A subscriber whose buffer is full
// misses the message and is removed.
package broadcast
