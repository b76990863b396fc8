package broadcast

import "context"

// Producer emits values through emit until it is done or emit returns false.
// emit returns false once the consumer is gone; the producer must return then.
type Producer[T any] func(ctx context.Context, emit func(T) bool) error

// Stream is a lazy multi-value container. Nothing is produced until Receive
// is called, and every Receive starts an independent production run.
// Values are handed over without buffering, so a slow consumer slows the
// producer down instead of piling up values.
type Stream[T any] struct {
	produce Producer[T]
}

// NewStream creates a stream from a producer.
func NewStream[T any](produce Producer[T]) *Stream[T] {
	return &Stream[T]{produce: produce}
}

// FromSlice creates a cold stream emitting items in order.
func FromSlice[T any](items ...T) *Stream[T] {
	return NewStream(func(_ context.Context, emit func(T) bool) error {
		for _, item := range items {
			if !emit(item) {
				return nil
			}
		}
		return nil
	})
}

// Generate creates a cold stream from a generator. next reports false to end
// the stream; a generator that never does so yields an infinite stream.
func Generate[T any](next func(i int) (T, bool)) *Stream[T] {
	return NewStream(func(_ context.Context, emit func(T) bool) error {
		for i := 0; ; i++ {
			v, ok := next(i)
			if !ok || !emit(v) {
				return nil
			}
		}
	})
}

// FromSubscriber creates a hot stream. Each Receive subscribes to b and
// forwards broadcast messages until the broadcaster closes or fails.
func FromSubscriber[T any](b Broadcaster[T]) *Stream[T] {
	return NewStream(func(ctx context.Context, emit func(T) bool) error {
		sub := b.Subscribe(ctx)
		defer sub.Close()

		ch := sub.Receive(ctx)
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				if msg.Err != nil {
					return msg.Err
				}
				if !emit(msg.Data) {
					return nil
				}
			}
		}
	})
}

// Receive starts production and returns the channel of messages. The channel
// is closed when the stream ends; a failure is delivered as a final message
// with Err set. Cancelling ctx stops production and closes the channel.
func (s *Stream[T]) Receive(ctx context.Context) <-chan Message[T] {
	out := make(chan Message[T])
	if s.produce == nil {
		go func() {
			defer close(out)
			select {
			case out <- Message[T]{Err: ErrNilProducer}:
			case <-ctx.Done():
			}
		}()
		return out
	}

	go func() {
		defer close(out)

		emit := func(v T) bool {
			select {
			case out <- Message[T]{Data: v}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		err := s.produce(ctx, emit)
		if err == nil || ctx.Err() != nil {
			return
		}
		select {
		case out <- Message[T]{Err: err}:
		case <-ctx.Done():
		}
	}()
	return out
}

// Intercept returns a stream forwarding the elements of s after passing each
// to check together with its position. The first failed check ends the
// returned stream with that error and cancels production of s. Elements
// delivered before the failure are unaffected.
func (s *Stream[T]) Intercept(check func(index int, value T) error) *Stream[T] {
	return NewStream(func(ctx context.Context, emit func(T) bool) error {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		index := 0
		for msg := range s.Receive(ctx) {
			if msg.Err != nil {
				return msg.Err
			}
			if err := check(index, msg.Data); err != nil {
				return err
			}
			if !emit(msg.Data) {
				return nil
			}
			index++
		}
		return nil
	})
}

// InterceptEach is Intercept for callers that do not know T.
func (s *Stream[T]) InterceptEach(check func(index int, value any) error) any {
	return s.Intercept(func(index int, value T) error { return check(index, value) })
}

// Collect drains the stream. It returns the elements received before the
// stream ended and the stream's error, if any.
func (s *Stream[T]) Collect(ctx context.Context) ([]T, error) {
	var items []T
	for msg := range s.Receive(ctx) {
		if msg.Err != nil {
			return items, msg.Err
		}
		items = append(items, msg.Data)
	}
	return items, ctx.Err()
}
