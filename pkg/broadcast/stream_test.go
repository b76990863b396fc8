package broadcast_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/validation/pkg/broadcast"
)

func TestStream_Lazy(t *testing.T) {
	defer goleak.VerifyNone(t)

	var produced atomic.Int32
	s := broadcast.Generate(func(i int) (int, bool) {
		produced.Add(1)
		return i, i < 3
	})

	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, produced.Load(), "nothing is produced before Receive")

	items, err := s.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, items)

	items, err = s.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, items, "every Receive starts over")
}

func TestStream_ProducerError(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	s := broadcast.NewStream(func(_ context.Context, emit func(string) bool) error {
		emit("a")
		return boom
	})

	items, err := s.Collect(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, items)

	_, err = broadcast.NewStream[int](nil).Collect(context.Background())
	assert.ErrorIs(t, err, broadcast.ErrNilProducer)
}

func TestStream_Intercept(t *testing.T) {
	defer goleak.VerifyNone(t)
	blank := errors.New("blank")
	notBlank := func(_ int, s string) error {
		if s == "" {
			return blank
		}
		return nil
	}

	t.Run("valid elements pass through", func(t *testing.T) {
		items, err := broadcast.FromSlice("a", "b").Intercept(notBlank).Collect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, items)
	})

	t.Run("first invalid element fails the stream", func(t *testing.T) {
		var seen []int
		s := broadcast.FromSlice("ok", "", "never").Intercept(func(i int, v string) error {
			seen = append(seen, i)
			return notBlank(i, v)
		})

		items, err := s.Collect(context.Background())
		assert.ErrorIs(t, err, blank)
		assert.Equal(t, []string{"ok"}, items)
		assert.Equal(t, []int{0, 1}, seen)
	})

	t.Run("infinite stream is not drained", func(t *testing.T) {
		var produced atomic.Int32
		s := broadcast.Generate(func(i int) (int, bool) {
			produced.Add(1)
			return i, true
		}).Intercept(func(i int, _ int) error {
			if i == 5 {
				return blank
			}
			return nil
		})

		items, err := s.Collect(context.Background())
		assert.ErrorIs(t, err, blank)
		assert.Len(t, items, 5)
		assert.Less(t, produced.Load(), int32(10))
	})

	t.Run("cancellation stops upstream", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		s := broadcast.Generate(func(i int) (int, bool) { return i, true }).
			Intercept(func(int, int) error { return nil })

		ch := s.Receive(ctx)
		<-ch
		<-ch
		cancel()
		for range ch {
		}
	})

	t.Run("untyped interception", func(t *testing.T) {
		out := broadcast.FromSlice(1, 2).InterceptEach(func(i int, v any) error {
			if v.(int) == 2 {
				return blank
			}
			return nil
		})
		s, ok := out.(*broadcast.Stream[int])
		require.True(t, ok)
		items, err := s.Collect(context.Background())
		assert.ErrorIs(t, err, blank)
		assert.Equal(t, []int{1}, items)
	})
}

func TestFromSubscriber(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := broadcast.NewMemoryBroadcaster[string](10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broadcast.FromSubscriber[string](b).Receive(ctx)

	// the subscription exists only once the producer runs
	var msg broadcast.Message[string]
	require.Eventually(t, func() bool {
		_ = b.Broadcast(ctx, broadcast.Message[string]{Data: "probe"})
		select {
		case msg = <-ch:
			return true
		case <-time.After(5 * time.Millisecond):
			return false
		}
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "probe", msg.Data)

	boom := errors.New("boom")
	require.NoError(t, b.Fail(ctx, boom))

	var last broadcast.Message[string]
	for m := range ch {
		last = m
	}
	assert.ErrorIs(t, last.Err, boom)
}
