package cache_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validation/pkg/cache"
)

func TestLRU_Basic(t *testing.T) {
	t.Run("add and get", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)
		c.Add("a", 1)
		c.Add("b", 2)

		v, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v)

		v, ok = c.Get("missing")
		assert.False(t, ok)
		assert.Zero(t, v)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("add replaces", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)
		c.Add("a", 1)
		c.Add("a", 2)

		v, _ := c.Get("a")
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("non-positive capacity uses default", func(t *testing.T) {
		c := cache.NewLRU[int, int](0)
		for i := range cache.DefaultCapacity + 1 {
			c.Add(i, i)
		}
		assert.Equal(t, cache.DefaultCapacity, c.Len())
	})
}

func TestLRU_Eviction(t *testing.T) {
	var evicted []string
	c := cache.NewLRU[string, int](2, cache.WithEvictCallback(func(k string, _ int) {
		evicted = append(evicted, k)
	}))

	c.Add("a", 1)
	c.Add("b", 2)
	_, _ = c.Get("a")
	c.Add("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b was least recently used")
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []string{"b"}, evicted)

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Equal(t, []string{"b"}, evicted, "remove does not evict")

	c.Purge()
	assert.Equal(t, []string{"b", "c"}, evicted)
	assert.Zero(t, c.Len())
}

func TestLRU_GetOrCreate(t *testing.T) {
	t.Run("creates once", func(t *testing.T) {
		c := cache.NewLRU[string, string](4)
		calls := 0
		create := func() (string, error) {
			calls++
			return "value", nil
		}

		v, err := c.GetOrCreate("k", create)
		require.NoError(t, err)
		assert.Equal(t, "value", v)

		v, err = c.GetOrCreate("k", create)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
		assert.Equal(t, 1, calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		c := cache.NewLRU[string, int](4)
		boom := errors.New("boom")

		_, err := c.GetOrCreate("k", func() (int, error) { return 0, boom })
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, c.Len())

		v, err := c.GetOrCreate("k", func() (int, error) { return 7, nil })
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})
}

func TestLRU_Concurrent(t *testing.T) {
	c := cache.NewLRU[string, int](50)
	var wg sync.WaitGroup

	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key%d", n%60)
			_, _ = c.GetOrCreate(key, func() (int, error) { return n, nil })
			_, _ = c.Get(key)
			if n%7 == 0 {
				c.Remove(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
