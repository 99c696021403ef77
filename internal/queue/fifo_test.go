package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFOOrder(t *testing.T) {
	q := New[int]()
	_, ok := q.Pop()
	require.False(t, ok, "empty queue should not pop")

	q.Push(1, 2)
	q.Push(3)
	assert.Equal(t, 3, q.Len())

	for want := 1; want <= 3; want++ {
		v, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
	assert.Equal(t, 0, q.Len())
}

func TestFIFODrain(t *testing.T) {
	q := New[string]()
	assert.Empty(t, q.Drain())

	q.Push("a", "b", "c")
	assert.Equal(t, []string{"a", "b", "c"}, q.Drain())
	assert.Equal(t, 0, q.Len())
}

func TestFIFOConcurrentPush(t *testing.T) {
	q := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(j)
			}
		}()
	}
	wg.Wait()
	assert.Len(t, q.Drain(), 400)
}
