package queue

import "sync"

// FIFO is an unbounded first-in first-out buffer. It is safe to push from one
// goroutine (an edge watcher, say) while the poll loop pops from another.
type FIFO[T any] struct {
	mu    sync.Mutex
	items []T
}

func New[T any]() *FIFO[T] {
	return &FIFO[T]{}
}

// Push appends values at the tail.
func (q *FIFO[T]) Push(vs ...T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, vs...)
}

// Pop removes the oldest value. ok is false when the buffer is empty.
func (q *FIFO[T]) Pop() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return v, false
	}
	v = q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return v, true
}

func (q *FIFO[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain removes and returns everything buffered, oldest first.
func (q *FIFO[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}
