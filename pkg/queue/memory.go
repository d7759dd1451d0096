package queue

import "sync"

const (
	// QueueBufferSize is the default capacity of an in-memory queue
	QueueBufferSize = 1024
)

// InMemoryQueue implements an in-memory queue.
type InMemoryQueue[T any] struct {
	ch   chan T
	lock sync.RWMutex
}

// NewInMemoryQueue creates a new queue holding at most size items.
// A non-positive size uses QueueBufferSize.
func NewInMemoryQueue[T any](size int) *InMemoryQueue[T] {
	if size <= 0 {
		size = QueueBufferSize
	}
	return &InMemoryQueue[T]{
		ch: make(chan T, size),
	}
}

// Enqueue adds an item to the end of the queue without blocking.
func (q *InMemoryQueue[T]) Enqueue(item T) error {
	q.lock.Lock()
	defer q.lock.Unlock()
	select {
	case q.ch <- item:
		return nil
	default:
		return ErrQueueFull
	}
}

// Size returns the current size of the queue.
func (q *InMemoryQueue[T]) Size() int {
	q.lock.RLock()
	defer q.lock.RUnlock()
	return len(q.ch)
}

// ReadAllMessages drains the queue in FIFO order.
func (q *InMemoryQueue[T]) ReadAllMessages() []T {
	q.lock.Lock()
	defer q.lock.Unlock()

	var items []T
	for len(q.ch) > 0 {
		items = append(items, <-q.ch)
	}

	return items
}

// ClearQueue clears all items from the queue.
func (q *InMemoryQueue[T]) ClearQueue() {
	q.lock.Lock()
	defer q.lock.Unlock()

	for len(q.ch) > 0 {
		<-q.ch
	}
}
