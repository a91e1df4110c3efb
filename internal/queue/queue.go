package queue

import (
	"errors"
	"github.com/eapache/queue"
	"sync"
)

// ErrClosed is returned by Send once Close has been called on the Queue.
var ErrClosed = errors.New("cannot send on a closed Queue")

// ErrDisconnected is returned by Send once every consumer attached to the Queue has
// detached, as there is nothing left to receive the item.
var ErrDisconnected = errors.New("cannot send on a Queue with no consumers")

// Queue is an unbounded multi-producer/multi-consumer FIFO of items of type T.
// Producers call Send, consumers call Receive. Access to the underlying buffer is
// serialized by a single mutex, and idle consumers wait on a condition variable so
// that the mutex is only held for the duration of an enqueue or dequeue attempt.
type Queue[T any] struct {

	// mu protects items, closed and consumers.
	mu *sync.Mutex

	// cond is signalled whenever an item is added and broadcast when the Queue is
	// closed, waking consumers blocked in Receive.
	cond *sync.Cond

	// items is the ring buffer holding the pending items in FIFO order.
	items *queue.Queue

	// closed indicates that the producing end has been released. A closed Queue
	// still hands out its pending items before Receive reports closure.
	closed bool

	// consumers is the number of attached consumers.
	consumers int
}

//region Implementation

// Send appends item to the back of the Queue and wakes one waiting consumer.
// Send never blocks waiting for a consumer.
func (q *Queue[T]) Send(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	if q.consumers == 0 {
		return ErrDisconnected
	}

	q.items.Add(item)
	q.cond.Signal()

	return nil
}

// Receive removes and returns the item at the front of the Queue, blocking until
// one is available. The boolean is false once the Queue is closed and drained, in
// which case no further items will ever be returned.
func (q *Queue[T]) Receive() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Length() == 0 {
		if q.closed {
			var zero T
			return zero, false
		}
		q.cond.Wait()
	}

	return q.items.Remove().(T), true
}

// Close releases the producing end of the Queue. Subsequent calls to Send fail with
// ErrClosed, and every consumer blocked in Receive is woken so it can drain the
// remaining items and observe the closure. Calling Close more than once has no effect.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	q.cond.Broadcast()
}

// Attach registers a consumer with the Queue.
func (q *Queue[T]) Attach() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.consumers++
}

// Detach unregisters a consumer. Once the last consumer has detached, Send fails
// with ErrDisconnected.
func (q *Queue[T]) Detach() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.consumers == 0 {
		panic(errors.New("cannot detach more consumers than are attached"))
	}

	q.consumers--
}

// Len returns the number of items waiting in the Queue.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.items.Length()
}

// Consumers returns the number of attached consumers.
func (q *Queue[T]) Consumers() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.consumers
}

//endregion

//region Constructor

// New initializes an empty, open Queue with no consumers attached.
func New[T any]() *Queue[T] {

	mu := &sync.Mutex{}

	return &Queue[T]{
		mu:    mu,
		cond:  sync.NewCond(mu),
		items: queue.New(),
	}
}

//endregion
