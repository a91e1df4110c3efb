package queue

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestQueue_SendReceiveFIFO(t *testing.T) {
	q := New[int]()
	q.Attach()

	for i := 0; i < 5; i++ {
		if err := q.Send(i); err != nil {
			t.Fatalf("unexpected error sending %d: %v", i, err)
		}
	}

	if q.Len() != 5 {
		t.Fatalf("expected 5 pending items, got %d", q.Len())
	}

	// Items must come back in the order they were sent.
	for i := 0; i < 5; i++ {
		item, ok := q.Receive()
		if !ok {
			t.Fatalf("expected item %d, but queue reported closed", i)
		}
		if item != i {
			t.Fatalf("expected item %d, got %d", i, item)
		}
	}
}

func TestQueue_SendAfterClose(t *testing.T) {
	q := New[int]()
	q.Attach()
	q.Close()

	if err := q.Send(1); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}

	// Ensure a second Close does not panic.
	q.Close()
}

func TestQueue_SendWithoutConsumers(t *testing.T) {
	q := New[int]()

	if err := q.Send(1); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected, got %v", err)
	}

	q.Attach()
	q.Detach()

	if err := q.Send(1); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected after the last consumer detached, got %v", err)
	}
}

func TestQueue_DetachWithoutAttach(t *testing.T) {
	q := New[int]()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected Detach to panic when no consumers are attached")
		}
	}()
	q.Detach()
}

func TestQueue_CloseDrainsPendingItems(t *testing.T) {
	q := New[string]()
	q.Attach()

	_ = q.Send("a")
	_ = q.Send("b")
	q.Close()

	// Pending items are still handed out after Close.
	for _, want := range []string{"a", "b"} {
		item, ok := q.Receive()
		if !ok || item != want {
			t.Fatalf("expected (%q, true), got (%q, %t)", want, item, ok)
		}
	}

	// Only once drained does Receive report closure.
	if _, ok := q.Receive(); ok {
		t.Fatal("expected Receive to report closure on a drained, closed queue")
	}
}

func TestQueue_ReceiveBlocksUntilSend(t *testing.T) {
	q := New[int]()
	q.Attach()

	var sendTime time.Time

	go func() {
		time.Sleep(50 * time.Millisecond)
		sendTime = time.Now()
		_ = q.Send(7)
	}()

	item, ok := q.Receive()
	unblockTime := time.Now()

	if !ok || item != 7 {
		t.Fatalf("expected (7, true), got (%d, %t)", item, ok)
	}
	if !sendTime.Before(unblockTime) {
		t.Fatalf("expected Receive to unblock after Send, sent at %s, unblocked at %s", sendTime, unblockTime)
	}
}

func TestQueue_CloseWakesAllWaitingConsumers(t *testing.T) {
	q := New[int]()

	wg := &sync.WaitGroup{}
	for i := 0; i < 3; i++ {
		q.Attach()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := q.Receive(); ok {
				t.Errorf("expected Receive to report closure")
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	q.Close()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for consumers to observe closure")
	}
}

func TestQueue_ConcurrentProducersAndConsumers(t *testing.T) {
	const producers = 4
	const perProducer = 250

	q := New[int]()

	seen := make(map[int]int)
	seenMu := &sync.Mutex{}

	consumerWG := &sync.WaitGroup{}
	for i := 0; i < 3; i++ {
		q.Attach()
		consumerWG.Add(1)
		go func() {
			defer consumerWG.Done()
			for {
				item, ok := q.Receive()
				if !ok {
					return
				}
				seenMu.Lock()
				seen[item]++
				seenMu.Unlock()
			}
		}()
	}

	producerWG := &sync.WaitGroup{}
	for p := 0; p < producers; p++ {
		producerWG.Add(1)
		go func(p int) {
			defer producerWG.Done()
			for i := 0; i < perProducer; i++ {
				if err := q.Send(p*perProducer + i); err != nil {
					t.Errorf("unexpected send error: %v", err)
				}
			}
		}(p)
	}

	producerWG.Wait()
	q.Close()
	consumerWG.Wait()

	// Every item must be received exactly once.
	if len(seen) != producers*perProducer {
		t.Fatalf("expected %d distinct items, got %d", producers*perProducer, len(seen))
	}
	for item, count := range seen {
		if count != 1 {
			t.Fatalf("item %d received %d times", item, count)
		}
	}
}
