// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/dsync/internal/queue"
)

func TestCapacityRoundsUpToPowerOfTwo(t *testing.T) {
	cases := []struct{ in, want int }{
		{2, 2}, {3, 4}, {4, 4}, {5, 8}, {512, 512}, {513, 1024},
	}
	for _, c := range cases {
		q := queue.New[int](c.in)
		if got := q.Cap(); got != c.want {
			t.Errorf("New(%d).Cap() = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestCapacityPanicsBelowTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("New(1) did not panic")
		}
	}()
	queue.New[int](1)
}

func TestEnqueueDequeueFIFOSingleThreaded(t *testing.T) {
	q := queue.New[int](8)
	for i := range 8 {
		if err := q.Enqueue(i); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	if err := q.Enqueue(99); !errors.Is(err, queue.ErrFull) {
		t.Fatalf("Enqueue on full queue: got %v, want ErrFull", err)
	}
	for i := range 8 {
		v, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue: %v", err)
		}
		if v != i {
			t.Fatalf("Dequeue order: got %d, want %d", v, i)
		}
	}
	if _, err := q.Dequeue(); !errors.Is(err, queue.ErrEmpty) {
		t.Fatalf("Dequeue on empty queue: got %v, want ErrEmpty", err)
	}
}

func TestSlotsAreReusableAcrossWraps(t *testing.T) {
	q := queue.New[int](4)
	for round := range 10 {
		for i := range 4 {
			if err := q.Enqueue(round*4 + i); err != nil {
				t.Fatalf("round %d Enqueue: %v", round, err)
			}
		}
		for i := range 4 {
			v, err := q.Dequeue()
			if err != nil || v != round*4+i {
				t.Fatalf("round %d Dequeue: got (%d, %v), want %d", round, v, err, round*4+i)
			}
		}
	}
}

// TestMPMCLinearizability runs a fleet of producer and consumer goroutines
// against the queue concurrently and verifies the dequeued multiset
// exactly equals the enqueued multiset. Producers and consumers here
// always retry until success, matching how the queue is actually driven
// (the traversal producer blocks on a full queue, and a worker only
// treats empty as "nothing to do right now"), so no item may ever go
// missing.
func TestMPMCLinearizability(t *testing.T) {
	if queue.RaceEnabled {
		t.Skip("skip: linearizability test requires concurrent access")
	}

	const (
		numProducers   = 4
		numConsumers   = 4
		itemsPerProd   = 2000
		expectedTotal  = numProducers * itemsPerProd
		queueCapacity  = 64
		producerFactor = 1_000_000
	)

	q := queue.New[int](queueCapacity)
	seen := make([]atomix.Int32, expectedTotal)
	var consumed atomix.Int64

	var wg sync.WaitGroup
	wg.Add(numProducers + numConsumers)

	for p := range numProducers {
		go func(id int) {
			defer wg.Done()
			for i := range itemsPerProd {
				v := id*producerFactor + i
				for q.Enqueue(v) != nil {
				}
			}
		}(p)
	}

	done := make(chan struct{})
	for range numConsumers {
		go func() {
			defer wg.Done()
			for {
				v, err := q.Dequeue()
				if err == nil {
					id := v / producerFactor
					seq := v % producerFactor
					seen[id*itemsPerProd+seq].Add(1)
					consumed.Add(1)
					continue
				}
				select {
				case <-done:
					// Final drain: producers are finished and we have
					// already consumed everything we're going to see.
					if consumed.Load() >= int64(expectedTotal) {
						return
					}
				default:
				}
			}
		}()
	}

	waitDone := make(chan struct{})
	go func() {
		for consumed.Load() < int64(expectedTotal) {
			time.Sleep(time.Millisecond)
		}
		close(done)
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for all items to be consumed")
	}
	wg.Wait()

	var missing, duplicates int
	for i := range expectedTotal {
		switch c := seen[i].Load(); {
		case c == 0:
			missing++
		case c > 1:
			duplicates++
		}
	}
	if missing != 0 {
		t.Errorf("linearizability violation: %d items never observed", missing)
	}
	if duplicates != 0 {
		t.Errorf("linearizability violation: %d items observed more than once", duplicates)
	}
}

func TestSmallCapacityManyGoroutines(t *testing.T) {
	if queue.RaceEnabled {
		t.Skip("skip: stress test requires concurrent access")
	}

	q := queue.New[int](2)
	const (
		numProducers = 4
		numConsumers = 4
		total        = 5000
	)

	var wg sync.WaitGroup
	var consumed atomix.Int64
	wg.Add(numProducers + numConsumers)
	for range numProducers {
		go func() {
			defer wg.Done()
			for i := 0; i < total/numProducers; {
				if q.Enqueue(i) == nil {
					i++
				}
			}
		}()
	}
	for range numConsumers {
		go func() {
			defer wg.Done()
			for consumed.Load() < total {
				if _, err := q.Dequeue(); err == nil {
					consumed.Add(1)
				}
			}
		}()
	}
	wg.Wait()
}
