// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue implements the bounded, lock-free multi-producer
// multi-consumer ring buffer that hands work items from the traversal
// producer to the sync worker pool.
//
// The algorithm is a single sequence-counter-per-slot design: a slot is
// writable by an enqueuer claiming position pos when seq == pos, and
// readable by a dequeuer claiming pos when seq == pos+1. Both operations
// claim a position with a CAS on the shared enqueue or dequeue cursor,
// pausing with a spin.Wait hint between retries; there is no mutex and no
// allocation once the ring is constructed.
package queue

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// pad is cache-line padding used to keep concurrently-written fields from
// sharing a cache line with their neighbors.
type pad [64]byte

// padShort pads a slot down to one cache line after its 8-byte sequence
// counter and pointer-sized payload.
type padShort [64 - 8 - 8]byte

// Queue is a fixed-capacity MPMC ring buffer of T. Capacity rounds up to
// the next power of two and must be at least 2.
type Queue[T any] struct {
	_        pad
	enqPos   atomix.Uint64
	_        pad
	deqPos   atomix.Uint64
	_        pad
	slots    []slot[T]
	mask     uint64
	capacity uint64
}

type slot[T any] struct {
	seq  atomix.Uint64
	data T
	_    padShort
}

// New creates a ring buffer with room for at least capacity items.
// Panics if capacity < 2.
func New[T any](capacity int) *Queue[T] {
	if capacity < 2 {
		panic("queue: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	q := &Queue[T]{
		slots:    make([]slot[T], n),
		mask:     n - 1,
		capacity: n,
	}
	for i := uint64(0); i < n; i++ {
		q.slots[i].seq.StoreRelaxed(i)
	}
	return q
}

// Enqueue adds item to the queue. Returns ErrFull if every slot the
// cursor can currently see is still pending (the queue is at capacity).
func (q *Queue[T]) Enqueue(item T) error {
	sw := spin.Wait{}
	for {
		pos := q.enqPos.LoadRelaxed()
		s := &q.slots[pos&q.mask]
		seq := s.seq.LoadAcquire()

		diff := int64(seq) - int64(pos)
		if diff == 0 {
			if q.enqPos.CompareAndSwapRelaxed(pos, pos+1) {
				s.data = item
				s.seq.StoreRelease(pos + 1)
				return nil
			}
		} else if diff < 0 {
			return ErrFull
		}
		sw.Once()
	}
}

// Dequeue removes and returns the oldest pending item. Returns ErrEmpty
// if no slot currently holds a published item.
func (q *Queue[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		pos := q.deqPos.LoadRelaxed()
		s := &q.slots[pos&q.mask]
		seq := s.seq.LoadAcquire()

		diff := int64(seq) - int64(pos+1)
		if diff == 0 {
			if q.deqPos.CompareAndSwapRelaxed(pos, pos+1) {
				item := s.data
				var zero T
				s.data = zero
				s.seq.StoreRelease(pos + q.mask + 1)
				return item, nil
			}
		} else if diff < 0 {
			var zero T
			return zero, ErrEmpty
		}
		sw.Once()
	}
}

// Cap returns the ring's physical capacity (the requested capacity rounded
// up to the next power of two).
func (q *Queue[T]) Cap() int {
	return int(q.capacity)
}

func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
