// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package control holds the state shared by every worker goroutine: the
// queue handle, the immutable force-copy flag, and the traversal-done
// flag. Grounded on original_source/sync_thread.h's sync_thread_data,
// including its cache-line padding front and back of the struct.
package control

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/dsync/internal/queue"
	"code.hybscloud.com/dsync/internal/workitem"
)

type pad [64]byte

// Block is read by every worker goroutine. Force is write-once at startup
// and safe to read without synchronization thereafter; Done transitions
// false->true exactly once, published with release and observed with
// acquire ordering.
type Block struct {
	_     pad
	Queue *queue.Queue[*workitem.Item]
	Force bool
	done  atomix.Bool
	_     pad
}

// New builds a control block wrapping q, with the traversal-done flag
// cleared and the force-copy flag fixed at force for the block's lifetime.
func New(q *queue.Queue[*workitem.Item], force bool) *Block {
	b := &Block{Queue: q, Force: force}
	b.done.StoreRelease(false)
	return b
}

// MarkDone publishes that the traversal producer has finished enqueueing
// work. Must be called exactly once.
func (b *Block) MarkDone() {
	b.done.StoreRelease(true)
}

// Done reports whether the traversal producer has finished.
func (b *Block) Done() bool {
	return b.done.LoadAcquire()
}
