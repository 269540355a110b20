// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package worker implements the sync worker routine (component I): a
// dequeue loop with a mandatory drain-on-shutdown protocol. Grounded on
// original_source/sync_thread.c.
package worker

import (
	"code.hybscloud.com/spin"

	"code.hybscloud.com/dsync/internal/control"
	"code.hybscloud.com/dsync/internal/diag"
	"code.hybscloud.com/dsync/internal/filesync"
)

// Run dequeues work items from ctrl.Queue and syncs each one until the
// traversal producer has signalled done and the queue has drained.
//
// This closes an interleaving that a bare "check done, then stop" loop
// would miss: the producer can stall, let consumers observe an empty
// queue, then resume and enqueue more work before setting done. Without
// an unconditional drain pass after observing done, those late items
// would never be picked up.
func Run(ctrl *control.Block) {
	var sw spin.Wait
	for {
		item, err := ctrl.Queue.Dequeue()
		if err == nil {
			syncItem(ctrl, item.Src, item.Dst)
			continue
		}
		if !ctrl.Done() {
			sw.Once()
			continue
		}
		break
	}

	// Drain mode: the producer is done, but items enqueued just before
	// it published done may still be sitting in the queue.
	for {
		item, err := ctrl.Queue.Dequeue()
		if err != nil {
			return
		}
		syncItem(ctrl, item.Src, item.Dst)
	}
}

func syncItem(ctrl *control.Block, src, dst string) {
	if err := filesync.SyncFile(src, dst, ctrl.Force); err != nil {
		diag.Report(err, "Failed to sync %s", src)
	}
}
