// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package worker_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/dsync/internal/control"
	"code.hybscloud.com/dsync/internal/queue"
	"code.hybscloud.com/dsync/internal/worker"
	"code.hybscloud.com/dsync/internal/workitem"
)

func TestRunProcessesAllEnqueuedItemsThenStops(t *testing.T) {
	dir := t.TempDir()
	const n = 50

	q := queue.New[*workitem.Item](64)
	ctrl := control.New(q, false)

	for i := 0; i < n; i++ {
		src := filepath.Join(dir, "src", indexName(i))
		dst := filepath.Join(dir, "dst", indexName(i))
		if err := os.MkdirAll(filepath.Dir(src), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := q.Enqueue(&workitem.Item{Src: src, Dst: dst}); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); worker.Run(ctrl) }()
	go func() { defer wg.Done(); worker.Run(ctrl) }()

	// Give the workers a head start before signalling done, so they are
	// already running (and may be spinning on an empty queue) when done is
	// published, rather than seeing done before their first dequeue.
	time.Sleep(10 * time.Millisecond)
	ctrl.MarkDone()

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("workers did not exit after done was signalled")
	}

	for i := 0; i < n; i++ {
		dst := filepath.Join(dir, "dst", indexName(i))
		if _, err := os.Stat(dst); err != nil {
			t.Fatalf("item %d was not synced: %v", i, err)
		}
	}
}

func TestRunDrainsItemsEnqueuedRightBeforeDone(t *testing.T) {
	dir := t.TempDir()
	q := queue.New[*workitem.Item](8)
	ctrl := control.New(q, false)

	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(src, []byte("late"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := q.Enqueue(&workitem.Item{Src: src, Dst: dst}); err != nil {
		t.Fatal(err)
	}
	ctrl.MarkDone()

	done := make(chan struct{})
	go func() { worker.Run(ctrl); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not exit")
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("item enqueued before done was not drained: %v", err)
	}
	if string(got) != "late" {
		t.Fatalf("got %q, want %q", got, "late")
	}
}

func indexName(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return string(digits[i])
	}
	return string(digits[i/10]) + string(digits[i%10])
}
