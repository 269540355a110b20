// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package orchestrator implements the top-level run (component J):
// validates the destination, canonicalizes every path, wires the queue
// and control block, spawns the worker pool, and drives the traversal
// producer on the calling goroutine. Grounded on original_source/dsync.c.
package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"code.hybscloud.com/dsync/internal/control"
	"code.hybscloud.com/dsync/internal/diag"
	"code.hybscloud.com/dsync/internal/queue"
	"code.hybscloud.com/dsync/internal/syncerr"
	"code.hybscloud.com/dsync/internal/traverse"
	"code.hybscloud.com/dsync/internal/worker"
	"code.hybscloud.com/dsync/internal/workitem"
)

// QueueCapacity is the reference ring buffer size from the original
// implementation; New rounds it up to a power of two, but 512 already is
// one.
const QueueCapacity = 512

// MaxWorkers is the largest worker count the -j flag accepts.
const MaxWorkers = 255

// Config is the fully-validated input to Run.
type Config struct {
	Sources []string
	Dest    string
	Force   bool
	Workers int
}

// Run validates Dest is a directory, canonicalizes every path, then syncs
// every source into Dest using cfg.Workers worker goroutines. It returns
// true iff the run completed with no recorded traversal error.
func Run(cfg Config) bool {
	if cfg.Workers < 1 || cfg.Workers > MaxWorkers {
		diag.Warn("Number of threads must be in range [1, %d]", MaxWorkers)
		return false
	}

	info, err := os.Lstat(cfg.Dest)
	if err != nil {
		diag.Report(err, "Failed to stat destination directory %s", cfg.Dest)
		return false
	}
	if !info.IsDir() {
		diag.Report(syncerr.New(syncerr.NotADirectory, cfg.Dest, nil), "%s is not a directory", cfg.Dest)
		return false
	}

	dst, err := canonicalize(cfg.Dest)
	if err != nil {
		diag.Report(err, "Failed to initialize absolute destination directory path")
		return false
	}

	sources := make([]string, len(cfg.Sources))
	for i, src := range cfg.Sources {
		abs, err := canonicalize(src)
		if err != nil {
			diag.Report(err, "Failed to initialize absolute source path %s", src)
			return false
		}
		sources[i] = abs
	}

	q := queue.New[*workitem.Item](QueueCapacity)
	ctrl := control.New(q, cfg.Force)

	var wg sync.WaitGroup
	wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go func() {
			defer wg.Done()
			worker.Run(ctrl)
		}()
	}

	producer := traverse.New(ctrl, dst)
	traversalOK := producer.Run(sources)

	ctrl.MarkDone()
	wg.Wait()

	return traversalOK
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

// ParseWorkerCount parses the -j option's argument, returning a
// descriptive error if it isn't a valid integer in [1, MaxWorkers].
func ParseWorkerCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("option -j should be provided with a value in range [1, %d]", MaxWorkers)
	}
	if n < 1 || n > MaxWorkers {
		return 0, fmt.Errorf("number of threads must be in range [1, %d]", MaxWorkers)
	}
	return n, nil
}
