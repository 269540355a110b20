// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package traverse implements the depth-first traversal producer
// (component H): it walks every source tree, syncs directories inline,
// and hands regular files and symlinks to the worker pool through the
// shared queue. Grounded on original_source/traverse.c.
//
// Go has no fts(3) equivalent, so the walk is hand-rolled: os.Lstat plus
// os.ReadDir drive a recursive, physical (symlinks never followed) descent
// that tracks ancestor directories for cycle detection via os.SameFile.
package traverse

import (
	"os"

	"code.hybscloud.com/spin"

	"code.hybscloud.com/dsync/internal/control"
	"code.hybscloud.com/dsync/internal/diag"
	"code.hybscloud.com/dsync/internal/filesync"
	"code.hybscloud.com/dsync/internal/syncerr"
	"code.hybscloud.com/dsync/internal/workitem"
)

// Producer drives the walk for one run. It is not safe for concurrent use;
// a single goroutine owns it for the whole traversal.
type Producer struct {
	ctrl    *control.Block
	dstRoot string
	scratch []byte
	failed  bool
}

// New builds a traversal producer that enqueues work for ctrl.Queue and
// writes destination paths rooted at dstRoot, which must already be a
// canonical absolute path.
func New(ctrl *control.Block, dstRoot string) *Producer {
	return &Producer{ctrl: ctrl, dstRoot: dstRoot}
}

// Run walks every entry in sources, in order, syncing directories inline
// and enqueueing files and symlinks for the worker pool. It reports
// whether the traversal completed without any recorded error; per-entry
// failures are diagnosed to the sink and never abort the walk.
func (p *Producer) Run(sources []string) bool {
	for _, src := range sources {
		p.walkEntry(src, 0, nil)
	}
	return !p.failed
}

func (p *Producer) fail() {
	p.failed = true
}

func (p *Producer) walkEntry(path string, level int, ancestors []os.FileInfo) {
	info, err := os.Lstat(path)
	if err != nil {
		p.fail()
		diag.Report(err, "Failure during traversing for %s", path)
		return
	}

	mode := info.Mode()
	switch {
	case mode.IsDir():
		p.handleDir(path, info, level, ancestors)
	case mode.IsRegular(), mode&os.ModeSymlink != 0:
		p.enqueueFile(path, level)
	default:
		diag.Warn("Skipping %s. Unknown file type", path)
	}
}

func (p *Producer) handleDir(path string, info os.FileInfo, level int, ancestors []os.FileInfo) {
	for _, a := range ancestors {
		if os.SameFile(a, info) {
			p.fail()
			diag.Report(syncerr.New(syncerr.CycleDetected, path, nil), "Skipping sync of directory %s. Directory causes cycle", path)
			return
		}
	}

	suffix := suffixAtLevel(path, level)
	if !(level == 0 && suffix == "/") {
		dst := p.destPath(suffix)
		outcome, err := filesync.SyncDirectory(path, dst)
		switch outcome {
		case filesync.OutcomeFatal:
			p.fail()
			diag.Report(err, "Skipping sync of directory %s", path)
			return
		case filesync.OutcomeNonFatal:
			p.fail()
			diag.Report(err, "Failed to align mode of directory %s", path)
		}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		p.fail()
		diag.Report(syncerr.New(syncerr.UnreadableDirectory, path, err), "Skipping sync of directory %s. Directory cannot be read", path)
		return
	}

	children := append(ancestors, info)
	for _, e := range entries {
		p.walkEntry(path+"/"+e.Name(), level+1, children)
	}
}

func (p *Producer) enqueueFile(path string, level int) {
	item := &workitem.Item{
		Src: path,
		Dst: p.destPath(suffixAtLevel(path, level)),
	}

	var sw spin.Wait
	for {
		if err := p.ctrl.Queue.Enqueue(item); err == nil {
			return
		}
		sw.Once()
	}
}

// destPath builds dstRoot + "/" + suffix, reusing the producer's scratch
// buffer so repeated calls across a long traversal don't reallocate once
// the buffer has grown to its working size.
func (p *Producer) destPath(suffix string) string {
	p.scratch = p.scratch[:0]
	p.scratch = append(p.scratch, p.dstRoot...)
	p.scratch = append(p.scratch, '/')
	p.scratch = append(p.scratch, suffix...)
	return string(p.scratch)
}

// suffixAtLevel returns the last level+1 non-empty slash-separated
// components of path, trailing slashes ignored. Reproduces
// traverse.c:get_path_suffix_at_level exactly, including its root
// special case: a path of "/" returns "/" regardless of level.
func suffixAtLevel(path string, level int) string {
	n := len(path)
	i := n - 1
	for i > 0 && path[i] == '/' {
		i--
	}
	if i == 0 {
		return path
	}
	end := i + 1

	count := 0
	rc := i
	prevSlash := false
	for count < level+1 {
		if path[i] == '/' {
			if !prevSlash {
				count++
				prevSlash = true
			}
		} else {
			prevSlash = false
			rc = i
		}
		if i == 0 {
			break
		}
		i--
	}
	return path[rc:end]
}
