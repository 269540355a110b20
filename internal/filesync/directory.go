// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filesync

import (
	"os"

	"golang.org/x/sys/unix"

	"code.hybscloud.com/dsync/internal/syncerr"
)

// Outcome is the three-way result of SyncDirectory: the traversal producer
// uses it to decide whether to descend into the directory's children.
type Outcome int

const (
	// OutcomeOK means the destination directory is in place and the
	// caller should descend normally.
	OutcomeOK Outcome = iota
	// OutcomeNonFatal means something went wrong (e.g. failed to align
	// mode) but the caller should still descend.
	OutcomeNonFatal
	// OutcomeFatal means the destination directory could not be created;
	// the caller must skip this entire subtree.
	OutcomeFatal
)

// SyncDirectory creates dst with src's mode if dst doesn't exist yet, or
// aligns dst's mode to src's if it already exists with a different one.
func SyncDirectory(src, dst string) (Outcome, error) {
	srcStat, err := lstatSnapshot(src)
	if err != nil {
		return OutcomeFatal, syncerr.New(syncerr.IoError, src, err)
	}

	dstStat, err := lstatSnapshot(dst)
	switch {
	case os.IsNotExist(err):
		if err := os.Mkdir(dst, chmodBits(srcStat.mode)); err != nil {
			return OutcomeFatal, syncerr.New(syncerr.IoError, dst, err)
		}
		return OutcomeOK, nil
	case err != nil:
		return OutcomeFatal, syncerr.New(syncerr.IoError, dst, err)
	case chmodBits(srcStat.mode) != chmodBits(dstStat.mode):
		if err := unix.Fchmodat(unix.AT_FDCWD, dst, rawMode(srcStat.mode), unix.AT_SYMLINK_NOFOLLOW); err != nil {
			return OutcomeNonFatal, syncerr.New(syncerr.IoError, dst, err)
		}
		return OutcomeOK, nil
	default:
		return OutcomeOK, nil
	}
}
