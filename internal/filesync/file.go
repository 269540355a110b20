// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filesync

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"

	"code.hybscloud.com/dsync/internal/filecopy"
	"code.hybscloud.com/dsync/internal/syncerr"
)

// SyncFile syncs the entry at src to dst. If force is false and dst
// already exists with matching size and modification time, no content is
// copied (only the mode is aligned if it differs); otherwise the file is
// copied and the destination's access and modification times are stamped
// from src. A regular file copied to a new destination is created with
// src's mode; an existing destination that is recopied keeps its mode.
func SyncFile(src, dst string, force bool) error {
	srcStat, err := lstatSnapshot(src)
	if err != nil {
		return syncerr.New(syncerr.IoError, src, err)
	}
	if srcStat.size < 0 {
		return syncerr.New(syncerr.IoError, src, errors.New("negative file size"))
	}

	if !force {
		dstStat, err := lstatSnapshot(dst)
		switch {
		case err == nil:
			if srcStat.size == dstStat.size && srcStat.mtimeS == dstStat.mtimeS && srcStat.mtimeNs == dstStat.mtimeNs {
				if chmodBits(srcStat.mode) != chmodBits(dstStat.mode) {
					if err := unix.Fchmodat(unix.AT_FDCWD, dst, rawMode(srcStat.mode), unix.AT_SYMLINK_NOFOLLOW); err != nil {
						return syncerr.New(syncerr.IoError, dst, err)
					}
				}
				return nil
			}
		case os.IsNotExist(err):
			// Destination absent: fall through to copy.
		default:
			return syncerr.New(syncerr.IoError, dst, err)
		}
	}

	switch {
	case srcStat.mode&os.ModeSymlink != 0:
		if err := filecopy.CopySymlink(src, dst, srcStat.size); err != nil {
			return err
		}
	case srcStat.mode.IsRegular():
		if err := filecopy.CopyRegular(src, dst, srcStat.size, chmodBits(srcStat.mode)); err != nil {
			return err
		}
	default:
		return syncerr.New(syncerr.UnsupportedType, src, nil)
	}

	times := []unix.Timespec{
		{Sec: srcStat.atimeS, Nsec: srcStat.atimeNs},
		{Sec: srcStat.mtimeS, Nsec: srcStat.mtimeNs},
	}
	if err := unix.UtimesNanoAt(unix.AT_FDCWD, dst, times, unix.AT_SYMLINK_NOFOLLOW); err != nil {
		return syncerr.New(syncerr.IoError, dst, err)
	}
	return nil
}
