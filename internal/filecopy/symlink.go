// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filecopy

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"code.hybscloud.com/dsync/internal/syncerr"
)

// CopySymlink reads the link target of src (size bytes long per the
// caller's stat) and recreates it at dst. If dst already exists, it is
// unlinked and the symlink is retried exactly once.
//
// A prior C implementation of this idea unlinked the *source* path on
// EEXIST before retrying, which only masks the collision without fixing
// it. dsync unlinks the destination instead, which actually clears the
// way for the retry to succeed.
func CopySymlink(src, dst string, size int64) error {
	if size+1 < 0 || size+1 > int64(^uint(0)>>1) {
		return syncerr.New(syncerr.OutOfMemory, src, fmt.Errorf("link target length %d cannot be represented", size))
	}

	target, err := os.Readlink(src)
	if err != nil {
		return syncerr.New(syncerr.IoError, src, err)
	}
	if int64(len(target)) != size {
		return syncerr.New(syncerr.SizeMismatch, src, fmt.Errorf("readlink returned %d bytes, stat said %d", len(target), size))
	}

	err = unix.Symlink(target, dst)
	if err != nil {
		if !errors.Is(err, unix.EEXIST) {
			return syncerr.New(syncerr.IoError, dst, err)
		}
		if err := unix.Unlink(dst); err != nil {
			return syncerr.New(syncerr.IoError, dst, err)
		}
		if err := unix.Symlink(target, dst); err != nil {
			return syncerr.New(syncerr.IoError, dst, err)
		}
	}
	return nil
}
