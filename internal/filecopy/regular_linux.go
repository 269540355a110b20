// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package filecopy

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// maxSingleCopy bounds a single copy_file_range call at the linux
// per-call read/write ceiling of 0x7ffff000 bytes.
const maxSingleCopy = 0x7ffff000 // platform single-I/O ceiling (linux read/write cap)

func init() {
	accelerate = accelerateLinux
}

// accelerateLinux uses copy_file_range(2), the linux in-kernel accelerated
// copy primitive, advising sequential access on the source first. It falls
// back to the portable byte-copy loop when the kernel reports the
// operation is unsupported or crosses filesystems, as long as that happens
// before any byte has been copied; any other error, or an error after
// partial progress, is fatal for this file. Grounded on
// original_source/copy_file_linux.c.
func accelerateLinux(dst, src *os.File, size int64) (int64, bool, error) {
	_ = unix.Fadvise(int(src.Fd()), 0, 0, unix.FADV_SEQUENTIAL)

	var copied int64
	for copied < size {
		want := size - copied
		if want > maxSingleCopy {
			want = maxSingleCopy
		}
		n, err := unix.CopyFileRange(int(src.Fd()), nil, int(dst.Fd()), nil, int(want), 0)
		if err != nil {
			if copied == 0 && (errors.Is(err, unix.EOPNOTSUPP) || errors.Is(err, unix.EXDEV)) {
				return 0, true, nil
			}
			return copied, false, err
		}
		if n == 0 {
			// Kernel reports nothing left to copy; treat any shortfall as
			// a fallback candidate only if nothing was copied yet.
			if copied == 0 {
				return 0, true, nil
			}
			break
		}
		copied += int64(n)
	}
	return copied, false, nil
}
