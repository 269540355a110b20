// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package filecopy implements the two content-copy paths dispatched by the
// per-file sync decision: regular files (component D, kernel-accelerated
// with a portable fallback) and symbolic links (component E). Grounded on
// original_source/copy_file_linux.c, copy_file_portable.c and
// copy_symlink.c.
package filecopy

import (
	"os"

	"code.hybscloud.com/dsync/internal/bytecopy"
	"code.hybscloud.com/dsync/internal/syncerr"
)

// accelerate attempts a platform-specific kernel-accelerated copy of up to
// size bytes from src to dst. It returns the number of bytes it managed to
// copy and whether the caller should fall back to the portable byte-copy
// loop for the rest. Implemented per-platform in regular_linux.go and
// regular_other.go.
var accelerate func(dst, src *os.File, size int64) (copied int64, fallback bool, err error)

// CopyRegular copies the regular file at src to dst, creating dst with
// mode (truncating it if it already exists). It tries a kernel-accelerated
// copy first where available and falls back to the portable byte-copy
// loop when the accelerated primitive reports it can't handle this pair of
// descriptors before any byte has been transferred.
func CopyRegular(src, dst string, size int64, mode os.FileMode) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return syncerr.New(syncerr.IoError, src, err)
	}
	defer srcFile.Close() // close result on the read-only source is ignored, as it cannot lose data.

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return syncerr.New(syncerr.IoError, dst, err)
	}

	if copyErr := copyContent(dstFile, srcFile, size); copyErr != nil {
		dstFile.Close()
		return copyErr
	}

	if err := dstFile.Close(); err != nil {
		return syncerr.New(syncerr.IoError, dst, err)
	}
	return nil
}

func copyContent(dstFile, srcFile *os.File, size int64) error {
	copied, fallback, err := accelerate(dstFile, srcFile, size)
	if err != nil {
		return syncerr.New(syncerr.IoError, srcFile.Name(), err)
	}
	if !fallback {
		return nil
	}
	return bytecopy.Copy(dstFile, &offsetReaderAt{f: srcFile, off: copied}, size-copied, srcFile.Name())
}

// offsetReaderAt adapts an *os.File positioned at an arbitrary starting
// offset to io.Reader, so bytecopy.Copy can resume exactly where a partial
// accelerated copy left off. The fallback only ever triggers before any
// byte has been copied, so off is always 0 in practice, but the seek
// keeps this correct even if that ever changes.
type offsetReaderAt struct {
	f   *os.File
	off int64
}

func (r *offsetReaderAt) Read(p []byte) (int, error) {
	n, err := r.f.ReadAt(p, r.off)
	r.off += int64(n)
	return n, err
}
