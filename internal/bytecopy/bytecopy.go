// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bytecopy is the portable read/write copy loop every regular-file
// copy eventually falls back to. Grounded on
// original_source/copy_read_write.c.
package bytecopy

import (
	"io"

	"github.com/cloudwego/gopkg/cache/mempool"

	"code.hybscloud.com/dsync/internal/syncerr"
)

// maxBufSize is 128KiB, the buffer size gnu coreutils picks for file copies
// (see io_blksize.h, cited by the original copy_read_write.c). It is always
// below any platform's single-syscall I/O ceiling, so no further clamping
// is needed in Go.
const maxBufSize = 128 * 1024

// Copy copies n bytes from src to dst using a pooled buffer: each
// iteration reads up to the buffer size, then writes the exact number of
// bytes read in an inner loop that advances by each partial write. If src
// reaches EOF before n bytes have been read, Copy stops and returns nil
// with fewer than n bytes written. The buffer is released on every exit
// path.
func Copy(dst io.Writer, src io.Reader, n int64, path string) error {
	size := maxBufSize
	if n > 0 && n < maxBufSize {
		size = int(n)
	}
	buf := mempool.Malloc(size)
	defer mempool.Free(buf)

	left := n
	for left > 0 {
		want := int64(len(buf))
		if left < want {
			want = left
		}

		read, err := src.Read(buf[:want])
		if err != nil && !(err == io.EOF && read > 0) {
			if err == io.EOF {
				break
			}
			return syncerr.New(syncerr.IoError, path, err)
		}

		off := 0
		for off < read {
			written, err := dst.Write(buf[off:read])
			if err != nil {
				return syncerr.New(syncerr.IoError, path, err)
			}
			off += written
		}
		left -= int64(read)
	}
	return nil
}
