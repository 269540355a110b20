// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package filecopy

import "os"

func init() {
	accelerate = accelerateUnavailable
}

// accelerateUnavailable always defers to the portable byte-copy loop: this
// platform has no kernel-accelerated copy primitive wired up, so the
// accelerated attempt is skipped entirely rather than probed and rejected.
// Grounded on original_source/copy_file_portable.c, which never even
// attempts the linux-only path.
func accelerateUnavailable(_, _ *os.File, _ int64) (int64, bool, error) {
	return 0, true, nil
}
