// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrFull and ErrEmpty are control-flow signals, not failures: they drive
// the producer's block-on-enqueue spin and the worker's empty-queue spin.
// They are never surfaced to the end user. Both wrap iox.ErrWouldBlock so
// callers that only care about "would this have blocked" can keep using
// iox.IsWouldBlock across the full/empty distinction.
var (
	ErrFull  = fmt.Errorf("queue: full: %w", iox.ErrWouldBlock)
	ErrEmpty = fmt.Errorf("queue: empty: %w", iox.ErrWouldBlock)
)
