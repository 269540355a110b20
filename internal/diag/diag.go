// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package diag is the diagnostics sink every sync component reports
// through. Grounded on original_source/utils.c:print_error_and_reset_errno.
//
// Go has no settable global errno to reset: each syscall failure already
// arrives as an immutable value inside the returned error, so the sink's
// job shrinks to formatting and writing one line to stderr.
package diag

import (
	"fmt"
	"io"
	"os"
)

// Out is the diagnostics stream. Tests may redirect it.
var Out io.Writer = os.Stderr

// Report writes format (printf-style, expanded with args) to Out, appends
// " : <cause>" when cause is non-nil, and always appends a trailing
// newline.
func Report(cause error, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		fmt.Fprintf(Out, "%s : %v\n", msg, cause)
		return
	}
	fmt.Fprintf(Out, "%s\n", msg)
}

// Warn writes a format-only diagnostic with no associated cause.
func Warn(format string, args ...any) {
	Report(nil, format, args...)
}
