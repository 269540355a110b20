// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package syncerr classifies the per-entry failures a sync run can hit.
// Each per-entry failure is reported through internal/diag and otherwise
// does not interrupt the run.
package syncerr

import "fmt"

// Kind classifies why an entry could not be synced.
type Kind int

const (
	// IoError is an underlying filesystem/syscall failure.
	IoError Kind = iota
	// NotADirectory means the destination argument is not a directory.
	NotADirectory
	// OutOfMemory is an allocation or size-overflow failure.
	OutOfMemory
	// UnsupportedType means the source is neither a regular file nor a
	// symbolic link.
	UnsupportedType
	// SizeMismatch means a symlink's readlink length disagreed with its
	// stat size.
	SizeMismatch
	// CycleDetected means the traversal found a directory cycle.
	CycleDetected
	// UnreadableDirectory means a directory could not be opened or read.
	UnreadableDirectory
)

func (k Kind) String() string {
	switch k {
	case IoError:
		return "io error"
	case NotADirectory:
		return "not a directory"
	case OutOfMemory:
		return "out of memory"
	case UnsupportedType:
		return "unsupported type"
	case SizeMismatch:
		return "size mismatch"
	case CycleDetected:
		return "cycle detected"
	case UnreadableDirectory:
		return "unreadable directory"
	default:
		return "unknown error"
	}
}

// Error is a per-entry sync failure carrying the entry's path and the
// underlying cause, if any.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func New(kind Kind, path string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}
