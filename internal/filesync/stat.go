// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package filesync implements the per-file sync decision (component F)
// and directory sync (component G). Grounded on original_source/sync_file.c
// and original_source/sync_directory.c.
package filesync

import (
	"os"
	"syscall"
)

// snapshot is the stat data the sync decision compares. Symlinks are
// stat'd without following: size is the length of the link target.
type snapshot struct {
	mode    os.FileMode
	size    int64
	atimeS  int64
	atimeNs int64
	mtimeS  int64
	mtimeNs int64
}

func lstatSnapshot(path string) (snapshot, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return snapshot{}, err
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		// Best effort on platforms without a syscall.Stat_t: fall back to
		// second-granularity mtime and a zeroed atime.
		return snapshot{
			mode: info.Mode(),
			size: info.Size(),
			mtimeS: info.ModTime().Unix(),
		}, nil
	}
	return snapshot{
		mode:    info.Mode(),
		size:    info.Size(),
		atimeS:  int64(st.Atim.Sec),
		atimeNs: int64(st.Atim.Nsec),
		mtimeS:  int64(st.Mtim.Sec),
		mtimeNs: int64(st.Mtim.Nsec),
	}, nil
}

// chmodBits masks mode down to the permission bits plus setuid, setgid
// and sticky, the only bits a chmod-family call ever applies. It exists
// so mode comparisons and mode arguments passed to os.Mkdir/os.OpenFile
// never silently drop the setuid/setgid/sticky bits down to .Perm().
func chmodBits(mode os.FileMode) os.FileMode {
	return mode & (os.ModePerm | os.ModeSetuid | os.ModeSetgid | os.ModeSticky)
}

// rawMode translates the bits chmodBits keeps into the raw POSIX mode_t
// layout unix.Fchmodat expects, which does not share os.FileMode's bit
// positions for the setuid/setgid/sticky bits.
func rawMode(mode os.FileMode) uint32 {
	m := uint32(mode.Perm())
	if mode&os.ModeSetuid != 0 {
		m |= 0o4000
	}
	if mode&os.ModeSetgid != 0 {
		m |= 0o2000
	}
	if mode&os.ModeSticky != 0 {
		m |= 0o1000
	}
	return m
}
