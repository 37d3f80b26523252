//go:build darwin

package dirty

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// flushRanges msyncs the whole mapping. macOS requires msync to start at the
// mmap address, so sub-slices cannot be flushed; the kernel only writes the
// dirty pages anyway.
func (t *Tracker) flushRanges(ctx context.Context, data []byte) error {
	if len(t.dataRanges(int64(len(data)))) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.msync(data, 0, len(data))
}

func (t *Tracker) msync(data []byte, _, _ int) error {
	if err := unix.Msync(data, unix.MS_SYNC); err != nil {
		return fmt.Errorf("dirty: msync: %w", err)
	}
	return nil
}

// fdatasync uses F_FULLFSYNC when asked, which also drains the drive cache.
// macOS has no fdatasync, so fsync is used otherwise.
func (t *Tracker) fdatasync(fullfsync bool) error {
	fd := t.m.FD()
	if fullfsync {
		if _, err := unix.FcntlInt(uintptr(fd), unix.F_FULLFSYNC, 0); err != nil {
			return fmt.Errorf("dirty: F_FULLFSYNC: %w", err)
		}
		return nil
	}
	if err := unix.Fsync(fd); err != nil {
		return fmt.Errorf("dirty: fsync: %w", err)
	}
	return nil
}
