//go:build unix && !darwin

package dirty

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// flushRanges msyncs each data range. msync accepts page-aligned sub-slices
// of a mapping here.
func (t *Tracker) flushRanges(ctx context.Context, data []byte) error {
	for _, r := range t.dataRanges(int64(len(data))) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.msync(data, int(r.Off), int(r.Off+r.Len)); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tracker) msync(data []byte, start, end int) error {
	if err := unix.Msync(data[start:end], unix.MS_SYNC); err != nil {
		return fmt.Errorf("dirty: msync [%#x, %#x): %w", start, end, err)
	}
	return nil
}

// fdatasync ignores fullfsync; fdatasync is sufficient here.
func (t *Tracker) fdatasync(_ bool) error {
	if err := unix.Fdatasync(t.m.FD()); err != nil {
		return fmt.Errorf("dirty: fdatasync: %w", err)
	}
	return nil
}
