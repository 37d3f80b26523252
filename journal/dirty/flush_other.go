//go:build !unix

package dirty

import (
	"context"
	"fmt"
)

// syncer is implemented by mappings that hold a private copy of the file,
// such as journal.File where mmap is unavailable.
type syncer interface {
	Sync() error
}

// Without a shared mapping the only way to make ranges durable is to write
// the copy back. Both the data and the header flush do that once.
func (t *Tracker) flushRanges(ctx context.Context, _ []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.sync()
}

func (t *Tracker) msync(_ []byte, _, _ int) error { return t.sync() }

func (t *Tracker) fdatasync(_ bool) error { return nil }

func (t *Tracker) sync() error {
	s, ok := t.m.(syncer)
	if !ok {
		return nil
	}
	if err := s.Sync(); err != nil {
		return fmt.Errorf("dirty: sync: %w", err)
	}
	return nil
}
