package dirty

import "context"

// Mapping is a memory-mapped journal file.
type Mapping interface {
	// Bytes returns the mapped contents.
	Bytes() []byte
	// FD returns the descriptor used for fdatasync.
	FD() int
}

// DirtyTracker records modified byte ranges.
// off is the offset from the start of the file, length is the number of bytes.
type DirtyTracker interface {
	Add(off, length int)
}

// FlushableTracker is a DirtyTracker that also controls when ranges reach
// the disk. tx.Manager depends on this interface.
type FlushableTracker interface {
	DirtyTracker

	// FlushDataOnly flushes the tracked ranges outside the header region.
	FlushDataOnly(ctx context.Context) error

	// FlushHeaderAndMeta flushes the header region and syncs file metadata
	// according to mode.
	FlushHeaderAndMeta(ctx context.Context, mode FlushMode) error
}
