package dirty

import (
	"context"
	"sort"
)

const (
	defaultRangeCapacity = 64

	// standardPageSize is the typical OS page size (4KB).
	standardPageSize = 4096
)

// FlushMode controls durability guarantees for transaction commits.
type FlushMode int

const (
	// FlushAuto msyncs the header region and then fdatasyncs the file.
	FlushAuto FlushMode = iota

	// FlushDataOnly msyncs the header region but skips fdatasync. The
	// caller syncs later, typically after batching several commits.
	FlushDataOnly

	// FlushFull is FlushAuto plus F_FULLFSYNC on macOS, for power-loss
	// sensitive workloads.
	FlushFull
)

func (m FlushMode) String() string {
	switch m {
	case FlushAuto:
		return "auto"
	case FlushDataOnly:
		return "data-only"
	case FlushFull:
		return "full"
	default:
		return "unknown"
	}
}

// Range is a dirty byte range in absolute file offsets.
type Range struct {
	Off int64
	Len int64
}

// Tracker accumulates dirty ranges and flushes them.
//
// NOT thread-safe.
type Tracker struct {
	m         Mapping
	ranges    []Range // raw, coalesced at flush time
	pageSize  int64
	headerLen int64 // page-aligned length of the header region
}

// NewTracker creates a tracker for m whose header region is the first
// headerSize bytes, rounded up to a whole page.
func NewTracker(m Mapping, headerSize int) *Tracker {
	t := &Tracker{
		m:        m,
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: standardPageSize,
	}
	t.headerLen = t.alignUp(int64(headerSize))
	return t
}

// Add records a dirty range. Empty and negative ranges are ignored.
func (t *Tracker) Add(off, length int) {
	if length <= 0 || off < 0 {
		return
	}
	t.ranges = append(t.ranges, Range{Off: int64(off), Len: int64(length)})
}

// FlushDataOnly flushes every tracked range outside the header region and
// clears the tracked set. Header ranges are dropped too, as the header is
// always flushed as a whole by FlushHeaderAndMeta.
//
// ctx is checked before each range. If it is cancelled part way, some
// ranges may already be on disk; the tracked set is kept so a retry
// flushes them all again.
func (t *Tracker) FlushDataOnly(ctx context.Context) error {
	if len(t.ranges) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data := t.m.Bytes()
	if len(data) == 0 {
		return nil
	}
	if err := t.flushRanges(ctx, data); err != nil {
		return err
	}
	t.ranges = t.ranges[:0]
	return nil
}

// FlushHeaderAndMeta msyncs the header region and then, unless mode is
// FlushDataOnly, fdatasyncs the file.
//
// If ctx is cancelled between the two steps the header may be on disk
// without the metadata sync.
func (t *Tracker) FlushHeaderAndMeta(ctx context.Context, mode FlushMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := t.m.Bytes()
	if len(data) == 0 {
		return nil
	}

	headerLen := min(int(t.headerLen), len(data))
	if err := t.msync(data, 0, headerLen); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if mode == FlushDataOnly {
		return nil
	}
	return t.fdatasync(mode == FlushFull)
}

// Reset drops all tracked ranges, e.g. when a transaction is abandoned.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// HeaderLen returns the page-aligned length of the header region.
func (t *Tracker) HeaderLen() int64 { return t.headerLen }

// DebugRanges returns a copy of the raw tracked ranges.
func (t *Tracker) DebugRanges() []Range {
	result := make([]Range, len(t.ranges))
	copy(result, t.ranges)
	return result
}

// DebugCoalescedRanges returns the page-aligned, merged ranges a flush
// would consider, header region included.
func (t *Tracker) DebugCoalescedRanges() []Range {
	return t.coalesce()
}

// dataRanges returns the coalesced ranges clipped to exclude the header
// region and the bytes past the end of the mapping.
func (t *Tracker) dataRanges(size int64) []Range {
	var out []Range
	for _, r := range t.coalesce() {
		start := max(r.Off, t.headerLen)
		end := min(r.Off+r.Len, size)
		if end <= start {
			continue
		}
		out = append(out, Range{Off: start, Len: end - start})
	}
	return out
}

func (t *Tracker) alignUp(n int64) int64 {
	if n%t.pageSize == 0 {
		return n
	}
	return (n/t.pageSize + 1) * t.pageSize
}

// coalesce page-aligns all ranges, sorts them, and merges overlapping or
// adjacent ones.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := t.alignUp(r.Off + r.Len)
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.Off+current.Len {
			current.Len = max(current.Off+current.Len, next.Off+next.Len) - current.Off
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
