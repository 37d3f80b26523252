// Package dirty tracks modified byte ranges of a mapped journal file and
// flushes them in the order commits need.
//
// Journal pages are flushed first with FlushDataOnly, then the header
// region and file metadata with FlushHeaderAndMeta. Writing the header last
// means a durable committed id never points at pages that are still only
// in memory.
//
// # Usage
//
//	tracker := dirty.NewTracker(f, h.HeaderSize())
//	tracker.Add(pageOff, pageLen)
//	if err := tracker.FlushDataOnly(ctx); err != nil { ... }
//	h.CommitCurrentTransaction()
//	if err := tracker.FlushHeaderAndMeta(ctx, dirty.FlushAuto); err != nil { ... }
//
// # Page-Level Granularity
//
// Ranges are rounded out to 4KB page boundaries and merged at flush time:
//
//	Add(100, 200), Add(4096, 10) → [0x0-0x2000]
//
// # Thread Safety
//
// Tracker is not thread-safe. The tx package drives it from a single
// writer.
package dirty
