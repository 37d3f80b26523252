package format

import (
	"testing"
	"time"
)

func TestStateLayoutFitsStride(t *testing.T) {
	if StateSize > StateStride {
		t.Fatalf("state size 0x%X exceeds stride 0x%X", StateSize, StateStride)
	}
	if StatePreFillPagesOffset+ListSize != StateSize {
		t.Fatalf("last list ends at 0x%X, state size is 0x%X", StatePreFillPagesOffset+ListSize, StateSize)
	}
	if JournalIDOffset+JournalIDSize > StateOffset {
		t.Fatalf("journal id overlaps state[0]")
	}
	if MinHeaderSize > HeaderSize {
		t.Fatalf("minimum header 0x%X larger than default header 0x%X", MinHeaderSize, HeaderSize)
	}
	if StateStart(1) != 0x100 {
		t.Fatalf("state[1] at 0x%X, want 0x100", StateStart(1))
	}
}

func TestMagicOnDisk(t *testing.T) {
	buf := make([]byte, 4)
	PutU32(buf, 0, Magic)
	if string(buf) != "JRNL" {
		t.Fatalf("magic bytes = %q, want %q", buf, "JRNL")
	}
}

func TestNanosConversion(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
	ns := TimeToNanos(ts)
	if !NanosToTime(ns).Equal(ts) {
		t.Fatalf("round trip mismatch: %v != %v", NanosToTime(ns), ts)
	}
	if got := NanosToDatetime(ns); got != "02JAN2024_03:04:05.678" {
		t.Fatalf("datetime = %q", got)
	}
	if TimeToNanos(time.Unix(-10, 0)) != 0 {
		t.Fatalf("pre-epoch time not clamped")
	}
}

func TestAlignUp(t *testing.T) {
	cases := []struct{ n, align, want int }{
		{1, 4096, 4096},
		{4096, 4096, 4096},
		{4097, 4096, 8192},
		{7, 0, 7},
		{7, 1, 7},
	}
	for _, c := range cases {
		if got := AlignUp(c.n, c.align); got != c.want {
			t.Errorf("AlignUp(%d, %d) = %d, want %d", c.n, c.align, got, c.want)
		}
	}
}
