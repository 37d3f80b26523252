package dirty_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/journalkit/journal"
	"github.com/joshuapare/journalkit/journal/dirty"
)

func openJournal(t *testing.T) *journal.File {
	t.Helper()
	f, err := journal.Create(filepath.Join(t.TempDir(), "ctx.jrnl"), 16384)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestTracker_FlushDataOnly_PreCancelled(t *testing.T) {
	tracker := dirty.NewTracker(openJournal(t), 4096)
	tracker.Add(4096, 100)
	tracker.Add(8192, 200)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tracker.FlushDataOnly(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, tracker.DebugRanges(), 2, "cancelled flush must keep ranges for retry")
}

func TestTracker_FlushHeaderAndMeta_PreCancelled(t *testing.T) {
	tracker := dirty.NewTracker(openJournal(t), 4096)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, tracker.FlushHeaderAndMeta(ctx, dirty.FlushAuto), context.Canceled)
}

func TestTracker_FlushAfterHeaderCommit(t *testing.T) {
	f := openJournal(t)
	tracker := dirty.NewTracker(f, 4096)
	h := journal.NewHeader(journal.WithDirtyTracker(tracker))
	require.NoError(t, h.Attach(f.Bytes()))

	h.Init(journal.DefaultGeometry(), journal.DefaultParameters())
	require.NotEmpty(t, tracker.DebugRanges())

	ctx := context.Background()
	require.NoError(t, tracker.FlushDataOnly(ctx))
	h.CommitCurrentTransaction()
	require.NoError(t, tracker.FlushHeaderAndMeta(ctx, dirty.FlushAuto))
}
