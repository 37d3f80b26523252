package tx_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/journalkit/journal"
	"github.com/joshuapare/journalkit/journal/dirty"
	"github.com/joshuapare/journalkit/journal/tx"
)

func setupJournal(t *testing.T) (*journal.File, *journal.Header, *dirty.Tracker) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tx.jrnl")
	f, err := journal.Create(path, 8192)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	dt := dirty.NewTracker(f, 4096)
	h := journal.NewHeader(journal.WithDirtyTracker(dt))
	require.NoError(t, h.Attach(f.Bytes()))
	h.Init(journal.DefaultGeometry(), journal.DefaultParameters())
	return f, h, dt
}

func TestManager_Begin_PreCancelled(t *testing.T) {
	_, h, dt := setupJournal(t)
	tm := tx.NewManager(h, dt, dirty.FlushAuto)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, tm.Begin(ctx), context.Canceled)
	require.False(t, tm.InTransaction())
	require.Equal(t, 0, h.ActiveStateIndex())
}

func TestManager_Commit_PreCancelled(t *testing.T) {
	_, h, dt := setupJournal(t)
	tm := tx.NewManager(h, dt, dirty.FlushAuto)

	require.NoError(t, tm.Begin(context.Background()))
	dt.Add(4096, 16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, tm.Commit(ctx), context.Canceled)
	require.True(t, tm.InTransaction())
	require.Equal(t, int64(0), h.CommittedTransactionID(), "cancelled commit must not publish")
}

func TestManager_CommitSurvivesReopen(t *testing.T) {
	f, h, dt := setupJournal(t)
	tm := tx.NewManager(h, dt, dirty.FlushAuto)
	ctx := context.Background()

	require.NoError(t, tm.Begin(ctx))
	h.ActiveState().SetNumPages(3)
	copy(f.Bytes()[4096:], "page data")
	dt.Add(4096, len("page data"))
	require.NoError(t, tm.Commit(ctx))

	path := f.Name()
	require.NoError(t, f.Close())

	reopened, err := journal.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	r := journal.NewHeader()
	require.NoError(t, r.Attach(reopened.Bytes()))
	require.NoError(t, r.RecoverTransaction(false))
	require.Equal(t, int64(1001), r.CommittedTransactionID())
	require.Equal(t, 1, r.ActiveStateIndex())
	require.Equal(t, uint32(3), r.ActiveState().NumPages())
	require.Equal(t, "page data", string(reopened.Bytes()[4096:4096+len("page data")]))
}
