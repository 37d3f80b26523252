package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/journalkit/internal/format"
)

func TestCreate_TooSmall(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "small.jrnl"), format.MinHeaderSize-1)
	require.ErrorIs(t, err, ErrImageTooSmall)
}

func TestCreate_Exists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.jrnl")
	f, err := Create(path, format.HeaderSize)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Create(path, format.HeaderSize)
	require.ErrorIs(t, err, os.ErrExist)
}

func TestOpen_TooSmall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.jrnl")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o644))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrImageTooSmall)
}

func TestFile_CloseIsIdempotent(t *testing.T) {
	f, err := Create(filepath.Join(t.TempDir(), "c.jrnl"), format.HeaderSize)
	require.NoError(t, err)

	require.NoError(t, f.Close())
	require.NoError(t, f.Close())
}

// TestFile_CrashBeforeCommit writes a transaction into the inactive slot,
// closes the file without committing and checks that a reopen recovers the
// previous commit.
func TestFile_CrashBeforeCommit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crash.jrnl")

	f, err := Create(path, 2*format.HeaderSize)
	require.NoError(t, err)
	require.Equal(t, int64(2*format.HeaderSize), f.Size())

	h := NewHeader()
	require.NoError(t, h.Attach(f.Bytes()))
	h.Init(DefaultGeometry(), DefaultParameters())
	h.ActiveState().SetNumPages(1)
	h.CommitCurrentTransaction()
	require.NoError(t, f.Sync())

	require.NoError(t, h.BeginTransaction())
	h.ActiveState().SetNumPages(2)
	h.Detach()
	require.NoError(t, f.Close())

	f, err = Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := NewHeader()
	require.NoError(t, r.Attach(f.Bytes()))
	require.NoError(t, r.RecoverTransaction(false))
	require.Equal(t, 0, r.ActiveStateIndex())
	require.Equal(t, int64(1001), r.CommittedTransactionID())
	require.Equal(t, uint32(1), r.ActiveState().NumPages())
}

func TestFile_CommitPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commit.jrnl")

	f, err := Create(path, format.HeaderSize)
	require.NoError(t, err)
	h := NewHeader()
	require.NoError(t, h.Attach(f.Bytes()))
	h.Init(DefaultGeometry(), DefaultParameters())
	require.NoError(t, h.BeginTransaction())
	h.CommitCurrentTransaction()
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	r := NewHeader()
	require.NoError(t, r.Attach(raw))
	require.NoError(t, r.RecoverTransaction(true))
	require.Equal(t, 1, r.ActiveStateIndex())
	require.Equal(t, int64(1001), r.CommittedTransactionID())
	require.Equal(t, int64(2001), r.CurrentTransactionID())
}

func TestReadDirect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "direct.jrnl")
	f, err := Create(path, format.HeaderSize)
	require.NoError(t, err)
	h := NewHeader()
	require.NoError(t, h.Attach(f.Bytes()))
	h.Init(DefaultGeometry(), DefaultParameters())
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	got, err := ReadDirect(path, format.MinHeaderSize)
	if err != nil {
		// tmpfs and some overlay filesystems reject O_DIRECT
		t.Skipf("direct I/O unavailable: %v", err)
	}
	require.Len(t, got, format.MinHeaderSize)

	r := NewHeader()
	require.NoError(t, r.Attach(got))
	require.NoError(t, r.RecoverTransaction(false))
	require.Equal(t, format.Magic, r.Magic())
}

func TestGeometry_Validate(t *testing.T) {
	require.NoError(t, DefaultGeometry().Validate())

	g := DefaultGeometry()
	g.HeaderSize = format.MinHeaderSize - 1
	require.ErrorIs(t, g.Validate(), ErrImageTooSmall)

	g = DefaultGeometry()
	g.Alignment = 12
	require.Error(t, g.Validate())
}
