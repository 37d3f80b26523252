package journal

import (
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/journalkit/internal/format"
	"github.com/joshuapare/journalkit/internal/mmfile"
)

// File is a journal file mapped read-write. The header region is the first
// HeaderSize bytes of Bytes.
type File struct {
	f     *os.File
	data  []byte
	unmap func() error
}

// Create creates a zero-filled journal file of size bytes and maps it. The
// file must not exist yet. The header is left unformatted; attach a Header
// and call Init.
func Create(path string, size int64) (*File, error) {
	if size < format.MinHeaderSize {
		return nil, fmt.Errorf("create %s: %d bytes, need %d: %w", path, size, format.MinHeaderSize, ErrImageTooSmall)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(size); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return mapOpened(f)
}

// Open maps an existing journal file read-write.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.Size() < format.MinHeaderSize {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: %d bytes, need %d: %w", path, st.Size(), format.MinHeaderSize, ErrImageTooSmall)
	}
	return mapOpened(f)
}

func mapOpened(f *os.File) (*File, error) {
	data, unmap, err := mmfile.MapFile(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &File{f: f, data: data, unmap: unmap}, nil
}

// Bytes returns the mapped contents. The slice is invalid after Close.
func (jf *File) Bytes() []byte { return jf.data }

// FD returns the file descriptor, for fdatasync.
func (jf *File) FD() int { return int(jf.f.Fd()) }

// Size returns the mapped size in bytes.
func (jf *File) Size() int64 { return int64(len(jf.data)) }

// Name returns the path the file was opened with.
func (jf *File) Name() string { return jf.f.Name() }

// Sync writes the whole mapping back to the file and waits for it.
func (jf *File) Sync() error {
	if err := mmfile.Flush(jf.f, jf.data); err != nil {
		return err
	}
	return jf.f.Sync()
}

// Close writes back unflushed stores where the platform needs it, unmaps
// the file and closes it. It does not wait for the data to reach the disk;
// call Sync first for that.
func (jf *File) Close() error {
	if jf.data == nil {
		return nil
	}
	var errs []error
	if err := mmfile.Writeback(jf.f, jf.data); err != nil {
		errs = append(errs, err)
	}
	if err := jf.unmap(); err != nil {
		errs = append(errs, err)
	}
	if err := jf.f.Close(); err != nil {
		errs = append(errs, err)
	}
	jf.data = nil
	return errors.Join(errs...)
}
