//go:build unix

package mmfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Map maps the file at path into memory read-only and returns its contents.
func Map(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close() // safe before return; mapping keeps pages alive

	data, err := mapFile(f, unix.PROT_READ)
	if err != nil {
		return nil, nil, err
	}
	return data, unmapper(data), nil
}

// MapFile maps an already open file read-write with MAP_SHARED, so stores
// into the returned slice reach the file. The caller keeps ownership of f.
func MapFile(f *os.File) ([]byte, func() error, error) {
	data, err := mapFile(f, unix.PROT_READ|unix.PROT_WRITE)
	if err != nil {
		return nil, nil, err
	}
	return data, unmapper(data), nil
}

func mapFile(f *os.File, prot int) ([]byte, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmfile: mmap %s: %w", f.Name(), err)
	}
	return data, nil
}

func unmapper(data []byte) func() error {
	return func() error {
		if len(data) == 0 {
			return nil
		}
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
}

// Writeback is a no-op where the mapping is shared with the file.
func Writeback(_ *os.File, _ []byte) error {
	return nil
}

// Flush synchronously writes the mapped pages of data back to the file.
func Flush(_ *os.File, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := unix.Msync(data, unix.MS_SYNC); err != nil {
		return fmt.Errorf("mmfile: msync: %w", err)
	}
	return nil
}
