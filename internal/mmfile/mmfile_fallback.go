//go:build !unix

package mmfile

import (
	"io"
	"os"
)

// Map reads the entire file when mmap is not available.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}

// MapFile reads f into memory. Stores into the returned slice only reach the
// file through Writeback.
func MapFile(f *os.File) ([]byte, func() error, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}

// Writeback copies data back to the start of f.
func Writeback(f *os.File, data []byte) error {
	_, err := f.WriteAt(data, 0)
	return err
}

// Flush writes data back to f and syncs it.
func Flush(f *os.File, data []byte) error {
	if err := Writeback(f, data); err != nil {
		return err
	}
	return f.Sync()
}
