package main

import (
	"fmt"

	"github.com/joshuapare/journalkit/internal/format"
	"github.com/joshuapare/journalkit/internal/mmfile"
	"github.com/joshuapare/journalkit/journal"
)

// openHeader attaches a header to the journal at path without modifying
// the file. With direct set the header bytes are read bypassing the page
// cache; otherwise the file is mapped read-only. The returned release
// function must be called once the header is no longer used.
func openHeader(path string, direct bool) (*journal.Header, func() error, error) {
	var (
		data    []byte
		release = func() error { return nil }
		err     error
	)
	if direct {
		printVerbose("Reading header with direct I/O: %s\n", path)
		data, err = journal.ReadDirect(path, format.MinHeaderSize)
	} else {
		printVerbose("Mapping journal: %s\n", path)
		data, release, err = mmfile.Map(path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	h := newHeader()
	if err := h.Attach(data); err != nil {
		_ = release()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, func() error {
		h.Detach()
		return release()
	}, nil
}
