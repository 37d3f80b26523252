package journal

import (
	"fmt"
	"io"
	"os"

	"github.com/ncw/directio"

	"github.com/joshuapare/journalkit/internal/format"
)

// ReadDirect reads the first n bytes of the file at path, bypassing the page
// cache, so the result reflects what has reached the device rather than
// what a mapping has stored. The read is rounded up to the direct I/O block
// size and the returned slice is trimmed to n.
func ReadDirect(path string, n int) ([]byte, error) {
	f, err := directio.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("direct open %s: %w", path, err)
	}
	defer f.Close()

	block := directio.AlignedBlock(format.AlignUp(n, directio.BlockSize))
	got, err := io.ReadAtLeast(f, block, n)
	if err != nil {
		return nil, fmt.Errorf("direct read %s: got %d of %d bytes: %w", path, got, n, err)
	}
	return block[:n], nil
}
