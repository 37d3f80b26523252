package journal

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joshuapare/journalkit/internal/format"
)

// Info is a decoded copy of the header image.
type Info struct {
	Magic              uint32    `json:"magic"`
	Version            uint32    `json:"version"`
	HeaderSize         uint32    `json:"header_size"`
	BlockSize          uint32    `json:"block_size"`
	FreeBlockThreshold uint32    `json:"free_block_threshold"`
	BlocksPerPage      uint32    `json:"blocks_per_page"`
	PagesPerSet        uint32    `json:"pages_per_set"`
	PageHeaderSize     uint32    `json:"page_header_size"`
	PageDataSize       uint32    `json:"page_data_size"`
	Alignment          uint32    `json:"alignment"`
	CreationTime       time.Time `json:"creation_time"`
	UserDataSize       uint32    `json:"user_data_size"`
	JournalID          string    `json:"journal_id"`
	States             []State   `json:"states"`
}

// Info decodes the attached image. It does not validate the magic or the
// version, so it can be used on damaged headers.
func (h *Header) Info() (Info, error) {
	if !h.Attached() {
		return Info{}, ErrNotAttached
	}
	info := Info{
		Magic:              h.Magic(),
		Version:            h.Version(),
		HeaderSize:         h.HeaderSize(),
		BlockSize:          h.BlockSize(),
		FreeBlockThreshold: h.FreeBlockThreshold(),
		BlocksPerPage:      h.BlocksPerPage(),
		PagesPerSet:        h.PagesPerSet(),
		PageHeaderSize:     h.PageHeaderSize(),
		PageDataSize:       h.PageDataSize(),
		Alignment:          h.Alignment(),
		CreationTime:       format.NanosToTime(h.CreationTime()),
		UserDataSize:       h.UserDataSize(),
		JournalID:          h.JournalID().String(),
	}
	for i := 0; i < format.NumStates; i++ {
		info.States = append(info.States, h.State(i).Snapshot())
	}
	return info, nil
}

// Print writes every field of the attached image to w, with times decoded
// to calendar datetimes. A detached header prints as "[ unmapped ]".
func (h *Header) Print(w io.Writer) error {
	if !h.Attached() {
		_, err := io.WriteString(w, "[ unmapped ]")
		return err
	}
	created := h.CreationTime()
	var b strings.Builder
	fmt.Fprintf(&b, " [magic = %#08x, version = %d, headerSize = %d, pagesPerSet = %d, "+
		"blocksPerPage = %d, blockSize = %d, freeBlockThreshold = %d, pageHeaderSize = %d, "+
		"pageDataSize = %d, alignment = %d, creationTime = %d(%s), userDataSize = %d, journalId = %s",
		h.Magic(), h.Version(), h.HeaderSize(), h.PagesPerSet(),
		h.BlocksPerPage(), h.BlockSize(), h.FreeBlockThreshold(), h.PageHeaderSize(),
		h.PageDataSize(), h.Alignment(), created, format.NanosToDatetime(created), h.UserDataSize(),
		h.JournalID())
	for i := 0; i < format.NumStates; i++ {
		fmt.Fprintf(&b, ", state[%d] =%s", i, h.State(i).Snapshot())
	}
	b.WriteString(" ]")
	_, err := io.WriteString(w, b.String())
	return err
}

func (h *Header) String() string {
	var b strings.Builder
	_ = h.Print(&b)
	return b.String()
}
