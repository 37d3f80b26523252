// Package format houses the low-level byte layout of the journal header: field
// offsets, the little-endian codecs used to read and write them, and the
// self-verifying integer encoding. Everything here operates directly on a
// byte slice so the same code serves mapped files and in-memory images.
package format

// Magic identifies a journal header. Stored little-endian it reads "JRNL".
const Magic uint32 = 0x4C4E524A

const (
	// VersionCurrent is the header format version written by Init.
	VersionCurrent uint32 = 1

	// HeaderSize is the default size of the header region. It is one memory
	// page so the header can be flushed independently of journal pages.
	HeaderSize = 4096

	// MinHeaderSize is the smallest image that can hold the fixed fields and
	// both state slots.
	MinHeaderSize = StateOffset + NumStates*StateStride

	// MaxBlocksPerPage is the upper bound applied to the configured blocks
	// per page when the header is initialized.
	MaxBlocksPerPage = 1024

	// NumStates is the number of double-buffered state slots.
	NumStates = 2

	// InvalidPage marks an empty end of a page list.
	InvalidPage uint32 = 0xFFFFFFFF

	// InvalidRecord marks an empty end of a record list.
	InvalidRecord uint32 = 0xFFFFFFFF

	// DWORDSize is the size of a 32-bit field.
	DWORDSize = 4

	// QWORDSize is the size of a 64-bit field.
	QWORDSize = 8

	// JournalIDSize is the size of the UUID stamped at init.
	JournalIDSize = 16
)

// Header field offsets.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------
//	 0x000   4    magic
//	 0x004   4    version
//	 0x008   4    header size
//	 0x00C   4    block size
//	 0x010   4    free block threshold
//	 0x014   4    blocks per page
//	 0x018   4    pages per set
//	 0x01C   4    page header size
//	 0x020   4    page data size
//	 0x024   4    alignment
//	 0x028   8    creation time (ns since Unix epoch)
//	 0x030   4    user data size
//	 0x034   4    reserved
//	 0x038  16    journal id
//	 0x080 128    state[0]
//	 0x100 128    state[1]
const (
	MagicOffset              = 0x000
	VersionOffset            = 0x004
	HeaderSizeOffset         = 0x008
	BlockSizeOffset          = 0x00C
	FreeBlockThresholdOffset = 0x010
	BlocksPerPageOffset      = 0x014
	PagesPerSetOffset        = 0x018
	PageHeaderSizeOffset     = 0x01C
	PageDataSizeOffset       = 0x020
	AlignmentOffset          = 0x024
	CreationTimeOffset       = 0x028
	UserDataSizeOffset       = 0x030
	ReservedOffset           = 0x034
	JournalIDOffset          = 0x038

	// StateOffset is where state[0] begins; state[i] starts at
	// StateOffset + i*StateStride.
	StateOffset = 0x080

	// StateStride is the distance between the two slots. Slots are padded so
	// each one starts on a 128-byte boundary.
	StateStride = 0x080
)

// State slot field offsets, relative to the start of the slot.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------
//	 0x00   16    committed transaction id (verified int64)
//	 0x10    4    number of pages
//	 0x14    4    reserved
//	 0x18    8    modification time (ns since Unix epoch)
//	 0x20   12    confirmed records   (record list)
//	 0x2C   12    unconfirmed records (record list)
//	 0x38   12    fill pages          (page list)
//	 0x44   12    pre-fill pages      (page list)
const (
	StateTxIDOffset               = 0x00
	StateNumPagesOffset           = 0x10
	StateReservedOffset           = 0x14
	StateModificationTimeOffset   = 0x18
	StateConfirmedRecordsOffset   = 0x20
	StateUnconfirmedRecordsOffset = 0x2C
	StateFillPagesOffset          = 0x38
	StatePreFillPagesOffset       = 0x44

	// StateSize is the number of bytes a slot actually uses.
	StateSize = 0x50
)

// List descriptor layout: count, first, last, each a uint32.
const (
	ListCountOffset = 0x0
	ListFirstOffset = 0x4
	ListLastOffset  = 0x8

	// ListSize is the encoded size of a page or record list descriptor.
	ListSize = 0xC
)

// StateStart returns the absolute offset of slot i within the header image.
func StateStart(i int) int {
	return StateOffset + i*StateStride
}
