package journal

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joshuapare/journalkit/internal/format"
	"github.com/joshuapare/journalkit/internal/metrics"
	"github.com/joshuapare/journalkit/journal/dirty"
)

const (
	// initialTransactionID is the current id after Init.
	initialTransactionID = 1001

	// recoveryOffset is added to the committed id when recovering with
	// offset set, keeping new ids clear of any written by a crashed run.
	recoveryOffset = 1000
)

// Header controls a mapped journal header image. It caches the current and
// committed transaction ids and which slot is active, and never allocates
// or releases the image it is attached to.
type Header struct {
	raw []byte

	currentTxID   int64
	committedTxID int64
	active        int

	log     *zap.Logger
	now     func() time.Time
	metrics *metrics.Journal
	dt      dirty.DirtyTracker
}

// Option configures a Header.
type Option func(*Header)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(h *Header) {
		if l != nil {
			h.log = l
		}
	}
}

// WithClock overrides the time source used for creation and modification
// times.
func WithClock(now func() time.Time) Option {
	return func(h *Header) {
		if now != nil {
			h.now = now
		}
	}
}

// WithMetrics records commits, recoveries and slot switches in m.
func WithMetrics(m *metrics.Journal) Option {
	return func(h *Header) { h.metrics = m }
}

// WithDirtyTracker reports every header range the Header writes to dt.
// Offsets are relative to the start of the attached image, which is the
// start of the journal file when the image comes from File.Bytes.
func WithDirtyTracker(dt dirty.DirtyTracker) Option {
	return func(h *Header) { h.dt = dt }
}

// NewHeader returns a detached Header.
func NewHeader(opts ...Option) *Header {
	h := &Header{
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Attach points h at image. The image must stay valid until Detach.
func (h *Header) Attach(image []byte) error {
	if len(image) < format.MinHeaderSize {
		return fmt.Errorf("attach: %d bytes, need %d: %w", len(image), format.MinHeaderSize, ErrImageTooSmall)
	}
	h.raw = image
	return nil
}

// Detach releases the reference to the image. The cached ids are kept.
func (h *Header) Detach() { h.raw = nil }

// Attached reports whether h references an image.
func (h *Header) Attached() bool { return h.raw != nil }

func (h *Header) mustAttached(op string) {
	if h.raw == nil {
		panic("journal: " + op + " on detached header")
	}
}

// Init formats the attached image as a fresh journal header. Both slots are
// reset and seeded with small distinct ids, slot 0 with the higher one so it
// wins a recovery before the first commit. Slot 0 becomes active, the
// current id becomes 1001 and the committed id 0. Any previous content is
// lost.
func (h *Header) Init(g Geometry, p Parameters) {
	h.mustAttached("Init")

	created := format.TimeToNanos(h.now())
	id := uuid.New()

	format.PutU32(h.raw, format.MagicOffset, format.Magic)
	format.PutU32(h.raw, format.VersionOffset, format.VersionCurrent)
	format.PutU32(h.raw, format.HeaderSizeOffset, g.HeaderSize)
	format.PutU32(h.raw, format.BlockSizeOffset, p.BlockSize)
	format.PutU32(h.raw, format.FreeBlockThresholdOffset, p.FreeBlockThreshold)
	format.PutU32(h.raw, format.BlocksPerPageOffset, min(p.BlocksPerPage, MaxBlocksPerPage))
	format.PutU32(h.raw, format.PagesPerSetOffset, p.PagesPerSet)
	format.PutU32(h.raw, format.PageHeaderSizeOffset, g.PageHeaderSize)
	format.PutU32(h.raw, format.PageDataSizeOffset, g.PageDataSize)
	format.PutU32(h.raw, format.AlignmentOffset, g.Alignment)
	format.PutI64(h.raw, format.CreationTimeOffset, created)
	format.PutU32(h.raw, format.UserDataSizeOffset, g.UserDataSize)
	format.PutU32(h.raw, format.ReservedOffset, 0)
	copy(h.raw[format.JournalIDOffset:format.JournalIDOffset+format.JournalIDSize], id[:])

	h.active = 0
	// Seeds run in reverse slot order: slot 0 must hold the higher id so a
	// recovery before the first commit selects it, as the equal-id rule does.
	for i := 0; i < format.NumStates; i++ {
		newStateSlot(h.raw, i).reset(int64(format.NumStates-1-i), created)
	}
	h.currentTxID = initialTransactionID
	h.committedTxID = 0

	h.markDirty(0, format.MinHeaderSize)
	h.log.Debug("initialized journal header",
		zap.Stringer("journal_id", id),
		zap.Uint32("header_size", g.HeaderSize),
		zap.Uint32("blocks_per_page", min(p.BlocksPerPage, MaxBlocksPerPage)))
}

// CommitCurrentTransaction publishes the active slot: it stamps the slot's
// modification time and then stores the current transaction id into it.
// The id store is the commit point; making it durable is up to the caller.
//
// The cached committed id is updated to the published id, so
// CommittedTransactionID reflects the commit without a recovery.
func (h *Header) CommitCurrentTransaction() {
	h.mustAttached("CommitCurrentTransaction")

	slot := h.ActiveState()
	h.log.Debug("committing transaction",
		zap.Int64("transaction_id", h.currentTxID),
		zap.Int("slot", h.active))

	slot.SetModificationTime(format.TimeToNanos(h.now()))
	slot.SetTransactionID(h.currentTxID)
	h.committedTxID = h.currentTxID

	h.markDirty(format.StateStart(h.active), format.StateStride)
	h.metrics.ObserveCommit(h.currentTxID)
}

// RecoverTransaction selects the slot holding the most recent commit and
// makes it active. Both slots must verify; a slot that does not means the
// header is damaged and an error wrapping format.ErrUnverified is returned.
// Equal ids select slot 0.
//
// Afterwards the committed id is the selected slot's id and the current id
// equals it, or exceeds it by 1000 when offset is set. The offset is clamped
// at math.MaxInt64.
func (h *Header) RecoverTransaction(offset bool) error {
	h.mustAttached("RecoverTransaction")

	if err := h.Validate(); err != nil {
		h.metrics.ObserveRecovery(metrics.ResultBadHeader, 0)
		return fmt.Errorf("recover: %w", err)
	}

	var ids [format.NumStates]int64
	for i := 0; i < format.NumStates; i++ {
		id, err := newStateSlot(h.raw, i).TransactionID()
		if err != nil {
			h.log.Warn("state slot failed verification", zap.Int("slot", i))
			h.metrics.ObserveRecovery(metrics.ResultUnverified, 0)
			return fmt.Errorf("recover: slot %d: %w", i, err)
		}
		ids[i] = id
	}

	index := 0
	if ids[1] > ids[0] {
		index = 1
	}
	h.active = index
	h.committedTxID = ids[index]
	if offset {
		if h.committedTxID > math.MaxInt64-recoveryOffset {
			h.log.Warn("recovery offset clamped at the top of the id range",
				zap.Int64("committed_transaction_id", h.committedTxID))
			h.currentTxID = math.MaxInt64
		} else {
			h.currentTxID = h.committedTxID + recoveryOffset
		}
	} else {
		h.currentTxID = h.committedTxID
	}

	h.log.Debug("recovered transaction",
		zap.Int64("committed_transaction_id", h.committedTxID),
		zap.Int64("current_transaction_id", h.currentTxID),
		zap.Int("slot", index))
	h.metrics.ObserveRecovery(metrics.ResultOK, h.committedTxID)
	return nil
}

// BeginTransaction switches to the inactive slot and seeds it with the
// bookkeeping of the active one, so the next commit does not overwrite the
// last published state.
//
// The new slot's id is lowered below the published one before anything
// else is written to it. Until CommitCurrentTransaction stores a higher id
// recovery keeps selecting the previous slot. If the current id would not
// exceed the published one it is advanced past it.
//
// The active slot must verify; otherwise an error wrapping
// format.ErrUnverified is returned and nothing is changed. When the published
// id is math.MinInt64, or the next id would pass math.MaxInt64, the error
// wraps ErrTransactionIDExhausted.
func (h *Header) BeginTransaction() error {
	h.mustAttached("BeginTransaction")

	src := h.ActiveState()
	published, err := src.TransactionID()
	if err != nil {
		return fmt.Errorf("begin: slot %d: %w", h.active, err)
	}

	if published == math.MinInt64 {
		return fmt.Errorf("begin: slot %d holds the lowest transaction id: %w", h.active, ErrTransactionIDExhausted)
	}
	floor := max(published, h.committedTxID)
	if floor == math.MaxInt64 {
		return fmt.Errorf("begin: transaction id %d cannot be advanced: %w", floor, ErrTransactionIDExhausted)
	}

	next := (h.active + 1) % format.NumStates
	dst := newStateSlot(h.raw, next)
	dst.SetTransactionID(published - 1)
	CopyState(dst, src)
	h.active = next

	if h.currentTxID <= floor {
		h.currentTxID = floor + 1
	}

	h.markDirty(format.StateStart(next), format.StateStride)
	h.metrics.ObserveSlotSwitch()
	h.log.Debug("began transaction",
		zap.Int64("transaction_id", h.currentTxID),
		zap.Int("slot", next))
	return nil
}

// AbortTransaction abandons a transaction started with BeginTransaction by
// making the published slot active again. The abandoned slot keeps its
// lowered id, so it stays invisible to recovery. The current id is kept.
// It is a no-op when the active slot already holds the most recent
// verified id.
func (h *Header) AbortTransaction() {
	h.mustAttached("AbortTransaction")

	other := (h.active + 1) % format.NumStates
	otherID, err := newStateSlot(h.raw, other).TransactionID()
	if err != nil {
		return
	}
	activeID, err := h.ActiveState().TransactionID()
	if err == nil && activeID >= otherID {
		return
	}

	h.log.Debug("aborted transaction",
		zap.Int64("transaction_id", h.currentTxID),
		zap.Int("slot", h.active))
	h.active = other
	h.committedTxID = otherID
}

// Validate checks the magic number and version of the attached image.
func (h *Header) Validate() error {
	h.mustAttached("Validate")
	if m := h.Magic(); m != format.Magic {
		return fmt.Errorf("magic %#08x: %w", m, format.ErrSignatureMismatch)
	}
	if v := h.Version(); v != format.VersionCurrent {
		return fmt.Errorf("version %d: %w", v, format.ErrUnsupportedVersion)
	}
	return nil
}

func (h *Header) markDirty(off, length int) {
	if h.dt != nil {
		h.dt.Add(off, length)
	}
}

// CurrentTransactionID returns the id the next commit will publish.
func (h *Header) CurrentTransactionID() int64 { return h.currentTxID }

// SetCurrentTransactionID sets the id the next commit will publish.
func (h *Header) SetCurrentTransactionID(id int64) { h.currentTxID = id }

// CommittedTransactionID returns the id of the last commit made or
// recovered through h.
func (h *Header) CommittedTransactionID() int64 { return h.committedTxID }

// ActiveStateIndex returns the index of the slot the next commit writes.
func (h *Header) ActiveStateIndex() int { return h.active }

// ActiveState returns a view of the active slot.
func (h *Header) ActiveState() *StateSlot {
	h.mustAttached("ActiveState")
	return newStateSlot(h.raw, h.active)
}

// State returns a view of slot i, which must be 0 or 1.
func (h *Header) State(i int) *StateSlot {
	h.mustAttached("State")
	if i < 0 || i >= format.NumStates {
		panic(fmt.Sprintf("journal: state index %d out of range", i))
	}
	return newStateSlot(h.raw, i)
}

// SlotTransactionID returns the verified committed id stored in slot i.
func (h *Header) SlotTransactionID(i int) (int64, error) {
	return h.State(i).TransactionID()
}

func (h *Header) u32(op string, off int) uint32 {
	h.mustAttached(op)
	return format.ReadU32(h.raw, off)
}

func (h *Header) Magic() uint32   { return h.u32("Magic", format.MagicOffset) }
func (h *Header) Version() uint32 { return h.u32("Version", format.VersionOffset) }

func (h *Header) HeaderSize() uint32 { return h.u32("HeaderSize", format.HeaderSizeOffset) }
func (h *Header) BlockSize() uint32  { return h.u32("BlockSize", format.BlockSizeOffset) }

func (h *Header) FreeBlockThreshold() uint32 {
	return h.u32("FreeBlockThreshold", format.FreeBlockThresholdOffset)
}

func (h *Header) BlocksPerPage() uint32  { return h.u32("BlocksPerPage", format.BlocksPerPageOffset) }
func (h *Header) PagesPerSet() uint32    { return h.u32("PagesPerSet", format.PagesPerSetOffset) }
func (h *Header) PageHeaderSize() uint32 { return h.u32("PageHeaderSize", format.PageHeaderSizeOffset) }
func (h *Header) PageDataSize() uint32   { return h.u32("PageDataSize", format.PageDataSizeOffset) }
func (h *Header) Alignment() uint32      { return h.u32("Alignment", format.AlignmentOffset) }
func (h *Header) UserDataSize() uint32   { return h.u32("UserDataSize", format.UserDataSizeOffset) }

// CreationTime returns the raw creation time in ns since the epoch.
func (h *Header) CreationTime() int64 {
	h.mustAttached("CreationTime")
	return format.ReadI64(h.raw, format.CreationTimeOffset)
}

// JournalID returns the id stamped by Init.
func (h *Header) JournalID() uuid.UUID {
	h.mustAttached("JournalID")
	var id uuid.UUID
	copy(id[:], h.raw[format.JournalIDOffset:format.JournalIDOffset+format.JournalIDSize])
	return id
}
