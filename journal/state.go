package journal

import (
	"fmt"
	"time"

	"github.com/joshuapare/journalkit/internal/format"
)

// StateSlot is a zero-copy view of one of the two state slots in a mapped
// header image. Setters store straight into the image.
type StateSlot struct {
	raw []byte // len == format.StateStride
}

// newStateSlot returns the view of slot i within image.
func newStateSlot(image []byte, i int) *StateSlot {
	start := format.StateStart(i)
	return &StateSlot{raw: image[start : start+format.StateStride : start+format.StateStride]}
}

// TransactionID returns the committed transaction id of the slot. It fails
// with format.ErrUnverified when the slot never had an id written through
// SetTransactionID or the id was damaged.
func (s *StateSlot) TransactionID() (int64, error) {
	return format.ReadVerifiedInt64(s.raw, format.StateTxIDOffset)
}

// SetTransactionID stores id as the slot's committed transaction id. Once
// the store is durable the slot is a published snapshot.
func (s *StateSlot) SetTransactionID(id int64) {
	format.PutVerifiedInt64(s.raw, format.StateTxIDOffset, id)
}

// NumPages returns the number of pages allocated to the journal.
func (s *StateSlot) NumPages() uint32 { return format.ReadU32(s.raw, format.StateNumPagesOffset) }

// SetNumPages sets the number of pages allocated to the journal.
func (s *StateSlot) SetNumPages(n uint32) { format.PutU32(s.raw, format.StateNumPagesOffset, n) }

// ModificationTime returns the raw modification time in ns since the epoch.
func (s *StateSlot) ModificationTime() int64 {
	return format.ReadI64(s.raw, format.StateModificationTimeOffset)
}

// SetModificationTime stores ns as the modification time.
func (s *StateSlot) SetModificationTime(ns int64) {
	format.PutI64(s.raw, format.StateModificationTimeOffset, ns)
}

// ModifiedAt returns the modification time as a time.Time.
func (s *StateSlot) ModifiedAt() time.Time { return format.NanosToTime(s.ModificationTime()) }

func (s *StateSlot) ConfirmedRecords() RecordList {
	return s.recordList(format.StateConfirmedRecordsOffset)
}

func (s *StateSlot) SetConfirmedRecords(l RecordList) {
	s.putRecordList(format.StateConfirmedRecordsOffset, l)
}

func (s *StateSlot) UnconfirmedRecords() RecordList {
	return s.recordList(format.StateUnconfirmedRecordsOffset)
}

func (s *StateSlot) SetUnconfirmedRecords(l RecordList) {
	s.putRecordList(format.StateUnconfirmedRecordsOffset, l)
}

func (s *StateSlot) FillPages() PageList { return s.pageList(format.StateFillPagesOffset) }

func (s *StateSlot) SetFillPages(l PageList) { s.putPageList(format.StateFillPagesOffset, l) }

func (s *StateSlot) PreFillPages() PageList { return s.pageList(format.StatePreFillPagesOffset) }

func (s *StateSlot) SetPreFillPages(l PageList) { s.putPageList(format.StatePreFillPagesOffset, l) }

// reset puts the slot into the freshly initialized state, seeded with id.
func (s *StateSlot) reset(id int64, mtime int64) {
	s.SetTransactionID(id)
	format.PutU32(s.raw, format.StateReservedOffset, 0)
	s.SetNumPages(0)
	s.SetModificationTime(mtime)

	var rl RecordList
	rl.Init()
	s.SetConfirmedRecords(rl)
	s.SetUnconfirmedRecords(rl)

	var pl PageList
	pl.Init()
	s.SetFillPages(pl)
	s.SetPreFillPages(pl)
}

func (s *StateSlot) recordList(off int) RecordList {
	n, first, last := format.ReadList(s.raw, off)
	return RecordList{NumElements: n, First: first, Last: last}
}

func (s *StateSlot) putRecordList(off int, l RecordList) {
	format.PutList(s.raw, off, l.NumElements, l.First, l.Last)
}

func (s *StateSlot) pageList(off int) PageList {
	n, first, last := format.ReadList(s.raw, off)
	return PageList{NumElements: n, First: first, Last: last}
}

func (s *StateSlot) putPageList(off int, l PageList) {
	format.PutList(s.raw, off, l.NumElements, l.First, l.Last)
}

// CopyState copies the bookkeeping of src into dst: page count, modification
// time and the four list descriptors. The committed transaction id is not
// copied; dst only becomes a published snapshot when an id is committed
// into it.
func CopyState(dst, src *StateSlot) {
	copy(dst.raw[format.StateNumPagesOffset:format.StateSize], src.raw[format.StateNumPagesOffset:format.StateSize])
}

// State is a decoded copy of a state slot.
type State struct {
	// CommittedTransactionID holds the stored id. When Verified is false it
	// is the raw value found in the slot and must not be trusted.
	CommittedTransactionID int64      `json:"committed_transaction_id"`
	Verified               bool       `json:"verified"`
	NumPages               uint32     `json:"num_pages"`
	ModificationTime       int64      `json:"modification_time"`
	ConfirmedRecords       RecordList `json:"confirmed_records"`
	UnconfirmedRecords     RecordList `json:"unconfirmed_records"`
	FillPages              PageList   `json:"fill_pages"`
	PreFillPages           PageList   `json:"pre_fill_pages"`
}

// Snapshot decodes the slot.
func (s *StateSlot) Snapshot() State {
	st := State{
		NumPages:           s.NumPages(),
		ModificationTime:   s.ModificationTime(),
		ConfirmedRecords:   s.ConfirmedRecords(),
		UnconfirmedRecords: s.UnconfirmedRecords(),
		FillPages:          s.FillPages(),
		PreFillPages:       s.PreFillPages(),
	}
	id, err := s.TransactionID()
	if err != nil {
		st.CommittedTransactionID = format.ReadI64(s.raw, format.StateTxIDOffset)
	} else {
		st.CommittedTransactionID = id
		st.Verified = true
	}
	return st
}

// String formats the state the way Header.Print does.
func (st State) String() string {
	id := fmt.Sprint(st.CommittedTransactionID)
	if !st.Verified {
		id = "<unverified>"
	}
	return fmt.Sprintf(" [committedTransactionId = %s, numPages = %d, modificationTime = %d(%s), "+
		"confirmedRecords = %s, unconfirmedRecords = %s, fillPages = %s, preFillPages = %s ]",
		id, st.NumPages, st.ModificationTime, format.NanosToDatetime(st.ModificationTime),
		st.ConfirmedRecords, st.UnconfirmedRecords, st.FillPages, st.PreFillPages)
}
