package journal

import (
	"fmt"

	"github.com/joshuapare/journalkit/internal/format"
)

// InvalidPage is the reserved page number marking an empty list end.
const InvalidPage = format.InvalidPage

// InvalidRecord is the reserved record handle marking an empty list end.
const InvalidRecord = format.InvalidRecord

// PageList describes a list of journal pages threaded through the page
// headers themselves. Only the count and both ends live in the header; the
// forward and backward links are owned by the pages.
type PageList struct {
	NumElements uint32 `json:"num_elements"`
	First       uint32 `json:"first"`
	Last        uint32 `json:"last"`
}

// Init resets l to the empty list.
func (l *PageList) Init() {
	l.NumElements = 0
	l.First = InvalidPage
	l.Last = InvalidPage
}

// IsEmpty reports whether l holds no pages.
func (l PageList) IsEmpty() bool { return l.NumElements == 0 }

// AddPage appends page to the tail of l and returns the previous tail, so the
// caller can link the old tail to page. It returns InvalidPage when l was
// empty.
//
// AddPage panics if the descriptor is inconsistent or if page is already the
// tail; both indicate a bug in the caller's page management.
func (l *PageList) AddPage(page uint32) uint32 {
	return appendTail(&l.NumElements, &l.First, &l.Last, page, InvalidPage, "AddPage")
}

func (l PageList) String() string {
	return fmt.Sprintf("(%d: %d, %d)", l.NumElements, l.First, l.Last)
}

// RecordList describes a list of journal records. Like PageList it only
// carries the count and both ends.
type RecordList struct {
	NumElements uint32 `json:"num_elements"`
	First       uint32 `json:"first"`
	Last        uint32 `json:"last"`
}

// Init resets l to the empty list.
func (l *RecordList) Init() {
	l.NumElements = 0
	l.First = InvalidRecord
	l.Last = InvalidRecord
}

// IsEmpty reports whether l holds no records.
func (l RecordList) IsEmpty() bool { return l.NumElements == 0 }

// AddRecord appends rec to the tail of l and returns the previous tail. It
// has the same contract as PageList.AddPage.
func (l *RecordList) AddRecord(rec uint32) uint32 {
	return appendTail(&l.NumElements, &l.First, &l.Last, rec, InvalidRecord, "AddRecord")
}

func (l RecordList) String() string {
	return fmt.Sprintf("{%d: %d, %d}", l.NumElements, l.First, l.Last)
}

func appendTail(count, first, last *uint32, v, invalid uint32, op string) uint32 {
	prev := *last
	if *last == invalid {
		if *first != invalid || *count != 0 {
			panic(fmt.Sprintf("journal: %s: empty list has first=%d count=%d", op, *first, *count))
		}
		*first = v
		*last = v
	} else {
		if *first == invalid || *count == 0 {
			panic(fmt.Sprintf("journal: %s: non-empty list has first=%d count=%d", op, *first, *count))
		}
		if *count == 1 && *first != *last {
			panic(fmt.Sprintf("journal: %s: single element list has first=%d last=%d", op, *first, *last))
		}
		if *last == v {
			panic(fmt.Sprintf("journal: %s: %d is already the tail", op, v))
		}
		*last = v
	}
	*count++
	return prev
}
