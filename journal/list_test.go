package journal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func emptyPageList() PageList {
	var l PageList
	l.Init()
	return l
}

func TestPageList_Init(t *testing.T) {
	l := PageList{NumElements: 3, First: 1, Last: 2}
	l.Init()

	require.Equal(t, PageList{NumElements: 0, First: InvalidPage, Last: InvalidPage}, l)
	require.True(t, l.IsEmpty())
}

func TestPageList_AddPage(t *testing.T) {
	l := emptyPageList()

	require.Equal(t, InvalidPage, l.AddPage(7))
	require.Equal(t, PageList{NumElements: 1, First: 7, Last: 7}, l)

	require.Equal(t, uint32(7), l.AddPage(9))
	require.Equal(t, PageList{NumElements: 2, First: 7, Last: 9}, l)

	require.Equal(t, uint32(9), l.AddPage(7), "a page other than the tail may be appended")
	require.Equal(t, PageList{NumElements: 3, First: 7, Last: 7}, l)
}

func TestPageList_AddPage_Invariants(t *testing.T) {
	tests := []struct {
		name string
		list PageList
		page uint32
	}{
		{"duplicate tail", PageList{NumElements: 2, First: 1, Last: 2}, 2},
		{"duplicate single element", PageList{NumElements: 1, First: 4, Last: 4}, 4},
		{"empty with count", PageList{NumElements: 1, First: InvalidPage, Last: InvalidPage}, 1},
		{"empty with head", PageList{NumElements: 0, First: 3, Last: InvalidPage}, 1},
		{"tail without head", PageList{NumElements: 1, First: InvalidPage, Last: 3}, 1},
		{"tail with zero count", PageList{NumElements: 0, First: 3, Last: 3}, 1},
		{"single element with distinct ends", PageList{NumElements: 1, First: 3, Last: 5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.list
			require.Panics(t, func() { l.AddPage(tt.page) })
		})
	}
}

func TestRecordList_AddRecord(t *testing.T) {
	var l RecordList
	l.Init()
	require.Equal(t, RecordList{NumElements: 0, First: InvalidRecord, Last: InvalidRecord}, l)

	require.Equal(t, InvalidRecord, l.AddRecord(100))
	require.Equal(t, uint32(100), l.AddRecord(200))
	require.Equal(t, RecordList{NumElements: 2, First: 100, Last: 200}, l)

	require.Panics(t, func() { l.AddRecord(200) })
}

func TestList_String(t *testing.T) {
	require.Equal(t, "(2: 7, 9)", PageList{NumElements: 2, First: 7, Last: 9}.String())
	require.Equal(t, "{1: 5, 5}", RecordList{NumElements: 1, First: 5, Last: 5}.String())
	require.Equal(t, "(0: 4294967295, 4294967295)", emptyPageList().String())
}
