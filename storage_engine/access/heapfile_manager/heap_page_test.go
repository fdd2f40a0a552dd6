package heapfile

import (
	"LeafDB/storage_engine/page"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitHeapPage(t *testing.T) {
	pg := page.NewPage(0)
	assert.False(t, IsHeapPage(pg))

	InitHeapPage(pg)
	assert.True(t, IsHeapPage(pg))
	assert.Equal(t, int32(0), GetSlotCount(pg))
	assert.Equal(t, int32(HeapHeaderSize), GetFreePtr(pg))
	assert.Equal(t, page.PageSize-HeapHeaderSize-SlotSize, FreeSpace(pg))
}

func TestInsertAndGetRecordOnPage(t *testing.T) {
	pg := page.NewPage(3)
	InitHeapPage(pg)

	s0, err := InsertRecord(pg, []byte("hello"))
	require.NoError(t, err)
	s1, err := InsertRecord(pg, []byte("world!"))
	require.NoError(t, err)
	assert.Equal(t, int32(0), s0)
	assert.Equal(t, int32(1), s1)

	// Slot directory grows back from the end of the page.
	assert.Equal(t, int32(HeapHeaderSize), pg.GetInt(page.PageSize-8))
	assert.Equal(t, int32(5), pg.GetInt(page.PageSize-4))
	assert.Equal(t, int32(HeapHeaderSize+5), pg.GetInt(page.PageSize-16))

	rec, err := GetRecord(pg, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("world!"), rec)

	all, err := Records(pg)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("hello"), []byte("world!")}, all)
}

func TestGetRecordInvalidSlot(t *testing.T) {
	pg := page.NewPage(0)
	InitHeapPage(pg)

	_, err := GetRecord(pg, 0)
	assert.True(t, errors.Is(err, ErrInvalidSlot))
	_, err = GetRecord(pg, -1)
	assert.True(t, errors.Is(err, ErrInvalidSlot))
}

func TestInsertRecordFillsPage(t *testing.T) {
	pg := page.NewPage(0)
	InitHeapPage(pg)

	rec := make([]byte, 100)
	n := 0
	for {
		if _, err := InsertRecord(pg, rec); err != nil {
			assert.True(t, errors.Is(err, ErrNoSpace))
			break
		}
		n++
	}
	// (4096 - 8) / (100 + 8)
	assert.Equal(t, 37, n)
	assert.Less(t, FreeSpace(pg), 100)
}

func TestMaxRecordFitsEmptyPage(t *testing.T) {
	pg := page.NewPage(0)
	InitHeapPage(pg)

	_, err := InsertRecord(pg, make([]byte, MaxRecordSize))
	require.NoError(t, err)
	assert.Equal(t, 0, FreeSpace(pg))
}
