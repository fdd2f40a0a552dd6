package heapfile

import (
	"LeafDB/storage_engine/page"

	"github.com/pkg/errors"
)

/*
This file contains standalone functions operating on *page.Page for heap file operations.
All functions take *page.Page as first argument since methods cannot be defined on
types from external packages.

Heap page binary layout (all values big-endian int32):

	Offset  Size  Field
	──────────────────────────────────────────────────────
	0       4     SlotCount  - records on this page
	4       4     FreePtr    - first free byte after the last record
	──────────────────────────────────────────────────────
	8             HeapHeaderSize

Slotted-page layout:

	[ header 8B ][ records → ][ free space ][ ← slot dir ]
	0           8             ^             ^             4096
	                          FreePtr       PageSize - SlotCount*SlotSize

A slot entry is 8 bytes: [ Offset int32 ][ Length int32 ]
Slot i lives at PageSize - (i+1)*SlotSize, so slot 0 is bytes 4088-4095.

A zero page (FreePtr == 0) has never been initialized.
Records are never deleted, so slots are dense: 0..SlotCount-1 are all live.
*/
const (
	heapOffSlotCount = 0
	heapOffFreePtr   = 4

	HeapHeaderSize = 8
	SlotSize       = 8

	// MaxRecordSize is the largest record that fits on an empty page.
	MaxRecordSize = page.PageSize - HeapHeaderSize - SlotSize
)

// InitHeapPage stamps an empty heap header into pg.
func InitHeapPage(pg *page.Page) {
	pg.Zero(0, page.PageSize)
	pg.SetInt(heapOffSlotCount, 0)
	pg.SetInt(heapOffFreePtr, HeapHeaderSize)
}

// IsHeapPage reports whether pg carries a heap header.
func IsHeapPage(pg *page.Page) bool {
	return GetFreePtr(pg) >= HeapHeaderSize
}

// InsertRecord appends data to the page and returns its slot number.
func InsertRecord(pg *page.Page, data []byte) (int32, error) {
	recordLen := len(data)
	if recordLen == 0 {
		return 0, errors.New("InsertRecord: data must not be empty")
	}
	if FreeSpace(pg) < recordLen {
		return 0, errors.Wrapf(ErrNoSpace, "page %d: need %d bytes, only %d available",
			pg.ID, recordLen, FreeSpace(pg))
	}

	slot := GetSlotCount(pg)
	offset := GetFreePtr(pg)

	copy(pg.Data[offset:], data)
	writeSlot(pg, slot, offset, int32(recordLen))

	setFreePtr(pg, offset+int32(recordLen))
	setSlotCount(pg, slot+1)
	return slot, nil
}

// GetRecord returns a copy of the record at slot.
func GetRecord(pg *page.Page, slot int32) ([]byte, error) {
	if slot < 0 || slot >= GetSlotCount(pg) {
		return nil, errors.Wrapf(ErrInvalidSlot, "page %d slot %d (count=%d)", pg.ID, slot, GetSlotCount(pg))
	}
	offset, length := readSlot(pg, slot)
	if offset < HeapHeaderSize || int(offset)+int(length) > page.PageSize || length < 0 {
		return nil, errors.Wrapf(page.ErrMalformedPage, "page %d slot %d points at [%d,+%d)", pg.ID, slot, offset, length)
	}
	out := make([]byte, length)
	copy(out, pg.Data[offset:offset+length])
	return out, nil
}

// Records returns copies of every record on the page, in slot order.
func Records(pg *page.Page) ([][]byte, error) {
	if !IsHeapPage(pg) {
		return nil, nil
	}
	count := GetSlotCount(pg)
	out := make([][]byte, 0, count)
	for slot := int32(0); slot < count; slot++ {
		rec, err := GetRecord(pg, slot)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
