package heapfile

import (
	"LeafDB/storage_engine/page"
)

// ─────────────────────────────────────────────────────────────────────────────
// Header accessors
// ─────────────────────────────────────────────────────────────────────────────

func GetSlotCount(pg *page.Page) int32 {
	return pg.GetInt(heapOffSlotCount)
}
func setSlotCount(pg *page.Page, n int32) {
	pg.SetInt(heapOffSlotCount, n)
}

// FreePtr is the first free byte after the last written record.
func GetFreePtr(pg *page.Page) int32 {
	return pg.GetInt(heapOffFreePtr)
}
func setFreePtr(pg *page.Page, v int32) {
	pg.SetInt(heapOffFreePtr, v)
}

// ─────────────────────────────────────────────────────────────────────────────
// Free space
// ─────────────────────────────────────────────────────────────────────────────

// FreeSpace returns the bytes available for a new record after reserving the
// slot entry it would consume.
//
//	available = slotDirStart - FreePtr - SlotSize
func FreeSpace(pg *page.Page) int {
	slotDirStart := page.PageSize - int(GetSlotCount(pg))*SlotSize
	available := slotDirStart - int(GetFreePtr(pg)) - SlotSize
	if available < 0 {
		return 0
	}
	return available
}

// ─────────────────────────────────────────────────────────────────────────────
// Slot directory
// ─────────────────────────────────────────────────────────────────────────────

//	slot 0: bytes 4088-4095
//	slot 1: bytes 4080-4087
//	slot i: PageSize - (i+1)*SlotSize
func slotByteOffset(i int32) int {
	return page.PageSize - (int(i)+1)*SlotSize
}

func readSlot(pg *page.Page, i int32) (offset, length int32) {
	base := slotByteOffset(i)
	return pg.GetInt(base), pg.GetInt(base + 4)
}

func writeSlot(pg *page.Page, i int32, offset, length int32) {
	base := slotByteOffset(i)
	pg.SetInt(base, offset)
	pg.SetInt(base+4, length)
}
