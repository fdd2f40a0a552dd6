package bplus

import (
	"LeafDB/storage_engine/page"
	"LeafDB/types"
)

/*
Every B+ tree page starts with the same 12 byte header:

	Offset  Size  Field
	──────────────────────────────
	0       4     page type    (0 = internal, 1 = leaf)
	4       4     key count
	8       4     max capacity
	──────────────────────────────
	12            entries

Leaf and internal wrappers embed PageHeader and add typed accessors over
their own entry region.
*/
const (
	offPageType    = 0
	offKeyCount    = 4
	offMaxCapacity = 8

	HeaderSize = 12

	LeafEntrySize     = 12 // key + location page id + location slot
	InternalEntrySize = 8  // key + child page id

	LeafMaxCapacity     = (page.PageSize - HeaderSize) / LeafEntrySize     // 340
	InternalMaxCapacity = (page.PageSize - HeaderSize) / InternalEntrySize // 510
)

// PageHeader borrows the page's bytes; it never copies them.
type PageHeader struct {
	pg *page.Page
}

// newPageHeader stamps type and capacity only when the key count reads zero,
// so wrapping a populated page loaded from disk leaves it untouched.
func newPageHeader(pg *page.Page, pageType types.PageType, maxCapacity int32) PageHeader {
	h := PageHeader{pg: pg}
	if h.KeyCount() == 0 {
		h.setPageType(pageType)
		h.setMaxCapacity(maxCapacity)
		h.SetKeyCount(0)
	}
	return h
}

// ReadPageType reads the type field without wrapping the page.
func ReadPageType(pg *page.Page) types.PageType {
	return types.PageType(pg.GetInt(offPageType))
}

// IsFreshPage reports a page whose header was never written.
func IsFreshPage(pg *page.Page) bool {
	return pg.GetInt(offPageType) == 0 && pg.GetInt(offKeyCount) == 0
}

func (h PageHeader) PageID() int32 {
	return h.pg.ID
}

func (h PageHeader) PageType() types.PageType {
	return types.PageType(h.pg.GetInt(offPageType))
}

func (h PageHeader) setPageType(t types.PageType) {
	h.pg.SetInt(offPageType, int32(t))
}

func (h PageHeader) KeyCount() int32 {
	return h.pg.GetInt(offKeyCount)
}

func (h PageHeader) SetKeyCount(n int32) {
	h.pg.SetInt(offKeyCount, n)
}

func (h PageHeader) MaxCapacity() int32 {
	return h.pg.GetInt(offMaxCapacity)
}

func (h PageHeader) setMaxCapacity(n int32) {
	h.pg.SetInt(offMaxCapacity, n)
}

func (h PageHeader) IsLeaf() bool {
	return h.PageType() == types.PageTypeLeaf
}

func (h PageHeader) IsFull() bool {
	return h.KeyCount() >= h.MaxCapacity()
}
