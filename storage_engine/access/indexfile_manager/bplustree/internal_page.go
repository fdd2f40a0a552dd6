package bplus

import (
	"LeafDB/storage_engine/page"
	"LeafDB/types"

	"github.com/pkg/errors"
)

/*
Internal page layout:

	[header 12B]
	[key 0 (dummy)][child 0]   <- leftmost pointer, covers keys < key 1
	[key 1]        [child 1]
	[key 2]        [child 2]
	...

The key count includes entry 0. Entries from index 1 up are strictly sorted.
*/

type InternalPage struct {
	PageHeader
}

// NewInternalPage wraps pg as an internal node, initializing the header if pg is fresh.
func NewInternalPage(pg *page.Page) *InternalPage {
	return &InternalPage{PageHeader: newPageHeader(pg, types.PageTypeInternal, InternalMaxCapacity)}
}

// Lookup returns the child of the highest entry whose key is <= key,
// or the leftmost child when key is below every separator.
func (n *InternalPage) Lookup(key int32) int32 {
	for i := n.KeyCount() - 1; i > 0; i-- {
		if key >= n.KeyAt(i) {
			return n.ChildAt(i)
		}
	}
	return n.ChildAt(0)
}

// Insert sorts (key, child) into the entries at index >= 1. Entry 0 is never touched.
func (n *InternalPage) Insert(key int32, childPageID int32) error {
	count := n.KeyCount()
	if count >= n.MaxCapacity() {
		return errors.Wrapf(ErrPageFull, "internal page %d holds %d entries", n.PageID(), count)
	}

	i := count - 1
	for i > 0 && n.KeyAt(i) > key {
		n.copyEntry(i, i+1)
		i--
	}

	target := i + 1
	n.setKeyAt(target, key)
	n.setChildAt(target, childPageID)
	n.SetKeyCount(count + 1)
	return nil
}

// SetPointer sets the child of entry index. Setting the leftmost pointer of
// a page with no entries makes entry 0 count, so separators go to index 1 and up.
func (n *InternalPage) SetPointer(index int32, childPageID int32) {
	n.setChildAt(index, childPageID)
	if index == 0 && n.KeyCount() == 0 {
		n.SetKeyCount(1)
	}
}

// Children returns every child pointer, leftmost first.
func (n *InternalPage) Children() []int32 {
	count := n.KeyCount()
	out := make([]int32, 0, count)
	for i := int32(0); i < count; i++ {
		out = append(out, n.ChildAt(i))
	}
	return out
}

// Separators returns the keys of entries 1..count-1.
func (n *InternalPage) Separators() []int32 {
	count := n.KeyCount()
	if count <= 1 {
		return nil
	}
	out := make([]int32, 0, count-1)
	for i := int32(1); i < count; i++ {
		out = append(out, n.KeyAt(i))
	}
	return out
}

// --- Helpers ---

func internalEntryOffset(index int32) int {
	return HeaderSize + int(index)*InternalEntrySize
}

func (n *InternalPage) KeyAt(index int32) int32 {
	return n.pg.GetInt(internalEntryOffset(index))
}

func (n *InternalPage) setKeyAt(index int32, key int32) {
	n.pg.SetInt(internalEntryOffset(index), key)
}

func (n *InternalPage) ChildAt(index int32) int32 {
	return n.pg.GetInt(internalEntryOffset(index) + 4)
}

func (n *InternalPage) setChildAt(index int32, child int32) {
	n.pg.SetInt(internalEntryOffset(index)+4, child)
}

func (n *InternalPage) copyEntry(from, to int32) {
	n.setKeyAt(to, n.KeyAt(from))
	n.setChildAt(to, n.ChildAt(from))
}
