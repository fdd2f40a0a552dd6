package bplus

import (
	"LeafDB/storage_engine/page"
	"LeafDB/types"

	"github.com/pkg/errors"
)

/*
Leaf page layout:

	[header 12B]
	[key 0][loc page 0][loc slot 0]
	[key 1][loc page 1][loc slot 1]
	...

Entries are kept strictly sorted by key. There is no duplicate detection:
inserting an existing key stores a second entry right after the first.
*/

type LeafPage struct {
	PageHeader
}

// NewLeafPage wraps pg as a leaf, initializing the header if pg is fresh.
func NewLeafPage(pg *page.Page) *LeafPage {
	return &LeafPage{PageHeader: newPageHeader(pg, types.PageTypeLeaf, LeafMaxCapacity)}
}

// Insert places (key, loc) in sorted position by shifting larger entries right.
func (l *LeafPage) Insert(key int32, loc types.RecordLocation) error {
	count := l.KeyCount()
	if count >= l.MaxCapacity() {
		return errors.Wrapf(ErrPageFull, "leaf page %d holds %d keys", l.PageID(), count)
	}

	i := count - 1
	for i >= 0 && l.KeyAt(i) > key {
		l.copyEntry(i, i+1)
		i--
	}

	l.setEntry(i+1, key, loc)
	l.SetKeyCount(count + 1)
	return nil
}

// Lookup returns the location of the first entry with key, scanning in stored order.
func (l *LeafPage) Lookup(key int32) (types.RecordLocation, bool) {
	count := l.KeyCount()
	for i := int32(0); i < count; i++ {
		if l.KeyAt(i) == key {
			return l.LocationAt(i), true
		}
	}
	return types.RecordLocation{}, false
}

// Split moves the upper half of the entries (count/2, rounded down) into other
// and returns the separator: the smallest key now in other.
// l keeps the lower half; other must be a fresh leaf.
func (l *LeafPage) Split(other *LeafPage) int32 {
	count := l.KeyCount()
	moved := count / 2
	keep := count - moved

	for i := int32(0); i < moved; i++ {
		other.setEntry(i, l.KeyAt(keep+i), l.LocationAt(keep+i))
	}
	other.SetKeyCount(moved)

	l.pg.Zero(leafEntryOffset(keep), leafEntryOffset(count))
	l.SetKeyCount(keep)

	return other.KeyAt(0)
}

// Entries returns a copy of the stored entries in order.
func (l *LeafPage) Entries() []Entry {
	count := l.KeyCount()
	out := make([]Entry, 0, count)
	for i := int32(0); i < count; i++ {
		out = append(out, Entry{Key: l.KeyAt(i), Location: l.LocationAt(i)})
	}
	return out
}

// --- Helpers to read/write specific slots ---

func leafEntryOffset(index int32) int {
	return HeaderSize + int(index)*LeafEntrySize
}

func (l *LeafPage) KeyAt(index int32) int32 {
	return l.pg.GetInt(leafEntryOffset(index))
}

func (l *LeafPage) LocationAt(index int32) types.RecordLocation {
	off := leafEntryOffset(index) + 4
	return types.RecordLocation{
		PageID:  l.pg.GetInt(off),
		SlotNum: l.pg.GetInt(off + 4),
	}
}

func (l *LeafPage) setEntry(index int32, key int32, loc types.RecordLocation) {
	off := leafEntryOffset(index)
	l.pg.SetInt(off, key)
	l.pg.SetInt(off+4, loc.PageID)
	l.pg.SetInt(off+8, loc.SlotNum)
}

func (l *LeafPage) copyEntry(from, to int32) {
	copy(l.pg.Data[leafEntryOffset(to):leafEntryOffset(to)+LeafEntrySize],
		l.pg.Data[leafEntryOffset(from):leafEntryOffset(from)+LeafEntrySize])
}
